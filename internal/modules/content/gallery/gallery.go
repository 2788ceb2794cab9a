package gallery

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevatrust/core/internal/models"
	"github.com/sevatrust/core/internal/pkg/mediastore"
	"github.com/sevatrust/core/internal/pkg/response"
	"gorm.io/gorm"
)

const mediaFolder = "gallery"

type galleryResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Created     time.Time `json:"createdAt"`
}

func toResponse(g *models.GalleryItemModel) galleryResponse {
	return galleryResponse{
		ID: g.ID, Title: g.Title, Description: g.Description,
		ImageURL: g.ImageURL, Created: g.CreatedAt,
	}
}

type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) ListAll() ([]models.GalleryItemModel, error) {
	var items []models.GalleryItemModel
	err := s.db.Order("id").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.GalleryItemModel, error) {
	var g models.GalleryItemModel
	if err := s.db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (s *Service) Create(ctx context.Context, title, description string, file *multipart.FileHeader) (*models.GalleryItemModel, error) {
	url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
	if err != nil {
		return nil, err
	}
	g := models.GalleryItemModel{Title: title, Description: description, ImageURL: url}
	if err := s.db.Create(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Service) Update(ctx context.Context, id uint, title, description *string, file *multipart.FileHeader) (*models.GalleryItemModel, error) {
	g, err := s.GetByID(id)
	if err != nil || g == nil {
		return g, err
	}

	oldURL := ""
	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
		g.Title = *title
	}
	if description != nil {
		updates["description"] = *description
		g.Description = *description
	}
	if file != nil {
		url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
		if err != nil {
			return nil, err
		}
		oldURL = g.ImageURL
		updates["image_url"] = url
		g.ImageURL = url
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.GalleryItemModel{}).Where("id = ?", g.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if oldURL != "" {
		s.media.Remove(ctx, oldURL)
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	g, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if g == nil {
		return false, nil
	}
	s.media.Remove(ctx, g.ImageURL)
	return true, s.db.Delete(&models.GalleryItemModel{}, id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/gallery")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PATCH("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]galleryResponse, len(items))
	for i, g := range items {
		out[i] = toResponse(&g)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if g == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(g))
}

func (h *Handler) create(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	file, err := c.FormFile("image")
	if title == "" || err != nil {
		response.BadRequest(c, "Title and image are required")
		return
	}

	g, err := h.svc.Create(c.Request.Context(), title, description, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(g))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var title, description *string
	if v, exists := c.GetPostForm("title"); exists {
		title = &v
	}
	if v, exists := c.GetPostForm("description"); exists {
		description = &v
	}
	file, _ := c.FormFile("image")

	g, err := h.svc.Update(c.Request.Context(), id, title, description, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	if g == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(g))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"success": true})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
