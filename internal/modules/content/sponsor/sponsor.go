package sponsor

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

const mediaFolder = "sponsors"

type sponsorResponse struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Link     string    `json:"link"`
	ImageURL string    `json:"imageUrl"`
	Created  time.Time `json:"createdAt"`
}

func toResponse(sp *models.SponsorModel) sponsorResponse {
	return sponsorResponse{
		ID: sp.ID, Name: sp.Name, Link: sp.Link,
		ImageURL: sp.ImageURL, Created: sp.CreatedAt,
	}
}

type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) ListAll() ([]models.SponsorModel, error) {
	var items []models.SponsorModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.SponsorModel, error) {
	var sp models.SponsorModel
	if err := s.db.First(&sp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (s *Service) Create(ctx context.Context, name, link string, file *multipart.FileHeader) (*models.SponsorModel, error) {
	url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
	if err != nil {
		return nil, err
	}
	sp := models.SponsorModel{Name: name, Link: link, ImageURL: url}
	if err := s.db.Create(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Service) Update(ctx context.Context, id uint, name, link *string, file *multipart.FileHeader) (*models.SponsorModel, error) {
	sp, err := s.GetByID(id)
	if err != nil || sp == nil {
		return sp, err
	}

	oldURL := ""
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
		sp.Name = *name
	}
	if link != nil {
		updates["link"] = *link
		sp.Link = *link
	}
	if file != nil {
		url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
		if err != nil {
			return nil, err
		}
		oldURL = sp.ImageURL
		updates["image_url"] = url
		sp.ImageURL = url
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.SponsorModel{}).Where("id = ?", sp.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if oldURL != "" {
		s.media.Remove(ctx, oldURL)
	}
	return sp, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	sp, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if sp == nil {
		return false, nil
	}
	s.media.Remove(ctx, sp.ImageURL)
	return true, s.db.Delete(&models.SponsorModel{}, id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/sponsors")
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
	out := make([]sponsorResponse, len(items))
	for i, sp := range items {
		out[i] = toResponse(&sp)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sp, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sp == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(sp))
}

func (h *Handler) create(c *gin.Context) {
	name := c.PostForm("name")
	link := c.PostForm("link")
	file, err := c.FormFile("image")
	if name == "" || link == "" || err != nil {
		response.BadRequest(c, "Name, link, and image are required")
		return
	}

	sp, err := h.svc.Create(c.Request.Context(), name, link, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(sp))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var name, link *string
	if v, exists := c.GetPostForm("name"); exists {
		name = &v
	}
	if v, exists := c.GetPostForm("link"); exists {
		link = &v
	}
	file, _ := c.FormFile("image")

	sp, err := h.svc.Update(c.Request.Context(), id, name, link, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	if sp == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(sp))
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
