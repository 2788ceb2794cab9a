package news

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

const mediaFolder = "news"

type newsResponse struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	ImageURL string    `json:"imageUrl"`
	Created  time.Time `json:"createdAt"`
}

func toResponse(n *models.NewsArticleModel) newsResponse {
	return newsResponse{
		ID: n.ID, Title: n.Title, Content: n.Content,
		ImageURL: n.ImageURL, Created: n.CreatedAt,
	}
}

type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) ListAll() ([]models.NewsArticleModel, error) {
	var items []models.NewsArticleModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.NewsArticleModel, error) {
	var n models.NewsArticleModel
	if err := s.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// Create uploads the validated image, then inserts the row. The upload
// precedes the insert so no row ever points at a file that was never
// stored.
func (s *Service) Create(ctx context.Context, title, content string, file *multipart.FileHeader) (*models.NewsArticleModel, error) {
	url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
	if err != nil {
		return nil, err
	}
	n := models.NewsArticleModel{Title: title, Content: content, ImageURL: url}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Update applies partial field changes. When a replacement file is
// supplied, the new upload commits with the row first; the old remote
// object is removed afterwards, best-effort.
func (s *Service) Update(ctx context.Context, id uint, title, content *string, file *multipart.FileHeader) (*models.NewsArticleModel, error) {
	n, err := s.GetByID(id)
	if err != nil || n == nil {
		return n, err
	}

	oldURL := ""
	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
		n.Title = *title
	}
	if content != nil {
		updates["content"] = *content
		n.Content = *content
	}
	if file != nil {
		url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
		if err != nil {
			return nil, err
		}
		oldURL = n.ImageURL
		updates["image_url"] = url
		n.ImageURL = url
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.NewsArticleModel{}).Where("id = ?", n.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if oldURL != "" {
		s.media.Remove(ctx, oldURL)
	}
	return n, nil
}

// Delete removes the remote object best-effort and then the row. Row
// truth wins: a failed remote removal never keeps the record alive.
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	n, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, nil
	}
	s.media.Remove(ctx, n.ImageURL)
	return true, s.db.Delete(&models.NewsArticleModel{}, id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/news")
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
	out := make([]newsResponse, len(items))
	for i, n := range items {
		out[i] = toResponse(&n)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	n, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if n == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) create(c *gin.Context) {
	title := c.PostForm("title")
	content := c.PostForm("content")
	file, err := c.FormFile("image")
	if title == "" || content == "" || err != nil {
		response.BadRequest(c, "Title, content, and image are required")
		return
	}

	n, err := h.svc.Create(c.Request.Context(), title, content, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(n))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var title, content *string
	if v, exists := c.GetPostForm("title"); exists {
		title = &v
	}
	if v, exists := c.GetPostForm("content"); exists {
		content = &v
	}
	file, _ := c.FormFile("image")

	n, err := h.svc.Update(c.Request.Context(), id, title, content, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	if n == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(n))
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
