package certificate

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

const mediaFolder = "certificates"

type certificateResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"fileUrl"`
	Created     time.Time `json:"createdAt"`
}

func toResponse(ct *models.CertificateModel) certificateResponse {
	return certificateResponse{
		ID: ct.ID, Title: ct.Title, Description: ct.Description,
		FileURL: ct.FileURL, Created: ct.CreatedAt,
	}
}

type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) ListAll() ([]models.CertificateModel, error) {
	var items []models.CertificateModel
	err := s.db.Order("id").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.CertificateModel, error) {
	var ct models.CertificateModel
	if err := s.db.First(&ct, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ct, nil
}

// Create accepts both images and PDF documents; registration and 80G
// certificates are usually scanned PDFs.
func (s *Service) Create(ctx context.Context, title, description string, file *multipart.FileHeader) (*models.CertificateModel, error) {
	url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOrPDF)
	if err != nil {
		return nil, err
	}
	ct := models.CertificateModel{Title: title, Description: description, FileURL: url}
	if err := s.db.Create(&ct).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *Service) Update(ctx context.Context, id uint, title, description *string, file *multipart.FileHeader) (*models.CertificateModel, error) {
	ct, err := s.GetByID(id)
	if err != nil || ct == nil {
		return ct, err
	}

	oldURL := ""
	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
		ct.Title = *title
	}
	if description != nil {
		updates["description"] = *description
		ct.Description = *description
	}
	if file != nil {
		url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOrPDF)
		if err != nil {
			return nil, err
		}
		oldURL = ct.FileURL
		updates["file_url"] = url
		ct.FileURL = url
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.CertificateModel{}).Where("id = ?", ct.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if oldURL != "" {
		s.media.Remove(ctx, oldURL)
	}
	return ct, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	ct, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if ct == nil {
		return false, nil
	}
	s.media.Remove(ctx, ct.FileURL)
	return true, s.db.Delete(&models.CertificateModel{}, id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/certificates")
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
	out := make([]certificateResponse, len(items))
	for i, ct := range items {
		out[i] = toResponse(&ct)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ct, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ct == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(ct))
}

func (h *Handler) create(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	file, err := c.FormFile("photo")
	if title == "" || err != nil {
		response.BadRequest(c, "Title and file are required")
		return
	}

	ct, err := h.svc.Create(c.Request.Context(), title, description, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(ct))
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
	file, _ := c.FormFile("photo")

	ct, err := h.svc.Update(c.Request.Context(), id, title, description, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	if ct == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(ct))
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
