package impact

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

const mediaFolder = "impacts"

type impactResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Icon        string    `json:"icon"`
	StatsValue  string    `json:"statsValue"`
	StatsLabel  string    `json:"statsLabel"`
	Created     time.Time `json:"createdAt"`
	Modified    time.Time `json:"updatedAt"`
}

func toResponse(m *models.ImpactStoryModel) impactResponse {
	return impactResponse{
		ID: m.ID, Title: m.Title, Description: m.Description,
		ImageURL: m.ImageURL, Icon: m.Icon,
		StatsValue: m.StatsValue, StatsLabel: m.StatsLabel,
		Created: m.CreatedAt, Modified: m.UpdatedAt,
	}
}

// CreateFields are the required text fields for a new impact story.
type CreateFields struct {
	Title       string
	Description string
	Icon        string
	StatsValue  string
	StatsLabel  string
}

// UpdateFields are the optional replacements for a partial update.
type UpdateFields struct {
	Title       *string
	Description *string
	Icon        *string
	StatsValue  *string
	StatsLabel  *string
}

type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) ListAll() ([]models.ImpactStoryModel, error) {
	var items []models.ImpactStoryModel
	err := s.db.Order("id").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.ImpactStoryModel, error) {
	var m models.ImpactStoryModel
	if err := s.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, fields CreateFields, file *multipart.FileHeader) (*models.ImpactStoryModel, error) {
	url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
	if err != nil {
		return nil, err
	}
	m := models.ImpactStoryModel{
		Title:       fields.Title,
		Description: fields.Description,
		ImageURL:    url,
		Icon:        fields.Icon,
		StatsValue:  fields.StatsValue,
		StatsLabel:  fields.StatsLabel,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, id uint, fields UpdateFields, file *multipart.FileHeader) (*models.ImpactStoryModel, error) {
	m, err := s.GetByID(id)
	if err != nil || m == nil {
		return m, err
	}

	oldURL := ""
	updates := map[string]interface{}{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
		m.Title = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
		m.Description = *fields.Description
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
		m.Icon = *fields.Icon
	}
	if fields.StatsValue != nil {
		updates["stats_value"] = *fields.StatsValue
		m.StatsValue = *fields.StatsValue
	}
	if fields.StatsLabel != nil {
		updates["stats_label"] = *fields.StatsLabel
		m.StatsLabel = *fields.StatsLabel
	}
	if file != nil {
		url, err := s.media.Upload(ctx, file, mediaFolder, mediastore.ImagesOnly)
		if err != nil {
			return nil, err
		}
		oldURL = m.ImageURL
		updates["image_url"] = url
		m.ImageURL = url
	}

	if len(updates) > 0 {
		// Impact stories carry a last-modified timestamp; refresh it on
		// every mutating write.
		now := time.Now()
		updates["updated_at"] = now
		m.UpdatedAt = now
		if err := s.db.Model(&models.ImpactStoryModel{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if oldURL != "" {
		s.media.Remove(ctx, oldURL)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	s.media.Remove(ctx, m.ImageURL)
	return true, s.db.Delete(&models.ImpactStoryModel{}, id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/impacts")
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
	out := make([]impactResponse, len(items))
	for i, m := range items {
		out[i] = toResponse(&m)
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(m))
}

func (h *Handler) create(c *gin.Context) {
	fields := CreateFields{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Icon:        c.PostForm("icon"),
		StatsValue:  c.PostForm("statsValue"),
		StatsLabel:  c.PostForm("statsLabel"),
	}
	file, err := c.FormFile("image")
	if fields.Title == "" || fields.Description == "" || fields.Icon == "" ||
		fields.StatsValue == "" || fields.StatsLabel == "" || err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	m, err := h.svc.Create(c.Request.Context(), fields, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(m))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var fields UpdateFields
	if v, exists := c.GetPostForm("title"); exists {
		fields.Title = &v
	}
	if v, exists := c.GetPostForm("description"); exists {
		fields.Description = &v
	}
	if v, exists := c.GetPostForm("icon"); exists {
		fields.Icon = &v
	}
	if v, exists := c.GetPostForm("statsValue"); exists {
		fields.StatsValue = &v
	}
	if v, exists := c.GetPostForm("statsLabel"); exists {
		fields.StatsLabel = &v
	}
	file, _ := c.FormFile("image")

	m, err := h.svc.Update(c.Request.Context(), id, fields, file)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(m))
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
