package upload

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevatrust/core/internal/models"
	"github.com/sevatrust/core/internal/pkg/mediastore"
	"github.com/sevatrust/core/internal/pkg/pagination"
	"github.com/sevatrust/core/internal/pkg/response"
	"gorm.io/gorm"
)

const defaultFolder = "misc"

type uploadResponse struct {
	ID       uint      `json:"id"`
	FileName string    `json:"fileName"`
	FileType string    `json:"fileType"`
	FileSize int64     `json:"fileSize"`
	FileURL  string    `json:"fileUrl"`
	PublicID string    `json:"publicId"`
	Folder   string    `json:"folder"`
	Created  time.Time `json:"createdAt"`
}

func toResponse(u *models.UploadModel) uploadResponse {
	return uploadResponse{
		ID: u.ID, FileName: u.FileName, FileType: u.FileType,
		FileSize: u.FileSize, FileURL: u.FileURL, PublicID: u.PublicID,
		Folder: u.Folder, Created: u.CreatedAt,
	}
}

// Service keeps a ledger row for every ad-hoc admin upload so files that
// are not referenced by an entity record can still be listed and removed.
type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) List(q pagination.Query) ([]models.UploadModel, response.Pagination, error) {
	tx := s.db.Model(&models.UploadModel{}).Order("created_at DESC")
	var items []models.UploadModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	var u models.UploadModel
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	s.media.Remove(ctx, u.FileURL)
	return true, s.db.Delete(&models.UploadModel{}, id).Error
}

type Handler struct {
	svc   *Service
	media *mediastore.Service
	db    *gorm.DB
}

func NewHandler(svc *Service, media *mediastore.Service, db *gorm.DB) *Handler {
	return &Handler{svc: svc, media: media, db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/upload", authMW, h.upload)

	g := rg.Group("/uploads", authMW)
	g.GET("", h.list)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	folder := sanitizeFolder(c.PostForm("folder"))

	url, err := h.media.Upload(c.Request.Context(), file, folder, mediastore.ImagesOrPDF)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}

	publicID, _ := mediastore.ExtractPublicID(url)
	row := models.UploadModel{
		FileName: file.Filename,
		FileType: file.Header.Get("Content-Type"),
		FileSize: file.Size,
		FileURL:  url,
		PublicID: publicID,
		Folder:   folder,
	}
	if err := h.db.Create(&row).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(&row))
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]uploadResponse, len(items))
	for i, u := range items {
		out[i] = toResponse(&u)
	}
	response.Paged(c, out, pag)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	found, err := h.svc.Delete(c.Request.Context(), uint(id))
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

// sanitizeFolder keeps folder names to a single flat path segment.
func sanitizeFolder(folder string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.ContainsAny(folder, "/\\.") {
		return defaultFolder
	}
	return folder
}
