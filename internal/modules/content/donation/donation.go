package donation

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevatrust/core/internal/models"
	"github.com/sevatrust/core/internal/pkg/mediastore"
	"github.com/sevatrust/core/internal/pkg/pagination"
	"github.com/sevatrust/core/internal/pkg/response"
	"gorm.io/gorm"
)

const mediaFolder = "donations"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateDonationDTO is the public donation submission. The proof image is
// uploaded first through the proof endpoint and referenced here by URL.
type CreateDonationDTO struct {
	FullName      string `json:"fullName"      binding:"required"`
	Email         string `json:"email"         binding:"required"`
	Amount        string `json:"amount"        binding:"required"`
	PANCard       string `json:"panCard"       binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
	ProofImageURL string `json:"proofImageUrl" binding:"required"`
}

type updateStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

type donationResponse struct {
	ID            uint      `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Amount        string    `json:"amount"`
	PANCard       string    `json:"panCard"`
	TransactionID string    `json:"transactionId"`
	ProofImageURL string    `json:"proofImageUrl"`
	Status        string    `json:"status"`
	Created       time.Time `json:"createdAt"`
}

func toResponse(d *models.DonationModel) donationResponse {
	return donationResponse{
		ID: d.ID, FullName: d.FullName, Email: d.Email, Amount: d.Amount,
		PANCard: d.PANCard, TransactionID: d.TransactionID,
		ProofImageURL: d.ProofImageURL, Status: d.Status, Created: d.CreatedAt,
	}
}

type Service struct {
	db    *gorm.DB
	media *mediastore.Service
}

func NewService(db *gorm.DB, media *mediastore.Service) *Service {
	return &Service{db: db, media: media}
}

func (s *Service) List(q pagination.Query) ([]models.DonationModel, response.Pagination, error) {
	tx := s.db.Model(&models.DonationModel{}).Order("created_at DESC")
	var items []models.DonationModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id uint) (*models.DonationModel, error) {
	var d models.DonationModel
	if err := s.db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *Service) Create(dto *CreateDonationDTO) (*models.DonationModel, error) {
	d := models.DonationModel{
		FullName:      dto.FullName,
		Email:         dto.Email,
		Amount:        dto.Amount,
		PANCard:       dto.PANCard,
		TransactionID: dto.TransactionID,
		ProofImageURL: dto.ProofImageURL,
		Status:        models.DonationStatusPending,
	}
	if err := s.db.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) UpdateStatus(id uint, status string) (*models.DonationModel, error) {
	d, err := s.GetByID(id)
	if err != nil || d == nil {
		return d, err
	}
	if err := s.db.Model(&models.DonationModel{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	d.Status = status
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	d, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if d == nil {
		return false, nil
	}
	s.media.Remove(ctx, d.ProofImageURL)
	return true, s.db.Delete(&models.DonationModel{}, id).Error
}

type Handler struct {
	svc   *Service
	media *mediastore.Service
}

func NewHandler(svc *Service, media *mediastore.Service) *Handler {
	return &Handler{svc: svc, media: media}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/donations")
	g.POST("", h.create)
	g.POST("/proof", h.uploadProof)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.GET("/:id", h.get)
	a.PATCH("/:id/status", h.updateStatus)
	a.DELETE("/:id", h.delete)
}

// uploadProof stores the payment screenshot before the donation form is
// submitted, so the JSON submission only carries the returned URL.
func (h *Handler) uploadProof(c *gin.Context) {
	file, err := c.FormFile("proof")
	if err != nil {
		response.BadRequest(c, "Proof image is required")
		return
	}
	url, err := h.media.Upload(c.Request.Context(), file, mediaFolder, mediastore.ImagesOnly)
	if err != nil {
		if rej, ok := mediastore.AsRejection(err); ok {
			response.BadRequest(c, rej.Reason)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"url": url})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDonationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}
	if !emailPattern.MatchString(dto.Email) {
		response.BadRequest(c, "Invalid email format")
		return
	}
	amount, err := strconv.ParseFloat(dto.Amount, 64)
	if err != nil || amount <= 0 {
		response.BadRequest(c, "Invalid donation amount")
		return
	}

	d, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(d))
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]donationResponse, len(items))
	for i, d := range items {
		out[i] = toResponse(&d)
	}
	response.Paged(c, out, pag)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if d == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(d))
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto updateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	switch dto.Status {
	case models.DonationStatusPending, models.DonationStatusVerified, models.DonationStatusRejected:
	default:
		response.BadRequest(c, "invalid status")
		return
	}

	d, err := h.svc.UpdateStatus(id, dto.Status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if d == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(d))
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
