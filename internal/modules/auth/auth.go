package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevatrust/core/internal/middleware"
	"github.com/sevatrust/core/internal/models"
	"github.com/sevatrust/core/internal/pkg/jwt"
	"github.com/sevatrust/core/internal/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is the admin session lifetime.
const TokenTTL = 24 * time.Hour

type loginDTO struct {
	Password string `json:"password" binding:"required"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Login checks the password against the stored bcrypt hash and issues a
// session token. There is a single admin row; absence means the instance
// was never seeded.
func (s *Service) Login(password string) (string, error) {
	var admin models.AdminModel
	if err := s.db.First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("login attempted but no admin account is seeded")
			return "", ErrBadCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCredentials
	}

	return jwt.Sign(admin.ID, TokenTTL)
}

// ErrBadCredentials is returned for a wrong password or an unseeded admin.
var ErrBadCredentials = errors.New("invalid password")

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/login", h.login)
	g.GET("/check", authMW, h.check)
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Password is required")
		return
	}

	token, err := h.svc.Login(dto.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			response.UnauthorizedMsg(c, "Invalid password")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "expiresIn": int(TokenTTL.Seconds())})
}

func (h *Handler) check(c *gin.Context) {
	adminID, _ := c.Get(middleware.ContextKeyAdminID)
	response.OK(c, gin.H{"ok": true, "adminId": adminID})
}
