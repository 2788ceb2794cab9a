package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevatrust/core/internal/middleware"
	"github.com/sevatrust/core/internal/modules/auth"
	"github.com/sevatrust/core/internal/modules/content/certificate"
	"github.com/sevatrust/core/internal/modules/content/donation"
	"github.com/sevatrust/core/internal/modules/content/gallery"
	"github.com/sevatrust/core/internal/modules/content/impact"
	"github.com/sevatrust/core/internal/modules/content/news"
	"github.com/sevatrust/core/internal/modules/content/sponsor"
	"github.com/sevatrust/core/internal/modules/storage/upload"
	"github.com/sevatrust/core/internal/modules/system/health"
	pkgredis "github.com/sevatrust/core/internal/pkg/redis"
	"github.com/sevatrust/core/internal/pkg/response"
	"gorm.io/gorm"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(rc.Raw()))
	if !a.cfg.IsDev() {
		api.Use(middleware.HTTPCache(rc.Raw(), 15*time.Second))
	}

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	health.RegisterRoutes(api, db, rc)

	auth.NewHandler(auth.NewService(db, a.logger)).RegisterRoutes(api, authMW)

	registerContentRoutes(api, db, a, authMW)

	uploadSvc := upload.NewService(db, a.media)
	upload.NewHandler(uploadSvc, a.media, db).RegisterRoutes(api, authMW)
}

func registerContentRoutes(api *gin.RouterGroup, db *gorm.DB, a *App, authMW gin.HandlerFunc) {
	news.NewHandler(news.NewService(db, a.media)).RegisterRoutes(api, authMW)
	sponsor.NewHandler(sponsor.NewService(db, a.media)).RegisterRoutes(api, authMW)
	gallery.NewHandler(gallery.NewService(db, a.media)).RegisterRoutes(api, authMW)
	impact.NewHandler(impact.NewService(db, a.media)).RegisterRoutes(api, authMW)
	certificate.NewHandler(certificate.NewService(db, a.media)).RegisterRoutes(api, authMW)

	donationSvc := donation.NewService(db, a.media)
	donation.NewHandler(donationSvc, a.media).RegisterRoutes(api, authMW)
}
