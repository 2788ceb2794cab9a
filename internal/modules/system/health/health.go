package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/sevatrust/core/internal/pkg/redis"
	"gorm.io/gorm"
)

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, rc *pkgredis.Client) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.Ping() == nil
		redisOK := rc.Raw().Ping(c.Request.Context()).Err() == nil

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
			"redis":    redisOK,
		})
	})
}
