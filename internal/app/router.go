package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/logger"
	"fpm-inspections-core/internal/shared/middleware/security"
)

// Pinger dépendance vérifiée par /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessChecks dépendances par nom ; "mongodb" est facultative
type ReadinessChecks map[string]Pinger

const optionalDependency = "mongodb"

func NewRouter(cfg *config.Config, lm *logger.LoggerMiddleware, corsHandler security.CORSHandler) *gin.Engine {
	configureGinMode(cfg.Environment)

	r := gin.New()

	r.Use(lm.RequestID())
	r.Use(lm.GinLogger())
	r.Use(lm.GinRecovery())
	r.Use(gin.HandlerFunc(corsHandler))

	return r
}

// RegisterHealthRoutes /health (processus) et /ready (dépendances)
func RegisterHealthRoutes(r *gin.Engine, checks ReadinessChecks, log *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ready := true
		status := make(gin.H, len(checks))
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				log.Warn("dépendance indisponible", zap.String("dependance", name), zap.Error(err))
				status[name] = "down"
				if name != optionalDependency {
					ready = false
				}
				continue
			}
			status[name] = "up"
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service non prêt",
				"details": gin.H{
					"code":         "NOT_READY",
					"dependencies": status,
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status":       "ready",
				"dependencies": status,
			},
		})
	})
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
