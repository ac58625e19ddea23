package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
)

// Application serveur HTTP de l'API d'inspection
type Application struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
	logger *zap.Logger
}

func NewApplication(cfg *config.Config, router *gin.Engine, logger *zap.Logger) *Application {
	return &Application{
		config: cfg,
		router: router,
		logger: logger.Named("server"),
	}
}

// Start démarre l'application avec lifecycle Fx
func (a *Application) Start(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverConfig := a.config.GetServer()
			addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)

			a.server = &http.Server{
				Addr:         addr,
				Handler:      a.router,
				ReadTimeout:  serverConfig.ReadTimeout,
				WriteTimeout: serverConfig.WriteTimeout,
			}

			go func() {
				a.logger.Info("démarrage serveur HTTP", zap.String("addr", addr))
				if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.logger.Error("échec démarrage serveur", zap.Error(err))
				}
			}()

			a.logger.Info("serveur HTTP initialisé", zap.String("env", a.config.Environment))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			a.logger.Info("arrêt serveur HTTP")

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("arrêt forcé", zap.Error(err))
				return err
			}

			a.logger.Info("serveur arrêté proprement")
			return nil
		},
	})
}

// IsDevelopment indique si l'application est en mode développement
func (a *Application) IsDevelopment() bool {
	return a.config.Environment == "development"
}
