package mongodb

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Provide(NewCollectionManager),
	fx.Invoke(RegisterLifecycle),
)

func RegisterLifecycle(lc fx.Lifecycle, client *Client, collections *CollectionManager, logger *zap.Logger) {
	log := logger.Named("mongodb")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			// L'historique est secondaire : les rapports restent disponibles sans MongoDB
			if err := client.Ping(timeoutCtx); err != nil {
				log.Warn("MongoDB non disponible, historique des analyses désactivé", zap.Error(err))
				return nil
			}

			if err := collections.EnsureAnalysisLogsCollection(timeoutCtx); err != nil {
				log.Warn("préparation collection analyses échouée", zap.Error(err))
				return nil
			}

			log.Info("MongoDB connecté")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
