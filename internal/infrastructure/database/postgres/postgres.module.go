package postgres

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewPostgresClient(config *DatabaseConfig) (*Client, error) {
	return NewClient(config)
}

var Module = fx.Options(
	fx.Provide(NewPostgresClient),
	fx.Provide(NewTxManager),
	fx.Invoke(RegisterLifecycle),
)

func NewTxManager(client *Client, logger *zap.Logger) *TransactionManager {
	return NewTransactionManager(client, logger.Named("postgres"))
}

func RegisterLifecycle(lc fx.Lifecycle, client *Client, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := client.HealthCheck(timeoutCtx); err != nil {
				return err
			}

			logger.Info("postgres connected", zap.Int32("max_conns", client.Stats().MaxConns()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.Close()
			return nil
		},
	})
}
