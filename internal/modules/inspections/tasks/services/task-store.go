package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/infrastructure/database/redis"
	"fpm-inspections-core/internal/infrastructure/progress"
)

// Subscription flux des événements d'une tâche ; Close libère l'abonnement
type Subscription struct {
	Events <-chan progress.Event
	Close  func() error
}

// TaskStore état, résultat et flux d'avancement des tâches
type TaskStore interface {
	SaveResult(ctx context.Context, taskID string, result interface{}) error
	Result(ctx context.Context, taskID string) (json.RawMessage, error)
	LastEvent(ctx context.Context, taskID string) (*progress.Event, error)
	Subscribe(ctx context.Context, taskID string) (*Subscription, error)
}

// RedisTaskStore - clés task_state / task_result, canal task_progress
type RedisTaskStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisTaskStore(client *redis.Client, logger *zap.Logger) *RedisTaskStore {
	return &RedisTaskStore{client: client, logger: logger}
}

func (s *RedisTaskStore) SaveResult(ctx context.Context, taskID string, result interface{}) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encodage résultat: %w", err)
	}
	return s.client.SetWithPattern(ctx, redis.PatternTaskResult, payload, taskID)
}

// Result nil si absent ou expiré
func (s *RedisTaskStore) Result(ctx context.Context, taskID string) (json.RawMessage, error) {
	payload, err := s.client.GetWithPattern(ctx, redis.PatternTaskResult, taskID)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// LastEvent nil si la tâche est inconnue ou expirée
func (s *RedisTaskStore) LastEvent(ctx context.Context, taskID string) (*progress.Event, error) {
	payload, err := s.client.GetWithPattern(ctx, redis.PatternTaskState, taskID)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ev, err := progress.DecodeEvent(payload)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *RedisTaskStore) Subscribe(ctx context.Context, taskID string) (*Subscription, error) {
	ps, err := s.client.SubscribeWithPattern(ctx, redis.PatternTaskProgress, taskID)
	if err != nil {
		return nil, err
	}

	events := make(chan progress.Event, 16)
	go func() {
		defer close(events)
		for msg := range ps.Channel() {
			ev, err := progress.DecodeEvent(msg.Payload)
			if err != nil {
				s.logger.Warn("événement ignoré", zap.String("task_id", taskID), zap.Error(err))
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Subscription{Events: events, Close: ps.Close}, nil
}
