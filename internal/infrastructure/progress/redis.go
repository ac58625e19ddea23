package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"fpm-inspections-core/internal/infrastructure/database/redis"
)

type eventBus interface {
	PublishWithPattern(ctx context.Context, patternName string, message interface{}, identifier ...string) error
	SetWithPattern(ctx context.Context, patternName string, value interface{}, identifier ...string) error
}

// RedisReporter publie sur le canal de la tâche et conserve le dernier
// événement pour les clients qui arrivent après coup
type RedisReporter struct {
	bus eventBus
}

func NewRedisReporter(client *redis.Client) *RedisReporter {
	return &RedisReporter{bus: client}
}

func (r *RedisReporter) Report(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encodage événement: %w", err)
	}

	if err := r.bus.SetWithPattern(ctx, redis.PatternTaskState, payload, ev.TaskID); err != nil {
		return fmt.Errorf("sauvegarde état tâche %s: %w", ev.TaskID, err)
	}
	if err := r.bus.PublishWithPattern(ctx, redis.PatternTaskProgress, payload, ev.TaskID); err != nil {
		return fmt.Errorf("publication avancement tâche %s: %w", ev.TaskID, err)
	}
	return nil
}

// DecodeEvent décode un événement publié par RedisReporter
func DecodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("événement invalide: %w", err)
	}
	return ev, nil
}
