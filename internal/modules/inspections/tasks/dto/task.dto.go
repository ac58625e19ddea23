package dto

import (
	"encoding/json"

	"fpm-inspections-core/internal/infrastructure/progress"
)

// TaskCreatedResponse réponse au lancement d'une consolidation en tâche de fond
type TaskCreatedResponse struct {
	TaskID    string          `json:"task_id"`
	Status    progress.Status `json:"status"`
	StatusURL string          `json:"status_url"`
	EventsURL string          `json:"events_url"`
}

// TaskStatusResponse dernier événement, et résultat une fois terminé
type TaskStatusResponse struct {
	Event  progress.Event  `json:"event"`
	Result json.RawMessage `json:"result,omitempty"`
}
