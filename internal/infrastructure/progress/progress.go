package progress

import (
	"context"
	"errors"
	"time"
)

// Status état d'une tâche de rapport
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Jalons d'avancement d'une consolidation
const (
	MilestoneQueued   = 0
	MilestoneCounting = 10
	MilestoneFetching = 40
	MilestoneMetrics  = 80
	MilestoneDone     = 100
)

var milestoneMessages = map[int]string{
	MilestoneQueued:   "queued",
	MilestoneCounting: "counting total claims",
	MilestoneFetching: "fetching detailed rows",
	MilestoneMetrics:  "computing metrics",
	MilestoneDone:     "done",
}

// MilestoneMessage message associé à un jalon, vide si inconnu
func MilestoneMessage(progress int) string {
	return milestoneMessages[progress]
}

// Event avancement d'une tâche, publié à chaque jalon
type Event struct {
	TaskID    string    `json:"task_id"`
	Progress  int       `json:"progress"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Terminal indique la fin de la tâche (succès ou erreur)
func (e Event) Terminal() bool {
	return e.Status == StatusCompleted || e.Status == StatusError
}

// Reporter reçoit les événements d'avancement
type Reporter interface {
	Report(ctx context.Context, event Event) error
}

// ReporterFunc adapte une fonction en Reporter
type ReporterFunc func(ctx context.Context, event Event) error

func (f ReporterFunc) Report(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Noop ignore les événements
type Noop struct{}

func (Noop) Report(context.Context, Event) error { return nil }

// Multi diffuse vers plusieurs reporters ; toutes les erreurs sont jointes
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

type multiReporter []Reporter

func (m multiReporter) Report(ctx context.Context, event Event) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Tracker suit une tâche et horodate ses événements. Un Tracker nil
// n'émet rien.
type Tracker struct {
	taskID   string
	reporter Reporter
	now      func() time.Time
}

func NewTracker(taskID string, reporter Reporter) *Tracker {
	if reporter == nil {
		reporter = Noop{}
	}
	return &Tracker{taskID: taskID, reporter: reporter, now: time.Now}
}

func (t *Tracker) TaskID() string {
	if t == nil {
		return ""
	}
	return t.taskID
}

// Milestone publie un jalon en cours d'exécution
func (t *Tracker) Milestone(ctx context.Context, progress int) error {
	return t.emit(ctx, Event{Progress: progress, Message: MilestoneMessage(progress), Status: StatusRunning})
}

// Complete publie le jalon final
func (t *Tracker) Complete(ctx context.Context) error {
	return t.emit(ctx, Event{Progress: MilestoneDone, Message: MilestoneMessage(MilestoneDone), Status: StatusCompleted})
}

// Fail publie l'échec ; l'avancement reste celui du dernier jalon connu
func (t *Tracker) Fail(ctx context.Context, progress int, cause error) error {
	ev := Event{Progress: progress, Message: "failed", Status: StatusError}
	if cause != nil {
		ev.Error = cause.Error()
	}
	return t.emit(ctx, ev)
}

func (t *Tracker) emit(ctx context.Context, ev Event) error {
	if t == nil {
		return nil
	}
	ev.TaskID = t.taskID
	ev.Timestamp = t.now().UTC()
	return t.reporter.Report(ctx, ev)
}
