package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/database/redis"
	"fpm-inspections-core/internal/infrastructure/progress"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	consolidationServices "fpm-inspections-core/internal/modules/inspections/consolidation/services"
	"fpm-inspections-core/internal/modules/inspections/tasks/dto"
)

const msgTaskID = "Identifiant de tâche invalide"

// TaskService - consolidations longues exécutées en tâche de fond. Pas
// d'annulation à la demande ; l'arrêt du serveur attend les tâches en cours.
type TaskService struct {
	report   *consolidationServices.ConsolidationReportService
	store    TaskStore
	reporter progress.Reporter
	timeout  time.Duration
	logger   *zap.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewTaskService(
	report *consolidationServices.ConsolidationReportService,
	client *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *TaskService {
	logger = logger.Named("tasks")
	reporter := progress.Multi(progress.NewRedisReporter(client), progress.NewLogReporter(logger))
	return NewTaskServiceWith(report, NewRedisTaskStore(client, logger), reporter, cfg.Reports.TaskTimeout, logger)
}

// NewTaskServiceWith construit le service sur un store et un reporter fournis
func NewTaskServiceWith(
	report *consolidationServices.ConsolidationReportService,
	store TaskStore,
	reporter progress.Reporter,
	timeout time.Duration,
	logger *zap.Logger,
) *TaskService {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskService{
		report:   report,
		store:    store,
		reporter: reporter,
		timeout:  timeout,
		logger:   logger,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Start valide la requête, publie l'état initial puis lance la tâche
func (s *TaskService) Start(ctx context.Context, req claimsDto.FilterRequest) (*dto.TaskCreatedResponse, error) {
	if err := s.report.Validate(req); err != nil {
		return nil, err
	}

	taskID := uuid.NewString()
	tracker := progress.NewTracker(taskID, s.reporter)

	// l'état initial existe avant la réponse : GET /tasks/:id ne renvoie jamais 404 juste après
	if err := tracker.Milestone(ctx, progress.MilestoneQueued); err != nil {
		return nil, claimsServices.NewStorageError("task_state", err)
	}

	s.wg.Add(1)
	go s.run(taskID, req, tracker)

	s.logger.Info("tâche lancée", zap.String("task_id", taskID))
	return &dto.TaskCreatedResponse{
		TaskID:    taskID,
		Status:    progress.StatusRunning,
		StatusURL: "/api/v1/inspections/tasks/" + taskID,
		EventsURL: "/api/v1/inspections/tasks/" + taskID + "/events",
	}, nil
}

func (s *TaskService) run(taskID string, req claimsDto.FilterRequest, tracker *progress.Tracker) {
	defer s.wg.Done()

	ctx := s.baseCtx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.report.Run(ctx, req, tracker)
	if err != nil {
		s.logger.Error("tâche échouée", zap.String("task_id", taskID), zap.Error(err))
		return
	}

	if err := s.store.SaveResult(ctx, taskID, result); err != nil {
		s.logger.Error("sauvegarde résultat impossible", zap.String("task_id", taskID), zap.Error(err))
		s.warn(tracker.Fail(ctx, progress.MilestoneMetrics, err))
		return
	}

	s.warn(tracker.Complete(ctx))
}

// Status dernier événement et, une fois terminée, le résultat
func (s *TaskService) Status(ctx context.Context, taskID string) (*dto.TaskStatusResponse, error) {
	ev, err := s.lastEvent(ctx, taskID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TaskStatusResponse{Event: *ev}
	if ev.Status == progress.StatusCompleted {
		result, err := s.store.Result(ctx, taskID)
		if err != nil {
			return nil, claimsServices.NewStorageError("task_result", err)
		}
		resp.Result = result
	}
	return resp, nil
}

// Subscribe abonnement puis lecture de l'état : aucun événement ne tombe entre les deux
func (s *TaskService) Subscribe(ctx context.Context, taskID string) (*progress.Event, *Subscription, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, nil, claimsServices.NewValidationError(map[string]string{"task_id": msgTaskID})
	}

	sub, err := s.store.Subscribe(ctx, taskID)
	if err != nil {
		return nil, nil, claimsServices.NewStorageError("task_subscribe", err)
	}

	ev, err := s.lastEvent(ctx, taskID)
	if err != nil {
		_ = sub.Close()
		return nil, nil, err
	}
	return ev, sub, nil
}

// Shutdown attend les tâches en cours jusqu'à l'échéance de ctx, puis les interrompt
func (s *TaskService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		s.logger.Warn("arrêt avant la fin des tâches en cours")
		return ctx.Err()
	}
}

func (s *TaskService) lastEvent(ctx context.Context, taskID string) (*progress.Event, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, claimsServices.NewValidationError(map[string]string{"task_id": msgTaskID})
	}

	ev, err := s.store.LastEvent(ctx, taskID)
	if err != nil {
		return nil, claimsServices.NewStorageError("task_state", err)
	}
	if ev == nil {
		return nil, claimsServices.NewNotFoundError("Tâche introuvable ou expirée", map[string]interface{}{"task_id": taskID})
	}
	return ev, nil
}

func (s *TaskService) warn(err error) {
	if err != nil {
		s.logger.Warn("publication avancement impossible", zap.Error(err))
	}
}
