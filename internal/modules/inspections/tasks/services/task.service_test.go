package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/progress"
	"fpm-inspections-core/internal/modules/core-services/claims/claimstest"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	consolidationServices "fpm-inspections-core/internal/modules/inspections/consolidation/services"
)

func newTaskService(store *claimstest.MemoryStore) (*TaskService, *memoryTasks) {
	cfg := &config.Config{Reports: config.ReportsConfig{PageSizeDefault: 50, PageSizeMax: 500}}
	report := consolidationServices.NewConsolidationReportService(
		claimsServices.NewConsolidationEngine(zap.NewNop()),
		claimstest.Runner{Store: store},
		cfg,
		zap.NewNop(),
	)
	tasks := newMemoryTasks()
	return NewTaskServiceWith(report, tasks, tasks, time.Minute, zap.NewNop()), tasks
}

func waitIdle(t *testing.T, s *TaskService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("tasks did not finish: %v", err)
	}
}

func TestTask_CompletesWithResult(t *testing.T) {
	store := claimstest.NewMemoryStore().Add(
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 1, "2025-01-10"),
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 2, "2025-01-12"),
	)
	svc, _ := newTaskService(store)
	ctx := context.Background()

	created, err := svc.Start(ctx, claimsDto.FilterRequest{DateDebut: "2025-01-01", DateFin: "2025-01-31"})
	if err != nil {
		t.Fatal(err)
	}
	waitIdle(t, svc)

	status, err := svc.Status(ctx, created.TaskID)
	if err != nil {
		t.Fatal(err)
	}
	if status.Event.Status != progress.StatusCompleted || status.Event.Progress != 100 {
		t.Errorf("event = %+v", status.Event)
	}

	var result struct {
		Rows []struct {
			NbLignes int64 `json:"nb_lignes"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(status.Result, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 1 || result.Rows[0].NbLignes != 3 {
		t.Errorf("result = %s", status.Result)
	}
}

func TestTask_StartRejectsInvalidRequest(t *testing.T) {
	svc, tasks := newTaskService(claimstest.NewMemoryStore())
	_, err := svc.Start(context.Background(), claimsDto.FilterRequest{DateDebut: "2025-02-01", DateFin: "2025-01-01"})
	if !claimsServices.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(tasks.last) != 0 {
		t.Error("a task was registered for an invalid request")
	}
}

func TestTask_StatusErrors(t *testing.T) {
	svc, _ := newTaskService(claimstest.NewMemoryStore())

	if _, err := svc.Status(context.Background(), "pas-un-uuid"); !claimsServices.IsValidation(err) {
		t.Errorf("malformed id: %v", err)
	}
	if _, err := svc.Status(context.Background(), "8f14e45f-ceea-467a-9575-3c1d1f0e2b3a"); !claimsServices.IsNotFound(err) {
		t.Errorf("unknown id: %v", err)
	}
}

func TestTask_FailureIsTerminal(t *testing.T) {
	store := claimstest.NewMemoryStore()
	store.Err = context.DeadlineExceeded
	svc, _ := newTaskService(store)

	created, err := svc.Start(context.Background(), claimsDto.FilterRequest{DateDebut: "2025-01-01", DateFin: "2025-01-31"})
	if err != nil {
		t.Fatal(err)
	}
	waitIdle(t, svc)

	status, err := svc.Status(context.Background(), created.TaskID)
	if err != nil {
		t.Fatal(err)
	}
	if status.Event.Status != progress.StatusError || status.Result != nil {
		t.Errorf("status = %+v", status)
	}
}
