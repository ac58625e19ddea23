package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	analysesDto "fpm-inspections-core/internal/modules/inspections/analyses/dto"
)

type fakeReference struct {
	today int64
	err   error
}

func (f fakeReference) ActiveStructures(context.Context) ([]claimsDto.Structure, error) {
	return []claimsDto.Structure{{ID: "2", Name: "Clinique Sainte Anne"}, {ID: "1", Name: "CHU de Cocody"}}, f.err
}

func (f fakeReference) CountClaimsToday(context.Context) (int64, error) { return f.today, f.err }

type fakeHistory struct {
	recent    []analysesDto.Analysis
	err       error
	lastLimit int
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]analysesDto.Analysis, error) {
	f.lastLimit = limit
	return f.recent, f.err
}

func (f *fakeHistory) Count(context.Context) (int64, error) { return 12, f.err }

func TestSummary(t *testing.T) {
	history := &fakeHistory{recent: []analysesDto.Analysis{{Intitule: "a"}}}
	got, err := NewDashboardService(fakeReference{today: 4}, history, zap.NewNop()).Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.ClaimsToday != 4 || got.TotalAnalyses != 12 || len(got.RecentAnalyses) != 1 || got.HistoryUnavailable {
		t.Errorf("summary = %+v", got)
	}
	if history.lastLimit != 5 {
		t.Errorf("recent limit = %d", history.lastLimit)
	}
}

func TestSummary_HistoryDownIsNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	history := &fakeHistory{err: claimsServices.NewStorageError("recent_analyses", errors.New("mongo down"))}

	got, err := NewDashboardService(fakeReference{today: 2}, history, zap.New(core)).Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !got.HistoryUnavailable || got.ClaimsToday != 2 || got.RecentAnalyses == nil {
		t.Errorf("summary = %+v", got)
	}
	if logs.FilterMessage("historique des analyses indisponible").Len() != 1 {
		t.Error("warning not logged")
	}
}

func TestSummary_PostgresFailure(t *testing.T) {
	ref := fakeReference{err: claimsServices.NewStorageError("count_claims_today", errors.New("pg down"))}
	if _, err := NewDashboardService(ref, &fakeHistory{}, zap.NewNop()).Summary(context.Background()); !claimsServices.IsStorage(err) {
		t.Errorf("got %v", err)
	}
}
