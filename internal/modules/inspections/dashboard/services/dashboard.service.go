package services

import (
	"context"

	"go.uber.org/zap"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	analysesDto "fpm-inspections-core/internal/modules/inspections/analyses/dto"
	"fpm-inspections-core/internal/modules/inspections/dashboard/dto"
)

const recentOnDashboard = 5

// ReferenceReader données de référence côté PostgreSQL
type ReferenceReader interface {
	ActiveStructures(ctx context.Context) ([]claimsDto.Structure, error)
	CountClaimsToday(ctx context.Context) (int64, error)
}

// AnalysisHistory historique côté MongoDB
type AnalysisHistory interface {
	Recent(ctx context.Context, limit int) ([]analysesDto.Analysis, error)
	Count(ctx context.Context) (int64, error)
}

// DashboardService - compteurs d'accueil. L'historique est facultatif :
// son indisponibilité est signalée, pas remontée.
type DashboardService struct {
	reference ReferenceReader
	history   AnalysisHistory
	logger    *zap.Logger
}

func NewDashboardService(reference ReferenceReader, history AnalysisHistory, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		reference: reference,
		history:   history,
		logger:    logger.Named("dashboard"),
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	today, err := s.reference.CountClaimsToday(ctx)
	if err != nil {
		s.logger.Error("comptage PEC du jour échoué", zap.Error(err))
		return nil, err
	}

	resp := &dto.DashboardResponse{
		RecentAnalyses: []analysesDto.Analysis{},
		ClaimsToday:    today,
	}

	recent, err := s.history.Recent(ctx, recentOnDashboard)
	if err != nil {
		s.logger.Warn("historique des analyses indisponible", zap.Error(err))
		resp.HistoryUnavailable = true
		return resp, nil
	}
	resp.RecentAnalyses = recent

	total, err := s.history.Count(ctx)
	if err != nil {
		s.logger.Warn("comptage des analyses indisponible", zap.Error(err))
		resp.HistoryUnavailable = true
		return resp, nil
	}
	resp.TotalAnalyses = total
	return resp, nil
}

// Structures - structures actives pour le formulaire de filtres
func (s *DashboardService) Structures(ctx context.Context) ([]claimsDto.Structure, error) {
	return s.reference.ActiveStructures(ctx)
}
