package services

import (
	"context"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/progress"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	"fpm-inspections-core/internal/modules/inspections/consolidation/dto"
)

// ConsolidationReportService - page consolidée, métriques et SQL d'affichage.
// Utilisé en direct par l'API et en tâche de fond.
type ConsolidationReportService struct {
	engine *claimsServices.ConsolidationEngine
	reader claimsServices.Reader
	limits claimsDto.PageLimits
	labels map[string]string
	logger *zap.Logger
}

func NewConsolidationReportService(
	engine *claimsServices.ConsolidationEngine,
	reader claimsServices.Reader,
	cfg *config.Config,
	logger *zap.Logger,
) *ConsolidationReportService {
	return &ConsolidationReportService{
		engine: engine,
		reader: reader,
		limits: cfg.Reports.InteractiveLimits(),
		labels: cfg.Reports.Overrides.Labels.Consolidation,
		logger: logger.Named("consolidation_report"),
	}
}

// Validate contrôle la requête sans rien lire
func (s *ConsolidationReportService) Validate(req claimsDto.FilterRequest) error {
	_, err := claimsServices.NewFilterSpec(req, s.limits)
	return err
}

// Run publie les jalons 10, 40 et 80 sur tracker (peut être nil). Le jalon
// final revient à l'appelant, une fois le résultat rendu disponible.
func (s *ConsolidationReportService) Run(ctx context.Context, req claimsDto.FilterRequest, tracker *progress.Tracker) (*dto.ConsolidationResponse, error) {
	spec, err := claimsServices.NewFilterSpec(req, s.limits)
	if err != nil {
		s.notify(tracker.Fail(ctx, 0, err))
		return nil, err
	}

	step := progress.MilestoneCounting
	var page *claimsDto.ConsolidationPage

	err = s.reader.Read(ctx, func(store claimsServices.ReportStore) error {
		s.notify(tracker.Milestone(ctx, progress.MilestoneCounting))
		groups, err := s.engine.Select(ctx, store, spec)
		if err != nil {
			return err
		}
		s.logger.Debug("regroupements comptés", zap.Int("count", len(groups)))

		step = progress.MilestoneFetching
		s.notify(tracker.Milestone(ctx, step))
		page, err = s.engine.Page(ctx, store, groups, spec)
		return err
	})
	if err != nil {
		s.notify(tracker.Fail(ctx, step, err))
		return nil, err
	}

	s.notify(tracker.Milestone(ctx, progress.MilestoneMetrics))

	table := claimsServices.ApplyLabelOverrides(
		claimsServices.BuildConsolidationTable(nil, spec.Columns), s.labels)

	resp := &dto.ConsolidationResponse{
		Rows:         page.Rows,
		Columns:      table.Columns,
		ColumnLabels: table.Labels,
		Pagination:   claimsDto.NewPaginationInfo(page.Page, page.PageSize, page.TotalCount),
		Metrics:      claimsServices.SummarizeGroups(page.Rows),
	}
	if spec.ShowSQL {
		resp.SQL = claimsServices.DisplayConsolidationSQL(spec)
	}
	return resp, nil
}

func (s *ConsolidationReportService) notify(err error) {
	if err != nil {
		s.logger.Warn("publication avancement impossible", zap.Error(err))
	}
}
