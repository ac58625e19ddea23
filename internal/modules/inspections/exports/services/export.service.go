package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/progress"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	etatDto "fpm-inspections-core/internal/modules/inspections/etat-synthetique/dto"
)

// ExportService - jeux de données d'export, plafonds de page d'export.
// Partagé par l'API et la CLI ; tracker peut être nil.
type ExportService struct {
	engine    *claimsServices.ConsolidationEngine
	generator *claimsServices.EtatSynthetiqueService
	reader    claimsServices.Reader
	limits    claimsDto.PageLimits
	labels    config.LabelOverrides
	logger    *zap.Logger
}

func NewExportService(
	engine *claimsServices.ConsolidationEngine,
	generator *claimsServices.EtatSynthetiqueService,
	reader claimsServices.Reader,
	cfg *config.Config,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		engine:    engine,
		generator: generator,
		reader:    reader,
		limits:    cfg.Reports.ExportLimits(),
		labels:    cfg.Reports.Overrides.Labels,
		logger:    logger.Named("exports"),
	}
}

// Consolidation - page d'export du mode consolidé
func (s *ExportService) Consolidation(ctx context.Context, req claimsDto.FilterRequest, tracker *progress.Tracker) (*Dataset, error) {
	spec, err := claimsServices.NewFilterSpec(req, s.limits)
	if err != nil {
		s.notify(tracker.Fail(ctx, 0, err))
		return nil, err
	}

	var page *claimsDto.ConsolidationPage
	step := progress.MilestoneCounting
	err = s.reader.Read(ctx, func(store claimsServices.ReportStore) error {
		s.notify(tracker.Milestone(ctx, step))
		groups, err := s.engine.Select(ctx, store, spec)
		if err != nil {
			return err
		}
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
		claimsServices.BuildConsolidationTable(page.Rows, spec.Columns), s.labels.Consolidation)
	rows := ConsolidationParquetRows(page.Rows, spec.Columns.MaskPhone)

	s.logger.Info("export consolidé préparé",
		zap.Int("lignes", len(page.Rows)),
		zap.Int("total", page.TotalCount),
		zap.Int("page", page.Page))

	return &Dataset{
		Name:    "consolidation",
		Table:   table,
		parquet: func(w io.Writer) error { return writeParquet(w, rows) },
	}, nil
}

// CountConsolidation - nombre de regroupements et de pages d'export pour un
// filtre, sans lire les bénéficiaires ni les totaux cumulés
func (s *ExportService) CountConsolidation(ctx context.Context, req claimsDto.FilterRequest) (*claimsDto.PaginationInfo, error) {
	spec, err := claimsServices.NewFilterSpec(req, s.limits)
	if err != nil {
		return nil, err
	}

	var total int
	err = s.reader.Read(ctx, func(store claimsServices.ReportStore) error {
		var err error
		total, err = s.engine.Count(ctx, store, spec)
		return err
	})
	if err != nil {
		return nil, err
	}

	info := claimsDto.NewPaginationInfo(spec.Page, spec.PageSize, total)
	return &info, nil
}

// EtatSynthetique - page d'export du mode par PEC
func (s *ExportService) EtatSynthetique(ctx context.Context, req etatDto.EtatSynthetiqueRequest, tracker *progress.Tracker) (*Dataset, error) {
	areq, err := claimsServices.NewAggregateRequest(req.DateDebut, req.DateFin, req.MontantMin, req.MontantMax, req.Page, req.PerPage, s.limits)
	if err != nil {
		s.notify(tracker.Fail(ctx, 0, err))
		return nil, err
	}

	var page *claimsDto.AggregatePage
	err = s.reader.Read(ctx, func(store claimsServices.ReportStore) error {
		s.notify(tracker.Milestone(ctx, progress.MilestoneCounting))
		var err error
		page, err = s.generator.Generate(ctx, store, areq)
		return err
	})
	if err != nil {
		s.notify(tracker.Fail(ctx, progress.MilestoneCounting, err))
		return nil, err
	}
	s.notify(tracker.Milestone(ctx, progress.MilestoneMetrics))

	table := claimsServices.ApplyLabelOverrides(
		claimsServices.BuildEtatSynthetiqueTable(page.Rows, req.MaskTelephone), s.labels.EtatSynthetique)
	rows := EtatSynthetiqueParquetRows(page.Rows, req.MaskTelephone)

	s.logger.Info("export état synthétique préparé",
		zap.Int("lignes", len(page.Rows)),
		zap.Int("total", page.TotalCount))

	return &Dataset{
		Name:    "etat_synthetique",
		Table:   table,
		parquet: func(w io.Writer) error { return writeParquet(w, rows) },
	}, nil
}

func (s *ExportService) notify(err error) {
	if err != nil {
		s.logger.Warn("publication avancement impossible", zap.Error(err))
	}
}
