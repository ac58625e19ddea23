package services

import (
	"context"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	"fpm-inspections-core/internal/modules/inspections/etat-synthetique/dto"
)

type EtatSynthetiqueReportService struct {
	generator *claimsServices.EtatSynthetiqueService
	reader    claimsServices.Reader
	limits    claimsDto.PageLimits
	labels    map[string]string
	logger    *zap.Logger
}

func NewEtatSynthetiqueReportService(
	generator *claimsServices.EtatSynthetiqueService,
	reader claimsServices.Reader,
	cfg *config.Config,
	logger *zap.Logger,
) *EtatSynthetiqueReportService {
	return &EtatSynthetiqueReportService{
		generator: generator,
		reader:    reader,
		limits:    cfg.Reports.InteractiveLimits(),
		labels:    cfg.Reports.Overrides.Labels.EtatSynthetique,
		logger:    logger.Named("etat_synthetique_report"),
	}
}

// Run page de l'état synthétique, mise en forme comme l'export
func (s *EtatSynthetiqueReportService) Run(ctx context.Context, req dto.EtatSynthetiqueRequest) (*dto.EtatSynthetiqueResponse, error) {
	areq, err := claimsServices.NewAggregateRequest(req.DateDebut, req.DateFin, req.MontantMin, req.MontantMax, req.Page, req.PerPage, s.limits)
	if err != nil {
		return nil, err
	}

	var page *claimsDto.AggregatePage
	err = s.reader.Read(ctx, func(store claimsServices.ReportStore) error {
		var err error
		page, err = s.generator.Generate(ctx, store, areq)
		return err
	})
	if err != nil {
		return nil, err
	}

	table := claimsServices.ApplyLabelOverrides(
		claimsServices.BuildEtatSynthetiqueTable(page.Rows, req.MaskTelephone), s.labels)

	return &dto.EtatSynthetiqueResponse{
		Rows:         table.Rows,
		Columns:      table.Columns,
		ColumnLabels: table.Labels,
		Pagination:   claimsDto.NewPaginationInfo(page.Page, page.PageSize, page.TotalCount),
		Metrics:      claimsServices.SummarizeAggregates(page.Rows),
		Exclusions:   page.Excluded,
	}, nil
}
