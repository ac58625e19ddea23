package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// ClaimReportStore - entêtes et totaux, fournis par le même store
type ClaimReportStore interface {
	AggregateStore
	ClaimTotals(ctx context.Context, claimIDs []string) (map[string]decimal.Decimal, error)
}

// EtatSynthetiqueService - mode par PEC : une ligne par num_pec éligible
type EtatSynthetiqueService struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewEtatSynthetiqueService(logger *zap.Logger) *EtatSynthetiqueService {
	return &EtatSynthetiqueService{
		logger: logger.Named("etat_synthetique"),
		tracer: otel.Tracer(tracerName),
	}
}

// Generate - page triée par num_pec
func (s *EtatSynthetiqueService) Generate(ctx context.Context, store ClaimReportStore, req dto.AggregateRequest) (*dto.AggregatePage, error) {
	rows, stats, err := s.Aggregates(ctx, store, req)
	if err != nil {
		return nil, err
	}

	page := Paginate(rows, req.Page, req.PageSize)
	return &dto.AggregatePage{
		Rows:       page,
		TotalCount: len(rows),
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: TotalPages(len(rows), req.PageSize),
		Excluded:   stats,
	}, nil
}

// Aggregates - séquence complète : total ≤ 0 écarté d'abord, puis bornes
// strictes min < total < max
func (s *EtatSynthetiqueService) Aggregates(ctx context.Context, store ClaimReportStore, req dto.AggregateRequest) ([]dto.ClaimAggregate, dto.ExclusionStats, error) {
	ctx, span := s.tracer.Start(ctx, "claims.etat_synthetique")
	defer span.End()

	var stats dto.ExclusionStats

	headers, err := store.ClaimHeaders(ctx, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, stats, s.fail(span, wrapStorage("claim_headers", err))
	}
	stats.Eligible = len(headers)

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ClaimID
	}

	totals, err := store.ClaimTotals(ctx, ids)
	if err != nil {
		return nil, stats, s.fail(span, wrapStorage("claim_totals", err))
	}

	rows := make([]dto.ClaimAggregate, 0, len(headers))
	for _, h := range headers {
		total := totals[h.ClaimID]
		if !total.IsPositive() {
			stats.ZeroAmount++
			continue
		}
		if !withinStrict(total, req.AmountMin, req.AmountMax) {
			stats.OutOfRange++
			continue
		}
		rows = append(rows, newClaimAggregate(h, total))
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ClaimID < rows[j].ClaimID })

	span.SetAttributes(
		attribute.Int("claims.eligible", stats.Eligible),
		attribute.Int("claims.retained", len(rows)),
	)
	s.logger.Info("état synthétique calculé",
		zap.Int("eligibles", stats.Eligible),
		zap.Int("montant_nul", stats.ZeroAmount),
		zap.Int("hors_plage", stats.OutOfRange),
		zap.Int("retenus", len(rows)),
	)

	return rows, stats, nil
}

func withinStrict(total decimal.Decimal, lo, hi *decimal.Decimal) bool {
	if lo != nil && !total.GreaterThan(*lo) {
		return false
	}
	if hi != nil && !total.LessThan(*hi) {
		return false
	}
	return true
}

func newClaimAggregate(h dto.ClaimHeader, total decimal.Decimal) dto.ClaimAggregate {
	agg := dto.ClaimAggregate{
		ClaimID:               h.ClaimID,
		TotalExecutedAmount:   total,
		ServiceTypeLabel:      h.ServiceTypeLabel,
		QualifyingStatusLabel: h.QualifyingStatusLabel,
		InitiatingFacility:    h.InitiatingFacility,
		ProposingFacility:     h.ProposingFacility,
		ExecutingFacility:     h.ExecutingFacility,
		OriginFacility:        h.OriginFacility,
		InitiatingStaff:       h.InitiatingStaff,
		InitiatingStaffPhone:  h.InitiatingStaffPhone,
		ExecutingStaff:        h.ExecutingStaff,
		ExecutingStaffPhone:   h.ExecutingStaffPhone,
		RequestedAt:           h.RequestedAt,
		StartedAt:             h.StartedAt,
		EndedAt:               h.EndedAt,
		AcknowledgedAt:        h.AcknowledgedAt,
		ValidationKey:         h.ValidationKey,
		HospitalizationDays:   h.HospitalizationDays,
		BeneficiaryID:         h.BeneficiaryID,
		BeneficiaryBirthDate:  h.BeneficiaryBirthDate,
		BeneficiaryPhone:      h.BeneficiaryPhone,
		BeneficiarySex:        h.BeneficiarySex,
	}

	if h.BeneficiaryFullName != nil && *h.BeneficiaryFullName != "" {
		surname, given := SplitFullName(*h.BeneficiaryFullName)
		agg.BeneficiarySurname = &surname
		if given != "" {
			agg.BeneficiaryGivenNames = &given
		}
	}
	return agg
}

func (s *EtatSynthetiqueService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "etat_synthetique")
	s.logger.Error("échec génération état synthétique", zap.Error(err))
	return err
}
