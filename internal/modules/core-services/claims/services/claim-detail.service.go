package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// ClaimDetailResolver - vue facture d'un PEC, sans aucun filtre de ligne
type ClaimDetailResolver struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewClaimDetailResolver(logger *zap.Logger) *ClaimDetailResolver {
	return &ClaimDetailResolver{
		logger: logger.Named("claim_detail"),
		tracer: otel.Tracer(tracerName),
	}
}

// GetClaimDetail - toutes les sources pour le num_pec exact. Un PEC sans
// lignes donne un détail vide, pas une erreur.
func (r *ClaimDetailResolver) GetClaimDetail(ctx context.Context, store LineStore, claimID string) (*dto.ClaimDetail, error) {
	id, err := ValidateClaimID(claimID)
	if err != nil {
		return nil, err
	}

	ctx, span := r.tracer.Start(ctx, "claims.detail")
	defer span.End()

	lines, err := readLines(ctx, store, dto.AllSources().Enabled(), dto.LineScope{ClaimID: id})
	if err != nil {
		return nil, r.fail(span, err)
	}

	detail := &dto.ClaimDetail{
		ClaimID:    id,
		Rows:       GroupLines(lines, r.logger),
		GrandTotal: decimal.Zero,
	}
	if detail.IsEmpty() {
		return detail, nil
	}

	sortDetailRows(detail.Rows)

	for _, g := range detail.Rows {
		detail.GrandTotal = detail.GrandTotal.Add(g.AggregatedAmount)
	}

	transactionID, count := RepresentativeTransaction(lines)
	if count > 1 {
		warnMultipleTransactions(r.logger, id, count, transactionID)
	}

	if transactionID != "" {
		beneficiaries, err := store.Beneficiaries(ctx, []string{transactionID})
		if err != nil {
			return nil, r.fail(span, wrapStorage("beneficiaries", err))
		}
		if b, ok := beneficiaries[transactionID]; ok {
			detail.Beneficiary = &b
		}
	}

	for i := range detail.Rows {
		detail.Rows[i].ClaimGrandTotal = detail.GrandTotal
		if detail.Beneficiary != nil {
			detail.Rows[i].TransactionID = transactionID
			detail.Rows[i].Enrich(*detail.Beneficiary)
		}
	}

	return detail, nil
}

func (r *ClaimDetailResolver) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "detail")
	r.logger.Error("échec lecture détail PEC", zap.Error(err))
	return err
}
