package services

import (
	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// SummarizeGroups - métriques de la page retournée
func SummarizeGroups(rows []dto.ClaimLineGroup) dto.Metrics {
	claims := map[string]struct{}{}
	beneficiaries := map[string]struct{}{}
	total := decimal.Zero

	for _, r := range rows {
		claims[r.ClaimID] = struct{}{}
		if r.BeneficiaryID != nil && *r.BeneficiaryID != "" {
			beneficiaries[*r.BeneficiaryID] = struct{}{}
		}
		total = total.Add(r.AggregatedAmount)
	}

	return newMetrics(len(rows), len(claims), len(beneficiaries), total)
}

// SummarizeAggregates - idem pour le mode par PEC
func SummarizeAggregates(rows []dto.ClaimAggregate) dto.Metrics {
	claims := map[string]struct{}{}
	beneficiaries := map[string]struct{}{}
	total := decimal.Zero

	for _, r := range rows {
		claims[r.ClaimID] = struct{}{}
		if r.BeneficiaryID != nil && *r.BeneficiaryID != "" {
			beneficiaries[*r.BeneficiaryID] = struct{}{}
		}
		total = total.Add(r.TotalExecutedAmount)
	}

	return newMetrics(len(rows), len(claims), len(beneficiaries), total)
}

func newMetrics(rowCount, claims, beneficiaries int, total decimal.Decimal) dto.Metrics {
	avg := decimal.Zero
	if rowCount > 0 {
		avg = total.Div(decimal.NewFromInt(int64(rowCount))).Round(2)
	}
	return dto.Metrics{
		RowCount:              rowCount,
		DistinctClaims:        claims,
		DistinctBeneficiaries: beneficiaries,
		TotalAmount:           total,
		AverageAmount:         avg,
	}
}
