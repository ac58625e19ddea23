package services

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// groupKey identité de regroupement. Le montant unitaire est comparé par
// valeur (5000 et 5000.00 fusionnent).
type groupKey struct {
	claimID    string
	facilityID string
	source     dto.SourceKind
	label      string
	unitAmount string
}

type groupAccumulator struct {
	group        dto.ClaimLineGroup
	transactions map[string]struct{}
}

// GroupLines - regroupe par (num_pec, structure, source, libellé, montant unitaire).
// Les quantités sont sommées ; la transaction représentative est la plus grande.
func GroupLines(lines []dto.BillingLine, logger *zap.Logger) []dto.ClaimLineGroup {
	index := make(map[groupKey]int, len(lines))
	accs := make([]*groupAccumulator, 0, len(lines))

	for _, line := range lines {
		unit := line.UnitAmountOrZero()
		key := groupKey{
			claimID:    line.ClaimID,
			facilityID: line.FacilityID,
			source:     line.Source,
			label:      line.Label,
			unitAmount: unit.String(),
		}

		i, ok := index[key]
		if !ok {
			i = len(accs)
			index[key] = i
			accs = append(accs, &groupAccumulator{
				group: dto.ClaimLineGroup{
					ClaimID:      line.ClaimID,
					FacilityID:   line.FacilityID,
					FacilityName: line.FacilityName,
					Source:       line.Source,
					Label:        line.Label,
					UnitAmount:   unit,
				},
				transactions: map[string]struct{}{},
			})
		}

		acc := accs[i]
		g := &acc.group
		g.AggregatedQuantity += line.QuantityOrOne()
		g.AggregatedAmount = g.AggregatedAmount.Add(line.LineTotal())
		g.EarliestExecutionDate = minTime(g.EarliestExecutionDate, line.ExecutionDate)
		g.LatestExecutionDate = maxTime(g.LatestExecutionDate, line.ExecutionDate)

		if line.TransactionID != "" {
			acc.transactions[line.TransactionID] = struct{}{}
			if g.TransactionID == "" || compareTransactionIDs(line.TransactionID, g.TransactionID) > 0 {
				g.TransactionID = line.TransactionID
			}
		}
	}

	groups := make([]dto.ClaimLineGroup, len(accs))
	for i, acc := range accs {
		acc.group.TransactionCount = len(acc.transactions)
		if acc.group.TransactionCount > 1 {
			warnMultipleTransactions(logger, acc.group.ClaimID, acc.group.TransactionCount, acc.group.TransactionID)
		}
		groups[i] = acc.group
	}
	return groups
}

// RepresentativeTransaction - plus grande transaction parmi les lignes, et
// nombre de transactions distinctes
func RepresentativeTransaction(lines []dto.BillingLine) (string, int) {
	seen := map[string]struct{}{}
	chosen := ""
	for _, l := range lines {
		if l.TransactionID == "" {
			continue
		}
		seen[l.TransactionID] = struct{}{}
		if chosen == "" || compareTransactionIDs(l.TransactionID, chosen) > 0 {
			chosen = l.TransactionID
		}
	}
	return chosen, len(seen)
}

func warnMultipleTransactions(logger *zap.Logger, claimID string, count int, chosen string) {
	logger.Warn("plusieurs transactions pour un même PEC, transaction maximale retenue",
		zap.String("num_pec", claimID),
		zap.Int("transactions", count),
		zap.String("num_trans_retenu", chosen),
	)
}

// compareTransactionIDs : numérique si les deux ids sont entiers, lexical sinon
func compareTransactionIDs(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return compareInts(ai, bi)
	}
	return compareStrings(a, b)
}

func distinctClaimIDs(groups []dto.ClaimLineGroup) []string {
	seen := make(map[string]struct{}, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := seen[g.ClaimID]; ok {
			continue
		}
		seen[g.ClaimID] = struct{}{}
		ids = append(ids, g.ClaimID)
	}
	return ids
}

func distinctTransactionIDs(groups []dto.ClaimLineGroup) []string {
	seen := make(map[string]struct{}, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		if g.TransactionID == "" {
			continue
		}
		if _, ok := seen[g.TransactionID]; ok {
			continue
		}
		seen[g.TransactionID] = struct{}{}
		ids = append(ids, g.TransactionID)
	}
	return ids
}

// minTime ignore les dates absentes
func minTime(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		t := *candidate
		return &t
	}
	return current
}

func maxTime(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.After(*current) {
		t := *candidate
		return &t
	}
	return current
}
