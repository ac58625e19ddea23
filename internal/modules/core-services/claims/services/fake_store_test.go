package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// fakeStore applique les portées en mémoire comme le ferait la base
type fakeStore struct {
	lines         map[dto.SourceKind][]dto.BillingLine
	beneficiaries map[string]dto.Beneficiary
	headers       []dto.ClaimHeader

	linesErr  error
	totalsErr error

	concurrent bool
	inFlight   atomic.Int32
	maxFlight  atomic.Int32

	mu     sync.Mutex
	scopes []dto.LineScope
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lines:         map[dto.SourceKind][]dto.BillingLine{},
		beneficiaries: map[string]dto.Beneficiary{},
		concurrent:    true,
	}
}

func (f *fakeStore) add(lines ...dto.BillingLine) *fakeStore {
	for _, l := range lines {
		f.lines[l.Source] = append(f.lines[l.Source], l)
	}
	return f
}

func (f *fakeStore) ConcurrentReads() bool { return f.concurrent }

func (f *fakeStore) Lines(_ context.Context, kind dto.SourceKind, scope dto.LineScope) ([]dto.BillingLine, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxFlight.Load()
		if n <= m || f.maxFlight.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.scopes = append(f.scopes, scope)
	f.mu.Unlock()

	if f.linesErr != nil {
		return nil, f.linesErr
	}

	out := []dto.BillingLine{}
	for _, l := range f.lines[kind] {
		if matchesScope(l, scope) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) ClaimTotals(_ context.Context, claimIDs []string) (map[string]decimal.Decimal, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	wanted := map[string]bool{}
	for _, id := range claimIDs {
		wanted[id] = true
	}
	totals := map[string]decimal.Decimal{}
	for _, kind := range dto.AllSourceKinds {
		for _, l := range f.lines[kind] {
			if wanted[l.ClaimID] {
				totals[l.ClaimID] = totals[l.ClaimID].Add(l.LineTotal())
			}
		}
	}
	return totals, nil
}

func (f *fakeStore) Beneficiaries(_ context.Context, ids []string) (map[string]dto.Beneficiary, error) {
	out := map[string]dto.Beneficiary{}
	for _, id := range ids {
		if b, ok := f.beneficiaries[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

func (f *fakeStore) ClaimHeaders(_ context.Context, from, to time.Time) ([]dto.ClaimHeader, error) {
	out := []dto.ClaimHeader{}
	for _, h := range f.headers {
		if h.StartedAt == nil {
			continue
		}
		d := h.StartedAt.Truncate(24 * time.Hour)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func matchesScope(l dto.BillingLine, s dto.LineScope) bool {
	if s.DateFrom != nil || s.DateTo != nil {
		if l.ExecutionDate == nil {
			return false
		}
		d := l.ExecutionDate.Truncate(24 * time.Hour)
		if s.DateFrom != nil && d.Before(*s.DateFrom) {
			return false
		}
		if s.DateTo != nil && d.After(*s.DateTo) {
			return false
		}
	}
	// montant NULL compté comme 0, comme COALESCE côté SQL
	unit := decimal.Zero
	if l.UnitAmount.Valid {
		unit = l.UnitAmount.Decimal
	}
	if s.AmountMin != nil && unit.LessThan(*s.AmountMin) {
		return false
	}
	if s.AmountMax != nil && unit.GreaterThan(*s.AmountMax) {
		return false
	}
	if s.ClaimID != "" && l.ClaimID != s.ClaimID {
		return false
	}
	if s.ClaimPattern != "" {
		needle := unescapeLike(strings.TrimSuffix(strings.TrimPrefix(s.ClaimPattern, "%"), "%"))
		if !strings.Contains(strings.ToLower(l.ClaimID), strings.ToLower(needle)) {
			return false
		}
	}
	if len(s.FacilityIDs) > 0 {
		found := false
		for _, id := range s.FacilityIDs {
			if id == l.FacilityID {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func unescapeLike(s string) string {
	return strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(s)
}

// ---------- helpers ----------

func day(s string) *time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func amount(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func qty(n int64) *int64 { return &n }

func str(s string) *string { return &s }

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func actLine(claim, facility, label string, unit int64, quantity int64, date string) dto.BillingLine {
	return dto.BillingLine{
		ClaimID:       claim,
		FacilityID:    facility,
		FacilityName:  "Structure " + facility,
		TransactionID: "100",
		Label:         label,
		ExecutionDate: day(date),
		UnitAmount:    amount(unit),
		Quantity:      qty(quantity),
		Source:        dto.SourceActe,
	}
}

func filterFor(from, to string) dto.FilterSpec {
	return dto.FilterSpec{
		DateFrom: *day(from),
		DateTo:   *day(to),
		Sources:  dto.SourceToggles{Acte: true, Rubrique: true},
		Page:     1,
		PageSize: 50,
	}
}
