// Package claimstest fournit un store en mémoire pour tester les couches
// qui consomment le core service claims sans base de données.
package claimstest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
	"fpm-inspections-core/internal/modules/core-services/claims/services"
)

// MemoryStore applique les portées de lecture en mémoire
type MemoryStore struct {
	Rows    []dto.BillingLine
	People  map[string]dto.Beneficiary
	Headers []dto.ClaimHeader
	Err     error

	mu        sync.Mutex
	lineReads int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{People: map[string]dto.Beneficiary{}}
}

// Add ajoute des lignes facturables
func (m *MemoryStore) Add(lines ...dto.BillingLine) *MemoryStore {
	m.Rows = append(m.Rows, lines...)
	return m
}

// LineReads nombre d'appels à Lines depuis la création du store
func (m *MemoryStore) LineReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lineReads
}

func (m *MemoryStore) Lines(_ context.Context, kind dto.SourceKind, scope dto.LineScope) ([]dto.BillingLine, error) {
	m.mu.Lock()
	m.lineReads++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []dto.BillingLine{}
	for _, l := range m.Rows {
		if l.Source == kind && inScope(l, scope) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *MemoryStore) ClaimTotals(_ context.Context, claimIDs []string) (map[string]decimal.Decimal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[string]bool, len(claimIDs))
	for _, id := range claimIDs {
		wanted[id] = true
	}
	totals := map[string]decimal.Decimal{}
	for _, l := range m.Rows {
		if wanted[l.ClaimID] {
			totals[l.ClaimID] = totals[l.ClaimID].Add(l.LineTotal())
		}
	}
	return totals, nil
}

func (m *MemoryStore) Beneficiaries(_ context.Context, ids []string) (map[string]dto.Beneficiary, error) {
	out := map[string]dto.Beneficiary{}
	for _, id := range ids {
		if b, ok := m.People[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

func (m *MemoryStore) ClaimHeaders(_ context.Context, from, to time.Time) ([]dto.ClaimHeader, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []dto.ClaimHeader{}
	for _, h := range m.Headers {
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

// Runner exécute les lectures directement sur le store
type Runner struct {
	Store services.ReportStore
}

func (r Runner) Read(_ context.Context, fn services.ReadFunc) error {
	return fn(r.Store)
}

func inScope(l dto.BillingLine, s dto.LineScope) bool {
	if s.DateFrom != nil || s.DateTo != nil {
		if l.ExecutionDate == nil {
			return false
		}
		d := l.ExecutionDate.Truncate(24 * time.Hour)
		if (s.DateFrom != nil && d.Before(*s.DateFrom)) || (s.DateTo != nil && d.After(*s.DateTo)) {
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
		needle := strings.TrimSuffix(strings.TrimPrefix(s.ClaimPattern, "%"), "%")
		needle = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(needle)
		if !strings.Contains(strings.ToLower(l.ClaimID), strings.ToLower(needle)) {
			return false
		}
	}
	if len(s.FacilityIDs) > 0 {
		found := false
		for _, id := range s.FacilityIDs {
			found = found || id == l.FacilityID
		}
		if !found {
			return false
		}
	}
	return true
}

// Day date au format AAAA-MM-JJ, panique si invalide
func Day(s string) *time.Time {
	t, err := time.Parse(services.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// ActeLine ligne d'acte de la structure "1"
func ActeLine(claim, transaction, label string, unit, quantity int64, date string) dto.BillingLine {
	q := quantity
	return dto.BillingLine{
		ClaimID:       claim,
		FacilityID:    "1",
		FacilityName:  "CHU de Cocody",
		TransactionID: transaction,
		Source:        dto.SourceActe,
		Label:         label,
		ExecutionDate: Day(date),
		UnitAmount:    decimal.NewNullDecimal(decimal.NewFromInt(unit)),
		Quantity:      &q,
	}
}
