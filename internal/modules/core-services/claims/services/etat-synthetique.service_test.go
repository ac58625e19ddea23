package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

func etatStore() *fakeStore {
	store := newFakeStore().add(
		actLine("C-1", "F1", "Consultation", 5000, 3, "2025-01-10"),
		actLine("C-2", "F1", "Consultation", 0, 1, "2025-01-10"),
		actLine("C-3", "F1", "Consultation", 10000, 1, "2025-01-10"),
		actLine("C-4", "F1", "Consultation", 20000, 1, "2025-01-10"),
		actLine("C-5", "F1", "Consultation", 12000, 1, "2025-01-10"),
	)
	for _, id := range []string{"C-5", "C-4", "C-3", "C-2", "C-1"} {
		store.headers = append(store.headers, dto.ClaimHeader{
			ClaimID:             id,
			StartedAt:           day("2025-01-10"),
			BeneficiaryFullName: str("DE SOUZA Marc Antoine"),
		})
	}
	store.headers = append(store.headers, dto.ClaimHeader{ClaimID: "C-OLD", StartedAt: day("2024-12-31")})
	return store
}

func aggregateRequest() dto.AggregateRequest {
	return dto.AggregateRequest{DateFrom: *day("2025-01-01"), DateTo: *day("2025-01-31"), Page: 1, PageSize: 50}
}

func TestGenerate_ZeroTotalNeverListed(t *testing.T) {
	svc := NewEtatSynthetiqueService(zap.NewNop())

	page, err := svc.Generate(context.Background(), etatStore(), aggregateRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, r := range page.Rows {
		if r.ClaimID == "C-2" {
			t.Fatal("claim with zero total must be excluded")
		}
	}
	if page.TotalCount != 4 {
		t.Errorf("total count = %d, want 4", page.TotalCount)
	}
	if page.Excluded.Eligible != 5 || page.Excluded.ZeroAmount != 1 || page.Excluded.OutOfRange != 0 {
		t.Errorf("unexpected exclusion stats %+v", page.Excluded)
	}
	if page.Rows[0].ClaimID != "C-1" || page.Rows[3].ClaimID != "C-5" {
		t.Errorf("rows not sorted by claim id: %s..%s", page.Rows[0].ClaimID, page.Rows[3].ClaimID)
	}
}

func TestGenerate_AmountBoundsAreStrict(t *testing.T) {
	req := aggregateRequest()
	req.AmountMin = dec(10000)
	req.AmountMax = dec(20000)

	svc := NewEtatSynthetiqueService(zap.NewNop())
	page, err := svc.Generate(context.Background(), etatStore(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var got []string
	for _, r := range page.Rows {
		got = append(got, r.ClaimID)
	}
	// C-3 = 10000 et C-4 = 20000 sont sur les bornes
	if len(got) != 2 || got[0] != "C-1" || got[1] != "C-5" {
		t.Errorf("retained = %v, want [C-1 C-5]", got)
	}
	if page.Excluded.OutOfRange != 2 {
		t.Errorf("out of range = %d, want 2", page.Excluded.OutOfRange)
	}
}

func TestGenerate_ZeroMinStillExcludesZeroTotal(t *testing.T) {
	req := aggregateRequest()
	req.AmountMin = dec(0)

	svc := NewEtatSynthetiqueService(zap.NewNop())
	page, err := svc.Generate(context.Background(), etatStore(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if page.Excluded.ZeroAmount != 1 || page.TotalCount != 4 {
		t.Errorf("got %+v total=%d", page.Excluded, page.TotalCount)
	}
}

func TestGenerate_SplitsNameAtFirstSpace(t *testing.T) {
	svc := NewEtatSynthetiqueService(zap.NewNop())
	page, err := svc.Generate(context.Background(), etatStore(), aggregateRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	r := page.Rows[0]
	if *r.BeneficiarySurname != "DE" || *r.BeneficiaryGivenNames != "SOUZA Marc Antoine" {
		t.Errorf("split = %q / %q", *r.BeneficiarySurname, *r.BeneficiaryGivenNames)
	}
	if !r.TotalExecutedAmount.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("C-1 total = %s, want 15000", r.TotalExecutedAmount)
	}
}

func TestGenerate_Paginates(t *testing.T) {
	req := aggregateRequest()
	req.Page, req.PageSize = 2, 3

	svc := NewEtatSynthetiqueService(zap.NewNop())
	page, err := svc.Generate(context.Background(), etatStore(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(page.Rows) != 1 || page.Rows[0].ClaimID != "C-5" || page.TotalPages != 2 {
		t.Errorf("unexpected page %+v", page)
	}
}
