package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/modules/core-services/claims/claimstest"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
)

type memoryCache struct {
	items  map[string]*claimsDto.ClaimDetail
	getErr error
	sets   int
}

func (c *memoryCache) Get(_ context.Context, id string) (*claimsDto.ClaimDetail, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items[id], nil
}

func (c *memoryCache) Set(_ context.Context, d *claimsDto.ClaimDetail) error {
	c.sets++
	c.items[d.ClaimID] = d
	return nil
}

func newDetailService(store *claimstest.MemoryStore, cache DetailCache) *ClaimDetailService {
	return NewClaimDetailService(
		claimsServices.NewClaimDetailResolver(zap.NewNop()),
		claimstest.Runner{Store: store},
		cache,
		zap.NewNop(),
	)
}

func demoStore() *claimstest.MemoryStore {
	return claimstest.NewMemoryStore().Add(
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 1, "2025-01-10"),
		claimstest.ActeLine("C-1", "1001", "Consultation", 5000, 2, "2025-01-12"),
	)
}

func TestGet_CachesNonEmptyDetail(t *testing.T) {
	store := demoStore()
	cache := &memoryCache{items: map[string]*claimsDto.ClaimDetail{}}
	svc := newDetailService(store, cache)

	detail, err := svc.Get(context.Background(), "C-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !detail.GrandTotal.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("grand total = %s", detail.GrandTotal)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	store.Err = errors.New("base indisponible")
	again, err := svc.Get(context.Background(), " C-1 ")
	if err != nil {
		t.Fatalf("second Get should be served from cache: %v", err)
	}
	if again != detail {
		t.Error("cached detail not returned")
	}
}

func TestGet_UnknownClaimNotCached(t *testing.T) {
	cache := &memoryCache{items: map[string]*claimsDto.ClaimDetail{}}
	detail, err := newDetailService(demoStore(), cache).Get(context.Background(), "C-404")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !detail.IsEmpty() || cache.sets != 0 {
		t.Errorf("detail = %+v, sets = %d", detail, cache.sets)
	}
}

func TestGet_CacheFailureFallsBackToStore(t *testing.T) {
	cache := &memoryCache{items: map[string]*claimsDto.ClaimDetail{}, getErr: errors.New("redis down")}
	detail, err := newDetailService(demoStore(), cache).Get(context.Background(), "C-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Rows) != 1 {
		t.Errorf("rows = %d", len(detail.Rows))
	}
}

func TestGet_Errors(t *testing.T) {
	if _, err := newDetailService(demoStore(), nil).Get(context.Background(), "  "); !claimsServices.IsValidation(err) {
		t.Errorf("blank id: got %v", err)
	}

	store := demoStore()
	store.Err = errors.New("connexion perdue")
	if _, err := newDetailService(store, nil).Get(context.Background(), "C-1"); !claimsServices.IsStorage(err) {
		t.Errorf("storage failure: got %v", err)
	}
}
