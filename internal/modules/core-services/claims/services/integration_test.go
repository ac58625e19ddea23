package services_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"go.uber.org/zap"

	"fpm-inspections-core/internal/app/config"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/infrastructure/database/seeds"
	"fpm-inspections-core/internal/modules/core-services/claims/dto"
	"fpm-inspections-core/internal/modules/core-services/claims/services"
)

const (
	testPort     = 15433
	testDB       = "inspections_test"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	pgClient  *postgres.Client
	txManager *postgres.TransactionManager
)

// Base embarquée chargée avec le jeu de démonstration, démarrée seulement avec
// INSPECTIONS_PG_INTEGRATION=1 (téléchargement des binaires PostgreSQL).
// Les tests unitaires du paquet tournent dans tous les cas.
func TestMain(m *testing.M) {
	if os.Getenv("INSPECTIONS_PG_INTEGRATION") != "1" {
		os.Exit(m.Run())
	}

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := run(m)

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

func run(m *testing.M) int {
	var err error
	pgClient, err = postgres.NewClient(&postgres.DatabaseConfig{
		Host:     "localhost",
		Port:     testPort,
		Database: testDB,
		Username: testUser,
		Password: testPassword,
		SSLMode:  "disable",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		return 1
	}
	defer pgClient.Close()

	txManager = postgres.NewTransactionManager(pgClient, zap.NewNop())

	ctx := context.Background()
	seeder := seeds.NewSeedingService(pgClient, txManager, &config.Config{Environment: "development"}, zap.NewNop())
	if err := seeder.ApplySchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply schema: %v\n", err)
		return 1
	}
	if err := seeder.SeedDemo(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed demo data: %v\n", err)
		return 1
	}

	return m.Run()
}

func runners(t *testing.T) map[string]*services.ReadRunner {
	t.Helper()
	if pgClient == nil {
		t.Skip("INSPECTIONS_PG_INTEGRATION != 1")
	}
	return map[string]*services.ReadRunner{
		"pool":    services.NewReadRunner(pgClient, txManager, true),
		"session": services.NewReadRunner(pgClient, txManager, false),
	}
}

func january(t *testing.T) dto.FilterSpec {
	t.Helper()
	spec, err := services.NewFilterSpec(dto.FilterRequest{
		DateDebut: "2025-01-01",
		DateFin:   "2025-01-31",
	}, dto.PageLimits{Default: 50, Max: 500})
	if err != nil {
		t.Fatalf("NewFilterSpec: %v", err)
	}
	return spec
}

func findGroup(groups []dto.ClaimLineGroup, claimID, label string) *dto.ClaimLineGroup {
	for i := range groups {
		if groups[i].ClaimID == claimID && groups[i].Label == label {
			return &groups[i]
		}
	}
	return nil
}

func TestIntegration_Consolidation(t *testing.T) {
	engine := services.NewConsolidationEngine(zap.NewNop())
	spec := january(t)

	for name, runner := range runners(t) {
		t.Run(name, func(t *testing.T) {
			var groups []dto.ClaimLineGroup
			err := runner.Read(context.Background(), func(store services.ReportStore) error {
				page, err := engine.Consolidate(context.Background(), store, spec)
				if err != nil {
					return err
				}
				groups = page.Rows
				return nil
			})
			if err != nil {
				t.Fatalf("Consolidate: %v", err)
			}

			c1 := findGroup(groups, "C-1", "Consultation")
			if c1 == nil {
				t.Fatalf("C-1 Consultation absent: %+v", groups)
			}
			if c1.AggregatedQuantity != 3 || c1.AggregatedAmount.String() != "15000" {
				t.Errorf("C-1 = qty %d amount %s, want 3 / 15000", c1.AggregatedQuantity, c1.AggregatedAmount)
			}
			if c1.FacilityName != "CHU de Cocody" {
				t.Errorf("C-1 facility = %q", c1.FacilityName)
			}
			if c1.FullName == nil || *c1.FullName != "KOUASSI Jean" {
				t.Errorf("C-1 beneficiary = %v", c1.FullName)
			}

			c4 := findGroup(groups, "C-4", "Radiographie thoracique")
			if c4 == nil {
				t.Fatalf("C-4 absent: %+v", groups)
			}
			if c4.TransactionID != "1005" {
				t.Errorf("C-4 transaction = %q, want the highest id 1005", c4.TransactionID)
			}
			if c4.AggregatedAmount.String() != "24000" {
				t.Errorf("C-4 amount = %s, want 24000", c4.AggregatedAmount)
			}

			if g := findGroup(groups, "C-3", "Paracétamol 500mg"); g != nil {
				t.Errorf("pharmacy line returned while the source is disabled: %+v", g)
			}
		})
	}
}

func TestIntegration_EtatSynthetique(t *testing.T) {
	svc := services.NewEtatSynthetiqueService(zap.NewNop())
	req, err := services.NewAggregateRequest("2025-01-01", "2025-01-31", nil, nil, 1, 50, dto.PageLimits{Default: 50, Max: 500})
	if err != nil {
		t.Fatalf("NewAggregateRequest: %v", err)
	}

	for name, runner := range runners(t) {
		t.Run(name, func(t *testing.T) {
			var (
				aggs  []dto.ClaimAggregate
				stats dto.ExclusionStats
			)
			err := runner.Read(context.Background(), func(store services.ReportStore) error {
				var err error
				aggs, stats, err = svc.Aggregates(context.Background(), store, req)
				return err
			})
			if err != nil {
				t.Fatalf("Aggregates: %v", err)
			}

			if stats.Eligible != 4 || stats.ZeroAmount != 1 {
				t.Errorf("stats = %+v, want 4 eligible / 1 zero", stats)
			}

			want := map[string]string{"C-1": "15000", "C-3": "69000", "C-4": "24000"}
			if len(aggs) != len(want) {
				t.Fatalf("got %d rows, want %d", len(aggs), len(want))
			}
			for _, a := range aggs {
				if a.ClaimID == "C-2" {
					t.Errorf("C-2 has a zero total and must be excluded")
				}
				if w, ok := want[a.ClaimID]; ok && a.TotalExecutedAmount.String() != w {
					t.Errorf("%s total = %s, want %s", a.ClaimID, a.TotalExecutedAmount, w)
				}
			}
		})
	}
}

func TestIntegration_ClaimDetail(t *testing.T) {
	resolver := services.NewClaimDetailResolver(zap.NewNop())

	for name, runner := range runners(t) {
		t.Run(name, func(t *testing.T) {
			var detail *dto.ClaimDetail
			err := runner.Read(context.Background(), func(store services.ReportStore) error {
				var err error
				detail, err = resolver.GetClaimDetail(context.Background(), store, "C-3")
				return err
			})
			if err != nil {
				t.Fatalf("GetClaimDetail: %v", err)
			}
			if len(detail.Rows) != 3 {
				t.Errorf("C-3 rows = %d, want 3 (acte, rubrique, pharmacie)", len(detail.Rows))
			}
			if detail.GrandTotal.String() != "69000" {
				t.Errorf("C-3 total = %s, want 69000", detail.GrandTotal)
			}
		})
	}
}
