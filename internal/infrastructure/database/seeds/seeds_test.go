package seeds

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSeedDataStatus(t *testing.T) {
	s := &SeedDataStatus{MissingTables: []string{"acte_trans"}}
	if s.SchemaReady() || s.IsComplete() {
		t.Error("status with missing tables must not be ready")
	}
	if got := s.GetMissingSeeds(); !reflect.DeepEqual(got, []string{"acte_trans", "demo_data"}) {
		t.Errorf("missing = %v", got)
	}

	s = &SeedDataStatus{DemoDataExist: true}
	if !s.IsComplete() || len(s.GetMissingSeeds()) != 0 {
		t.Errorf("complete status reported as %+v", s)
	}
}

func TestErrDatabaseOperation_Unwraps(t *testing.T) {
	cause := errors.New("connexion refusée")
	err := ErrDatabaseOperation("création du schéma", cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	var se *SeedingError
	if !errors.As(err, &se) || se.Type != "database_error" {
		t.Errorf("unexpected error %#v", err)
	}
}

func TestSeedDemo_ForbiddenOutsideDevelopment(t *testing.T) {
	svc := &seedingService{environment: "docker", logger: zap.NewNop()}

	for name, run := range map[string]func(context.Context) error{
		"schema": svc.ApplySchema,
		"demo":   svc.SeedDemo,
	} {
		err := run(context.Background())
		var se *SeedingError
		if !errors.As(err, &se) || se.Type != "demo_forbidden" {
			t.Errorf("%s: expected demo_forbidden, got %v", name, err)
		}
	}
}

func TestEmbeddedSQLCoversRequiredTables(t *testing.T) {
	for _, table := range RequiredTables {
		name := table
		if table == "transaction" {
			name = `"transaction"`
		}
		if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+name+" (") {
			t.Errorf("schema does not create %s", table)
		}
	}
	if !strings.Contains(demoSQL, "'C-1'") {
		t.Error("demo data lacks claim C-1")
	}
}
