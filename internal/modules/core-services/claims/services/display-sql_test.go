package services

import (
	"strings"
	"testing"
	"time"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

func TestFormatDisplaySQL(t *testing.T) {
	query := "SELECT * FROM t WHERE a = $1 AND b = $2 AND c = ANY($3) AND d = $10 AND e IS $4"
	args := []any{
		"O'Brien",
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		[]string{"1", "2"},
		nil, nil, nil, nil, nil, nil,
		int64(42),
	}

	got := FormatDisplaySQL(query, args)
	want := "SELECT * FROM t WHERE a = 'O''Brien' AND b = '2025-01-10' AND c = ANY(ARRAY['1', '2']::text[]) AND d = 42 AND e IS NULL"
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestFormatDisplaySQL_LeavesUnknownPlaceholders(t *testing.T) {
	if got := FormatDisplaySQL("SELECT $2", []any{"x"}); got != "SELECT $2" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayConsolidationSQL_MatchesExecutedStatement(t *testing.T) {
	filter := filterFor("2025-01-01", "2025-01-31")
	filter.Sources = dto.SourceToggles{Acte: true}
	filter.ClaimSearch = "50%"
	filter.AmountMin = dec(1000)

	out := DisplayConsolidationSQL(filter)

	query, args, err := LineStatement(dto.SourceActe, ScopeFor(filter))
	if err != nil {
		t.Fatalf("LineStatement: %v", err)
	}
	if !strings.Contains(out, strings.TrimSpace(FormatDisplaySQL(query, args))) {
		t.Error("display SQL diverges from the executed statement")
	}
	for _, frag := range []string{"-- Source ACTE", "'2025-01-01'", "'2025-01-31'", "'1000'", `'%50\%%'`} {
		if !strings.Contains(out, frag) {
			t.Errorf("display SQL misses %q", frag)
		}
	}
	if strings.Contains(out, "list_rub_hosp_acte_trans") {
		t.Error("disabled source rendered")
	}
}
