package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	cases := []struct {
		name       string
		page, size int
		want       []int
	}{
		{"first page", 1, 3, []int{1, 2, 3}},
		{"last partial page", 3, 3, []int{7}},
		{"past the end", 4, 3, []int{}},
		{"invalid page", 0, 3, []int{}},
		{"single page", 1, 50, items},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(items, tc.page, tc.size)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Paginate(%d, %d) = %v, want %v", tc.page, tc.size, got, tc.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{7, 3, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	interactive := dto.PageLimits{Max: 500}
	export := dto.PageLimits{Default: 5000, Max: 50000}

	cases := []struct {
		name   string
		size   int
		limits dto.PageLimits
		want   int
	}{
		{"zero uses fallback", 0, interactive, 50},
		{"negative uses fallback", -5, interactive, 50},
		{"within bounds", 120, interactive, 120},
		{"above max is clamped", 10000, interactive, 500},
		{"export default", 0, export, 5000},
		{"export ceiling", 80000, export, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampPageSize(tc.size, tc.limits); got != tc.want {
				t.Errorf("ClampPageSize(%d) = %d, want %d", tc.size, got, tc.want)
			}
		})
	}
}

func TestSortGroups_SecondaryOrderAndNilDates(t *testing.T) {
	d := func(s string) *time.Time { return day(s) }
	groups := []dto.ClaimLineGroup{
		{ClaimID: "C-2", FacilityName: "B", Label: "x", EarliestExecutionDate: d("2025-01-05")},
		{ClaimID: "C-1", FacilityName: "B", Label: "a", EarliestExecutionDate: d("2025-01-05")},
		{ClaimID: "C-3", FacilityName: "A", Label: "z", EarliestExecutionDate: d("2025-01-05")},
		{ClaimID: "C-4", FacilityName: "Z", Label: "z"},
	}

	SortGroups(groups, SortExecutionDate, false)

	var got []string
	for _, g := range groups {
		got = append(got, g.ClaimID)
	}
	want := []string{"C-4", "C-3", "C-1", "C-2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortGroups_DescendingAmountKeepsSecondaryAscending(t *testing.T) {
	groups := []dto.ClaimLineGroup{
		{ClaimID: "C-1", FacilityName: "B", AggregatedAmount: decimal.NewFromInt(100)},
		{ClaimID: "C-2", FacilityName: "A", AggregatedAmount: decimal.NewFromInt(100)},
		{ClaimID: "C-3", FacilityName: "C", AggregatedAmount: decimal.NewFromInt(900)},
	}

	SortGroups(groups, SortAmount, true)

	var got []string
	for _, g := range groups {
		got = append(got, g.ClaimID)
	}
	if !reflect.DeepEqual(got, []string{"C-3", "C-2", "C-1"}) {
		t.Errorf("order = %v", got)
	}
}

func TestNormalizeSortKey(t *testing.T) {
	for _, k := range []string{SortClaimID, SortFacilityName, SortExecutionDate, SortAmount, SortQuantity} {
		if NormalizeSortKey(k) != k {
			t.Errorf("allowed key %q rejected", k)
		}
	}
	if got := NormalizeSortKey("nom_prenom"); got != SortClaimID {
		t.Errorf("unknown key mapped to %q", got)
	}
}
