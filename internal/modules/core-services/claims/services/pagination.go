package services

import (
	"sort"
	"time"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

const defaultPageSize = 50

// Clés de tri acceptées -> colonne
const (
	SortClaimID       = "num_pec"
	SortFacilityName  = "nom_structure"
	SortExecutionDate = "date_execution"
	SortAmount        = "montant_total"
	SortQuantity      = "nb_lignes"
)

// Paginate - tranche [(page-1)*size : page*size], vide au-delà de la fin
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages - ceil(total/size)
func TotalPages(total, size int) int {
	if size < 1 || total < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPageSize - borne silencieusement la taille de page dans [1, Max]
func ClampPageSize(size int, limits dto.PageLimits) int {
	if size <= 0 {
		size = limits.Default
		if size <= 0 {
			size = defaultPageSize
		}
	}
	if limits.Max > 0 && size > limits.Max {
		size = limits.Max
	}
	return size
}

// NormalizeSortKey - clé inconnue -> num_pec
func NormalizeSortKey(key string) string {
	switch key {
	case SortClaimID, SortFacilityName, SortExecutionDate, SortAmount, SortQuantity:
		return key
	default:
		return SortClaimID
	}
}

// SortGroups trie sur place : clé primaire, puis nom_structure ASC, libellé ASC,
// puis le reste de la clé de regroupement pour un ordre total
func SortGroups(groups []dto.ClaimLineGroup, sortBy string, desc bool) {
	primary := primaryComparator(NormalizeSortKey(sortBy))

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := &groups[i], &groups[j]
		if c := primary(a, b); c != 0 {
			if desc {
				return c > 0
			}
			return c < 0
		}
		if c := compareStrings(a.FacilityName, b.FacilityName); c != 0 {
			return c < 0
		}
		if c := compareStrings(a.Label, b.Label); c != 0 {
			return c < 0
		}
		return tieBreak(a, b) < 0
	})
}

// sortDetailRows ordre de la vue facture : libellé, montant unitaire
func sortDetailRows(groups []dto.ClaimLineGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := &groups[i], &groups[j]
		if c := compareStrings(a.Label, b.Label); c != 0 {
			return c < 0
		}
		if c := a.UnitAmount.Cmp(b.UnitAmount); c != 0 {
			return c < 0
		}
		return tieBreak(a, b) < 0
	})
}

type groupComparator func(a, b *dto.ClaimLineGroup) int

func primaryComparator(key string) groupComparator {
	switch key {
	case SortFacilityName:
		return func(a, b *dto.ClaimLineGroup) int { return compareStrings(a.FacilityName, b.FacilityName) }
	case SortExecutionDate:
		return func(a, b *dto.ClaimLineGroup) int {
			return compareTimes(a.EarliestExecutionDate, b.EarliestExecutionDate)
		}
	case SortAmount:
		return func(a, b *dto.ClaimLineGroup) int { return a.AggregatedAmount.Cmp(b.AggregatedAmount) }
	case SortQuantity:
		return func(a, b *dto.ClaimLineGroup) int { return compareInts(a.AggregatedQuantity, b.AggregatedQuantity) }
	default:
		return func(a, b *dto.ClaimLineGroup) int { return compareStrings(a.ClaimID, b.ClaimID) }
	}
}

func tieBreak(a, b *dto.ClaimLineGroup) int {
	if c := compareStrings(a.ClaimID, b.ClaimID); c != 0 {
		return c
	}
	if c := compareStrings(string(a.Source), string(b.Source)); c != 0 {
		return c
	}
	if c := a.UnitAmount.Cmp(b.UnitAmount); c != 0 {
		return c
	}
	return compareStrings(a.FacilityID, b.FacilityID)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareTimes : nil avant toute date
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
