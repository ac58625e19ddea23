package services

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralise les jokers LIKE ; à utiliser avec ESCAPE '\'
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern motif ILIKE "contient" pour une saisie utilisateur
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// SplitFullName coupe au premier espace : nom, prénoms.
// Les noms composés ("DE SOUZA Marc") sont mal découpés, limite connue.
func SplitFullName(full string) (surname, givenNames string) {
	parts := strings.SplitN(full, " ", 2)
	surname = parts[0]
	if len(parts) == 2 {
		givenNames = parts[1]
	}
	return surname, givenNames
}

// MaskPhone ne laisse visibles que les 4 derniers caractères
func MaskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 4 {
		return phone
	}
	return strings.Repeat("X", len(r)-4) + string(r[len(r)-4:])
}

// containsFold recherche littérale insensible à la casse
func containsFold(haystack *string, needle string) bool {
	if needle == "" {
		return true
	}
	if haystack == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*haystack), strings.ToLower(needle))
}
