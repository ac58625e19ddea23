package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// FormatDisplaySQL - remplace les $n de la requête exécutée par des littéraux.
// Affichage uniquement, jamais exécuté.
func FormatDisplaySQL(query string, args []any) string {
	return placeholderPattern.ReplaceAllStringFunc(query, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(args) {
			return m
		}
		return sqlLiteral(args[n-1])
	})
}

// DisplayConsolidationSQL - requêtes de lignes exécutées pour ce filtre
func DisplayConsolidationSQL(filter dto.FilterSpec) string {
	scope := ScopeFor(filter)

	var b strings.Builder
	for i, kind := range filter.Sources.Enabled() {
		query, args, err := LineStatement(kind, scope)
		if err != nil {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "-- Source %s\n%s;\n", kind, strings.TrimSpace(FormatDisplaySQL(query, args)))
	}
	return b.String()
}

func sqlLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quoteLiteral(x)
	case *string:
		if x == nil {
			return "NULL"
		}
		return quoteLiteral(*x)
	case time.Time:
		return quoteLiteral(x.Format(DateLayout))
	case *time.Time:
		if x == nil {
			return "NULL"
		}
		return quoteLiteral(x.Format(DateLayout))
	case decimal.Decimal:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case []string:
		quoted := make([]string, len(x))
		for i, s := range x {
			quoted[i] = quoteLiteral(s)
		}
		return "ARRAY[" + strings.Join(quoted, ", ") + "]::text[]"
	default:
		return quoteLiteral(fmt.Sprint(x))
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
