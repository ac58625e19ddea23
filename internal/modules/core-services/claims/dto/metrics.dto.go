package dto

import "github.com/shopspring/decimal"

// Metrics statistiques calculées sur la page retournée
type Metrics struct {
	RowCount              int             `json:"nb_lignes"`
	DistinctClaims        int             `json:"total_pec"`
	DistinctBeneficiaries int             `json:"total_beneficiaires"`
	TotalAmount           decimal.Decimal `json:"montant_total"`
	AverageAmount         decimal.Decimal `json:"montant_moyen"`
}

// ExportTable frontière d'export : lignes à plat, colonnes ordonnées, libellés
type ExportTable struct {
	Columns []string          `json:"columns"`
	Labels  map[string]string `json:"column_labels"`
	Rows    []map[string]any  `json:"data"`
}

// Label libellé d'une colonne, la clé elle-même à défaut
func (t ExportTable) Label(column string) string {
	if l, ok := t.Labels[column]; ok {
		return l
	}
	return column
}
