package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimLineGroup regroupement (num_pec, structure, source, libellé, montant unitaire)
type ClaimLineGroup struct {
	ClaimID      string          `json:"num_pec"`
	FacilityID   string          `json:"id_structure"`
	FacilityName string          `json:"nom_structure"`
	Source       SourceKind      `json:"source_ligne"`
	Label        string          `json:"libelle_acte"`
	UnitAmount   decimal.Decimal `json:"montant_unitaire"`

	AggregatedQuantity    int64           `json:"nb_lignes"`
	AggregatedAmount      decimal.Decimal `json:"montant_execute_total"`
	EarliestExecutionDate *time.Time      `json:"premiere_date_execution"`
	LatestExecutionDate   *time.Time      `json:"derniere_date_execution"`

	// Transaction représentative (max) et nombre de transactions distinctes vues
	TransactionID    string `json:"num_trans"`
	TransactionCount int    `json:"-"`

	BeneficiaryID        *string    `json:"num_bnf"`
	FullName             *string    `json:"nom_prenom"`
	Phone                *string    `json:"telephone"`
	Sex                  *string    `json:"sexe"`
	BirthDate            *time.Time `json:"date_naissance"`
	TransactionTypeLabel *string    `json:"libelle_type_trans"`

	ClaimGrandTotal decimal.Decimal `json:"montant_group_numpec"`
}

// Enrich copie les champs bénéficiaire de la transaction représentative
func (g *ClaimLineGroup) Enrich(b Beneficiary) {
	g.BeneficiaryID = b.BeneficiaryID
	g.FullName = b.FullName
	g.Phone = b.Phone
	g.Sex = b.Sex
	g.BirthDate = b.BirthDate
	g.TransactionTypeLabel = b.TransactionTypeLabel
}

// ConsolidationPage page de résultats consolidés
type ConsolidationPage struct {
	Rows       []ClaimLineGroup `json:"rows"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ClaimDetail vue facture d'un PEC
type ClaimDetail struct {
	ClaimID     string           `json:"num_pec"`
	Rows        []ClaimLineGroup `json:"rows"`
	GrandTotal  decimal.Decimal  `json:"montant_total"`
	Beneficiary *Beneficiary     `json:"beneficiaire,omitempty"`
}

// IsEmpty indique un PEC inconnu ou sans lignes
func (d *ClaimDetail) IsEmpty() bool {
	return len(d.Rows) == 0
}
