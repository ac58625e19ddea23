package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilterRequest filtres tels que saisis dans le formulaire (chaînes brutes)
type FilterRequest struct {
	DateDebut  string   `json:"date_debut" form:"date_debut" validate:"required"`
	DateFin    string   `json:"date_fin" form:"date_fin" validate:"required"`
	MontantMin *float64 `json:"montant_min" form:"montant_min" validate:"omitempty,min=0"`
	MontantMax *float64 `json:"montant_max" form:"montant_max" validate:"omitempty,min=0"`

	IncludeActe      *bool `json:"include_acte" form:"include_acte"`
	IncludeRub       *bool `json:"include_rub" form:"include_rub"`
	IncludePharmacie *bool `json:"include_pharmacie" form:"include_pharmacie"`

	NumPec       string   `json:"num_pec" form:"num_pec" validate:"max=100"`
	NomPrenom    string   `json:"nom_prenom" form:"nom_prenom" validate:"max=200"`
	NumBnf       string   `json:"num_bnf" form:"num_bnf" validate:"max=100"`
	IDStructures []string `json:"id_structures" form:"id_structures"`

	SortBy    string `json:"sort_by" form:"sort_by"`
	SortOrder string `json:"sort_order" form:"sort_order"`
	Page      int    `json:"page" form:"page"`
	PerPage   int    `json:"per_page" form:"per_page"`

	ShowBeneficiaire  *bool `json:"show_beneficiaire" form:"show_beneficiaire"`
	ShowTelephone     *bool `json:"show_telephone" form:"show_telephone"`
	ShowSexe          *bool `json:"show_sexe" form:"show_sexe"`
	ShowDateNaissance *bool `json:"show_date_naissance" form:"show_date_naissance"`
	ShowTypeTrans     *bool `json:"show_type_trans" form:"show_type_trans"`
	ShowNbLignes      *bool `json:"show_nb_lignes" form:"show_nb_lignes"`
	MaskTelephone     bool  `json:"mask_telephone" form:"mask_telephone"`
	ShowSQL           bool  `json:"show_sql" form:"show_sql"`
}

// SourceToggles sources de lignes activées
type SourceToggles struct {
	Acte      bool `json:"acte"`
	Rubrique  bool `json:"rub"`
	Pharmacie bool `json:"pharmacie"`
}

// Enabled liste des sources activées dans l'ordre canonique
func (t SourceToggles) Enabled() []SourceKind {
	kinds := make([]SourceKind, 0, 3)
	if t.Acte {
		kinds = append(kinds, SourceActe)
	}
	if t.Rubrique {
		kinds = append(kinds, SourceRubrique)
	}
	if t.Pharmacie {
		kinds = append(kinds, SourcePharmacie)
	}
	return kinds
}

// AllSources toutes les sources, utilisé pour les totaux et le détail PEC
func AllSources() SourceToggles {
	return SourceToggles{Acte: true, Rubrique: true, Pharmacie: true}
}

// DisplayColumns colonnes optionnelles de l'export consolidé
type DisplayColumns struct {
	Beneficiary     bool `json:"beneficiaire"`
	Phone           bool `json:"telephone"`
	Sex             bool `json:"sexe"`
	BirthDate       bool `json:"date_naissance"`
	TransactionType bool `json:"type_trans"`
	LineCount       bool `json:"nb_lignes"`
	MaskPhone       bool `json:"masquer_telephone"`
}

// FilterSpec requête validée et normalisée. Valeur immuable : les
// services la passent par copie.
type FilterSpec struct {
	DateFrom  time.Time
	DateTo    time.Time
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	Sources   SourceToggles

	ClaimSearch         string
	BeneficiaryName     string
	BeneficiaryIDSearch string
	FacilityIDs         []string

	SortBy   string
	SortDesc bool
	Page     int
	PageSize int

	Columns DisplayColumns
	ShowSQL bool
}

// HasBeneficiaryFilter indique un filtre texte sur le bénéficiaire
func (f FilterSpec) HasBeneficiaryFilter() bool {
	return f.BeneficiaryName != "" || f.BeneficiaryIDSearch != ""
}

// PageLimits plafonds de taille de page
type PageLimits struct {
	Default int
	Max     int
}

// PaginationInfo contient les informations de pagination
type PaginationInfo struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPaginationInfo construit les informations de pagination
func NewPaginationInfo(page, limit, total int) PaginationInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
