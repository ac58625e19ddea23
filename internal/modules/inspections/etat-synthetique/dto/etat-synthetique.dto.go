package dto

import (
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// EtatSynthetiqueRequest formulaire du mode par PEC
type EtatSynthetiqueRequest struct {
	DateDebut     string   `json:"date_debut" form:"date_debut" validate:"required"`
	DateFin       string   `json:"date_fin" form:"date_fin" validate:"required"`
	MontantMin    *float64 `json:"montant_min" form:"montant_min" validate:"omitempty,min=0"`
	MontantMax    *float64 `json:"montant_max" form:"montant_max" validate:"omitempty,min=0"`
	Page          int      `json:"page" form:"page" validate:"omitempty,min=1"`
	PerPage       int      `json:"per_page" form:"per_page" validate:"omitempty,min=1"`
	MaskTelephone bool     `json:"mask_telephone" form:"mask_telephone"`
}

// EtatSynthetiqueResponse lignes mises en forme (24 colonnes), métriques de la page
type EtatSynthetiqueResponse struct {
	Rows         []map[string]any         `json:"rows"`
	Columns      []string                 `json:"columns"`
	ColumnLabels map[string]string        `json:"column_labels"`
	Pagination   claimsDto.PaginationInfo `json:"pagination"`
	Metrics      claimsDto.Metrics        `json:"metrics"`
	Exclusions   claimsDto.ExclusionStats `json:"exclusions"`
}
