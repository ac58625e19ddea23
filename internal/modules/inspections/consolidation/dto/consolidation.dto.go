package dto

import (
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// ConsolidationResponse page consolidée avec métriques de la page
type ConsolidationResponse struct {
	Rows         []claimsDto.ClaimLineGroup `json:"rows"`
	Columns      []string                   `json:"columns"`
	ColumnLabels map[string]string          `json:"column_labels"`
	Pagination   claimsDto.PaginationInfo   `json:"pagination"`
	Metrics      claimsDto.Metrics          `json:"metrics"`
	SQL          string                     `json:"sql,omitempty"`
}
