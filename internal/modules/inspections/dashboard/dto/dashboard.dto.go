package dto

import (
	analysesDto "fpm-inspections-core/internal/modules/inspections/analyses/dto"
)

// DashboardResponse page d'accueil
type DashboardResponse struct {
	RecentAnalyses     []analysesDto.Analysis `json:"analyses_recentes"`
	TotalAnalyses      int64                  `json:"total_analyses"`
	ClaimsToday        int64                  `json:"pec_aujourdhui"`
	HistoryUnavailable bool                   `json:"historique_indisponible,omitempty"`
}
