package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// ReportOverrides fichier YAML optionnel (REPORTS_LABELS_FILE)
//
//	page_limits:
//	  default: 100
//	  max: 1000
//	labels:
//	  consolidation:
//	    num_pec: "N° dossier"
//	  etat_synthetique:
//	    montant_total_pec: "Total (FCFA)"
type ReportOverrides struct {
	PageLimits   *LimitsOverride `yaml:"page_limits"`
	ExportLimits *LimitsOverride `yaml:"export_limits"`
	Labels       LabelOverrides  `yaml:"labels"`
}

type LimitsOverride struct {
	Default int `yaml:"default"`
	Max     int `yaml:"max"`
}

type LabelOverrides struct {
	Consolidation   map[string]string `yaml:"consolidation"`
	EtatSynthetique map[string]string `yaml:"etat_synthetique"`
}

// LoadReportOverrides lit et décode le fichier de surcharges
func LoadReportOverrides(path string) (*ReportOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture fichier de libellés %s: %w", path, err)
	}

	var o ReportOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("fichier de libellés %s invalide: %w", path, err)
	}
	return &o, nil
}

func (r *ReportsConfig) applyOverrides() {
	if l := r.Overrides.PageLimits; l != nil {
		if l.Default > 0 {
			r.PageSizeDefault = l.Default
		}
		if l.Max > 0 {
			r.PageSizeMax = l.Max
		}
	}
	if l := r.Overrides.ExportLimits; l != nil {
		if l.Default > 0 {
			r.ExportPageSizeDefault = l.Default
		}
		if l.Max > 0 {
			r.ExportPageSizeMax = l.Max
		}
	}
}

// InteractiveLimits plafonds des écrans
func (r ReportsConfig) InteractiveLimits() dto.PageLimits {
	return dto.PageLimits{Default: r.PageSizeDefault, Max: r.PageSizeMax}
}

// ExportLimits plafonds des exports
func (r ReportsConfig) ExportLimits() dto.PageLimits {
	return dto.PageLimits{Default: r.ExportPageSizeDefault, Max: r.ExportPageSizeMax}
}
