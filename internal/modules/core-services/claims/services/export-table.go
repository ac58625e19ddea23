package services

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

const (
	displayDateLayout = "02/01/2006"
	missingValue      = "N/A"
)

// ConsolidationLabels libellés par défaut de l'export consolidé
var ConsolidationLabels = map[string]string{
	"nom_structure_executante": "Structure exécutante",
	"num_pec":                  "Numéro PEC",
	"date_executante_soin":     "Date exécution",
	"num_bnf":                  "Num. bénéficiaire",
	"nom_prenom":               "Nom & Prénom",
	"telephone":                "Téléphone",
	"sexe":                     "Sexe",
	"date_naissance":           "Date naissance",
	"libelle_type_trans":       "Type transaction",
	"nb_lignes":                "Nb lignes",
	"montant_execute_total":    "Montant total (FCFA)",
	"source_ligne":             "Source(s)",
	"montant_group_numpec":     "Total cumulé PEC (FCFA)",
}

// EtatSynthetiqueColumns ordre des 24 colonnes de l'état synthétique
var EtatSynthetiqueColumns = []string{
	"num_pec",
	"montant_total_pec",
	"libelle_type_prestation",
	"libelle_etat_qualificatif",
	"structure_initiatrice",
	"structure_propose",
	"structure_executante",
	"structure_origine_bulletin",
	"ps_initiateur",
	"tel_initiateur",
	"ps_executant",
	"tel_executant",
	"date_dmd_acte_trans",
	"date_debut_execution",
	"date_fin_execution",
	"date_accuser_reception",
	"cle_validation",
	"nombre_jour_hospitalisation",
	"num_bnf",
	"nom_beneficiaire",
	"prenom_beneficiaire",
	"date_naissance",
	"telephone",
	"sexe",
}

var EtatSynthetiqueLabels = map[string]string{
	"num_pec":                     "Numéro PEC",
	"montant_total_pec":           "Montant Total (FCFA)",
	"libelle_type_prestation":     "Type Prestation",
	"libelle_etat_qualificatif":   "État Qualificatif",
	"structure_initiatrice":       "Structure Initiatrice",
	"structure_propose":           "Structure Proposée",
	"structure_executante":        "Structure Exécutante",
	"structure_origine_bulletin":  "Structure Origine Bulletin",
	"ps_initiateur":               "Personnel Initiateur",
	"tel_initiateur":              "Tél. Initiateur",
	"ps_executant":                "Personnel Exécutant",
	"tel_executant":               "Tél. Exécutant",
	"date_dmd_acte_trans":         "Date Demande Acte",
	"date_debut_execution":        "Date Début Exécution",
	"date_fin_execution":          "Date Fin Exécution",
	"date_accuser_reception":      "Date Accusé Réception",
	"cle_validation":              "Clé Validation",
	"nombre_jour_hospitalisation": "Nb Jours Hospitalisation",
	"num_bnf":                     "Num. Bénéficiaire",
	"nom_beneficiaire":            "Nom Bénéficiaire",
	"prenom_beneficiaire":         "Prénom Bénéficiaire",
	"date_naissance":              "Date Naissance",
	"telephone":                   "Téléphone",
	"sexe":                        "Sexe",
}

// ConsolidationColumns - colonnes retenues selon les options d'affichage
func ConsolidationColumns(cols dto.DisplayColumns) []string {
	columns := []string{"nom_structure_executante", "num_pec", "date_executante_soin"}
	if cols.Beneficiary {
		columns = append(columns, "num_bnf", "nom_prenom")
	}
	if cols.Phone {
		columns = append(columns, "telephone")
	}
	if cols.Sex {
		columns = append(columns, "sexe")
	}
	if cols.BirthDate {
		columns = append(columns, "date_naissance")
	}
	if cols.TransactionType {
		columns = append(columns, "libelle_type_trans")
	}
	if cols.LineCount {
		columns = append(columns, "nb_lignes")
	}
	return append(columns, "montant_execute_total", "source_ligne", "montant_group_numpec")
}

// BuildConsolidationTable - table à plat pour l'export consolidé
func BuildConsolidationTable(groups []dto.ClaimLineGroup, cols dto.DisplayColumns) dto.ExportTable {
	columns := ConsolidationColumns(cols)
	rows := make([]map[string]any, 0, len(groups))

	for _, g := range groups {
		phone := g.Phone
		if cols.MaskPhone && phone != nil {
			masked := MaskPhone(*phone)
			phone = &masked
		}

		full := map[string]any{
			"nom_structure_executante": textOrMissing(&g.FacilityName),
			"num_pec":                  g.ClaimID,
			"date_executante_soin":     dateOrMissing(g.EarliestExecutionDate),
			"num_bnf":                  textOrMissing(g.BeneficiaryID),
			"nom_prenom":               textOrMissing(g.FullName),
			"telephone":                textOrMissing(phone),
			"sexe":                     textOrMissing(g.Sex),
			"date_naissance":           dateOrMissing(g.BirthDate),
			"libelle_type_trans":       textOrMissing(g.TransactionTypeLabel),
			"nb_lignes":                g.AggregatedQuantity,
			"montant_execute_total":    FormatAmount(g.AggregatedAmount),
			"source_ligne":             string(g.Source),
			"montant_group_numpec":     FormatAmount(g.ClaimGrandTotal),
		}
		rows = append(rows, pick(full, columns))
	}

	return dto.ExportTable{Columns: columns, Labels: copyLabels(ConsolidationLabels), Rows: rows}
}

// BuildEtatSynthetiqueTable - table à plat des 24 colonnes
func BuildEtatSynthetiqueTable(aggs []dto.ClaimAggregate, maskPhone bool) dto.ExportTable {
	rows := make([]map[string]any, 0, len(aggs))

	for _, a := range aggs {
		phone := a.BeneficiaryPhone
		if maskPhone && phone != nil {
			masked := MaskPhone(*phone)
			phone = &masked
		}

		rows = append(rows, map[string]any{
			"num_pec":                     a.ClaimID,
			"montant_total_pec":           FormatAmount(a.TotalExecutedAmount),
			"libelle_type_prestation":     textOrMissing(a.ServiceTypeLabel),
			"libelle_etat_qualificatif":   textOrMissing(a.QualifyingStatusLabel),
			"structure_initiatrice":       textOrMissing(a.InitiatingFacility),
			"structure_propose":           textOrMissing(a.ProposingFacility),
			"structure_executante":        textOrMissing(a.ExecutingFacility),
			"structure_origine_bulletin":  textOrMissing(a.OriginFacility),
			"ps_initiateur":               textOrMissing(a.InitiatingStaff),
			"tel_initiateur":              textOrMissing(a.InitiatingStaffPhone),
			"ps_executant":                textOrMissing(a.ExecutingStaff),
			"tel_executant":               textOrMissing(a.ExecutingStaffPhone),
			"date_dmd_acte_trans":         dateOrMissing(a.RequestedAt),
			"date_debut_execution":        dateOrMissing(a.StartedAt),
			"date_fin_execution":          dateOrMissing(a.EndedAt),
			"date_accuser_reception":      dateOrMissing(a.AcknowledgedAt),
			"cle_validation":              textOrMissing(a.ValidationKey),
			"nombre_jour_hospitalisation": intOrMissing(a.HospitalizationDays),
			"num_bnf":                     textOrMissing(a.BeneficiaryID),
			"nom_beneficiaire":            textOrMissing(a.BeneficiarySurname),
			"prenom_beneficiaire":         textOrMissing(a.BeneficiaryGivenNames),
			"date_naissance":              dateOrMissing(a.BeneficiaryBirthDate),
			"telephone":                   textOrMissing(phone),
			"sexe":                        textOrMissing(a.BeneficiarySex),
		})
	}

	columns := append([]string(nil), EtatSynthetiqueColumns...)
	return dto.ExportTable{Columns: columns, Labels: copyLabels(EtatSynthetiqueLabels), Rows: rows}
}

// ApplyLabelOverrides - libellés personnalisés (fichier de configuration)
func ApplyLabelOverrides(table dto.ExportTable, overrides map[string]string) dto.ExportTable {
	for k, v := range overrides {
		if _, ok := table.Labels[k]; ok && v != "" {
			table.Labels[k] = v
		}
	}
	return table
}

// FormatAmount - montant en texte pour les exports
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

func pick(full map[string]any, columns []string) map[string]any {
	row := make(map[string]any, len(columns))
	for _, c := range columns {
		row[c] = full[c]
	}
	return row
}

func copyLabels(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func textOrMissing(s *string) string {
	if s == nil || *s == "" {
		return missingValue
	}
	return *s
}

func dateOrMissing(t *time.Time) string {
	if t == nil {
		return missingValue
	}
	return t.Format(displayDateLayout)
}

func intOrMissing(n *int64) string {
	if n == nil {
		return missingValue
	}
	return strconv.FormatInt(*n, 10)
}
