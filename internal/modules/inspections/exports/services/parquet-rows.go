package services

import (
	"time"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
)

// ConsolidationParquetRow ligne typée de l'export consolidé.
// Montants en texte décimal exact, dates AAAA-MM-JJ.
type ConsolidationParquetRow struct {
	NumPec              string  `parquet:"num_pec"`
	IDStructure         string  `parquet:"id_structure"`
	NomStructure        string  `parquet:"nom_structure_executante"`
	SourceLigne         string  `parquet:"source_ligne"`
	LibelleActe         string  `parquet:"libelle_acte"`
	MontantUnitaire     string  `parquet:"montant_unitaire"`
	NbLignes            int64   `parquet:"nb_lignes"`
	MontantExecuteTotal string  `parquet:"montant_execute_total"`
	MontantGroupNumPec  string  `parquet:"montant_group_numpec"`
	DateExecution       *string `parquet:"date_executante_soin,optional"`
	NumTrans            *string `parquet:"num_trans,optional"`
	NumBnf              *string `parquet:"num_bnf,optional"`
	NomPrenom           *string `parquet:"nom_prenom,optional"`
	Telephone           *string `parquet:"telephone,optional"`
	Sexe                *string `parquet:"sexe,optional"`
	DateNaissance       *string `parquet:"date_naissance,optional"`
	LibelleTypeTrans    *string `parquet:"libelle_type_trans,optional"`
}

// EtatSynthetiqueParquetRow ligne typée de l'état synthétique
type EtatSynthetiqueParquetRow struct {
	NumPec                    string  `parquet:"num_pec"`
	MontantTotalPec           string  `parquet:"montant_total_pec"`
	LibelleTypePrestation     *string `parquet:"libelle_type_prestation,optional"`
	LibelleEtatQualificatif   *string `parquet:"libelle_etat_qualificatif,optional"`
	StructureInitiatrice      *string `parquet:"structure_initiatrice,optional"`
	StructurePropose          *string `parquet:"structure_propose,optional"`
	StructureExecutante       *string `parquet:"structure_executante,optional"`
	StructureOrigineBulletin  *string `parquet:"structure_origine_bulletin,optional"`
	PsInitiateur              *string `parquet:"ps_initiateur,optional"`
	TelInitiateur             *string `parquet:"tel_initiateur,optional"`
	PsExecutant               *string `parquet:"ps_executant,optional"`
	TelExecutant              *string `parquet:"tel_executant,optional"`
	DateDmdActeTrans          *string `parquet:"date_dmd_acte_trans,optional"`
	DateDebutExecution        *string `parquet:"date_debut_execution,optional"`
	DateFinExecution          *string `parquet:"date_fin_execution,optional"`
	DateAccuserReception      *string `parquet:"date_accuser_reception,optional"`
	CleValidation             *string `parquet:"cle_validation,optional"`
	NombreJourHospitalisation *int64  `parquet:"nombre_jour_hospitalisation,optional"`
	NumBnf                    *string `parquet:"num_bnf,optional"`
	NomBeneficiaire           *string `parquet:"nom_beneficiaire,optional"`
	PrenomBeneficiaire        *string `parquet:"prenom_beneficiaire,optional"`
	DateNaissance             *string `parquet:"date_naissance,optional"`
	Telephone                 *string `parquet:"telephone,optional"`
	Sexe                      *string `parquet:"sexe,optional"`
}

// ConsolidationParquetRows - toutes les colonnes, indépendamment des options
// d'affichage ; seul le masquage du téléphone s'applique
func ConsolidationParquetRows(groups []claimsDto.ClaimLineGroup, maskPhone bool) []ConsolidationParquetRow {
	rows := make([]ConsolidationParquetRow, len(groups))
	for i, g := range groups {
		rows[i] = ConsolidationParquetRow{
			NumPec:              g.ClaimID,
			IDStructure:         g.FacilityID,
			NomStructure:        g.FacilityName,
			SourceLigne:         string(g.Source),
			LibelleActe:         g.Label,
			MontantUnitaire:     claimsServices.FormatAmount(g.UnitAmount),
			NbLignes:            g.AggregatedQuantity,
			MontantExecuteTotal: claimsServices.FormatAmount(g.AggregatedAmount),
			MontantGroupNumPec:  claimsServices.FormatAmount(g.ClaimGrandTotal),
			DateExecution:       isoDate(g.EarliestExecutionDate),
			NumTrans:            nonBlank(g.TransactionID),
			NumBnf:              g.BeneficiaryID,
			NomPrenom:           g.FullName,
			Telephone:           phone(g.Phone, maskPhone),
			Sexe:                g.Sex,
			DateNaissance:       isoDate(g.BirthDate),
			LibelleTypeTrans:    g.TransactionTypeLabel,
		}
	}
	return rows
}

func EtatSynthetiqueParquetRows(aggs []claimsDto.ClaimAggregate, maskPhone bool) []EtatSynthetiqueParquetRow {
	rows := make([]EtatSynthetiqueParquetRow, len(aggs))
	for i, a := range aggs {
		rows[i] = EtatSynthetiqueParquetRow{
			NumPec:                    a.ClaimID,
			MontantTotalPec:           claimsServices.FormatAmount(a.TotalExecutedAmount),
			LibelleTypePrestation:     a.ServiceTypeLabel,
			LibelleEtatQualificatif:   a.QualifyingStatusLabel,
			StructureInitiatrice:      a.InitiatingFacility,
			StructurePropose:          a.ProposingFacility,
			StructureExecutante:       a.ExecutingFacility,
			StructureOrigineBulletin:  a.OriginFacility,
			PsInitiateur:              a.InitiatingStaff,
			TelInitiateur:             a.InitiatingStaffPhone,
			PsExecutant:               a.ExecutingStaff,
			TelExecutant:              a.ExecutingStaffPhone,
			DateDmdActeTrans:          isoDate(a.RequestedAt),
			DateDebutExecution:        isoDate(a.StartedAt),
			DateFinExecution:          isoDate(a.EndedAt),
			DateAccuserReception:      isoDate(a.AcknowledgedAt),
			CleValidation:             a.ValidationKey,
			NombreJourHospitalisation: a.HospitalizationDays,
			NumBnf:                    a.BeneficiaryID,
			NomBeneficiaire:           a.BeneficiarySurname,
			PrenomBeneficiaire:        a.BeneficiaryGivenNames,
			DateNaissance:             isoDate(a.BeneficiaryBirthDate),
			Telephone:                 phone(a.BeneficiaryPhone, maskPhone),
			Sexe:                      a.BeneficiarySex,
		}
	}
	return rows
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(claimsServices.DateLayout)
	return &s
}

func nonBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func phone(p *string, mask bool) *string {
	if p == nil || !mask {
		return p
	}
	m := claimsServices.MaskPhone(*p)
	return &m
}
