package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimHeader données d'entête d'un PEC éligible à l'état synthétique
type ClaimHeader struct {
	ClaimID               string
	TransactionID         *string
	ServiceTypeLabel      *string
	QualifyingStatusLabel *string
	InitiatingFacility    *string
	ProposingFacility     *string
	ExecutingFacility     *string
	OriginFacility        *string
	InitiatingStaff       *string
	InitiatingStaffPhone  *string
	ExecutingStaff        *string
	ExecutingStaffPhone   *string
	RequestedAt           *time.Time
	StartedAt             *time.Time
	EndedAt               *time.Time
	AcknowledgedAt        *time.Time
	ValidationKey         *string
	HospitalizationDays   *int64
	BeneficiaryID         *string
	BeneficiaryFullName   *string
	BeneficiaryBirthDate  *time.Time
	BeneficiaryPhone      *string
	BeneficiarySex        *string
}

// ClaimAggregate ligne de l'état synthétique (une par num_pec)
type ClaimAggregate struct {
	ClaimID               string          `json:"num_pec"`
	TotalExecutedAmount   decimal.Decimal `json:"montant_total_pec"`
	ServiceTypeLabel      *string         `json:"libelle_type_prestation"`
	QualifyingStatusLabel *string         `json:"libelle_etat_qualificatif"`
	InitiatingFacility    *string         `json:"structure_initiatrice"`
	ProposingFacility     *string         `json:"structure_propose"`
	ExecutingFacility     *string         `json:"structure_executante"`
	OriginFacility        *string         `json:"structure_origine_bulletin"`
	InitiatingStaff       *string         `json:"ps_initiateur"`
	InitiatingStaffPhone  *string         `json:"tel_initiateur"`
	ExecutingStaff        *string         `json:"ps_executant"`
	ExecutingStaffPhone   *string         `json:"tel_executant"`
	RequestedAt           *time.Time      `json:"date_dmd_acte_trans"`
	StartedAt             *time.Time      `json:"date_debut_execution"`
	EndedAt               *time.Time      `json:"date_fin_execution"`
	AcknowledgedAt        *time.Time      `json:"date_accuser_reception"`
	ValidationKey         *string         `json:"cle_validation"`
	HospitalizationDays   *int64          `json:"nombre_jour_hospitalisation"`
	BeneficiaryID         *string         `json:"num_bnf"`
	BeneficiarySurname    *string         `json:"nom_beneficiaire"`
	BeneficiaryGivenNames *string         `json:"prenom_beneficiaire"`
	BeneficiaryBirthDate  *time.Time      `json:"date_naissance"`
	BeneficiaryPhone      *string         `json:"telephone"`
	BeneficiarySex        *string         `json:"sexe"`
}

// AggregateRequest paramètres du mode par PEC
type AggregateRequest struct {
	DateFrom  time.Time
	DateTo    time.Time
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	Page      int
	PageSize  int
}

// AggregatePage page de l'état synthétique
type AggregatePage struct {
	Rows       []ClaimAggregate `json:"rows"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Excluded   ExclusionStats   `json:"exclusions"`
}

// ExclusionStats compte des PEC écartés à chaque étape
type ExclusionStats struct {
	Eligible   int `json:"eligibles"`
	ZeroAmount int `json:"montant_nul"`
	OutOfRange int `json:"hors_plage"`
}
