package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind identifie la table d'origine d'une ligne facturable
type SourceKind string

const (
	SourceActe      SourceKind = "ACTE"
	SourceRubrique  SourceKind = "RUB"
	SourcePharmacie SourceKind = "PHARMACIE"
)

// AllSourceKinds ordre canonique des sources
var AllSourceKinds = []SourceKind{SourceActe, SourceRubrique, SourcePharmacie}

// BillingLine représente une unité facturable normalisée, quelle que soit sa source
type BillingLine struct {
	ClaimID         string
	FacilityID      string
	FacilityName    string
	TransactionID   string
	LineReferenceID string
	Label           string
	ExecutionDate   *time.Time
	UnitAmount      decimal.NullDecimal
	Quantity        *int64
	Source          SourceKind
}

// UnitAmountOrZero montant unitaire, 0 si absent
func (l BillingLine) UnitAmountOrZero() decimal.Decimal {
	if !l.UnitAmount.Valid {
		return decimal.Zero
	}
	return l.UnitAmount.Decimal
}

// QuantityOrOne quantité, 1 si absente
func (l BillingLine) QuantityOrOne() int64 {
	if l.Quantity == nil {
		return 1
	}
	return *l.Quantity
}

// LineTotal montant unitaire × quantité
func (l BillingLine) LineTotal() decimal.Decimal {
	return l.UnitAmountOrZero().Mul(decimal.NewFromInt(l.QuantityOrOne()))
}

// Beneficiary informations bénéficiaire portées par une transaction
type Beneficiary struct {
	TransactionID        string     `json:"num_trans"`
	BeneficiaryID        *string    `json:"num_bnf"`
	FullName             *string    `json:"nom_prenom"`
	Phone                *string    `json:"telephone"`
	Sex                  *string    `json:"sexe"`
	BirthDate            *time.Time `json:"date_naissance"`
	TransactionTypeLabel *string    `json:"libelle_type_trans"`
}

// LineScope restrictions poussées vers le stockage pour une lecture de lignes.
// Les champs nil ou vides ne restreignent rien.
type LineScope struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	AmountMin    *decimal.Decimal
	AmountMax    *decimal.Decimal
	ClaimID      string
	ClaimPattern string // motif ILIKE déjà échappé
	FacilityIDs  []string
}
