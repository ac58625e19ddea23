package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// DateLayout format attendu des dates de filtre
const DateLayout = "2006-01-02"

const (
	msgDateRequired  = "La date est obligatoire"
	msgDateFormat    = "Format de date invalide (attendu: YYYY-MM-DD)"
	msgDateOrder     = "La date de début doit être antérieure à la date de fin"
	msgAmountNeg     = "Le montant ne peut pas être négatif"
	msgAmountOrder   = "Le montant maximum doit être supérieur au montant minimum"
	msgNoSource      = "Vous devez sélectionner au moins une source (ACTE, RUB ou PHARMACIE)"
	msgClaimRequired = "Le numéro de dossier (PEC) est obligatoire"
)

// NewFilterSpec - Valide et normalise une requête de filtre. Aucune requête
// n'est exécutée si une erreur est retournée.
func NewFilterSpec(req dto.FilterRequest, limits dto.PageLimits) (dto.FilterSpec, error) {
	champs := map[string]string{}

	from, to := parseDateRange(req.DateDebut, req.DateFin, champs)
	lo, hi := parseAmountRange(req.MontantMin, req.MontantMax, champs)

	sources := dto.SourceToggles{
		Acte:      boolOr(req.IncludeActe, true),
		Rubrique:  boolOr(req.IncludeRub, true),
		Pharmacie: boolOr(req.IncludePharmacie, false),
	}
	if len(sources.Enabled()) == 0 {
		champs["sources"] = msgNoSource
	}

	if len(champs) > 0 {
		return dto.FilterSpec{}, NewValidationError(champs)
	}

	return dto.FilterSpec{
		DateFrom:            from,
		DateTo:              to,
		AmountMin:           lo,
		AmountMax:           hi,
		Sources:             sources,
		ClaimSearch:         strings.TrimSpace(req.NumPec),
		BeneficiaryName:     strings.TrimSpace(req.NomPrenom),
		BeneficiaryIDSearch: strings.TrimSpace(req.NumBnf),
		FacilityIDs:         nonEmpty(req.IDStructures),
		SortBy:              strings.TrimSpace(req.SortBy),
		SortDesc:            strings.EqualFold(strings.TrimSpace(req.SortOrder), "DESC"),
		Page:                clampPage(req.Page),
		PageSize:            ClampPageSize(req.PerPage, limits),
		Columns: dto.DisplayColumns{
			Beneficiary:     boolOr(req.ShowBeneficiaire, true),
			Phone:           boolOr(req.ShowTelephone, true),
			Sex:             boolOr(req.ShowSexe, true),
			BirthDate:       boolOr(req.ShowDateNaissance, true),
			TransactionType: boolOr(req.ShowTypeTrans, true),
			LineCount:       boolOr(req.ShowNbLignes, true),
			MaskPhone:       req.MaskTelephone,
		},
		ShowSQL: req.ShowSQL,
	}, nil
}

// NewAggregateRequest - Valide les paramètres du mode par PEC
func NewAggregateRequest(dateDebut, dateFin string, montantMin, montantMax *float64, page, perPage int, limits dto.PageLimits) (dto.AggregateRequest, error) {
	champs := map[string]string{}

	from, to := parseDateRange(dateDebut, dateFin, champs)
	lo, hi := parseAmountRange(montantMin, montantMax, champs)

	if len(champs) > 0 {
		return dto.AggregateRequest{}, NewValidationError(champs)
	}

	return dto.AggregateRequest{
		DateFrom:  from,
		DateTo:    to,
		AmountMin: lo,
		AmountMax: hi,
		Page:      clampPage(page),
		PageSize:  ClampPageSize(perPage, limits),
	}, nil
}

// ValidateClaimID - num_pec obligatoire pour la vue facture
func ValidateClaimID(claimID string) (string, error) {
	id := strings.TrimSpace(claimID)
	if id == "" {
		return "", NewValidationError(map[string]string{"num_pec": msgClaimRequired})
	}
	return id, nil
}

// ParseDate - date YYYY-MM-DD en UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func parseDateRange(debut, fin string, champs map[string]string) (time.Time, time.Time) {
	var from, to time.Time
	var err error

	if strings.TrimSpace(debut) == "" {
		champs["date_debut"] = msgDateRequired
	} else if from, err = ParseDate(debut); err != nil {
		champs["date_debut"] = msgDateFormat
	}

	if strings.TrimSpace(fin) == "" {
		champs["date_fin"] = msgDateRequired
	} else if to, err = ParseDate(fin); err != nil {
		champs["date_fin"] = msgDateFormat
	}

	_, badFrom := champs["date_debut"]
	_, badTo := champs["date_fin"]
	if !badFrom && !badTo && from.After(to) {
		champs["date_debut"] = msgDateOrder
	}
	return from, to
}

func parseAmountRange(minIn, maxIn *float64, champs map[string]string) (*decimal.Decimal, *decimal.Decimal) {
	var lo, hi *decimal.Decimal

	if minIn != nil {
		if *minIn < 0 {
			champs["montant_min"] = msgAmountNeg
		} else {
			d := decimal.NewFromFloat(*minIn)
			lo = &d
		}
	}
	if maxIn != nil {
		if *maxIn < 0 {
			champs["montant_max"] = msgAmountNeg
		} else {
			d := decimal.NewFromFloat(*maxIn)
			hi = &d
		}
	}
	if lo != nil && hi != nil && hi.LessThan(*lo) {
		champs["montant_max"] = msgAmountOrder
	}
	return lo, hi
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func nonEmpty(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
