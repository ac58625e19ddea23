package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/modules/core-services/claims/dto"
	"fpm-inspections-core/internal/modules/core-services/claims/queries"
)

// LineStore - frontière de stockage consommée par le moteur de consolidation
type LineStore interface {
	Lines(ctx context.Context, kind dto.SourceKind, scope dto.LineScope) ([]dto.BillingLine, error)
	ClaimTotals(ctx context.Context, claimIDs []string) (map[string]decimal.Decimal, error)
	Beneficiaries(ctx context.Context, transactionIDs []string) (map[string]dto.Beneficiary, error)
}

// AggregateStore - entêtes des PEC pour l'état synthétique
type AggregateStore interface {
	ClaimHeaders(ctx context.Context, from, to time.Time) ([]dto.ClaimHeader, error)
}

// concurrentStore indique si le store accepte des lectures simultanées
type concurrentStore interface {
	ConcurrentReads() bool
}

// PostgresLineStore - LineStore et AggregateStore sur un postgres.Querier
// (pool ou session de lecture)
type PostgresLineStore struct {
	q          postgres.Querier
	concurrent bool
}

// NewPoolLineStore - lectures concurrentes sur le pool
func NewPoolLineStore(client *postgres.Client) *PostgresLineStore {
	return &PostgresLineStore{q: client, concurrent: true}
}

// NewSessionLineStore - lectures sérialisées dans une session (instantané unique)
func NewSessionLineStore(q postgres.Querier) *PostgresLineStore {
	return &PostgresLineStore{q: q, concurrent: false}
}

func (s *PostgresLineStore) ConcurrentReads() bool {
	return s.concurrent
}

// LineStatement - requête et arguments exacts d'une source pour une portée.
// Sert à l'exécution et à l'affichage SQL.
func LineStatement(kind dto.SourceKind, scope dto.LineScope) (string, []any, error) {
	var query string
	switch kind {
	case dto.SourceActe:
		query = queries.ClaimsQueries.ActeLines
	case dto.SourceRubrique:
		query = queries.ClaimsQueries.RubriqueLines
	case dto.SourcePharmacie:
		query = queries.ClaimsQueries.PharmacieLines
	default:
		return "", nil, fmt.Errorf("source de lignes inconnue: %q", kind)
	}

	facilities := scope.FacilityIDs
	if facilities == nil {
		facilities = []string{}
	}

	args := []any{
		dateArg(scope.DateFrom),
		dateArg(scope.DateTo),
		decimalArg(scope.AmountMin),
		decimalArg(scope.AmountMax),
		textArg(scope.ClaimID),
		textArg(scope.ClaimPattern),
		facilities,
	}
	return query, args, nil
}

func (s *PostgresLineStore) Lines(ctx context.Context, kind dto.SourceKind, scope dto.LineScope) ([]dto.BillingLine, error) {
	query, args, err := LineStatement(kind, scope)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erreur lecture lignes %s: %w", kind, err)
	}
	defer rows.Close()

	lines := make([]dto.BillingLine, 0, 64)
	for rows.Next() {
		line, err := scanLine(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("erreur scan ligne %s: %w", kind, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erreur itération lignes %s: %w", kind, err)
	}

	return lines, nil
}

func scanLine(rows pgx.Rows, kind dto.SourceKind) (dto.BillingLine, error) {
	var (
		claimID, facilityID, facilityName *string
		transactionID, refID, label       *string
		executedAt                        *time.Time
		amount                            *string
		quantity                          *int64
	)

	if err := rows.Scan(
		&claimID,
		&facilityID,
		&facilityName,
		&transactionID,
		&refID,
		&label,
		&executedAt,
		&amount,
		&quantity,
	); err != nil {
		return dto.BillingLine{}, err
	}

	unit, err := parseNullDecimal(amount)
	if err != nil {
		return dto.BillingLine{}, err
	}

	return dto.BillingLine{
		ClaimID:         deref(claimID),
		FacilityID:      deref(facilityID),
		FacilityName:    deref(facilityName),
		TransactionID:   deref(transactionID),
		LineReferenceID: deref(refID),
		Label:           deref(label),
		ExecutionDate:   executedAt,
		UnitAmount:      unit,
		Quantity:        quantity,
		Source:          kind,
	}, nil
}

func (s *PostgresLineStore) ClaimTotals(ctx context.Context, claimIDs []string) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, len(claimIDs))
	if len(claimIDs) == 0 {
		return totals, nil
	}

	rows, err := s.q.Query(ctx, queries.ClaimsQueries.ClaimTotals, claimIDs)
	if err != nil {
		return nil, fmt.Errorf("erreur lecture totaux PEC: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var claimID, total string
		if err := rows.Scan(&claimID, &total); err != nil {
			return nil, fmt.Errorf("erreur scan total PEC: %w", err)
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("total PEC %s invalide: %w", claimID, err)
		}
		totals[claimID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erreur itération totaux PEC: %w", err)
	}

	return totals, nil
}

func (s *PostgresLineStore) Beneficiaries(ctx context.Context, transactionIDs []string) (map[string]dto.Beneficiary, error) {
	out := make(map[string]dto.Beneficiary, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return out, nil
	}

	rows, err := s.q.Query(ctx, queries.ClaimsQueries.Beneficiaries, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("erreur lecture bénéficiaires: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b dto.Beneficiary
		if err := rows.Scan(
			&b.TransactionID,
			&b.BeneficiaryID,
			&b.FullName,
			&b.Phone,
			&b.Sex,
			&b.BirthDate,
			&b.TransactionTypeLabel,
		); err != nil {
			return nil, fmt.Errorf("erreur scan bénéficiaire: %w", err)
		}
		// num_trans supposé unique ; la première ligne l'emporte
		if _, seen := out[b.TransactionID]; !seen {
			out[b.TransactionID] = b
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erreur itération bénéficiaires: %w", err)
	}

	return out, nil
}

func (s *PostgresLineStore) ClaimHeaders(ctx context.Context, from, to time.Time) ([]dto.ClaimHeader, error) {
	rows, err := s.q.Query(ctx, queries.ClaimsQueries.ClaimHeaders, from, to)
	if err != nil {
		return nil, fmt.Errorf("erreur lecture PEC éligibles: %w", err)
	}
	defer rows.Close()

	headers := make([]dto.ClaimHeader, 0, 64)
	for rows.Next() {
		var h dto.ClaimHeader
		if err := rows.Scan(
			&h.ClaimID,
			&h.TransactionID,
			&h.ServiceTypeLabel,
			&h.QualifyingStatusLabel,
			&h.InitiatingFacility,
			&h.ProposingFacility,
			&h.ExecutingFacility,
			&h.OriginFacility,
			&h.InitiatingStaff,
			&h.InitiatingStaffPhone,
			&h.ExecutingStaff,
			&h.ExecutingStaffPhone,
			&h.RequestedAt,
			&h.StartedAt,
			&h.EndedAt,
			&h.AcknowledgedAt,
			&h.ValidationKey,
			&h.HospitalizationDays,
			&h.BeneficiaryID,
			&h.BeneficiaryFullName,
			&h.BeneficiaryBirthDate,
			&h.BeneficiaryPhone,
			&h.BeneficiarySex,
		); err != nil {
			return nil, fmt.Errorf("erreur scan PEC éligible: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erreur itération PEC éligibles: %w", err)
	}

	return headers, nil
}

func parseNullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("montant invalide %q: %w", *s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func textArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
