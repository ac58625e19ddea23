package services

import (
	"context"
	"fmt"

	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/modules/core-services/claims/dto"
	"fpm-inspections-core/internal/modules/core-services/claims/queries"
)

// ReferenceStore - données de référence (structures, compteurs du tableau de bord)
type ReferenceStore struct {
	q postgres.Querier
}

func NewReferenceStore(client *postgres.Client) *ReferenceStore {
	return &ReferenceStore{q: client}
}

// ActiveStructures - structures actives triées par nom
func (s *ReferenceStore) ActiveStructures(ctx context.Context) ([]dto.Structure, error) {
	rows, err := s.q.Query(ctx, queries.ClaimsQueries.ActiveStructures)
	if err != nil {
		return nil, wrapStorage("active_structures", fmt.Errorf("erreur lecture structures: %w", err))
	}
	defer rows.Close()

	structures := make([]dto.Structure, 0, 32)
	for rows.Next() {
		var st dto.Structure
		var name *string
		if err := rows.Scan(&st.ID, &name); err != nil {
			return nil, wrapStorage("active_structures", fmt.Errorf("erreur scan structure: %w", err))
		}
		st.Name = deref(name)
		structures = append(structures, st)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("active_structures", err)
	}
	return structures, nil
}

// CountClaimsToday - PEC dont l'exécution démarre aujourd'hui
func (s *ReferenceStore) CountClaimsToday(ctx context.Context) (int64, error) {
	var count int64
	if err := s.q.QueryRow(ctx, queries.ClaimsQueries.CountClaimsToday).Scan(&count); err != nil {
		return 0, wrapStorage("count_claims_today", err)
	}
	return count, nil
}
