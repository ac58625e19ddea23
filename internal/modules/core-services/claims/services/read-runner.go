package services

import (
	"context"

	"fpm-inspections-core/internal/infrastructure/database/postgres"
)

// ReportStore - toutes les lectures d'un rapport
type ReportStore interface {
	LineStore
	AggregateStore
}

// ReadFunc reçoit le store des lectures d'un rapport
type ReadFunc func(store ReportStore) error

// Reader exécute les lectures d'un rapport
type Reader interface {
	Read(ctx context.Context, fn ReadFunc) error
}

// ReadRunner choisit entre le pool (sources lues en parallèle) et une session
// READ ONLY REPEATABLE READ (un seul instantané, lectures en série)
type ReadRunner struct {
	client   *postgres.Client
	tm       *postgres.TransactionManager
	parallel bool
}

func NewReadRunner(client *postgres.Client, tm *postgres.TransactionManager, parallel bool) *ReadRunner {
	return &ReadRunner{client: client, tm: tm, parallel: parallel}
}

func (r *ReadRunner) Parallel() bool {
	return r.parallel
}

// Read exécute fn ; la session éventuelle est libérée au retour
func (r *ReadRunner) Read(ctx context.Context, fn ReadFunc) error {
	if r.parallel {
		return fn(NewPoolLineStore(r.client))
	}

	var fnErr error
	err := r.tm.WithReadSession(ctx, func(q postgres.Querier) error {
		fnErr = fn(NewSessionLineStore(q))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return wrapStorage("read_session", err)
}
