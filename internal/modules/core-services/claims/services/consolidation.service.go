package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fpm-inspections-core/internal/modules/core-services/claims/dto"
)

const tracerName = "fpm-inspections-core/claims"

// ConsolidationEngine - Regroupement des lignes facturables par PEC
// Core Service : sans état, le store est fourni à chaque appel
type ConsolidationEngine struct {
	logger *zap.Logger
	tracer trace.Tracer
}

// NewConsolidationEngine - Constructeur Fx compatible
func NewConsolidationEngine(logger *zap.Logger) *ConsolidationEngine {
	return &ConsolidationEngine{
		logger: logger.Named("consolidation"),
		tracer: otel.Tracer(tracerName),
	}
}

// Consolidate - page triée de regroupements filtrés, avec le total cumulé
// non filtré de chaque PEC présent sur la page
func (e *ConsolidationEngine) Consolidate(ctx context.Context, store LineStore, filter dto.FilterSpec) (*dto.ConsolidationPage, error) {
	groups, err := e.Select(ctx, store, filter)
	if err != nil {
		return nil, err
	}
	return e.Page(ctx, store, groups, filter)
}

// Select - séquence complète filtrée et triée, sans totaux cumulés.
// len(résultat) vaut Count pour le même filtre ; une seule lecture des sources.
func (e *ConsolidationEngine) Select(ctx context.Context, store LineStore, filter dto.FilterSpec) ([]dto.ClaimLineGroup, error) {
	ctx, span := e.tracer.Start(ctx, "claims.select")
	defer span.End()

	groups, err := e.filteredGroups(ctx, store, filter, true)
	if err != nil {
		return nil, e.fail(span, "select", err)
	}

	SortGroups(groups, filter.SortBy, filter.SortDesc)

	span.SetAttributes(attribute.Int("claims.groups", len(groups)))
	return groups, nil
}

// Page - découpe une séquence issue de Select et attache les totaux cumulés
// des seuls PEC de la page
func (e *ConsolidationEngine) Page(ctx context.Context, store LineStore, groups []dto.ClaimLineGroup, filter dto.FilterSpec) (*dto.ConsolidationPage, error) {
	ctx, span := e.tracer.Start(ctx, "claims.page")
	defer span.End()

	// copie : la page ne doit pas partager le tableau complet
	page := append([]dto.ClaimLineGroup(nil), Paginate(groups, filter.Page, filter.PageSize)...)

	if err := e.attachGrandTotals(ctx, store, page); err != nil {
		return nil, e.fail(span, "consolidate", err)
	}

	span.SetAttributes(
		attribute.Int("claims.groups", len(groups)),
		attribute.Int("claims.page_rows", len(page)),
	)

	return &dto.ConsolidationPage{
		Rows:       page,
		TotalCount: len(groups),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: TotalPages(len(groups), filter.PageSize),
	}, nil
}

// Count - nombre de regroupements, même logique de filtre que Consolidate.
// Sans filtre bénéficiaire, ni enrichissement ni totaux ne sont lus.
func (e *ConsolidationEngine) Count(ctx context.Context, store LineStore, filter dto.FilterSpec) (int, error) {
	ctx, span := e.tracer.Start(ctx, "claims.count")
	defer span.End()

	groups, err := e.filteredGroups(ctx, store, filter, filter.HasBeneficiaryFilter())
	if err != nil {
		return 0, e.fail(span, "count", err)
	}

	span.SetAttributes(attribute.Int("claims.groups", len(groups)))
	return len(groups), nil
}

// ScopeFor - restrictions poussées vers le stockage pour un filtre
func ScopeFor(filter dto.FilterSpec) dto.LineScope {
	from, to := filter.DateFrom, filter.DateTo
	scope := dto.LineScope{
		DateFrom:    &from,
		DateTo:      &to,
		AmountMin:   filter.AmountMin,
		AmountMax:   filter.AmountMax,
		FacilityIDs: filter.FacilityIDs,
	}
	if filter.ClaimSearch != "" {
		scope.ClaimPattern = ContainsPattern(filter.ClaimSearch)
	}
	return scope
}

func (e *ConsolidationEngine) filteredGroups(ctx context.Context, store LineStore, filter dto.FilterSpec, enrich bool) ([]dto.ClaimLineGroup, error) {
	lines, err := readLines(ctx, store, filter.Sources.Enabled(), ScopeFor(filter))
	if err != nil {
		return nil, err
	}

	groups := GroupLines(lines, e.logger)
	if !enrich || len(groups) == 0 {
		return groups, nil
	}

	beneficiaries, err := store.Beneficiaries(ctx, distinctTransactionIDs(groups))
	if err != nil {
		return nil, wrapStorage("beneficiaries", err)
	}

	filtered := groups[:0]
	for _, g := range groups {
		if b, ok := beneficiaries[g.TransactionID]; ok {
			g.Enrich(b)
		}
		if !containsFold(g.FullName, filter.BeneficiaryName) {
			continue
		}
		if !containsFold(g.BeneficiaryID, filter.BeneficiaryIDSearch) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered, nil
}

func (e *ConsolidationEngine) attachGrandTotals(ctx context.Context, store LineStore, groups []dto.ClaimLineGroup) error {
	if len(groups) == 0 {
		return nil
	}

	totals, err := store.ClaimTotals(ctx, distinctClaimIDs(groups))
	if err != nil {
		return wrapStorage("claim_totals", err)
	}

	for i := range groups {
		if t, ok := totals[groups[i].ClaimID]; ok {
			groups[i].ClaimGrandTotal = t
		} else {
			groups[i].ClaimGrandTotal = decimal.Zero
		}
	}
	return nil
}

func (e *ConsolidationEngine) fail(span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, operation)
	if IsStorage(err) {
		e.logger.Error("échec lecture consolidation", zap.String("operation", operation), zap.Error(err))
	}
	return err
}

// readLines - union des sources activées. Lectures simultanées si le store
// le permet, sérialisées sinon.
func readLines(ctx context.Context, store LineStore, kinds []dto.SourceKind, scope dto.LineScope) ([]dto.BillingLine, error) {
	if len(kinds) == 0 {
		return []dto.BillingLine{}, nil
	}

	results := make([][]dto.BillingLine, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	if cs, ok := store.(concurrentStore); !ok || !cs.ConcurrentReads() {
		g.SetLimit(1)
	}

	for i, kind := range kinds {
		g.Go(func() error {
			lines, err := store.Lines(gctx, kind, scope)
			if err != nil {
				return wrapStorage("lines_"+string(kind), err)
			}
			results[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	lines := make([]dto.BillingLine, 0, total)
	for _, r := range results {
		lines = append(lines, r...)
	}
	return lines, nil
}
