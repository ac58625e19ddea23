package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
	"fpm-inspections-core/internal/modules/inspections/analyses/dto"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// AnalysisService - sauvegarde et consultation de l'historique.
// Les erreurs MongoDB remontent en erreurs de stockage.
type AnalysisService struct {
	repo   AnalysisRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewAnalysisService(repo AnalysisRepository, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.Named("analyses"),
	}
}

// Create - intitulé et utilisateur obligatoires, scénario consolidation par défaut
func (s *AnalysisService) Create(ctx context.Context, req dto.CreateAnalysisRequest) (*dto.Analysis, error) {
	champs := map[string]string{}
	title := strings.TrimSpace(req.Intitule)
	user := strings.TrimSpace(req.NomUtilisateur)
	if title == "" {
		champs["intitule"] = "L'intitulé de l'analyse est obligatoire"
	}
	if user == "" {
		champs["nom_utilisateur"] = "Le nom d'utilisateur est obligatoire"
	}
	if len(champs) > 0 {
		return nil, claimsServices.NewValidationError(champs)
	}

	scenario := req.Scenario
	if scenario == "" {
		scenario = dto.ScenarioConsolidation
	}

	analysis := &dto.Analysis{
		NomUtilisateur: user,
		Intitule:       title,
		Motif:          strings.TrimSpace(req.Motif),
		Scenario:       scenario,
		Parametres:     req.Parametres,
		Metriques:      req.Metriques,
		DateAnalyse:    s.now(),
	}

	if err := s.repo.Insert(ctx, analysis); err != nil {
		s.logger.Error("sauvegarde analyse échouée", zap.String("utilisateur", user), zap.Error(err))
		return nil, claimsServices.NewStorageError("insert_analysis", err)
	}

	s.logger.Info("analyse sauvegardée",
		zap.String("id", analysis.ID.Hex()),
		zap.String("utilisateur", user),
		zap.String("scenario", scenario))
	return analysis, nil
}

// Recent - limite bornée à [1, 50], 10 par défaut
func (s *AnalysisService) Recent(ctx context.Context, limit int) ([]dto.Analysis, error) {
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}

	analyses, err := s.repo.Recent(ctx, int64(limit))
	if err != nil {
		s.logger.Error("lecture historique échouée", zap.Error(err))
		return nil, claimsServices.NewStorageError("recent_analyses", err)
	}
	return analyses, nil
}

func (s *AnalysisService) Get(ctx context.Context, id string) (*dto.Analysis, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, claimsServices.NewValidationError(map[string]string{"id": "Identifiant d'analyse invalide"})
	}

	analysis, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, ErrAnalysisNotFound) {
		return nil, claimsServices.NewNotFoundError("Analyse non trouvée", map[string]interface{}{"id": id})
	}
	if err != nil {
		return nil, claimsServices.NewStorageError("find_analysis", err)
	}
	return analysis, nil
}

// Count nombre total d'analyses sauvegardées
func (s *AnalysisService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, claimsServices.NewStorageError("count_analyses", err)
	}
	return n, nil
}
