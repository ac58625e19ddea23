package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// BootstrapSystem orchestre les vérifications exécutées avant le serveur HTTP
type BootstrapSystem struct {
	seedingManager *SeedingManager
	logger         *zap.Logger
	timeout        time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

type phase struct {
	name        string
	description string
	run         func(ctx context.Context) error
}

// NewBootstrapSystem crée une nouvelle instance du système de bootstrap
func NewBootstrapSystem(seedingManager *SeedingManager, logger *zap.Logger) *BootstrapSystem {
	return &BootstrapSystem{
		seedingManager: seedingManager,
		logger:         logger.Named("bootstrap"),
		timeout:        2 * time.Minute,
	}
}

func (bs *BootstrapSystem) phases() []phase {
	phases := []phase{{
		name:        "Phase 1: Vérification schéma",
		description: "Tables des sources de facturation",
		run:         bs.seedingManager.EnsureSchema,
	}}
	if bs.seedingManager.DemoEnabled() {
		phases = append(phases, phase{
			name:        "Phase 2: Jeu de démonstration",
			description: "Chargement des PEC de démonstration",
			run:         bs.seedingManager.ApplyDemo,
		})
	}
	return phases
}

// Execute lance les phases dans l'ordre, arrêt à la première erreur
func (bs *BootstrapSystem) Execute() (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), bs.timeout)
	defer cancel()

	bs.logger.Info("démarrage bootstrap", zap.Duration("timeout", bs.timeout))

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	for _, p := range bs.phases() {
		pr := bs.executePhase(ctx, p)
		result.PhasesExecuted = append(result.PhasesExecuted, pr)
		if !pr.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("%s échouée: %s", p.name, pr.Error)
			return bs.finalizeResult(result, startTime), fmt.Errorf("bootstrap failed at %s: %s", p.name, pr.Error)
		}
	}

	result = bs.finalizeResult(result, startTime)
	bs.logger.Info("bootstrap terminé", zap.Duration("duration", result.TotalDuration))
	return result, nil
}

func (bs *BootstrapSystem) executePhase(ctx context.Context, p phase) PhaseResult {
	startTime := time.Now()
	err := p.run(ctx)
	duration := time.Since(startTime)

	if err != nil {
		bs.logger.Error("phase échouée", zap.String("phase", p.name), zap.Duration("duration", duration), zap.Error(err))
		return PhaseResult{
			Phase:       p.name,
			Success:     false,
			Duration:    duration,
			Description: p.description,
			Error:       err.Error(),
		}
	}

	bs.logger.Info("phase terminée", zap.String("phase", p.name), zap.Duration("duration", duration))
	return PhaseResult{
		Phase:       p.name,
		Success:     true,
		Duration:    duration,
		Description: p.description,
	}
}

// finalizeResult finalise le résultat avec la durée totale
func (bs *BootstrapSystem) finalizeResult(result *BootstrapResult, startTime time.Time) *BootstrapResult {
	result.TotalDuration = time.Since(startTime)
	return result
}

// SetTimeout configure un nouveau timeout (utile pour les tests)
func (bs *BootstrapSystem) SetTimeout(timeout time.Duration) {
	bs.timeout = timeout
}

var Module = fx.Options(
	fx.Provide(NewSeedingManager),
	fx.Provide(NewBootstrapSystem),
	fx.Invoke(RegisterBootstrapLifecycle),
)

// RegisterBootstrapLifecycle exécute le bootstrap avant le serveur HTTP
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bootstrap *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := bootstrap.Execute(); err != nil {
				return fmt.Errorf("bootstrap system failed: %w", err)
			}
			return nil
		},
	})
}
