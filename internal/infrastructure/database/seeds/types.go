package seeds

import (
	"context"
)

// RequiredTables tables lues par les rapports, vérifiées au démarrage
var RequiredTables = []string{
	"acte_trans",
	"list_acte_acte_trans",
	"list_rub_hosp_acte_trans",
	"list_pharmacie_acte_trans",
	"structure",
	"acte",
	"rubrique_hospitalisations",
	"medicament",
	"transaction",
	"type_transactions",
	"personnel",
	"type_prestation",
	"etat_qualificatif",
}

// SeedDataStatus représente l'état du schéma et des données de démonstration
type SeedDataStatus struct {
	MissingTables []string `json:"missing_tables"`
	DemoDataExist bool     `json:"demo_data_exist"`
}

// SeedingService vérifie le schéma lu par les rapports et charge le jeu de démonstration
type SeedingService interface {
	// Vérifications d'état
	CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error)
	ValidateRequiredTables(ctx context.Context) error

	// Chargement (bases de développement uniquement)
	ApplySchema(ctx context.Context) error
	SeedDemo(ctx context.Context) error
}

// SchemaReady toutes les tables requises existent
func (s *SeedDataStatus) SchemaReady() bool {
	return len(s.MissingTables) == 0
}

// IsComplete schéma présent et jeu de démonstration chargé
func (s *SeedDataStatus) IsComplete() bool {
	return s.SchemaReady() && s.DemoDataExist
}

// GetMissingSeeds retourne la liste des éléments manquants
func (s *SeedDataStatus) GetMissingSeeds() []string {
	missing := append([]string(nil), s.MissingTables...)
	if !s.DemoDataExist {
		missing = append(missing, "demo_data")
	}
	return missing
}
