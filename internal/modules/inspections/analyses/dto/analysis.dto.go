package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scénarios d'analyse (mode de rapport)
const (
	ScenarioConsolidation   = "consolidation"
	ScenarioEtatSynthetique = "etat_synthetique"
)

// CreateAnalysisRequest sauvegarde d'une analyse lancée depuis l'écran
type CreateAnalysisRequest struct {
	Intitule       string                 `json:"intitule" validate:"required,max=200"`
	NomUtilisateur string                 `json:"nom_utilisateur" validate:"required,max=100"`
	Motif          string                 `json:"motif" validate:"max=500"`
	Scenario       string                 `json:"scenario" validate:"omitempty,oneof=consolidation etat_synthetique"`
	Parametres     map[string]interface{} `json:"parametres"`
	Metriques      map[string]interface{} `json:"metriques"`
}

// Analysis document de la collection analysis_logs
type Analysis struct {
	ID             primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	NomUtilisateur string                 `json:"nom_utilisateur" bson:"nom_utilisateur"`
	Intitule       string                 `json:"intitule" bson:"intitule"`
	Motif          string                 `json:"motif,omitempty" bson:"motif,omitempty"`
	Scenario       string                 `json:"scenario" bson:"scenario"`
	Parametres     map[string]interface{} `json:"parametres,omitempty" bson:"parametres,omitempty"`
	Metriques      map[string]interface{} `json:"metriques,omitempty" bson:"metriques,omitempty"`
	DateAnalyse    time.Time              `json:"date_analyse" bson:"date_analyse"`
}
