package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalysisLogsCollection historique des analyses sauvegardées
const AnalysisLogsCollection = "analysis_logs"

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// AnalysisLogValidator schéma de validation des documents d'analyse
func AnalysisLogValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"nom_utilisateur", "intitule", "scenario", "date_analyse"},
			"properties": bson.M{
				"nom_utilisateur": bson.M{
					"bsonType":    "string",
					"description": "Utilisateur ayant lancé l'analyse",
				},
				"intitule": bson.M{
					"bsonType":    "string",
					"description": "Titre de l'analyse",
				},
				"motif": bson.M{
					"bsonType":    "string",
					"description": "Motif de l'analyse",
				},
				"scenario": bson.M{
					"enum":        []string{"consolidation", "etat_synthetique"},
					"description": "Mode de rapport",
				},
				"parametres": bson.M{
					"bsonType":    "object",
					"description": "Filtres de recherche",
				},
				"metriques": bson.M{
					"bsonType":    "object",
					"description": "Métriques clés du résultat",
				},
				"date_analyse": bson.M{
					"bsonType":    "date",
					"description": "Date de l'analyse",
				},
			},
		},
	}
}

// EnsureAnalysisLogsCollection crée la collection (si absente) et ses index
func (cm *CollectionManager) EnsureAnalysisLogsCollection(ctx context.Context) error {
	exists, err := cm.CollectionExists(ctx, AnalysisLogsCollection)
	if err != nil {
		return fmt.Errorf("vérification collection %s: %w", AnalysisLogsCollection, err)
	}

	if !exists {
		opts := options.CreateCollection().SetValidator(AnalysisLogValidator())
		if err := cm.client.CreateCollection(ctx, AnalysisLogsCollection, opts); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", AnalysisLogsCollection, err)
		}
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date_analyse", Value: -1}}},
		{Keys: bson.D{{Key: "nom_utilisateur", Value: 1}, {Key: "date_analyse", Value: -1}}},
	}
	return cm.client.CreateIndexes(ctx, AnalysisLogsCollection, indexes)
}

func (cm *CollectionManager) CollectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return false, err
	}

	for _, coll := range collections {
		if coll == name {
			return true, nil
		}
	}
	return false, nil
}
