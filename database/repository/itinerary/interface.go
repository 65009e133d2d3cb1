package itineraryRepo

import (
	"context"
	"errors"

	"tripplanner/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("itinerary not found")

type ItineraryRepository interface {
	Create(ctx context.Context, it *models.Itinerary) (string, error)
	GetByID(ctx context.Context, id string) (*models.Itinerary, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Itinerary, error)
}

type mongoItineraryRepo struct {
	coll *mongo.Collection
}

// NewMongoItineraryRepo returns an ItineraryRepository backed by the itineraries collection.
func NewMongoItineraryRepo(client *mongo.Client, dbName string) (ItineraryRepository, error) {
	repo := &mongoItineraryRepo{
		coll: client.Database(dbName).Collection("itineraries"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}
