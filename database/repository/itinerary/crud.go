package itineraryRepo

import (
	"context"
	"errors"
	"time"

	"tripplanner/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a generated itinerary and returns its ID.
func (r *mongoItineraryRepo) Create(ctx context.Context, it *models.Itinerary) (string, error) {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, it); err != nil {
		return "", err
	}
	return it.ID, nil
}

// GetByID returns an itinerary by its ID.
func (r *mongoItineraryRepo) GetByID(ctx context.Context, id string) (*models.Itinerary, error) {
	var it models.Itinerary
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&it)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListRecent returns the newest itineraries first.
func (r *mongoItineraryRepo) ListRecent(ctx context.Context, limit int64) ([]models.Itinerary, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"result": 0})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	itineraries := []models.Itinerary{}
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}
