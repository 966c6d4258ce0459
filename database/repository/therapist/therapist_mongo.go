package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"harmony/database"
	"harmony/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo constructs a new instance of MongoTherapistRepo.
func NewMongoTherapistRepo() *MongoTherapistRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoTherapistRepo{coll: db.Collection("therapists")}
}

// GetByID retrieves a therapist document by ID.
func (repo *MongoTherapistRepo) GetByID(ctx context.Context, id string) (*models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var therapist models.Therapist
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&therapist); err != nil {
		return nil, fmt.Errorf("error fetching therapist with id %s: %w", id, err)
	}
	return &therapist, nil
}

// Create inserts a new therapist document.
func (repo *MongoTherapistRepo) Create(ctx context.Context, therapist *models.Therapist) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, therapist); err != nil {
		return fmt.Errorf("error creating therapist: %w", err)
	}
	return nil
}

// Update replaces an existing therapist document.
func (repo *MongoTherapistRepo) Update(ctx context.Context, therapist *models.Therapist) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": therapist.ID}, bson.M{"$set": therapist})
	if err != nil {
		return fmt.Errorf("error updating therapist %s: %w", therapist.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", therapist.ID)
	}
	return nil
}

// Delete removes a therapist document.
func (repo *MongoTherapistRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting therapist %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}

// List returns all therapist documents sorted by name.
func (repo *MongoTherapistRepo) List(ctx context.Context) ([]models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var therapists []models.Therapist
	if err := cursor.All(ctx, &therapists); err != nil {
		return nil, fmt.Errorf("error decoding therapists: %w", err)
	}
	return therapists, nil
}
