package patientRepo

import (
	"context"
	"fmt"
	"time"

	"harmony/database"
	"harmony/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a new instance of MongoPatientRepo.
func NewMongoPatientRepo() *MongoPatientRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoPatientRepo{coll: db.Collection("patients")}
}

// GetByID retrieves a patient document by ID.
func (repo *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient); err != nil {
		return nil, fmt.Errorf("error fetching patient with id %s: %w", id, err)
	}
	return &patient, nil
}

// Create inserts a new patient document.
func (repo *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, patient); err != nil {
		return fmt.Errorf("error creating patient: %w", err)
	}
	return nil
}

// Update replaces an existing patient document.
func (repo *MongoPatientRepo) Update(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": patient.ID}, bson.M{"$set": patient})
	if err != nil {
		return fmt.Errorf("error updating patient %s: %w", patient.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s not found", patient.ID)
	}
	return nil
}

// Delete removes a patient document.
func (repo *MongoPatientRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting patient %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}

// List returns all patient documents sorted by name.
func (repo *MongoPatientRepo) List(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients: %w", err)
	}
	return patients, nil
}

// SearchByName returns patients whose name matches the query,
// case-insensitively.
func (repo *MongoPatientRepo) SearchByName(ctx context.Context, query string) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": primitive.Regex{Pattern: query, Options: "i"}}}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients: %w", err)
	}
	return patients, nil
}
