package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() *MongoSessionRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoSessionRepo{coll: db.Collection("sessions")}
}

func (repo *MongoSessionRepo) findActiveOnDate(ctx context.Context, filter bson.M) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter["status"] = bson.M{"$ne": models.SessionCancelled}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// FindByTherapistAndDate returns all non-cancelled sessions for a therapist
// on a calendar date.
func (repo *MongoSessionRepo) FindByTherapistAndDate(ctx context.Context, therapistID, date string) ([]models.Session, error) {
	return repo.findActiveOnDate(ctx, bson.M{"therapist_id": therapistID, "date": date})
}

// FindByPatientAndDate returns all non-cancelled sessions for a patient on a
// calendar date.
func (repo *MongoSessionRepo) FindByPatientAndDate(ctx context.Context, patientID, date string) ([]models.Session, error) {
	return repo.findActiveOnDate(ctx, bson.M{"patient_id": patientID, "date": date})
}

// Insert persists a new session document. The partial unique indexes over
// (party, date, slotKeys) reject overlapping scheduled sessions; that
// rejection surfaces as ErrDuplicateSlot so the engine can tell a lost race
// apart from an infrastructure failure.
func (repo *MongoSessionRepo) Insert(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("error inserting session: %w", err)
	}
	return nil
}

// GetByID retrieves one session by its id.
func (repo *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("session with id %s not found", id)
		}
		return nil, fmt.Errorf("error fetching session %s: %w", id, err)
	}
	return &session, nil
}

// UpdateStatus transitions a session's status. Cancelling removes the
// session from the partial unique indexes, freeing its minutes.
func (repo *MongoSessionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating session %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session with id %s not found", id)
	}
	return nil
}

func (repo *MongoSessionRepo) listAll(ctx context.Context, filter bson.M) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// ListByTherapist returns all sessions for a therapist, ascending by start.
func (repo *MongoSessionRepo) ListByTherapist(ctx context.Context, therapistID string) ([]models.Session, error) {
	return repo.listAll(ctx, bson.M{"therapist_id": therapistID})
}

// ListByPatient returns all sessions for a patient, ascending by start.
func (repo *MongoSessionRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Session, error) {
	return repo.listAll(ctx, bson.M{"patient_id": patientID})
}
