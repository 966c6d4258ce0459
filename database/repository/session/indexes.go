package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"harmony/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the session collection indexes. The two partial
// unique multikey indexes are the store-level overlap invariant: every
// scheduled session lists the minutes it covers in slotKeys, and Mongo
// refuses to index the same (party, date, minute) triple from two documents.
// Minute keys match the half-open overlap test exactly, so adjacent sessions
// never collide. The application-level re-check narrows the race window;
// these indexes close it.
func (repo *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	scheduledOnly := bson.M{"status": models.SessionScheduled}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "therapist_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "slotKeys", Value: 1},
			},
			Options: options.Index().
				SetName("uniq_therapist_slot").
				SetUnique(true).
				SetPartialFilterExpression(scheduledOnly),
		},
		{
			Keys: bson.D{
				{Key: "patient_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "slotKeys", Value: 1},
			},
			Options: options.Index().
				SetName("uniq_patient_slot").
				SetUnique(true).
				SetPartialFilterExpression(scheduledOnly),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("session_id").SetUnique(true),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
