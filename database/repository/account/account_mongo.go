package accountRepo

import (
	"context"
	"fmt"
	"time"

	"harmony/database"
	"harmony/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountRepository defines the data access methods for church accounts.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
}

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo constructs a new instance of MongoAccountRepo.
func NewMongoAccountRepo() *MongoAccountRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoAccountRepo{coll: db.Collection("accounts")}
}

// GetByEmail retrieves an account by its login email.
func (repo *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("account with email %s not found", email)
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	return &account, nil
}

// Create inserts a new account document.
func (repo *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}
