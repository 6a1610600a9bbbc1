package services

import (
	"context"
	"errors"
	"fmt"

	"travelcompanion/app/models"
	"travelcompanion/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrCredentialNotFound = errors.New("credential not found")
)

// CredentialStore keeps email and password hash per user
type CredentialStore interface {
	// Create fails with ErrEmailExists when the email is taken
	Create(ctx context.Context, cred models.Credential) error
	FindByEmail(ctx context.Context, email string) (*models.Credential, error)
	Delete(ctx context.Context, userID string) error
}

// MongoCredentialStore keeps credentials in their own collection with a
// unique index on email
type MongoCredentialStore struct {
	collection *mongo.Collection
}

// NewMongoCredentialStore creates a credential store on db
func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{collection: db.Collection(database.CredentialsCollection)}
}

func (s *MongoCredentialStore) Create(ctx context.Context, cred models.Credential) error {
	_, err := s.collection.InsertOne(ctx, cred)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (s *MongoCredentialStore) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	err := s.collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&cred)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	return &cred, nil
}

func (s *MongoCredentialStore) Delete(ctx context.Context, userID string) error {
	res, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: userID}})
	if err != nil {
		return fmt.Errorf("failed to delete credential %s: %w", userID, err)
	}
	if res.DeletedCount == 0 {
		return ErrCredentialNotFound
	}
	return nil
}
