package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelcompanion/app/models"
	"travelcompanion/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// ProfileStore is the document store holding one profile per user
type ProfileStore interface {
	// CreateStub inserts an empty profile carrying only id and email
	CreateStub(ctx context.Context, userID, email string) error
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	// Upsert merges the update into the profile, creating it when absent
	Upsert(ctx context.Context, userID string, update models.ProfileUpdate) error
	Find(ctx context.Context, query models.SearchQuery) ([]models.UserProfile, error)
	// AppendSearchDate atomically appends one date to search_dates
	AppendSearchDate(ctx context.Context, userID, date string) error
}

// MongoProfileStore keeps profiles in the users collection
type MongoProfileStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoProfileStore creates a profile store on db
func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{
		collection: db.Collection(database.UsersCollection),
		now:        time.Now,
	}
}

func (s *MongoProfileStore) CreateStub(ctx context.Context, userID, email string) error {
	now := s.now().UTC()
	_, err := s.collection.InsertOne(ctx, models.UserProfile{
		ID:          userID,
		Email:       email,
		SearchDates: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert profile %s: %w", userID, err)
	}
	return nil
}

func (s *MongoProfileStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", userID, err)
	}
	return &profile, nil
}

func (s *MongoProfileStore) Upsert(ctx context.Context, userID string, update models.ProfileUpdate) error {
	now := s.now().UTC()
	_, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		profileUpdateDoc(update, now),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write profile %s: %w", userID, err)
	}
	return nil
}

func (s *MongoProfileStore) Find(ctx context.Context, query models.SearchQuery) ([]models.UserProfile, error) {
	cursor, err := s.collection.Find(ctx, searchFilter(query))
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.UserProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (s *MongoProfileStore) AppendSearchDate(ctx context.Context, userID, date string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "search_dates", Value: date}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: s.now().UTC()}}},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append search date for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// searchFilter turns a query into a bson filter, keeping filter order
func searchFilter(query models.SearchQuery) bson.D {
	filter := bson.D{}
	for _, f := range query.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	return filter
}

// profileUpdateDoc sets only the written fields so other fields survive
func profileUpdateDoc(update models.ProfileUpdate, now time.Time) bson.D {
	set := bson.D{
		{Key: "first_name", Value: update.FirstName},
		{Key: "last_name", Value: update.LastName},
		{Key: "age", Value: update.Age},
		{Key: "gender", Value: update.Gender},
		{Key: "language", Value: update.Language},
		{Key: "updated_at", Value: now},
	}
	if update.Hobbies != "" {
		set = append(set, bson.E{Key: "hobbies", Value: update.Hobbies})
	}
	if update.Bio != "" {
		set = append(set, bson.E{Key: "bio", Value: update.Bio})
	}
	if update.Location != nil {
		set = append(set, bson.E{Key: "location", Value: update.Location})
	}

	return bson.D{
		{Key: "$set", Value: set},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "created_at", Value: now},
			{Key: "search_dates", Value: bson.A{}},
		}},
	}
}
