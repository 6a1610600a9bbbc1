package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"travelcompanion/config"

	"github.com/gocql/gocql"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the profile store
const (
	UsersCollection       = "users"
	CredentialsCollection = "credentials"
)

var (
	// MongoClient backs the profile store and credentials
	MongoClient *mongo.Client
	// MongoDB is the application database
	MongoDB *mongo.Database
	// CassandraSession backs session backup and search history; nil when disabled
	CassandraSession *gocql.Session
)

// InitDB connects to MongoDB and, when configured, Cassandra.
// Cassandra is optional: failing to reach it is logged, not fatal.
func InitDB(cfg *config.Config) error {
	if cfg.ProfileStore == config.StoreMongo {
		if err := InitMongo(cfg); err != nil {
			return fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
	}

	if cfg.CassandraEnabled() {
		if err := InitCassandra(cfg); err != nil {
			log.Printf("⚠️ Cassandra unavailable, session backup and search history disabled: %v", err)
		}
	}

	log.Println("✅ Database services initialized successfully")
	return nil
}

// InitMongo opens the MongoDB client and ensures indexes
func InitMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("🔌 Connecting to MongoDB at %s...", cfg.MongoURI)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	MongoDB = client.Database(cfg.MongoDatabase)

	if err := ensureMongoIndexes(ctx, MongoDB); err != nil {
		return err
	}

	log.Printf("📊 Connected to MongoDB database: %s", cfg.MongoDatabase)
	return nil
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CredentialsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create credentials email index: %w", err)
	}

	// Every search starts with the city filter
	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location.city", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create users location index: %w", err)
	}
	return nil
}

// InitCassandra initializes the Cassandra session
func InitCassandra(cfg *config.Config) error {
	cluster := gocql.NewCluster(cfg.CassandraHost)
	cluster.Port = cfg.CassandraPort
	cluster.Keyspace = cfg.CassandraKeyspace
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: cfg.CassandraUsername,
		Password: cfg.CassandraPassword,
	}

	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 10 * time.Second
	cluster.ConnectTimeout = 10 * time.Second
	cluster.NumConns = 4

	log.Printf("🔌 Connecting to Cassandra at %s:%d...", cfg.CassandraHost, cfg.CassandraPort)

	session, err := cluster.CreateSession()
	if err != nil {
		return fmt.Errorf("failed to connect to Cassandra: %w", err)
	}

	if err := ensureCassandraSchema(session); err != nil {
		session.Close()
		return err
	}

	CassandraSession = session
	log.Printf("📊 Connected to keyspace: %s", cfg.CassandraKeyspace)
	return nil
}

func ensureCassandraSchema(session *gocql.Session) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id text PRIMARY KEY,
			user_id text,
			email text,
			is_active boolean,
			created_at timestamp,
			expires_at timestamp
		)`,
		`CREATE TABLE IF NOT EXISTS search_history (
			user_id text,
			searched_at timestamp,
			location text,
			gender text,
			age text,
			language text,
			travel_date text,
			match_count int,
			PRIMARY KEY (user_id, searched_at)
		) WITH CLUSTERING ORDER BY (searched_at DESC)`,
	}
	for _, stmt := range statements {
		if err := session.Query(stmt).Exec(); err != nil {
			return fmt.Errorf("failed to create Cassandra schema: %w", err)
		}
	}
	return nil
}

// CloseAllConnections closes every open database connection
func CloseAllConnections() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := MongoClient.Disconnect(ctx); err != nil {
			log.Printf("⚠️ MongoDB disconnect failed: %v", err)
		} else {
			log.Println("✅ MongoDB connection closed")
		}
	}
	if CassandraSession != nil {
		CassandraSession.Close()
		log.Println("✅ Cassandra connection closed")
	}
}

// MongoHealthCheck pings MongoDB
func MongoHealthCheck(ctx context.Context) error {
	if MongoClient == nil {
		return errors.New("mongo client is not initialized")
	}
	return MongoClient.Ping(ctx, nil)
}

// CassandraHealthCheck performs a health check on Cassandra
func CassandraHealthCheck() error {
	if CassandraSession == nil {
		return errors.New("cassandra session is not initialized")
	}
	return CassandraSession.Query("SELECT release_version FROM system.local").Exec()
}
