// Package database contains the logic for establishing
// the connection to the MongoDB deployment.
//
// It handles:
//   - building client options from config (Stable API v1, pool size)
//   - wiring a command monitor that logs commands locally and flags slow ones
//   - exposing the Employetica collections by name
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/employetica/server/internal/config"
	loggerConfig "github.com/employetica/server/internal/logger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names inside the Employetica database.
const (
	UsersCollection      = "user"
	WorksheetsCollection = "worksheets"
	PaymentsCollection   = "payments"
	ContactsCollection   = "contacts"
)

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// Database wraps the mongo client, the selected database and a logger.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB and pings the primary.
//
// In the local environment every command is logged; in every environment
// commands slower than observability.logging.slow_query_threshold are warned.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)).
		SetConnectTimeout(time.Duration(cfg.Database.ConnectTimeout) * time.Second).
		SetMonitor(newCommandMonitor(cfg, logger))

	if cfg.Database.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}, nil
}

// Collection returns a handle to the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Ping checks the connection to the primary.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}

// newCommandMonitor builds the driver command monitor.
func newCommandMonitor(cfg *config.Config, logger *zerolog.Logger) *event.CommandMonitor {
	threshold := cfg.Observability.Logging.SlowQueryThreshold

	var local *zerolog.Logger
	if cfg.IsLocal() {
		l := loggerConfig.NewMongoLogger(logger.GetLevel())
		local = &l
	}

	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			if local == nil {
				return
			}
			local.Debug().
				Str("command", e.CommandName).
				Str("db", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Str("body", commandBody(e.Command)).
				Msg("mongo command started")
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			if threshold > 0 && e.Duration > threshold {
				logger.Warn().
					Str("command", e.CommandName).
					Dur("duration", e.Duration).
					Dur("threshold", threshold).
					Msg("slow mongo command")
				return
			}
			if local != nil {
				local.Debug().
					Str("command", e.CommandName).
					Int64("request_id", e.RequestID).
					Dur("duration", e.Duration).
					Msg("mongo command succeeded")
			}
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Error().
				Str("command", e.CommandName).
				Dur("duration", e.Duration).
				Str("failure", e.Failure).
				Msg("mongo command failed")
		},
	}
}

func commandBody(raw bson.Raw) string {
	if raw == nil {
		return ""
	}
	return raw.String()
}
