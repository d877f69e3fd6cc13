package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes lists the indexes every collection must carry.
//
// The unique indexes back two invariants the handlers rely on: one user per
// email, one payment request per employee per month.
var collectionIndexes = map[string][]mongo.IndexModel{
	UsersCollection: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_1").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "isVerified", Value: 1}},
			Options: options.Index().SetName("role_1_isVerified_1"),
		},
	},
	WorksheetsCollection: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("email_1_createdAt_-1"),
		},
	},
	PaymentsCollection: {
		{
			Keys: bson.D{
				{Key: "employeeId", Value: 1},
				{Key: "month", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetName("employeeId_1_month_1_year_1").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "employeeEmail", Value: 1},
				{Key: "status", Value: 1},
				{Key: "paymentDate", Value: -1},
			},
			Options: options.Index().SetName("employeeEmail_1_status_1_paymentDate_-1"),
		},
	},
	ContactsCollection: {
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_-1"),
		},
	},
}

// Migrate creates the indexes of every collection.
//
// CreateMany is idempotent for identical specs, so it runs on every boot.
// A failure on one collection (e.g. pre-existing duplicates blocking a unique
// index) is logged and returned after the remaining collections were processed.
func (db *Database) Migrate(ctx context.Context, logger *zerolog.Logger) error {
	var firstErr error

	for name, models := range collectionIndexes {
		created, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			logger.Error().Err(err).Str("collection", name).Msg("failed to ensure indexes")
			if firstErr == nil {
				firstErr = fmt.Errorf("ensuring indexes on %s: %w", name, err)
			}
			continue
		}

		logger.Info().
			Str("collection", name).
			Strs("indexes", created).
			Msg("indexes up to date")
	}

	return firstErr
}
