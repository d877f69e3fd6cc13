// Package repository handles all interactions with the database.
//
// It contains the MongoDB queries used to fetch, persist or update
// documents, abstracting the driver away from the service layer.
package repository

import (
	"context"
	"errors"

	"github.com/employetica/server/internal/database"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users      IUserRepository
	Worksheets IWorksheetRepository
	Payments   IPaymentRepository
	Contacts   IContactRepository
}

// NewRepositories constructs the repository container on top of db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Worksheets: NewWorksheetRepository(db),
		Payments:   NewPaymentRepository(db),
		Contacts:   NewContactRepository(db),
	}
}

// Collection names are owned by the database package; aliases keep call sites short.
const (
	usersCollection      = database.UsersCollection
	worksheetsCollection = database.WorksheetsCollection
	paymentsCollection   = database.PaymentsCollection
	contactsCollection   = database.ContactsCollection
)

// findMany runs a find and decodes every document. It never returns a nil slice,
// so empty results encode as [] rather than null.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// findOne decodes a single document, returning (nil, nil) when none matches.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var item T
	err := coll.FindOne(ctx, filter, opts...).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// insertedID extracts the ObjectID assigned by InsertOne.
func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}
