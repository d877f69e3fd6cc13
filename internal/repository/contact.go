package repository

import (
	"context"
	"time"

	"github.com/employetica/server/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IContactRepository defines contact message persistence.
type IContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) (primitive.ObjectID, error)
	ListAll(ctx context.Context) ([]model.ContactMessage, error)
}

// ContactRepository implements IContactRepository on the `contacts` collection.
type ContactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{collection: db.Collection(contactsCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, msg *model.ContactMessage) (primitive.ObjectID, error) {
	msg.CreatedAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}

	msg.ID = insertedID(res)
	return msg.ID, nil
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]model.ContactMessage, error) {
	return findMany[model.ContactMessage](ctx, r.collection, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}
