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

// IWorksheetRepository defines worksheet persistence.
//
// Update and Delete match on owner as well as id when owner is not empty.
type IWorksheetRepository interface {
	Create(ctx context.Context, ws *model.Worksheet) (primitive.ObjectID, error)
	ListByEmail(ctx context.Context, email string) ([]model.Worksheet, error)
	ListAll(ctx context.Context) ([]model.Worksheet, error)
	Update(ctx context.Context, id primitive.ObjectID, owner string, update model.WorksheetUpdate) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID, owner string) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// WorksheetRepository implements IWorksheetRepository on the `worksheets` collection.
type WorksheetRepository struct {
	collection *mongo.Collection
}

func NewWorksheetRepository(db *mongo.Database) *WorksheetRepository {
	return &WorksheetRepository{collection: db.Collection(worksheetsCollection)}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

func (r *WorksheetRepository) Create(ctx context.Context, ws *model.Worksheet) (primitive.ObjectID, error) {
	ws.CreatedAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, ws)
	if err != nil {
		return primitive.NilObjectID, err
	}

	ws.ID = insertedID(res)
	return ws.ID, nil
}

func (r *WorksheetRepository) ListByEmail(ctx context.Context, email string) ([]model.Worksheet, error) {
	return findMany[model.Worksheet](ctx, r.collection, bson.M{"email": email}, newestFirst)
}

func (r *WorksheetRepository) ListAll(ctx context.Context) ([]model.Worksheet, error) {
	return findMany[model.Worksheet](ctx, r.collection, bson.M{})
}

func (r *WorksheetRepository) Update(ctx context.Context, id primitive.ObjectID, owner string, update model.WorksheetUpdate) (*mongo.UpdateResult, error) {
	return r.collection.UpdateOne(ctx, ownedBy(id, owner), bson.M{"$set": update})
}

func (r *WorksheetRepository) Delete(ctx context.Context, id primitive.ObjectID, owner string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, ownedBy(id, owner))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *WorksheetRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"email": email})
}

func ownedBy(id primitive.ObjectID, owner string) bson.M {
	filter := bson.M{"_id": id}
	if owner != "" {
		filter["email"] = owner
	}
	return filter
}
