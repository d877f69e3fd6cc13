package repository

import (
	"context"
	"time"

	"github.com/employetica/server/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IUserRepository defines user persistence.
//
// Find methods return (nil, nil) when no user matches.
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ListVerified(ctx context.Context) ([]model.User, error)
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*mongo.UpdateResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*mongo.UpdateResult, error)
	SetFired(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error)
	SetSalary(ctx context.Context, id primitive.ObjectID, salary float64) (*mongo.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	CountVerifiedByRole(ctx context.Context, role model.Role) (int64, error)
	SumSalaryByRole(ctx context.Context, role model.Role) (float64, error)
}

// UserRepository implements IUserRepository on the `user` collection.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}

	user.ID = insertedID(res)
	return user.ID, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"_id": id})
}

func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return findMany[model.User](ctx, r.collection, bson.M{"role": role})
}

func (r *UserRepository) ListVerified(ctx context.Context) ([]model.User, error) {
	return findMany[model.User](ctx, r.collection, bson.M{"isVerified": true})
}

func (r *UserRepository) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*mongo.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"isVerified": verified})
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role model.Role) (*mongo.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"role": role})
}

func (r *UserRepository) SetFired(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"fired": true})
}

func (r *UserRepository) SetSalary(ctx context.Context, id primitive.ObjectID, salary float64) (*mongo.UpdateResult, error) {
	return r.set(ctx, id, bson.M{"salary": salary})
}

func (r *UserRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	return r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}

func (r *UserRepository) CountVerifiedByRole(ctx context.Context, role model.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role, "isVerified": true})
}

// SumSalaryByRole adds up the salary of every user holding role; 0 when there is none.
func (r *UserRepository) SumSalaryByRole(ctx context.Context, role model.Role) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": role}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$salary"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return 0, err
	}

	if len(totals) == 0 {
		return 0, nil
	}
	return totals[0].Total, nil
}
