package repository

import (
	"context"

	"github.com/employetica/server/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IPaymentRepository defines payment persistence.
type IPaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error)
	ExistsForPeriod(ctx context.Context, employeeID, month string, year int) (bool, error)
	ListAll(ctx context.Context) ([]model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	ListPaidByEmail(ctx context.Context, email string, skip, limit int64) ([]model.Payment, error)
	CountPaidByEmail(ctx context.Context, email string) (int64, error)
	LatestPaidByEmail(ctx context.Context, email string) (*model.Payment, error)
	Settle(ctx context.Context, id primitive.ObjectID, s model.PaymentSettlement) (*mongo.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.PaymentStatus) (int64, error)
}

// PaymentRepository implements IPaymentRepository on the `payments` collection.
type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{collection: db.Collection(paymentsCollection)}
}

var latestPaymentFirst = bson.D{{Key: "paymentDate", Value: -1}}

func paidBy(email string) bson.M {
	return bson.M{"employeeEmail": email, "status": model.PaymentStatusPaid}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}

	p.ID = insertedID(res)
	return p.ID, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Payment, error) {
	return findOne[model.Payment](ctx, r.collection, bson.M{"_id": id})
}

func (r *PaymentRepository) ExistsForPeriod(ctx context.Context, employeeID, month string, year int) (bool, error) {
	n, err := r.collection.CountDocuments(ctx,
		bson.M{"employeeId": employeeID, "month": month, "year": year},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]model.Payment, error) {
	return findMany[model.Payment](ctx, r.collection, bson.M{})
}

func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	return findMany[model.Payment](ctx, r.collection, bson.M{"employeeEmail": email})
}

func (r *PaymentRepository) ListPaidByEmail(ctx context.Context, email string, skip, limit int64) ([]model.Payment, error) {
	opts := options.Find().
		SetSort(latestPaymentFirst).
		SetSkip(skip).
		SetLimit(limit)

	return findMany[model.Payment](ctx, r.collection, paidBy(email), opts)
}

func (r *PaymentRepository) CountPaidByEmail(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, paidBy(email))
}

func (r *PaymentRepository) LatestPaidByEmail(ctx context.Context, email string) (*model.Payment, error) {
	return findOne[model.Payment](ctx, r.collection, paidBy(email), options.FindOne().SetSort(latestPaymentFirst))
}

func (r *PaymentRepository) Settle(ctx context.Context, id primitive.ObjectID, s model.PaymentSettlement) (*mongo.UpdateResult, error) {
	return r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": s})
}

func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *PaymentRepository) CountByStatus(ctx context.Context, status model.PaymentStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}
