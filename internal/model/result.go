package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertResult is returned by create endpoints.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResult is returned by update endpoints.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// NewUpdateResult converts a driver result into the API envelope.
func NewUpdateResult(res *mongo.UpdateResult) *UpdateResult {
	if res == nil {
		return &UpdateResult{Acknowledged: true}
	}
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

// MessageResponse is a bare `{message}` body.
type MessageResponse struct {
	Message string `json:"message"`
}
