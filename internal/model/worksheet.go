package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Worksheet is a timesheet entry of the `worksheets` collection.
type Worksheet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Task      string             `bson:"task" json:"task"`
	Hours     float64            `bson:"hours" json:"hours"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// WorksheetUpdate carries the fields an employee may change on a task.
// Nil fields are left untouched.
type WorksheetUpdate struct {
	Task  *string    `bson:"task,omitempty"`
	Hours *float64   `bson:"hours,omitempty"`
	Date  *time.Time `bson:"date,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u WorksheetUpdate) IsEmpty() bool {
	return u.Task == nil && u.Hours == nil && u.Date == nil
}
