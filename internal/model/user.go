// Package model holds the documents persisted in the Employetica database
// and the small result envelopes returned by write endpoints.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level of a user.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "Admin"
)

func (r Role) String() string {
	return string(r)
}

// User is a document of the `user` collection.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Role          Role               `bson:"role" json:"role"`
	Salary        float64            `bson:"salary" json:"salary"`
	BankAccountNo string             `bson:"bank_account_no,omitempty" json:"bank_account_no,omitempty"`
	Designation   string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Photo         string             `bson:"photo,omitempty" json:"photo,omitempty"`
	IsVerified    bool               `bson:"isVerified" json:"isVerified"`
	Fired         bool               `bson:"fired" json:"fired"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// HasRole reports whether the user holds exactly the given role.
func (u *User) HasRole(role Role) bool {
	return u != nil && u.Role == role
}
