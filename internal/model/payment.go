package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the lifecycle state of a salary payment request.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// DefaultApprover is recorded when a payment is settled without an explicit approver.
const DefaultApprover = "Auto Stripe"

// Payment is a salary payment request of the `payments` collection.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EmployeeID    string             `bson:"employeeId" json:"employeeId"`
	EmployeeName  string             `bson:"employeeName" json:"employeeName"`
	EmployeeEmail string             `bson:"employeeEmail" json:"employeeEmail"`
	Amount        float64            `bson:"amount" json:"amount"`
	Month         string             `bson:"month" json:"month"`
	Year          int                `bson:"year" json:"year"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	ApprovedBy    *string            `bson:"approvedBy" json:"approvedBy"`
	PaymentDate   *time.Time         `bson:"paymentDate" json:"paymentDate"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// PaymentSettlement is the set of fields written when a payment is settled.
type PaymentSettlement struct {
	TransactionID string        `bson:"transactionId"`
	PaymentDate   time.Time     `bson:"paymentDate"`
	Status        PaymentStatus `bson:"status"`
	ApprovedBy    string        `bson:"approvedBy"`
}

// PaymentHistory is a page of paid payments plus the total across all pages.
type PaymentHistory struct {
	Payments   []Payment `json:"payments"`
	TotalCount int64     `json:"totalCount"`
}
