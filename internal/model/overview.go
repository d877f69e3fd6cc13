package model

import "time"

// EmployeeOverview is the employee dashboard summary.
type EmployeeOverview struct {
	Name            string     `json:"name"`
	Role            Role       `json:"role"`
	TotalTasks      int64      `json:"totalTasks"`
	Salary          float64    `json:"salary"`
	PaidPayments    int64      `json:"paidPayments"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
	IsVerified      bool       `json:"isVerified"`
}

// HROverview is the HR dashboard summary.
type HROverview struct {
	TotalEmployees    int64  `json:"totalEmployees"`
	VerifiedEmployees int64  `json:"verifiedEmployees"`
	PendingPayments   int64  `json:"pendingPayments"`
	Message           string `json:"message"`
}

// AdminOverview is the admin dashboard summary.
type AdminOverview struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalEmployees    int64   `json:"totalEmployees"`
	TotalHRs          int64   `json:"totalHRs"`
	TotalPayments     int64   `json:"totalPayments"`
	TotalSalaryBudget float64 `json:"totalSalaryBudget"`
}
