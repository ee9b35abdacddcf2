package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of a purchase order has been paid.
// Transitions are one-way: UNPAID -> PARTIALLY_PAID -> PAID.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "UNPAID"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusPaid          PaymentStatus = "PAID"
)

// EmployeePayment is a payroll disbursement owned by the payroll collaborator.
// Reconciled is flipped true only by the payroll coordinator, and only after
// the corresponding ledger transaction is durably committed.
type EmployeePayment struct {
	PaymentID    string          `json:"paymentID"`
	EmployeeName string          `json:"employeeName"`
	Amount       decimal.Decimal `json:"amount"` // Positive disbursed amount
	PaymentDate  time.Time       `json:"paymentDate"`
	Notes        string          `json:"notes"`
	AccountCode  string          `json:"accountCode"` // Optional expense account override
	Reconciled   bool            `json:"reconciled"`
}

// PurchasePayment is a payment against a purchase order.
type PurchasePayment struct {
	PaymentID       string          `json:"paymentID"`
	PurchaseOrderID string          `json:"purchaseOrderID"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"paymentDate"`
	IsComplete      bool            `json:"isComplete"` // Flagged complete forces the order to PAID
	AccountCode     string          `json:"accountCode"`
	Reconciled      bool            `json:"reconciled"`
}

// PurchaseOrder carries the payment status driven by the supplier coordinator.
type PurchaseOrder struct {
	PurchaseOrderID string          `json:"purchaseOrderID"`
	SupplierName    string          `json:"supplierName"`
	OrderTotal      decimal.Decimal `json:"orderTotal"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
}

// ExpenseRecord is a logged business expense awaiting reconciliation.
type ExpenseRecord struct {
	ExpenseID   string          `json:"expenseID"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Description string          `json:"description"`
	AccountCode string          `json:"accountCode"`
	Reconciled  bool            `json:"reconciled"`
}
