package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeePayment represents a row in the employee_payments table.
type EmployeePayment struct {
	PaymentID    string          `db:"payment_id"`
	EmployeeName string          `db:"employee_name"`
	Amount       decimal.Decimal `db:"amount"`
	PaymentDate  time.Time       `db:"payment_date"`
	Notes        string          `db:"notes"`
	AccountCode  string          `db:"account_code"`
	Reconciled   bool            `db:"reconciled"`
	CreatedAt    time.Time       `db:"created_at"`
}

// PurchasePayment represents a row in the purchase_payments table.
type PurchasePayment struct {
	PaymentID       string          `db:"payment_id"`
	PurchaseOrderID string          `db:"purchase_order_id"`
	Amount          decimal.Decimal `db:"amount"`
	PaymentDate     time.Time       `db:"payment_date"`
	IsComplete      bool            `db:"is_complete"`
	AccountCode     string          `db:"account_code"`
	Reconciled      bool            `db:"reconciled"`
	CreatedAt       time.Time       `db:"created_at"`
}

// PurchaseOrder represents a row in the purchase_orders table.
type PurchaseOrder struct {
	PurchaseOrderID string          `db:"purchase_order_id"`
	SupplierName    string          `db:"supplier_name"`
	OrderTotal      decimal.Decimal `db:"order_total"`
	PaymentStatus   string          `db:"payment_status"`
	CreatedAt       time.Time       `db:"created_at"`
	LastUpdatedAt   time.Time       `db:"last_updated_at"`
}

// Expense represents a row in the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	ExpenseDate time.Time       `db:"expense_date"`
	Description string          `db:"description"`
	AccountCode string          `db:"account_code"`
	Reconciled  bool            `db:"reconciled"`
	CreatedAt   time.Time       `db:"created_at"`
}
