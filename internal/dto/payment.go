package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// LogEmployeePaymentRequest defines the data needed to log a payroll
// disbursement awaiting reconciliation.
type LogEmployeePaymentRequest struct {
	EmployeeName string          `json:"employeeName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required,gt=0"`
	PaymentDate  time.Time       `json:"paymentDate" binding:"required"`
	Notes        string          `json:"notes"`
	// AccountCode optionally overrides the payroll expense account.
	AccountCode string `json:"accountCode"`
}

// EmployeePaymentResponse mirrors domain.EmployeePayment.
type EmployeePaymentResponse struct {
	PaymentID    string          `json:"paymentID"`
	EmployeeName string          `json:"employeeName"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Notes        string          `json:"notes"`
	AccountCode  string          `json:"accountCode,omitempty"`
	Reconciled   bool            `json:"reconciled"`
}

// ToEmployeePaymentResponse converts a domain.EmployeePayment to its DTO
func ToEmployeePaymentResponse(p *domain.EmployeePayment) EmployeePaymentResponse {
	return EmployeePaymentResponse{
		PaymentID:    p.PaymentID,
		EmployeeName: p.EmployeeName,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate,
		Notes:        p.Notes,
		AccountCode:  p.AccountCode,
		Reconciled:   p.Reconciled,
	}
}

// ToEmployeePaymentResponses converts a slice of employee payments to DTOs
func ToEmployeePaymentResponses(payments []domain.EmployeePayment) []EmployeePaymentResponse {
	out := make([]EmployeePaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToEmployeePaymentResponse(&payments[i])
	}
	return out
}

// CreatePurchaseOrderRequest defines the data needed to register a purchase
// order. Orders start UNPAID.
type CreatePurchaseOrderRequest struct {
	SupplierName string          `json:"supplierName" binding:"required"`
	OrderTotal   decimal.Decimal `json:"orderTotal" binding:"required,gt=0"`
}

// PurchaseOrderResponse mirrors domain.PurchaseOrder.
type PurchaseOrderResponse struct {
	PurchaseOrderID string          `json:"purchaseOrderID"`
	SupplierName    string          `json:"supplierName"`
	OrderTotal      decimal.Decimal `json:"orderTotal"`
	PaymentStatus   string          `json:"paymentStatus"`
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder to its DTO
func ToPurchaseOrderResponse(o *domain.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		PurchaseOrderID: o.PurchaseOrderID,
		SupplierName:    o.SupplierName,
		OrderTotal:      o.OrderTotal,
		PaymentStatus:   string(o.PaymentStatus),
	}
}

// LogPurchasePaymentRequest defines the data needed to log a payment against
// a purchase order.
type LogPurchasePaymentRequest struct {
	PurchaseOrderID string          `json:"purchaseOrderID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	PaymentDate     time.Time       `json:"paymentDate" binding:"required"`
	// IsComplete forces the order to PAID regardless of the running total.
	IsComplete bool `json:"isComplete"`
	// AccountCode optionally overrides the supplier expense account.
	AccountCode string `json:"accountCode"`
}

// PurchasePaymentResponse mirrors domain.PurchasePayment.
type PurchasePaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	PurchaseOrderID string          `json:"purchaseOrderID"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"paymentDate"`
	IsComplete      bool            `json:"isComplete"`
	AccountCode     string          `json:"accountCode,omitempty"`
	Reconciled      bool            `json:"reconciled"`
}

// ToPurchasePaymentResponse converts a domain.PurchasePayment to its DTO
func ToPurchasePaymentResponse(p *domain.PurchasePayment) PurchasePaymentResponse {
	return PurchasePaymentResponse{
		PaymentID:       p.PaymentID,
		PurchaseOrderID: p.PurchaseOrderID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		IsComplete:      p.IsComplete,
		AccountCode:     p.AccountCode,
		Reconciled:      p.Reconciled,
	}
}

// ToPurchasePaymentResponses converts a slice of purchase payments to DTOs
func ToPurchasePaymentResponses(payments []domain.PurchasePayment) []PurchasePaymentResponse {
	out := make([]PurchasePaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPurchasePaymentResponse(&payments[i])
	}
	return out
}

// LogExpenseRequest defines the data needed to log a business expense.
type LogExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	Description string          `json:"description"`
	// AccountCode optionally overrides the general expense account.
	AccountCode string `json:"accountCode"`
}

// ExpenseResponse mirrors domain.ExpenseRecord.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Description string          `json:"description"`
	AccountCode string          `json:"accountCode,omitempty"`
	Reconciled  bool            `json:"reconciled"`
}

// ToExpenseResponse converts a domain.ExpenseRecord to its DTO
func ToExpenseResponse(e *domain.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Category:    e.Category,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Description: e.Description,
		AccountCode: e.AccountCode,
		Reconciled:  e.Reconciled,
	}
}

// ToExpenseResponses converts a slice of expenses to DTOs
func ToExpenseResponses(expenses []domain.ExpenseRecord) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}
