package services

import (
	"context"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// Reconciler is one per-domain reconciliation coordinator. ReconcileAll is a
// best-effort batch: a failure on one record is reported in the result and
// processing continues, in contrast with the strict atomicity of each
// individual posting.
type Reconciler interface {
	// ReconcileAll posts every unreconciled record of the domain and marks
	// the successes reconciled. It returns the count of records newly
	// reconciled plus per-record failure messages.
	ReconcileAll(ctx context.Context, userID string) (*domain.ReconcileResult, error)
}

// PayrollSvcFacade is the payroll coordinator: it logs employee payments and
// reconciles them into the ledger.
type PayrollSvcFacade interface {
	Reconciler

	// LogPayment records an employee payment awaiting reconciliation.
	LogPayment(ctx context.Context, req dto.LogEmployeePaymentRequest, userID string) (*domain.EmployeePayment, error)

	// Unreconciled lists payments not yet reconciled into the ledger.
	Unreconciled(ctx context.Context) ([]domain.EmployeePayment, error)
}

// SupplierSvcFacade is the supplier coordinator: it manages purchase orders
// and their payments, reconciles payments into the ledger, and drives the
// order payment status.
type SupplierSvcFacade interface {
	Reconciler

	// CreatePurchaseOrder registers a new order in UNPAID state.
	CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest, userID string) (*domain.PurchaseOrder, error)

	// LogPayment records a payment against a purchase order awaiting
	// reconciliation. The order must exist.
	LogPayment(ctx context.Context, req dto.LogPurchasePaymentRequest, userID string) (*domain.PurchasePayment, error)

	// Unreconciled lists payments not yet reconciled into the ledger.
	Unreconciled(ctx context.Context) ([]domain.PurchasePayment, error)
}

// ExpenseSvcFacade is the expense coordinator: it logs business expenses and
// reconciles them into the ledger.
type ExpenseSvcFacade interface {
	Reconciler

	// LogExpense records an expense awaiting reconciliation.
	LogExpense(ctx context.Context, req dto.LogExpenseRequest, userID string) (*domain.ExpenseRecord, error)

	// Unreconciled lists expenses not yet reconciled into the ledger.
	Unreconciled(ctx context.Context) ([]domain.ExpenseRecord, error)
}
