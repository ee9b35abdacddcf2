package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// PayrollPaymentRepository owns the employee_payments table on behalf of the
// payroll collaborator. Only the payroll coordinator flips reconciled.
type PayrollPaymentRepository interface {
	SaveEmployeePayment(ctx context.Context, payment domain.EmployeePayment) error
	ListUnreconciledEmployeePayments(ctx context.Context) ([]domain.EmployeePayment, error)
	MarkEmployeePaymentReconciled(ctx context.Context, paymentID string) error
}

// PurchasePaymentRepository owns purchase_payments and the payment status of
// purchase_orders.
type PurchasePaymentRepository interface {
	SavePurchasePayment(ctx context.Context, payment domain.PurchasePayment) error
	ListUnreconciledPurchasePayments(ctx context.Context) ([]domain.PurchasePayment, error)
	MarkPurchasePaymentReconciled(ctx context.Context, paymentID string) error

	FindPurchaseOrderByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error)
	SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error
	// TotalPaidForOrder sums all recorded payments against the order,
	// reconciled or not.
	TotalPaidForOrder(ctx context.Context, purchaseOrderID string) (decimal.Decimal, error)
	UpdatePurchaseOrderStatus(ctx context.Context, purchaseOrderID string, status domain.PaymentStatus) error
}

// ExpenseRepository owns the expenses table on behalf of the expense
// collaborator.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error
	ListUnreconciledExpenses(ctx context.Context) ([]domain.ExpenseRecord, error)
	MarkExpenseReconciled(ctx context.Context, expenseID string) error
}
