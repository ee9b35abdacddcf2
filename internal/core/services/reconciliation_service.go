package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
	"github.com/bizbooks/backoffice_ledger/internal/utils/accounting"
)

// The coordinators derive each ledger transaction id from the source record
// id. Re-running a batch after a partial failure is therefore safe: records
// whose posting committed but whose reconciled flag was not flipped are
// absorbed by the recorder's idempotency.
const (
	payrollTxnPrefix  = "payroll-"
	purchaseTxnPrefix = "purchase-"
	expenseTxnPrefix  = "expense-"
)

// --- Payroll coordinator ---

type payrollService struct {
	BaseService
	payrollRepo portsrepo.PayrollPaymentRepository
	recorder    portssvc.RecorderSvcFacade
}

// NewPayrollService creates the payroll reconciliation coordinator.
func NewPayrollService(payrollRepo portsrepo.PayrollPaymentRepository, recorder portssvc.RecorderSvcFacade) portssvc.PayrollSvcFacade {
	return &payrollService{payrollRepo: payrollRepo, recorder: recorder}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func (s *payrollService) LogPayment(ctx context.Context, req dto.LogEmployeePaymentRequest, userID string) (*domain.EmployeePayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	payment := domain.EmployeePayment{
		PaymentID:    uuid.NewString(),
		EmployeeName: req.EmployeeName,
		Amount:       req.Amount,
		PaymentDate:  req.PaymentDate,
		Notes:        req.Notes,
		AccountCode:  req.AccountCode,
		Reconciled:   false,
	}

	if err := s.payrollRepo.SaveEmployeePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to log employee payment", slog.String("employee_name", req.EmployeeName))
		return nil, err
	}

	s.LogInfo(ctx, "Employee payment logged",
		slog.String("payment_id", payment.PaymentID),
		slog.String("employee_name", payment.EmployeeName))
	return &payment, nil
}

func (s *payrollService) Unreconciled(ctx context.Context) ([]domain.EmployeePayment, error) {
	return s.payrollRepo.ListUnreconciledEmployeePayments(ctx)
}

// ReconcileAll posts every unreconciled employee payment as a PAYROLL
// transaction and marks the successes reconciled. Best-effort: one bad record
// never stops the batch.
func (s *payrollService) ReconcileAll(ctx context.Context, userID string) (*domain.ReconcileResult, error) {
	payments, err := s.payrollRepo.ListUnreconciledEmployeePayments(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconcileResult{Failures: map[string]string{}}

	for _, payment := range payments {
		req := dto.RecordTransactionRequest{
			TransactionID:   payrollTxnPrefix + payment.PaymentID,
			TransactionType: domain.TransactionPayroll,
			TransactionDate: payment.PaymentDate,
			Amount:          payment.Amount.Neg(),
			Description:     fmt.Sprintf("Payroll: %s", payment.EmployeeName),
			AccountCode:     payment.AccountCode,
		}

		if _, err := s.recorder.RecordTransaction(ctx, req, userID); err != nil {
			s.LogWarn(ctx, "Payroll reconciliation failed for payment",
				slog.String("payment_id", payment.PaymentID),
				slog.String("error", err.Error()))
			result.Failures[payment.PaymentID] = err.Error()
			continue
		}

		if err := s.payrollRepo.MarkEmployeePaymentReconciled(ctx, payment.PaymentID); err != nil {
			// The posting committed; the deterministic transaction id makes
			// the retry on the next batch a no-op.
			s.LogWarn(ctx, "Posted but failed to mark payment reconciled",
				slog.String("payment_id", payment.PaymentID),
				slog.String("error", err.Error()))
			result.Failures[payment.PaymentID] = err.Error()
			continue
		}

		result.Reconciled++
	}

	s.LogInfo(ctx, "Payroll reconciliation batch finished",
		slog.Int("reconciled", result.Reconciled),
		slog.Int("failures", len(result.Failures)))
	return result, nil
}

// --- Supplier coordinator ---

type supplierService struct {
	BaseService
	purchaseRepo portsrepo.PurchasePaymentRepository
	recorder     portssvc.RecorderSvcFacade
}

// NewSupplierService creates the supplier reconciliation coordinator.
func NewSupplierService(purchaseRepo portsrepo.PurchasePaymentRepository, recorder portssvc.RecorderSvcFacade) portssvc.SupplierSvcFacade {
	return &supplierService{purchaseRepo: purchaseRepo, recorder: recorder}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest, userID string) (*domain.PurchaseOrder, error) {
	if !req.OrderTotal.IsPositive() {
		return nil, fmt.Errorf("%w: order total must be positive", apperrors.ErrValidation)
	}

	order := domain.PurchaseOrder{
		PurchaseOrderID: uuid.NewString(),
		SupplierName:    req.SupplierName,
		OrderTotal:      req.OrderTotal,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}

	if err := s.purchaseRepo.SavePurchaseOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to create purchase order", slog.String("supplier_name", req.SupplierName))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase order created",
		slog.String("purchase_order_id", order.PurchaseOrderID),
		slog.String("supplier_name", order.SupplierName))
	return &order, nil
}

func (s *supplierService) LogPayment(ctx context.Context, req dto.LogPurchasePaymentRequest, userID string) (*domain.PurchasePayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.purchaseRepo.FindPurchaseOrderByID(ctx, req.PurchaseOrderID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, req.PurchaseOrderID)
		}
		return nil, err
	}

	payment := domain.PurchasePayment{
		PaymentID:       uuid.NewString(),
		PurchaseOrderID: req.PurchaseOrderID,
		Amount:          req.Amount,
		PaymentDate:     req.PaymentDate,
		IsComplete:      req.IsComplete,
		AccountCode:     req.AccountCode,
		Reconciled:      false,
	}

	if err := s.purchaseRepo.SavePurchasePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to log purchase payment", slog.String("purchase_order_id", req.PurchaseOrderID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase payment logged",
		slog.String("payment_id", payment.PaymentID),
		slog.String("purchase_order_id", payment.PurchaseOrderID))
	return &payment, nil
}

func (s *supplierService) Unreconciled(ctx context.Context) ([]domain.PurchasePayment, error) {
	return s.purchaseRepo.ListUnreconciledPurchasePayments(ctx)
}

// ReconcileAll posts every unreconciled purchase payment as a
// SUPPLIER_PAYMENT transaction, marks the successes reconciled, and recomputes
// the payment status of each touched order from its cumulative paid total.
func (s *supplierService) ReconcileAll(ctx context.Context, userID string) (*domain.ReconcileResult, error) {
	payments, err := s.purchaseRepo.ListUnreconciledPurchasePayments(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconcileResult{Failures: map[string]string{}}

	for _, payment := range payments {
		order, err := s.purchaseRepo.FindPurchaseOrderByID(ctx, payment.PurchaseOrderID)
		if err != nil {
			result.Failures[payment.PaymentID] = fmt.Sprintf("purchase order %s: %v", payment.PurchaseOrderID, err)
			continue
		}

		req := dto.RecordTransactionRequest{
			TransactionID:   purchaseTxnPrefix + payment.PaymentID,
			TransactionType: domain.TransactionSupplierPayment,
			TransactionDate: payment.PaymentDate,
			Amount:          payment.Amount.Neg(),
			Description:     fmt.Sprintf("Supplier payment: %s", order.SupplierName),
			AccountCode:     payment.AccountCode,
		}

		if _, err := s.recorder.RecordTransaction(ctx, req, userID); err != nil {
			s.LogWarn(ctx, "Supplier reconciliation failed for payment",
				slog.String("payment_id", payment.PaymentID),
				slog.String("error", err.Error()))
			result.Failures[payment.PaymentID] = err.Error()
			continue
		}

		if err := s.purchaseRepo.MarkPurchasePaymentReconciled(ctx, payment.PaymentID); err != nil {
			s.LogWarn(ctx, "Posted but failed to mark purchase payment reconciled",
				slog.String("payment_id", payment.PaymentID),
				slog.String("error", err.Error()))
			result.Failures[payment.PaymentID] = err.Error()
			continue
		}

		if err := s.refreshOrderStatus(ctx, order, payment.IsComplete); err != nil {
			// The payment itself is reconciled; only the status rollup lagged.
			s.LogWarn(ctx, "Failed to refresh purchase order status",
				slog.String("purchase_order_id", order.PurchaseOrderID),
				slog.String("error", err.Error()))
		}

		result.Reconciled++
	}

	s.LogInfo(ctx, "Supplier reconciliation batch finished",
		slog.Int("reconciled", result.Reconciled),
		slog.Int("failures", len(result.Failures)))
	return result, nil
}

// refreshOrderStatus recomputes the order's payment status from its cumulative
// paid total. Transitions are one-way: UNPAID, PARTIALLY_PAID, then PAID.
func (s *supplierService) refreshOrderStatus(ctx context.Context, order *domain.PurchaseOrder, completeFlagged bool) error {
	totalPaid, err := s.purchaseRepo.TotalPaidForOrder(ctx, order.PurchaseOrderID)
	if err != nil {
		return err
	}

	status := accounting.ComputePaymentStatus(totalPaid, order.OrderTotal, completeFlagged)
	if status == order.PaymentStatus {
		return nil
	}

	if err := s.purchaseRepo.UpdatePurchaseOrderStatus(ctx, order.PurchaseOrderID, status); err != nil {
		return err
	}

	s.LogInfo(ctx, "Purchase order status updated",
		slog.String("purchase_order_id", order.PurchaseOrderID),
		slog.String("status", string(status)))
	return nil
}

// --- Expense coordinator ---

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	recorder    portssvc.RecorderSvcFacade
}

// NewExpenseService creates the expense reconciliation coordinator.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, recorder portssvc.RecorderSvcFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, recorder: recorder}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) LogExpense(ctx context.Context, req dto.LogExpenseRequest, userID string) (*domain.ExpenseRecord, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	expense := domain.ExpenseRecord{
		ExpenseID:   uuid.NewString(),
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
		Description: req.Description,
		AccountCode: req.AccountCode,
		Reconciled:  false,
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to log expense", slog.String("category", req.Category))
		return nil, err
	}

	s.LogInfo(ctx, "Expense logged",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", expense.Category))
	return &expense, nil
}

func (s *expenseService) Unreconciled(ctx context.Context) ([]domain.ExpenseRecord, error) {
	return s.expenseRepo.ListUnreconciledExpenses(ctx)
}

// ReconcileAll posts every unreconciled expense as an EXPENSE transaction and
// marks the successes reconciled.
func (s *expenseService) ReconcileAll(ctx context.Context, userID string) (*domain.ReconcileResult, error) {
	expenses, err := s.expenseRepo.ListUnreconciledExpenses(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconcileResult{Failures: map[string]string{}}

	for _, expense := range expenses {
		description := expense.Description
		if description == "" {
			description = fmt.Sprintf("Expense: %s", expense.Category)
		}

		req := dto.RecordTransactionRequest{
			TransactionID:   expenseTxnPrefix + expense.ExpenseID,
			TransactionType: domain.TransactionExpense,
			TransactionDate: expense.ExpenseDate,
			Amount:          expense.Amount.Neg(),
			Description:     description,
			AccountCode:     expense.AccountCode,
		}

		if _, err := s.recorder.RecordTransaction(ctx, req, userID); err != nil {
			s.LogWarn(ctx, "Expense reconciliation failed",
				slog.String("expense_id", expense.ExpenseID),
				slog.String("error", err.Error()))
			result.Failures[expense.ExpenseID] = err.Error()
			continue
		}

		if err := s.expenseRepo.MarkExpenseReconciled(ctx, expense.ExpenseID); err != nil {
			s.LogWarn(ctx, "Posted but failed to mark expense reconciled",
				slog.String("expense_id", expense.ExpenseID),
				slog.String("error", err.Error()))
			result.Failures[expense.ExpenseID] = err.Error()
			continue
		}

		result.Reconciled++
	}

	s.LogInfo(ctx, "Expense reconciliation batch finished",
		slog.Int("reconciled", result.Reconciled),
		slog.Int("failures", len(result.Failures)))
	return result, nil
}
