package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	"github.com/bizbooks/backoffice_ledger/internal/models"
	"github.com/bizbooks/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- Payroll ---

type PgxPayrollRepository struct {
	pool *pgxpool.Pool
}

func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollPaymentRepository {
	return &PgxPayrollRepository{pool: pool}
}

var _ portsrepo.PayrollPaymentRepository = (*PgxPayrollRepository)(nil)

func (r *PgxPayrollRepository) SaveEmployeePayment(ctx context.Context, payment domain.EmployeePayment) error {
	query := `
		INSERT INTO employee_payments (payment_id, employee_name, amount, payment_date, notes, account_code, reconciled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW());
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID,
		payment.EmployeeName,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
		payment.AccountCode,
		payment.Reconciled,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: employee payment %s already exists", apperrors.ErrDuplicate, payment.PaymentID)
		}
		return fmt.Errorf("failed to save employee payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func (r *PgxPayrollRepository) ListUnreconciledEmployeePayments(ctx context.Context) ([]domain.EmployeePayment, error) {
	query := `
		SELECT payment_id, employee_name, amount, payment_date, notes, account_code, reconciled, created_at
		FROM employee_payments
		WHERE reconciled = FALSE
		ORDER BY payment_date, payment_id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled employee payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.EmployeePayment{}
	for rows.Next() {
		var m models.EmployeePayment
		err := rows.Scan(
			&m.PaymentID,
			&m.EmployeeName,
			&m.Amount,
			&m.PaymentDate,
			&m.Notes,
			&m.AccountCode,
			&m.Reconciled,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainEmployeePayment(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee payment rows: %w", err)
	}

	return payments, nil
}

func (r *PgxPayrollRepository) MarkEmployeePaymentReconciled(ctx context.Context, paymentID string) error {
	query := `UPDATE employee_payments SET reconciled = TRUE WHERE payment_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark employee payment %s reconciled: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Purchases ---

type PgxPurchaseRepository struct {
	pool *pgxpool.Pool
}

func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchasePaymentRepository {
	return &PgxPurchaseRepository{pool: pool}
}

var _ portsrepo.PurchasePaymentRepository = (*PgxPurchaseRepository)(nil)

func (r *PgxPurchaseRepository) SavePurchasePayment(ctx context.Context, payment domain.PurchasePayment) error {
	query := `
		INSERT INTO purchase_payments (payment_id, purchase_order_id, amount, payment_date, is_complete, account_code, reconciled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW());
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID,
		payment.PurchaseOrderID,
		payment.Amount,
		payment.PaymentDate,
		payment.IsComplete,
		payment.AccountCode,
		payment.Reconciled,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase payment %s already exists", apperrors.ErrDuplicate, payment.PaymentID)
		}
		return fmt.Errorf("failed to save purchase payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func (r *PgxPurchaseRepository) ListUnreconciledPurchasePayments(ctx context.Context) ([]domain.PurchasePayment, error) {
	query := `
		SELECT payment_id, purchase_order_id, amount, payment_date, is_complete, account_code, reconciled, created_at
		FROM purchase_payments
		WHERE reconciled = FALSE
		ORDER BY payment_date, payment_id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled purchase payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.PurchasePayment{}
	for rows.Next() {
		var m models.PurchasePayment
		err := rows.Scan(
			&m.PaymentID,
			&m.PurchaseOrderID,
			&m.Amount,
			&m.PaymentDate,
			&m.IsComplete,
			&m.AccountCode,
			&m.Reconciled,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPurchasePayment(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase payment rows: %w", err)
	}

	return payments, nil
}

func (r *PgxPurchaseRepository) MarkPurchasePaymentReconciled(ctx context.Context, paymentID string) error {
	query := `UPDATE purchase_payments SET reconciled = TRUE WHERE payment_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark purchase payment %s reconciled: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPurchaseRepository) FindPurchaseOrderByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT purchase_order_id, supplier_name, order_total, payment_status, created_at, last_updated_at
		FROM purchase_orders
		WHERE purchase_order_id = $1;
	`

	var m models.PurchaseOrder
	err := r.pool.QueryRow(ctx, query, purchaseOrderID).Scan(
		&m.PurchaseOrderID,
		&m.SupplierName,
		&m.OrderTotal,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", purchaseOrderID, err)
	}

	order := mapping.ToDomainPurchaseOrder(m)
	return &order, nil
}

func (r *PgxPurchaseRepository) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (purchase_order_id, supplier_name, order_total, payment_status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW());
	`
	_, err := r.pool.Exec(ctx, query,
		order.PurchaseOrderID,
		order.SupplierName,
		order.OrderTotal,
		string(order.PaymentStatus),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase order %s already exists", apperrors.ErrDuplicate, order.PurchaseOrderID)
		}
		return fmt.Errorf("failed to save purchase order %s: %w", order.PurchaseOrderID, err)
	}
	return nil
}

// TotalPaidForOrder sums all recorded payments against the order, reconciled
// or not, so the status reflects money actually sent.
func (r *PgxPurchaseRepository) TotalPaidForOrder(ctx context.Context, purchaseOrderID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM purchase_payments
		WHERE purchase_order_id = $1;
	`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, purchaseOrderID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for purchase order %s: %w", purchaseOrderID, err)
	}

	return total, nil
}

func (r *PgxPurchaseRepository) UpdatePurchaseOrderStatus(ctx context.Context, purchaseOrderID string, status domain.PaymentStatus) error {
	query := `
		UPDATE purchase_orders
		SET payment_status = $2, last_updated_at = NOW()
		WHERE purchase_order_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query, purchaseOrderID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update status for purchase order %s: %w", purchaseOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Expenses ---

type PgxExpenseRepository struct {
	pool *pgxpool.Pool
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{pool: pool}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error {
	query := `
		INSERT INTO expenses (expense_id, category, amount, expense_date, description, account_code, reconciled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW());
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.Category,
		expense.Amount,
		expense.ExpenseDate,
		expense.Description,
		expense.AccountCode,
		expense.Reconciled,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s already exists", apperrors.ErrDuplicate, expense.ExpenseID)
		}
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) ListUnreconciledExpenses(ctx context.Context) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT expense_id, category, amount, expense_date, description, account_code, reconciled, created_at
		FROM expenses
		WHERE reconciled = FALSE
		ORDER BY expense_date, expense_id;
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.ExpenseRecord{}
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID,
			&m.Category,
			&m.Amount,
			&m.ExpenseDate,
			&m.Description,
			&m.AccountCode,
			&m.Reconciled,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, mapping.ToDomainExpenseRecord(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (r *PgxExpenseRepository) MarkExpenseReconciled(ctx context.Context, expenseID string) error {
	query := `UPDATE expenses SET reconciled = TRUE WHERE expense_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, expenseID)
	if err != nil {
		return fmt.Errorf("failed to mark expense %s reconciled: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
