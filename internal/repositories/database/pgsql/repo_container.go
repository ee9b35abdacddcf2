package pgsql

import (
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, journalRepo)
	payrollRepo := newPgxPayrollRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		JournalRepo:     journalRepo,
		TransactionRepo: transactionRepo,
		PayrollRepo:     payrollRepo,
		PurchaseRepo:    purchaseRepo,
		ExpenseRepo:     expenseRepo,
		ReportingRepo:   reportingRepo,
		AuditRepo:       auditRepo,
	}
}
