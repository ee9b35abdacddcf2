package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	JournalRepo     JournalRepositoryWithTx
	TransactionRepo TransactionRepositoryFacade
	PayrollRepo     PayrollPaymentRepository
	PurchaseRepo    PurchasePaymentRepository
	ExpenseRepo     ExpenseRepository
	ReportingRepo   ReportingRepository
	AuditRepo       AuditRepository
}
