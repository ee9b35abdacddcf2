package services

import (
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
)

// NewServiceContainer wires every application service against the repository
// provider. Construction order follows the dependency chain: the chart feeds
// the recorder, the recorder feeds the coordinators, the journal feeds
// reporting.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	chart := NewChartService(repos.AccountRepo)
	journal := NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.TransactionRepo)
	recorder := NewRecorderService(repos.TransactionRepo, chart, repos.AuditRepo)

	return &portssvc.ServiceContainer{
		Chart:     chart,
		Journal:   journal,
		Recorder:  recorder,
		Payroll:   NewPayrollService(repos.PayrollRepo, recorder),
		Suppliers: NewSupplierService(repos.PurchaseRepo, recorder),
		Expenses:  NewExpenseService(repos.ExpenseRepo, recorder),
		Reporting: NewReportingService(repos.ReportingRepo, repos.TransactionRepo, journal),
	}
}
