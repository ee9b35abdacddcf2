package mapping

import (
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/models"
)

// ToDomainEmployeePayment converts a model EmployeePayment to its domain form
func ToDomainEmployeePayment(m models.EmployeePayment) domain.EmployeePayment {
	return domain.EmployeePayment{
		PaymentID:    m.PaymentID,
		EmployeeName: m.EmployeeName,
		Amount:       m.Amount,
		PaymentDate:  m.PaymentDate,
		Notes:        m.Notes,
		AccountCode:  m.AccountCode,
		Reconciled:   m.Reconciled,
	}
}

// ToDomainPurchasePayment converts a model PurchasePayment to its domain form
func ToDomainPurchasePayment(m models.PurchasePayment) domain.PurchasePayment {
	return domain.PurchasePayment{
		PaymentID:       m.PaymentID,
		PurchaseOrderID: m.PurchaseOrderID,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		IsComplete:      m.IsComplete,
		AccountCode:     m.AccountCode,
		Reconciled:      m.Reconciled,
	}
}

// ToDomainPurchaseOrder converts a model PurchaseOrder to its domain form
func ToDomainPurchaseOrder(m models.PurchaseOrder) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		PurchaseOrderID: m.PurchaseOrderID,
		SupplierName:    m.SupplierName,
		OrderTotal:      m.OrderTotal,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
	}
}

// ToDomainExpenseRecord converts a model Expense to its domain form
func ToDomainExpenseRecord(m models.Expense) domain.ExpenseRecord {
	return domain.ExpenseRecord{
		ExpenseID:   m.ExpenseID,
		Category:    m.Category,
		Amount:      m.Amount,
		ExpenseDate: m.ExpenseDate,
		Description: m.Description,
		AccountCode: m.AccountCode,
		Reconciled:  m.Reconciled,
	}
}
