package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// IncomeStatement aggregates revenue and expenses for a period.
// TotalExpenses combines posted EXPENSE-account line items with expense-like
// transactions not yet linked to a journal entry, so unreconciled spend still
// appears in reporting without being counted twice.
type IncomeStatement struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// ReconcileResult summarises a reconciliation batch: how many records were
// newly reconciled and which records failed, keyed by record id.
type ReconcileResult struct {
	Reconciled int               `json:"reconciled"`
	Failures   map[string]string `json:"failures,omitempty"`
}
