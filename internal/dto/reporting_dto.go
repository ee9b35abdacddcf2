package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	FromDate      string          `json:"fromDate"`
	ToDate        string          `json:"toDate"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// ToTrialBalanceResponse converts domain trial balance rows to a DTO response
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}

		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(report *domain.IncomeStatement, from, to time.Time) IncomeStatementResponse {
	return IncomeStatementResponse{
		FromDate:      from.Format("2006-01-02"),
		ToDate:        to.Format("2006-01-02"),
		TotalRevenue:  report.TotalRevenue,
		TotalExpenses: report.TotalExpenses,
		NetIncome:     report.NetIncome,
	}
}
