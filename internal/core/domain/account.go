package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents an entry in the chart of accounts.
// AccountCode is the human-assigned business code (e.g. "CASH-1000"); it is
// globally unique and must never change once a posted line item references it.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	AccountCode     string      `json:"accountCode"`     // Unique, human-assigned, immutable once referenced
	Name            string      `json:"name"`            // User-defined name
	Description     string      `json:"description"`     // Nullable user description
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	IsActive        bool        `json:"isActive"`        // Soft deactivation only; accounts are never deleted
	AuditFields
}

// NormalBalanceIsDebit reports whether the account type carries a debit-positive
// normal balance (ASSET/EXPENSE) as opposed to credit-positive
// (LIABILITY/EQUITY/REVENUE).
func (t AccountType) NormalBalanceIsDebit() bool {
	return t == Asset || t == Expense
}
