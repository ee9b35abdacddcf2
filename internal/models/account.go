package models

// AccountType mirrors the domain account type at the storage layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	AccountTypeExpense AccountType = "EXPENSE"
)

// Account represents a row in the accounts table.
// ParentAccountID uses string for the nullable foreign key; repositories map
// it through sql.NullString.
type Account struct {
	AccountID       string      `db:"account_id"`
	AccountCode     string      `db:"account_code"` // UNIQUE
	Name            string      `db:"name"`
	Description     string      `db:"description"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	IsActive        bool        `db:"is_active"`
	AuditFields
}
