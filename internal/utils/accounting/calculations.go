package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// PaymentEpsilon absorbs floating rounding when comparing a purchase order's
// cumulative paid total against the order total.
var PaymentEpsilon = decimal.NewFromFloat(0.01)

// SignedAmount applies the normal-balance convention to one journal line:
// for ASSET/EXPENSE accounts the balance contribution is debit - credit, for
// LIABILITY/EQUITY/REVENUE it is credit - debit.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account ID %s", accountType, line.AccountID)
	}
}

// NormalBalance applies the same convention to aggregate debit/credit sums.
func NormalBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if accountType.NormalBalanceIsDebit() {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

// ValidateBalanced checks the fundamental double-entry law for a set of lines:
// the debit sum must equal the credit sum exactly. Unbalanced input fails
// closed with apperrors.ErrUnbalanced.
func ValidateBalanced(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two line items", apperrors.ErrValidation)
	}

	debitSum := decimal.Zero
	creditSum := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountID)
		}
		debitSum = debitSum.Add(line.Debit)
		creditSum = creditSum.Add(line.Credit)
	}

	if !debitSum.Equal(creditSum) {
		return fmt.Errorf("%w: debit sum is %s and credit sum is %s",
			apperrors.ErrUnbalanced, debitSum.String(), creditSum.String())
	}
	return nil
}

// ComputePaymentStatus derives a purchase order's payment status from its
// cumulative paid total. A payment flagged complete forces the terminal PAID
// state even when the totals are marginally off.
func ComputePaymentStatus(totalPaid, orderTotal decimal.Decimal, completeFlagged bool) domain.PaymentStatus {
	if completeFlagged {
		return domain.PaymentStatusPaid
	}
	if orderTotal.Sub(totalPaid).LessThanOrEqual(PaymentEpsilon) {
		return domain.PaymentStatusPaid
	}
	if totalPaid.IsPositive() {
		return domain.PaymentStatusPartiallyPaid
	}
	return domain.PaymentStatusUnpaid
}
