package models

import "strings"

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is a single already-authorized record from the caller's store.
// Amount sign varies by source; aggregation only uses its magnitude for expenses.
// Date is kept raw because upstream sources do not agree on a format and a record
// with an unparseable date must be skipped rather than rejected.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Description string          `json:"description" yaml:"description"`
	Amount      float64         `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Date        string          `json:"date" yaml:"date"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
	AccountID   string          `json:"accountId,omitempty" yaml:"accountId,omitempty"`
	AccountType AccountType     `json:"accountType,omitempty" yaml:"accountType,omitempty"`
}

// IsExpense reports whether the transaction is an EXPENSE, ignoring case.
func (t Transaction) IsExpense() bool {
	return TransactionType(strings.ToUpper(string(t.Type))) == TransactionTypeExpense
}

// CategoryOrOther returns the transaction category, or Other when blank.
func (t Transaction) CategoryOrOther() string {
	if c := strings.TrimSpace(t.Category); c != "" {
		return c
	}
	return CategoryOther
}
