package models

import "strings"

// AccountType is the kind of a financial account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeLoan       AccountType = "LOAN"
	AccountTypeOther      AccountType = "OTHER"
)

// Normalize upper-cases the type so "credit_card" and "CREDIT_CARD" compare equal.
func (t AccountType) Normalize() AccountType {
	return AccountType(strings.ToUpper(strings.TrimSpace(string(t))))
}

// IsCash reports whether the account holds cash on hand (checking or savings).
func (t AccountType) IsCash() bool {
	n := t.Normalize()
	return n == AccountTypeChecking || n == AccountTypeSavings
}

// Account is a connected account with its current balance.
type Account struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type        AccountType `json:"type" yaml:"type"`
	Balance     float64     `json:"balance" yaml:"balance"`
	CreditLimit *float64    `json:"creditLimit,omitempty" yaml:"creditLimit,omitempty"`
}

// DisplayName returns the account name, falling back to its id.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
