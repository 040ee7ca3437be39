package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BillingCycle is how often a subscription is charged.
type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "WEEKLY"
	BillingCycleMonthly   BillingCycle = "MONTHLY"
	BillingCycleQuarterly BillingCycle = "QUARTERLY"
	BillingCycleYearly    BillingCycle = "YEARLY"
)

var (
	weeklyFactor    = decimal.RequireFromString("4.33")
	quarterlyFactor = decimal.NewFromInt(3)
	yearlyFactor    = decimal.NewFromInt(12)
)

// MonthlyEquivalent converts a periodic amount to its monthly figure:
// WEEKLY x4.33, MONTHLY x1, QUARTERLY /3, YEARLY /12. Unknown cycles count as monthly.
func (c BillingCycle) MonthlyEquivalent(amount decimal.Decimal) decimal.Decimal {
	switch BillingCycle(strings.ToUpper(strings.TrimSpace(string(c)))) {
	case BillingCycleWeekly:
		return amount.Mul(weeklyFactor)
	case BillingCycleQuarterly:
		return amount.Div(quarterlyFactor)
	case BillingCycleYearly:
		return amount.Div(yearlyFactor)
	default:
		return amount
	}
}

// Subscription is a recurring charge known to the caller.
type Subscription struct {
	Name            string       `json:"name" yaml:"name"`
	Amount          float64      `json:"amount" yaml:"amount"`
	BillingCycle    BillingCycle `json:"billingCycle" yaml:"billingCycle"`
	NextBillingDate string       `json:"nextBillingDate,omitempty" yaml:"nextBillingDate,omitempty"`
}
