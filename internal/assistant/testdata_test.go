package assistant

import (
	"time"

	"fjacquet/finassist/internal/models"
)

var scenarioNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func scenarioSnapshot() models.Snapshot {
	return models.Snapshot{
		Transactions: []models.Transaction{
			{ID: "t1", Description: "Groceries", Amount: -100, Type: models.TransactionTypeExpense, Date: "2026-02-10", AccountID: "cc1"},
			{ID: "t2", Description: "Gas", Amount: -50, Type: models.TransactionTypeExpense, Date: "2026-02-12", AccountType: models.AccountTypeChecking},
			{ID: "t3", Description: "Salary", Amount: 200, Type: models.TransactionTypeIncome, Date: "2026-02-11"},
			{ID: "t4", Description: "Old", Amount: -40, Type: models.TransactionTypeExpense, Date: "2025-12-01"},
			{ID: "t5", Description: "Invalid", Amount: -20, Type: models.TransactionTypeExpense, Date: "not-a-date"},
		},
		Accounts: []models.Account{
			{ID: "cc1", Type: models.AccountTypeCreditCard, Balance: -200},
			{ID: "chk1", Type: models.AccountTypeChecking, Balance: 800},
			{ID: "sav1", Type: models.AccountTypeSavings, Balance: 500},
		},
	}
}

func subscriptionSnapshot() models.Snapshot {
	return models.Snapshot{
		Subscriptions: []models.Subscription{
			{Name: "Weekly", Amount: 10, BillingCycle: models.BillingCycleWeekly, NextBillingDate: "2026-02-20"},
			{Name: "Quarterly", Amount: 30, BillingCycle: models.BillingCycleQuarterly, NextBillingDate: "2026-02-25"},
			{Name: "Yearly", Amount: 120, BillingCycle: models.BillingCycleYearly, NextBillingDate: "2026-03-01"},
		},
	}
}
