package assistant

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/finassist/internal/dateutils"
	"fjacquet/finassist/internal/models"
)

// Aggregation windows.
const (
	TopCategoriesWindowDays = 30
	UpcomingWindowDays      = 14
	DefaultTopCategories    = 5
)

// Expense is an EXPENSE transaction that passed a window filter.
type Expense struct {
	Transaction models.Transaction
	Date        time.Time
	// Amount is abs(Transaction.Amount).
	Amount     decimal.Decimal
	CreditCard bool
}

// CategoryTotal is one group of a category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
	// Largest is the description of the biggest expense in the group.
	Largest       string
	largestAmount decimal.Decimal
}

// MonthSpend is the current-month expense aggregate.
// CreditCards plus OtherAccounts always equals Total.
type MonthSpend struct {
	From          time.Time
	To            time.Time
	Total         decimal.Decimal
	CreditCards   decimal.Decimal
	OtherAccounts decimal.Decimal
	// Expenses are most recent first.
	Expenses   []Expense
	ByCategory []CategoryTotal
}

// CashPosition sums checking and savings balances.
type CashPosition struct {
	Total       decimal.Decimal
	Accounts    []models.Account
	HasAccounts bool
}

// UpcomingCharge is a subscription billed inside the lookahead window.
type UpcomingCharge struct {
	Name   string
	Amount decimal.Decimal
	Date   time.Time
}

// SubscriptionSummary is the monthly-equivalent subscription aggregate.
type SubscriptionSummary struct {
	MonthlyTotal decimal.Decimal
	Count        int
	// Upcoming is sorted by date ascending.
	Upcoming []UpcomingCharge
}

// Aggregator computes windowed sums over a read-only snapshot. Records with an
// unparseable date are skipped by every aggregate.
type Aggregator struct {
	snap         models.Snapshot
	accountTypes map[string]models.AccountType
}

// NewAggregator indexes snap for aggregation.
func NewAggregator(snap models.Snapshot) *Aggregator {
	return &Aggregator{snap: snap, accountTypes: snap.AccountTypes()}
}

// HasTransactions reports whether the snapshot carries any transaction.
func (a *Aggregator) HasTransactions() bool {
	return len(a.snap.Transactions) > 0
}

// expenses returns the EXPENSE transactions dated in [from, to].
func (a *Aggregator) expenses(from, to time.Time) []Expense {
	var out []Expense
	for _, tx := range a.snap.Transactions {
		if !tx.IsExpense() {
			continue
		}
		date, err := dateutils.ParseDate(tx.Date)
		if err != nil || !dateutils.Within(date, from, to) {
			continue
		}
		out = append(out, Expense{
			Transaction: tx,
			Date:        date,
			Amount:      models.Amount(tx.Amount).Abs(),
			CreditCard:  a.isCreditCard(tx),
		})
	}
	return out
}

// isCreditCard resolves the linked account by id first, then the explicit
// account type carried on the transaction.
func (a *Aggregator) isCreditCard(tx models.Transaction) bool {
	if tx.AccountID != "" {
		if t, ok := a.accountTypes[tx.AccountID]; ok {
			return t == models.AccountTypeCreditCard
		}
	}
	return tx.AccountType.Normalize() == models.AccountTypeCreditCard
}

// MonthSpend aggregates expenses in [start of month, now].
func (a *Aggregator) MonthSpend(now time.Time) MonthSpend {
	ms := MonthSpend{
		From:          dateutils.StartOfMonth(now),
		To:            now,
		Total:         decimal.Zero,
		CreditCards:   decimal.Zero,
		OtherAccounts: decimal.Zero,
	}

	ms.Expenses = a.expenses(ms.From, ms.To)
	for _, e := range ms.Expenses {
		ms.Total = ms.Total.Add(e.Amount)
		if e.CreditCard {
			ms.CreditCards = ms.CreditCards.Add(e.Amount)
		} else {
			ms.OtherAccounts = ms.OtherAccounts.Add(e.Amount)
		}
	}

	sort.SliceStable(ms.Expenses, func(i, j int) bool {
		return ms.Expenses[i].Date.After(ms.Expenses[j].Date)
	})
	ms.ByCategory = groupByCategory(ms.Expenses)
	return ms
}

// TopCategories returns the n largest expense categories over the trailing
// 30 days. n below 1 means DefaultTopCategories.
func (a *Aggregator) TopCategories(now time.Time, n int) []CategoryTotal {
	if n < 1 {
		n = DefaultTopCategories
	}
	groups := groupByCategory(a.expenses(now.AddDate(0, 0, -TopCategoriesWindowDays), now))
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// groupByCategory sums by category, largest first, ties by name.
func groupByCategory(expenses []Expense) []CategoryTotal {
	index := make(map[string]int)
	var groups []CategoryTotal
	for _, e := range expenses {
		name := e.Transaction.CategoryOrOther()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryTotal{Category: name, Total: decimal.Zero, largestAmount: decimal.Zero})
		}
		g := &groups[i]
		g.Total = g.Total.Add(e.Amount)
		g.Count++
		if g.Largest == "" || e.Amount.GreaterThan(g.largestAmount) {
			g.Largest = e.Transaction.Description
			g.largestAmount = e.Amount
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].Total.Cmp(groups[j].Total); c != 0 {
			return c > 0
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// CashPosition sums CHECKING and SAVINGS balances.
func (a *Aggregator) CashPosition() CashPosition {
	cp := CashPosition{Total: decimal.Zero}
	for _, acct := range a.snap.Accounts {
		if !acct.Type.IsCash() {
			continue
		}
		cp.Accounts = append(cp.Accounts, acct)
		cp.Total = cp.Total.Add(models.Amount(acct.Balance))
	}
	cp.HasAccounts = len(cp.Accounts) > 0
	return cp
}

// Subscriptions converts every subscription to its monthly equivalent and
// lists those billed in [start of today, start of today + 14 days).
func (a *Aggregator) Subscriptions(now time.Time) SubscriptionSummary {
	s := SubscriptionSummary{MonthlyTotal: decimal.Zero, Count: len(a.snap.Subscriptions)}

	from := dateutils.StartOfDay(now)
	to := from.AddDate(0, 0, UpcomingWindowDays)

	for _, sub := range a.snap.Subscriptions {
		amount := models.Amount(sub.Amount).Abs()
		s.MonthlyTotal = s.MonthlyTotal.Add(sub.BillingCycle.MonthlyEquivalent(amount))

		date, err := dateutils.ParseDate(sub.NextBillingDate)
		if err != nil || date.Before(from) || !date.Before(to) {
			continue
		}
		s.Upcoming = append(s.Upcoming, UpcomingCharge{Name: sub.Name, Amount: amount, Date: date})
	}

	sort.SliceStable(s.Upcoming, func(i, j int) bool {
		return s.Upcoming[i].Date.Before(s.Upcoming[j].Date)
	})
	return s
}
