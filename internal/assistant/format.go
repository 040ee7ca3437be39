package assistant

import (
	"fmt"
	"strings"

	"fjacquet/finassist/internal/dateutils"
	"fjacquet/finassist/internal/models"
)

// Fixed replies for missing data.
const (
	msgNoExpenses         = "I do not see any expense transactions yet. Once your accounts sync, I can break down your spending."
	msgNoMonthExpenses    = "I do not see any expense transactions so far this month, so your total spending: $0.00."
	msgNoRecentExpenses   = "I do not see any recent expense transactions in the last 30 days, so there are no top categories to show yet."
	msgNoCashAccounts     = "I do not see any checking or savings accounts connected yet, so I cannot report your cash on hand."
	msgNoSubscriptions    = "No subscriptions are connected yet, so there is no recurring spending to estimate."
	msgModelUnavailable   = "Sorry, I am having trouble reaching the AI service right now. You can still ask me about your monthly spending, credit cards, top categories, cash on hand or subscriptions."
	maxListedExpenses     = 3
	maxListedCategories   = 3
	listedExpensesHeading = "Recent expenses:"
)

// formatMonthSpend renders the current-month spend for either spend intent.
// The credit card intent leads with the account split; the category intent
// adds a category breakdown.
func formatMonthSpend(intent Intent, ms MonthSpend, hasTransactions bool) string {
	if !hasTransactions {
		return msgNoExpenses
	}
	if len(ms.Expenses) == 0 {
		return msgNoMonthExpenses
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This month (since %s), your total spending: %s across %d %s.\n",
		dateutils.ToISODate(ms.From), models.FormatUSD(ms.Total), len(ms.Expenses), plural(len(ms.Expenses), "expense", "expenses"))
	fmt.Fprintf(&b, "- Credit cards: %s\n", models.FormatUSD(ms.CreditCards))
	fmt.Fprintf(&b, "- Other accounts: %s\n", models.FormatUSD(ms.OtherAccounts))

	if intent == IntentCategorySpend && len(ms.ByCategory) > 0 {
		b.WriteString("By category:\n")
		for i, c := range ms.ByCategory {
			if i == maxListedCategories {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", c.Category, models.FormatUSD(c.Total))
		}
	}

	b.WriteString(listedExpensesHeading)
	for i, e := range ms.Expenses {
		if i == maxListedExpenses {
			break
		}
		sep := ","
		if i == 0 {
			sep = ""
		}
		fmt.Fprintf(&b, "%s %s (%s on %s)", sep, describe(e.Transaction), models.FormatUSD(e.Amount), dateutils.ToISODate(e.Date))
	}
	b.WriteString(".")
	return b.String()
}

func formatTopCategories(groups []CategoryTotal, hasTransactions bool) string {
	if !hasTransactions || len(groups) == 0 {
		return msgNoRecentExpenses
	}

	var b strings.Builder
	b.WriteString("Top categories (last 30 days):")
	for i, g := range groups {
		fmt.Fprintf(&b, "\n%d. %s: %s", i+1, g.Category, models.FormatUSD(g.Total))
		if g.Largest != "" {
			fmt.Fprintf(&b, " (largest: %s)", g.Largest)
		}
	}
	return b.String()
}

func formatCashPosition(cp CashPosition) string {
	if !cp.HasAccounts {
		return msgNoCashAccounts
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Checking + savings cash on hand: %s", models.FormatUSD(cp.Total))
	for _, acct := range cp.Accounts {
		fmt.Fprintf(&b, "\n- %s (%s): %s", acct.DisplayName(), acct.Type.Normalize(), models.FormatUSD(models.Amount(acct.Balance)))
	}
	return b.String()
}

func formatSubscriptions(s SubscriptionSummary) string {
	if s.Count == 0 {
		return msgNoSubscriptions
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Estimated monthly subscriptions total: %s across %d %s.",
		models.FormatUSD(s.MonthlyTotal), s.Count, plural(s.Count, "subscription", "subscriptions"))
	if len(s.Upcoming) > 0 {
		b.WriteString("\nUpcoming:")
		for _, u := range s.Upcoming {
			fmt.Fprintf(&b, "\n- %s: %s on %s", u.Name, models.FormatUSD(u.Amount), dateutils.ToISODate(u.Date))
		}
	}
	return b.String()
}

// snapshotSummary is the compact context handed to the model.
func snapshotSummary(agg *Aggregator, ms MonthSpend, cp CashPosition, subs SubscriptionSummary) string {
	cash := "no checking or savings accounts connected"
	if cp.HasAccounts {
		cash = models.FormatUSD(cp.Total)
	}
	return fmt.Sprintf(
		"Transactions: %d. Accounts: %d. Subscriptions: %d. Spending this month: %s. Checking + savings cash: %s. Estimated monthly subscriptions: %s.",
		len(agg.snap.Transactions), len(agg.snap.Accounts), subs.Count,
		models.FormatUSD(ms.Total), cash, models.FormatUSD(subs.MonthlyTotal))
}

func describe(tx models.Transaction) string {
	if d := strings.TrimSpace(tx.Description); d != "" {
		return d
	}
	if tx.ID != "" {
		return tx.ID
	}
	return "unnamed expense"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
