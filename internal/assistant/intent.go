package assistant

import "strings"

// Intent is the deterministic answer a query resolves to.
type Intent int

const (
	IntentNone Intent = iota
	IntentCategorySpend
	IntentCreditCardSpend
	IntentTopCategories
	IntentCashPosition
	IntentSubscriptions
)

var intentNames = map[Intent]string{
	IntentNone:            "NONE",
	IntentCategorySpend:   "CATEGORY_SPEND",
	IntentCreditCardSpend: "CREDIT_CARD_SPEND",
	IntentTopCategories:   "TOP_CATEGORIES",
	IntentCashPosition:    "CASH_POSITION",
	IntentSubscriptions:   "SUBSCRIPTIONS",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "UNKNOWN"
}

var (
	subscriptionWords = []string{"subscription", "recurring"}
	cashWords         = []string{"cash", "checking", "savings"}
	spendWords        = []string{"spend", "spent"}
	monthWords        = []string{"month"}
	topCategoryWords  = []string{"top categories", "top category"}
)

// ClassifyIntent maps a free-text query to an Intent. Groups are tested in
// this order and the first match wins:
//
//  1. "credit card"                                  CREDIT_CARD_SPEND
//  2. "top categories", "top category"               TOP_CATEGORIES
//  3. "cash", "checking", "savings" without
//     "subscription" or "recurring"                  CASH_POSITION
//  4. "subscription", "recurring"                    SUBSCRIPTIONS
//  5. "spend"/"spending"/"spent" with
//     "month"/"monthly"                              CATEGORY_SPEND
//
// Anything else is NONE.
func ClassifyIntent(query string) Intent {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "credit card"):
		return IntentCreditCardSpend
	case containsAny(q, topCategoryWords):
		return IntentTopCategories
	case containsAny(q, cashWords) && !containsAny(q, subscriptionWords):
		return IntentCashPosition
	case containsAny(q, subscriptionWords):
		return IntentSubscriptions
	case containsAny(q, spendWords) && containsAny(q, monthWords):
		return IntentCategorySpend
	}
	return IntentNone
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
