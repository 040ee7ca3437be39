package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/models"
)

// Rule maps a category to the keywords that select it.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// defaultRules is the built-in table. Slice order is the matching precedence:
// the first category with a keyword contained in the description wins.
//
//	Subscriptions before Shopping        "amazon prime" is not a plain amazon order
//	Food & Dining before Transportation  "uber eats", "gas station grocery"
//	Travel before Shopping               "booking.com"
//	Insurance before Healthcare          "health insurance"
var defaultRules = []Rule{
	{models.CategorySubscriptions, []string{
		"subscription", "amazon prime", "netflix", "spotify", "hulu", "disney+",
		"youtube premium", "apple music", "patreon", "membership",
	}},
	{models.CategoryFoodDining, []string{
		"restaurant", "cafe", "coffee", "starbucks", "grocery", "groceries",
		"supermarket", "pizza", "burger", "mcdonald", "uber eats", "doordash",
		"grubhub", "bakery", "diner", "sushi", "whole foods", "trader joe",
		"safeway", "bistro", "food",
	}},
	{models.CategoryTransportation, []string{
		"uber", "lyft", "taxi", "gas", "fuel", "parking", "transit", "metro",
		"toll", "chevron", "exxon", "amtrak", "train ticket", "bus fare",
	}},
	{models.CategoryTravel, []string{
		"airline", "airlines", "flight", "hotel", "airbnb", "expedia",
		"booking.com", "hostel", "car rental", "resort",
	}},
	{models.CategoryShopping, []string{
		"amazon", "walmart", "target", "ebay", "etsy", "best buy", "ikea",
		"clothing", "shopping", "store",
	}},
	{models.CategoryEntertainment, []string{
		"movie", "cinema", "theater", "theatre", "concert", "steam",
		"playstation", "xbox", "nintendo", "ticketmaster", "bowling", "museum",
	}},
	{models.CategoryInsurance, []string{
		"insurance", "geico", "state farm", "allstate", "progressive",
	}},
	{models.CategoryHealthcare, []string{
		"pharmacy", "doctor", "hospital", "clinic", "dental", "dentist", "cvs",
		"walgreens", "medical", "optometrist",
	}},
	{models.CategoryUtilities, []string{
		"electric", "utility", "utilities", "water bill", "internet", "comcast",
		"verizon", "at&t", "phone bill", "power company",
	}},
	{models.CategoryHousing, []string{
		"rent payment", "mortgage", "landlord", "apartment", "property management",
		"hoa dues",
	}},
	{models.CategoryEducation, []string{
		"tuition", "university", "college", "school", "course", "udemy",
		"coursera", "textbook",
	}},
	{models.CategoryInvestment, []string{
		"investment", "brokerage", "robinhood", "vanguard", "fidelity", "etrade",
		"dividend", "crypto", "coinbase", "401k",
	}},
	{models.CategorySalary, []string{
		"salary", "payroll", "paycheck", "direct deposit", "wages",
	}},
	{models.CategoryFreelance, []string{
		"freelance", "upwork", "fiverr", "invoice", "consulting",
	}},
	{models.CategoryGifts, []string{
		"gift", "donation", "charity", "birthday",
	}},
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	for i, r := range defaultRules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// ValidateRules rejects rules naming a category outside the vocabulary or
// carrying no usable keyword.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if !models.IsCategory(r.Category) {
			return fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		usable := 0
		for _, k := range r.Keywords {
			if strings.TrimSpace(k) != "" {
				usable++
			}
		}
		if usable == 0 {
			return fmt.Errorf("rule %d (%s): no keywords", i, r.Category)
		}
	}
	return nil
}

// KeywordStrategy categorizes by substring match over an ordered rule table.
// It is total: a description matching nothing is Other.
type KeywordStrategy struct {
	rules  []Rule
	logger logging.Logger
}

// NewKeywordStrategy builds the strategy. Nil or empty rules select DefaultRules.
// Keywords are lowercased once here.
func NewKeywordStrategy(rules []Rule, logger logging.Logger) *KeywordStrategy {
	if len(rules) == 0 {
		rules = defaultRules
	}
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		normalized = append(normalized, Rule{Category: r.Category, Keywords: kws})
	}
	return &KeywordStrategy{
		rules:  normalized,
		logger: logging.OrDefault(logger),
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize always succeeds.
func (s *KeywordStrategy) Categorize(_ context.Context, tx Transaction) (string, bool, error) {
	return s.Match(tx.Description), true, nil
}

// Match returns the category of the first rule with a keyword contained in the
// lowercased description, or Other.
func (s *KeywordStrategy) Match(description string) string {
	desc := strings.ToLower(description)
	if strings.TrimSpace(desc) == "" {
		return models.CategoryOther
	}
	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(desc, keyword) {
				s.logger.Debug("Keyword matched",
					logging.Field{Key: logging.FieldDescription, Value: description},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: rule.Category})
				return rule.Category
			}
		}
	}
	return models.CategoryOther
}
