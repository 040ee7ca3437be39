package categorizer

import (
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"

	"fjacquet/finassist/internal/models"
)

// aliases maps cleaned model tokens onto the vocabulary. Cleaned canonical
// names ("fooddining", "transportation", ...) are added in init.
var aliases = map[string]string{
	"food":          models.CategoryFoodDining,
	"dining":        models.CategoryFoodDining,
	"foodanddining": models.CategoryFoodDining,
	"restaurant":    models.CategoryFoodDining,
	"restaurants":   models.CategoryFoodDining,
	"grocery":       models.CategoryFoodDining,
	"groceries":     models.CategoryFoodDining,

	"transport": models.CategoryTransportation,
	"transit":   models.CategoryTransportation,

	"shop":   models.CategoryShopping,
	"retail": models.CategoryShopping,

	"health":  models.CategoryHealthcare,
	"medical": models.CategoryHealthcare,

	"utility": models.CategoryUtilities,
	"bills":   models.CategoryUtilities,

	"rent": models.CategoryHousing,
	"home": models.CategoryHousing,

	"investments": models.CategoryInvestment,
	"investing":   models.CategoryInvestment,

	"income":   models.CategorySalary,
	"wages":    models.CategorySalary,
	"paycheck": models.CategorySalary,

	"freelancing": models.CategoryFreelance,

	"gift":      models.CategoryGifts,
	"donation":  models.CategoryGifts,
	"donations": models.CategoryGifts,

	"subscription": models.CategorySubscriptions,

	"misc":          models.CategoryOther,
	"miscellaneous": models.CategoryOther,
}

func init() {
	for _, c := range models.Categories() {
		aliases[cleanToken(c)] = c
	}
}

// cleanToken strips emoji, trims the raw answer, keeps its first line and
// lowercases what is left after dropping every non-letter.
func cleanToken(raw string) string {
	s := strings.TrimSpace(gomoji.RemoveEmojis(raw))
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// normalizeCategory maps a raw model answer to a vocabulary entry.
// It returns the cleaned token when no mapping exists.
func normalizeCategory(raw string) (string, string, bool) {
	token := cleanToken(raw)
	category, ok := aliases[token]
	return category, token, ok
}
