package models

import "strings"

// Canonical category vocabulary. The set is closed: every CategorizationResult
// carries one of these names.
const (
	CategoryFoodDining     = "Food & Dining"
	CategoryTransportation = "Transportation"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryHealthcare     = "Healthcare"
	CategoryUtilities      = "Utilities"
	CategoryHousing        = "Housing"
	CategoryEducation      = "Education"
	CategoryTravel         = "Travel"
	CategoryInsurance      = "Insurance"
	CategoryInvestment     = "Investment"
	CategorySalary         = "Salary"
	CategoryFreelance      = "Freelance"
	CategoryGifts          = "Gifts"
	CategorySubscriptions  = "Subscriptions"
	CategoryOther          = "Other"
)

var vocabulary = []string{
	CategoryFoodDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryUtilities,
	CategoryHousing,
	CategoryEducation,
	CategoryTravel,
	CategoryInsurance,
	CategoryInvestment,
	CategorySalary,
	CategoryFreelance,
	CategoryGifts,
	CategorySubscriptions,
	CategoryOther,
}

// Categories returns a copy of the vocabulary in its canonical order.
func Categories() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// IsCategory reports whether name is a vocabulary entry (exact match).
func IsCategory(name string) bool {
	for _, c := range vocabulary {
		if c == name {
			return true
		}
	}
	return false
}

// Provenance confidences. These tag where a result came from; they are not probabilities.
const (
	ConfidenceModel     = 0.8
	ConfidenceFallback  = 0.3
	ConfidenceItemError = 0.1
)

// Provenance tags.
const (
	TagFallback = "fallback"
	TagError    = "error"
)

// CategorizationResult is the value returned for every categorization request.
type CategorizationResult struct {
	Category   string   `json:"category" yaml:"category"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Tags       []string `json:"tags" yaml:"tags"`
}

// NewModelResult builds the result for a category the external model produced.
func NewModelResult(category string) CategorizationResult {
	return CategorizationResult{
		Category:   category,
		Confidence: ConfidenceModel,
		Tags:       []string{strings.ToLower(category)},
	}
}

// NewFallbackResult builds the result for a rule-based fallback.
func NewFallbackResult(category string) CategorizationResult {
	return CategorizationResult{
		Category:   category,
		Confidence: ConfidenceFallback,
		Tags:       []string{TagFallback},
	}
}

// NewItemErrorResult builds the result for a bulk item whose input could not be read.
func NewItemErrorResult() CategorizationResult {
	return CategorizationResult{
		Category:   CategoryOther,
		Confidence: ConfidenceItemError,
		Tags:       []string{TagError},
	}
}

// HasTag reports whether the result carries tag.
func (r CategorizationResult) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
