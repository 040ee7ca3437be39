package categorizer

import (
	"context"
)

// Transaction is the input of a single categorization attempt.
type Transaction struct {
	Description string
	Amount      float64
}

// Strategy is one way of assigning a category to a transaction.
type Strategy interface {
	// Categorize returns the category and whether the strategy produced one.
	// A non-nil error explains why it did not.
	Categorize(ctx context.Context, tx Transaction) (string, bool, error)

	// Name returns the strategy name for logs.
	Name() string
}

var (
	_ Strategy = (*ModelStrategy)(nil)
	_ Strategy = (*KeywordStrategy)(nil)
)
