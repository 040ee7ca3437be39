package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/finassist/internal/llm"
	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/models"
)

// UnmappedError reports a model answer that does not name a vocabulary entry.
type UnmappedError struct {
	Raw   string
	Token string
}

func (e *UnmappedError) Error() string {
	return fmt.Sprintf("model answer %q does not map to a category", e.Token)
}

// ModelStrategy asks the external model for exactly one category name.
type ModelStrategy struct {
	completer llm.Completer
	model     string
	logger    logging.Logger
}

// NewModelStrategy creates a ModelStrategy. An empty model selects the
// completer's default.
func NewModelStrategy(completer llm.Completer, model string, logger logging.Logger) *ModelStrategy {
	return &ModelStrategy{
		completer: completer,
		model:     model,
		logger:    logging.OrDefault(logger),
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *ModelStrategy) Name() string {
	return "Model"
}

// Categorize makes exactly one completion call. Every failure is returned as an
// error: *llm.Error from the adapter, *UnmappedError for an unusable answer.
func (s *ModelStrategy) Categorize(ctx context.Context, tx Transaction) (string, bool, error) {
	if s.completer == nil {
		return "", false, &llm.Error{Op: llm.OpComplete, Kind: llm.KindNotConfigured, Err: llm.ErrNotConfigured}
	}

	answer, err := s.completer.Complete(ctx, buildCategorizationMessages(tx), s.model)
	if err != nil {
		return "", false, err
	}

	category, token, ok := normalizeCategory(answer)
	if !ok {
		return "", false, &UnmappedError{Raw: answer, Token: token}
	}
	return category, true, nil
}

func buildCategorizationMessages(tx Transaction) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: categorizationPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Transaction: %s\nAmount: %.2f", tx.Description, tx.Amount)},
	}
}

var categorizationPrompt = "You are a financial transaction categorizer. " +
	"Reply with exactly one category name from this list and nothing else: " +
	strings.Join(models.Categories(), ", ") + "."
