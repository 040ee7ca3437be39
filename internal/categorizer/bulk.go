package categorizer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/models"
)

// sequentialThreshold is the batch size below which items run on the caller's
// goroutine.
const sequentialThreshold = 8

// BulkItem is one entry of a bulk request. The description is resolved as
// Resolve (when set), else Description, else Name, else "".
type BulkItem struct {
	ID          string
	Description *string
	Name        *string
	Amount      float64
	// Resolve reads the description lazily. An error or panic yields the
	// item-error result for this id only.
	Resolve func() (string, error)
}

type resolveError struct {
	cause interface{}
}

func (e *resolveError) Error() string {
	return fmt.Sprintf("description accessor panicked: %v", e.cause)
}

// description applies the precedence rule.
func (it BulkItem) description() (desc string, err error) {
	if it.Resolve != nil {
		defer func() {
			if r := recover(); r != nil {
				err = &resolveError{cause: r}
			}
		}()
		return it.Resolve()
	}
	if it.Description != nil {
		return *it.Description, nil
	}
	if it.Name != nil {
		return *it.Name, nil
	}
	return "", nil
}

// BulkCategorize returns exactly one result per distinct item id. The first
// item with a given id wins; later duplicates are logged and skipped.
func (e *Engine) BulkCategorize(ctx context.Context, items []BulkItem) map[string]models.CategorizationResult {
	unique := make([]BulkItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			e.logger.Warn("Duplicate bulk item id ignored",
				logging.Field{Key: logging.FieldTransactionID, Value: it.ID})
			continue
		}
		seen[it.ID] = struct{}{}
		unique = append(unique, it)
	}

	results := make(map[string]models.CategorizationResult, len(unique))

	if len(unique) < sequentialThreshold || e.workers == 1 {
		for _, it := range unique {
			results[it.ID] = e.categorizeItem(ctx, it)
		}
		return results
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(e.workers)
	for _, it := range unique {
		g.Go(func() error {
			res := e.categorizeItem(ctx, it)
			mu.Lock()
			results[it.ID] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Debug("Bulk categorization completed",
		logging.Field{Key: logging.FieldCount, Value: len(results)},
		logging.Field{Key: logging.FieldWorkers, Value: e.workers})
	return results
}

func (e *Engine) categorizeItem(ctx context.Context, it BulkItem) models.CategorizationResult {
	desc, err := it.description()
	if err != nil {
		e.logger.WithError(err).Warn("Bulk item description unreadable",
			logging.Field{Key: logging.FieldTransactionID, Value: it.ID},
			logging.Field{Key: logging.FieldReason, Value: ReasonResolve})
		e.recorder.ObserveCategorization(string(SourceItemError))
		return models.NewItemErrorResult()
	}
	return e.Categorize(ctx, desc, it.Amount)
}
