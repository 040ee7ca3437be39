// Package categorizer assigns spending categories to transactions.
//
// Every attempt asks the external model first and falls back to the ordered
// keyword rules exactly once on any failure. Results carry a provenance
// confidence: 0.8 for a mapped model answer, 0.3 for the rule fallback and
// 0.1 for a bulk item whose description could not be read.
package categorizer

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/finassist/internal/llm"
	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/metrics"
	"fjacquet/finassist/internal/models"
)

// Source records where a result came from.
type Source string

const (
	SourceModel     Source = metrics.SourceModel
	SourceFallback  Source = metrics.SourceFallback
	SourceItemError Source = metrics.SourceError
)

// Fallback reasons that are not adapter error kinds.
const (
	ReasonUnmapped = "unmapped"
	ReasonPanic    = "panic"
	ReasonResolve  = "resolve"
)

// Outcome is the internal result of one attempt. Reason and Err keep the
// failure cause inspectable; only Result crosses the public boundary.
type Outcome struct {
	Result models.CategorizationResult
	Source Source
	Reason string
	Err    error
}

// Options configures an Engine.
type Options struct {
	// Completer is the external model. Nil means every attempt falls back.
	Completer llm.Completer
	// Model overrides the completer's default model.
	Model string
	// Rules replaces the built-in keyword table when non-empty.
	Rules []Rule
	// Workers bounds bulk concurrency. Values below 1 mean DefaultWorkers.
	Workers int

	Logger   logging.Logger
	Recorder *metrics.Recorder
}

// DefaultWorkers is the bulk pool size when Options.Workers is unset.
const DefaultWorkers = 4

// Engine orchestrates the model and keyword strategies.
type Engine struct {
	model    Strategy
	rules    *KeywordStrategy
	workers  int
	logger   logging.Logger
	recorder *metrics.Recorder
}

// NewEngine builds an Engine.
func NewEngine(opts Options) *Engine {
	logger := logging.OrDefault(opts.Logger).WithField(logging.FieldComponent, "categorizer")
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Engine{
		model:    NewModelStrategy(opts.Completer, opts.Model, logger),
		rules:    NewKeywordStrategy(opts.Rules, logger),
		workers:  workers,
		logger:   logger,
		recorder: opts.Recorder,
	}
}

// Categorize returns the category for one transaction. It never fails.
func (e *Engine) Categorize(ctx context.Context, description string, amount float64) models.CategorizationResult {
	return e.CategorizeDetailed(ctx, description, amount).Result
}

// CategorizeDetailed is Categorize with the provenance of the result.
func (e *Engine) CategorizeDetailed(ctx context.Context, description string, amount float64) Outcome {
	tx := Transaction{Description: description, Amount: amount}
	outcome := e.attempt(ctx, tx)
	e.recorder.ObserveCategorization(string(outcome.Source))
	return outcome
}

func (e *Engine) attempt(ctx context.Context, tx Transaction) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = e.fallback(tx, ReasonPanic, fmt.Errorf("model strategy panicked: %v", r))
		}
	}()

	category, found, err := e.model.Categorize(ctx, tx)
	if err == nil && found {
		e.logger.Debug("Transaction categorized by model",
			logging.Field{Key: "strategy", Value: e.model.Name()},
			logging.Field{Key: logging.FieldDescription, Value: tx.Description},
			logging.Field{Key: logging.FieldCategory, Value: category})
		return Outcome{Result: models.NewModelResult(category), Source: SourceModel}
	}
	return e.fallback(tx, reasonOf(err), err)
}

func (e *Engine) fallback(tx Transaction, reason string, err error) Outcome {
	category := e.rules.Match(tx.Description)
	log := e.logger
	if err != nil {
		log = log.WithError(err)
	}
	log.Warn("Model categorization failed, using keyword rules",
		logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		logging.Field{Key: logging.FieldReason, Value: reason},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return Outcome{
		Result: models.NewFallbackResult(category),
		Source: SourceFallback,
		Reason: reason,
		Err:    err,
	}
}

func reasonOf(err error) string {
	if err == nil {
		return ReasonUnmapped
	}
	if kind := llm.KindOf(err); kind != "" {
		return string(kind)
	}
	var unmapped *UnmappedError
	if errors.As(err, &unmapped) {
		return ReasonUnmapped
	}
	return string(llm.KindTransport)
}
