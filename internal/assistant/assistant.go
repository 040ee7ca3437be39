// Package assistant answers free-text financial questions from a snapshot.
//
// Recognized questions are answered deterministically from windowed aggregates;
// anything else is forwarded once to the external model.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fjacquet/finassist/internal/llm"
	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/metrics"
	"fjacquet/finassist/internal/models"
)

const systemPrompt = "You are a concise personal finance assistant. " +
	"Answer using only the user's financial summary below. " +
	"If the summary does not contain the answer, say so briefly.\n\nSummary: "

// Options configures an Assistant.
type Options struct {
	// Completer answers queries with no deterministic intent. Nil means those
	// queries get the apology.
	Completer llm.Completer
	Model     string
	Logger    logging.Logger
	Recorder  *metrics.Recorder
	// Clock returns "now" for the aggregation windows. Defaults to UTC wall time.
	Clock func() time.Time
}

// Assistant is the query orchestrator.
type Assistant struct {
	completer llm.Completer
	model     string
	logger    logging.Logger
	recorder  *metrics.Recorder
	clock     func() time.Time
}

// New creates an Assistant.
func New(opts Options) *Assistant {
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Assistant{
		completer: opts.Completer,
		model:     opts.Model,
		logger:    logging.OrDefault(opts.Logger).WithField(logging.FieldComponent, "assistant"),
		recorder:  opts.Recorder,
		clock:     clock,
	}
}

// Chat answers query from snap. It never returns an error: model failures
// become a fixed apology.
func (a *Assistant) Chat(ctx context.Context, query string, snap models.Snapshot) (reply string) {
	log := a.logger.WithField(logging.FieldRequestID, uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			log.Error("Chat query panicked", logging.Field{Key: logging.FieldError, Value: fmt.Sprint(r)})
			reply = msgModelUnavailable
		}
	}()

	intent := ClassifyIntent(query)
	a.recorder.ObserveQuery(intent.String())
	log = log.WithField(logging.FieldIntent, intent.String())

	now := a.clock()
	agg := NewAggregator(snap)

	switch intent {
	case IntentCreditCardSpend, IntentCategorySpend:
		reply = formatMonthSpend(intent, agg.MonthSpend(now), agg.HasTransactions())
	case IntentTopCategories:
		reply = formatTopCategories(agg.TopCategories(now, DefaultTopCategories), agg.HasTransactions())
	case IntentCashPosition:
		reply = formatCashPosition(agg.CashPosition())
	case IntentSubscriptions:
		reply = formatSubscriptions(agg.Subscriptions(now))
	default:
		return a.askModel(ctx, log, query, agg, now)
	}

	log.Debug("Answered deterministically")
	return reply
}

func (a *Assistant) askModel(ctx context.Context, log logging.Logger, query string, agg *Aggregator, now time.Time) string {
	if a.completer == nil {
		log.Warn("No model configured for open question")
		return msgModelUnavailable
	}

	summary := snapshotSummary(agg, agg.MonthSpend(now), agg.CashPosition(), agg.Subscriptions(now))
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt + summary},
		{Role: llm.RoleUser, Content: query},
	}

	answer, err := a.completer.Complete(ctx, messages, a.model)
	if err != nil {
		log.WithError(err).Warn("Model query failed",
			logging.Field{Key: logging.FieldReason, Value: string(llm.KindOf(err))})
		return msgModelUnavailable
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		log.Warn("Model returned an empty answer")
		return msgModelUnavailable
	}

	log.Debug("Answered by model")
	return answer
}
