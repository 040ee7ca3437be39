package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/finassist/internal/llm"
	"fjacquet/finassist/internal/logging"
	"fjacquet/finassist/internal/metrics"
	"fjacquet/finassist/internal/models"
)

type mockCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	messages []llm.Message
}

func (m *mockCompleter) Complete(_ context.Context, messages []llm.Message, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.messages = messages
	return m.response, m.err
}

type panickingCompleter struct{}

func (panickingCompleter) Complete(context.Context, []llm.Message, string) (string, error) {
	panic("boom")
}

func newTestAssistant(completer llm.Completer) (*Assistant, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return New(Options{
		Completer: completer,
		Logger:    logger,
		Clock:     func() time.Time { return scenarioNow },
	}), logger
}

func TestChat_CreditCardScenario(t *testing.T) {
	completer := &mockCompleter{response: "unused"}
	a, _ := newTestAssistant(completer)

	reply := a.Chat(context.Background(), "How much am I spending per month on credit cards?", scenarioSnapshot())

	assert.Contains(t, reply, "total spending: $150.00")
	assert.Contains(t, reply, "Credit cards: $100.00")
	assert.Contains(t, reply, "Other accounts: $50.00")
	assert.Contains(t, reply, "Groceries")
	assert.NotContains(t, reply, "Old")
	assert.NotContains(t, reply, "Invalid")
	assert.Equal(t, 0, completer.calls)
}

func TestChat_TopCategoriesWithoutData(t *testing.T) {
	completer := &mockCompleter{response: "unused"}
	a, _ := newTestAssistant(completer)

	reply := a.Chat(context.Background(), "top categories", models.Snapshot{})

	assert.Contains(t, reply, "do not see any recent expense")
	assert.Equal(t, 0, completer.calls)
}

func TestChat_DeterministicIntents(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		snap     models.Snapshot
		contains []string
		excludes []string
	}{
		{
			name:     "category spend",
			query:    "What did I spend this month?",
			snap:     scenarioSnapshot(),
			contains: []string{"total spending: $150.00", "Credit cards: $100.00", "Other accounts: $50.00", "By category:", "Other: $150.00", "Gas"},
		},
		{
			name:     "spend without transactions",
			query:    "monthly spending",
			snap:     models.Snapshot{},
			contains: []string{"I do not see any expense transactions"},
		},
		{
			name:     "credit card without transactions",
			query:    "credit card spend",
			snap:     models.Snapshot{Accounts: scenarioSnapshot().Accounts},
			contains: []string{"I do not see any expense transactions"},
		},
		{
			name:  "spend with nothing this month",
			query: "how much have I spent this month",
			snap:  models.Snapshot{Transactions: []models.Transaction{
				{Description: "Old", Amount: -40, Type: models.TransactionTypeExpense, Date: "2025-12-01"},
			}},
			contains: []string{"do not see any expense transactions", "total spending: $0.00"},
		},
		{
			name:     "top categories",
			query:    "top categories",
			snap:     scenarioSnapshot(),
			contains: []string{"Top categories (last 30 days):", "Other: $150.00", "largest: Groceries"},
			excludes: []string{"Salary"},
		},
		{
			name:  "top categories with only old expenses",
			query: "top category",
			snap:  models.Snapshot{Transactions: []models.Transaction{
				{Description: "Old", Amount: -40, Type: models.TransactionTypeExpense, Date: "2025-12-01"},
			}},
			contains: []string{"I do not see any recent expense transactions"},
		},
		{
			name:     "cash position",
			query:    "How much cash do I have?",
			snap:     scenarioSnapshot(),
			contains: []string{"Checking + savings cash on hand: $1300.00", "chk1", "sav1"},
			excludes: []string{"cc1"},
		},
		{
			name:     "cash without accounts",
			query:    "savings",
			snap:     models.Snapshot{},
			contains: []string{"I do not see any checking or savings accounts connected"},
		},
		{
			name:     "subscriptions",
			query:    "what are my subscriptions",
			snap:     subscriptionSnapshot(),
			contains: []string{"Estimated monthly subscriptions total: $63.30", "Upcoming:", "Weekly", "Quarterly"},
			excludes: []string{"Yearly"},
		},
		{
			name:     "no subscriptions",
			query:    "recurring",
			snap:     models.Snapshot{},
			contains: []string{"No subscriptions are connected"},
		},
		{
			name:  "subscriptions without upcoming",
			query: "subscriptions",
			snap:  models.Snapshot{Subscriptions: []models.Subscription{
				{Name: "Gym", Amount: 40, BillingCycle: models.BillingCycleMonthly, NextBillingDate: "2026-04-01"},
			}},
			contains: []string{"Estimated monthly subscriptions total: $40.00"},
			excludes: []string{"Upcoming:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &mockCompleter{response: "unused"}
			a, _ := newTestAssistant(completer)

			reply := a.Chat(context.Background(), tt.query, tt.snap)
			for _, s := range tt.contains {
				assert.Contains(t, reply, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, reply, s)
			}
			assert.Equal(t, 0, completer.calls)
		})
	}
}

func TestChat_UpcomingIsOrdered(t *testing.T) {
	a, _ := newTestAssistant(nil)

	reply := a.Chat(context.Background(), "subscriptions", subscriptionSnapshot())
	weekly := strings.Index(reply, "Weekly")
	quarterly := strings.Index(reply, "Quarterly")
	require.GreaterOrEqual(t, weekly, 0)
	require.GreaterOrEqual(t, quarterly, 0)
	assert.Less(t, weekly, quarterly)
}

func TestChat_OpenQuestionUsesModel(t *testing.T) {
	completer := &mockCompleter{response: "  You could save more by cooking at home.  "}
	a, logger := newTestAssistant(completer)

	reply := a.Chat(context.Background(), "Any tips for saving?", scenarioSnapshot())

	assert.Equal(t, "You could save more by cooking at home.", reply)
	require.Equal(t, 1, completer.calls)
	require.Len(t, completer.messages, 2)
	assert.Equal(t, llm.RoleSystem, completer.messages[0].Role)
	assert.Contains(t, completer.messages[0].Content, "Transactions: 5")
	assert.Contains(t, completer.messages[0].Content, "$150.00")
	assert.Contains(t, completer.messages[0].Content, "$1300.00")
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Any tips for saving?"}, completer.messages[1])

	entries := logger.GetEntries()
	require.NotEmpty(t, entries)
	id, ok := entries[len(entries)-1].FieldValue(logging.FieldRequestID)
	require.True(t, ok)
	assert.NotEmpty(t, id)
}

func TestChat_ModelFailureApologizes(t *testing.T) {
	tests := []struct {
		name      string
		completer llm.Completer
	}{
		{"status error", &mockCompleter{err: &llm.Error{Op: llm.OpComplete, Kind: llm.KindStatus, StatusCode: 503, Err: errors.New("unavailable")}}},
		{"timeout", &mockCompleter{err: &llm.Error{Op: llm.OpComplete, Kind: llm.KindTransport, Err: context.DeadlineExceeded}}},
		{"blank answer", &mockCompleter{response: "   "}},
		{"no model", nil},
		{"panic", panickingCompleter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, logger := newTestAssistant(tt.completer)

			var reply string
			require.NotPanics(t, func() {
				reply = a.Chat(context.Background(), "Tell me a joke about budgets", models.Snapshot{})
			})
			assert.Contains(t, reply, "trouble reaching the AI service")
			assert.True(t, len(logger.GetEntriesByLevel("WARN"))+len(logger.GetEntriesByLevel("ERROR")) > 0)
		})
	}
}

func TestChat_RequestIDsDiffer(t *testing.T) {
	a, logger := newTestAssistant(nil)

	a.Chat(context.Background(), "cash", scenarioSnapshot())
	a.Chat(context.Background(), "cash", scenarioSnapshot())

	entries := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 2)
	first, _ := entries[0].FieldValue(logging.FieldRequestID)
	second, _ := entries[1].FieldValue(logging.FieldRequestID)
	assert.NotEqual(t, first, second)
	intent, _ := entries[0].FieldValue(logging.FieldIntent)
	assert.Equal(t, "CASH_POSITION", intent)
}

func TestChat_RecordsIntent(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	a := New(Options{Recorder: rec, Clock: func() time.Time { return scenarioNow }})

	a.Chat(context.Background(), "top categories", models.Snapshot{})
	a.Chat(context.Background(), "top categories", models.Snapshot{})
	a.Chat(context.Background(), "hello", models.Snapshot{})

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "finassist_chat_queries_total"), "one series per intent")
}
