package categorizer

import (
	"context"
	"errors"
	"sync"

	"fjacquet/finassist/internal/llm"
)

// mockCompleter is a hand-written llm.Completer for tests.
type mockCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	respond  func(messages []llm.Message) (string, error)
	calls    int
	lastMsgs []llm.Message
	models   []string
}

func (m *mockCompleter) Complete(_ context.Context, messages []llm.Message, model string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastMsgs = messages
	m.models = append(m.models, model)
	respond := m.respond
	m.mu.Unlock()

	if respond != nil {
		return respond(messages)
	}
	return m.response, m.err
}

func (m *mockCompleter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func failingCompleter() *mockCompleter {
	return &mockCompleter{err: &llm.Error{Op: llm.OpComplete, Kind: llm.KindStatus, StatusCode: 500, Err: errors.New("internal server error")}}
}
