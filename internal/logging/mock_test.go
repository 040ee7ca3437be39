package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.WithField("a", 1).Info("first")
	mock.WithError(errors.New("boom")).WithFields(Field{Key: "b", Value: 2}).Warn("second")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	v, ok := entries[0].FieldValue("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	assert.Equal(t, "WARN", entries[1].Level)
	assert.EqualError(t, entries[1].Error, "boom")
	assert.True(t, mock.HasEntry("WARN", "second"))
	assert.Len(t, mock.GetEntriesByLevel("INFO"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Debug("hello")
	assert.True(t, mock.HasEntry("DEBUG", "hello"))
}

func TestMockLogger_ConcurrentWrites(t *testing.T) {
	mock := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mock.WithField("i", i).Debug("tick")
		}(i)
	}
	wg.Wait()
	assert.Len(t, mock.GetEntries(), 20)
}
