package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeyard/farmledger/internal/domain"
)

// flakyBus fails the first failures publishes, then succeeds.
type flakyBus struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (b *flakyBus) Publish(ctx context.Context, evt Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.failures {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {}

func (b *flakyBus) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func newTestPublisher(t *testing.T, inner Bus, maxRetries int) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	pub, err := NewResilientPublisher(inner, maxRetries, time.Millisecond, path)
	require.NoError(t, err)
	return pub, path
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestResilientPublisherFirstAttemptSucceeds(t *testing.T) {
	bus := &flakyBus{}
	pub, path := newTestPublisher(t, bus, 3)

	require.NoError(t, pub.Publish(context.Background(), NewFarmStartedEvent("seed#0", "seed")))
	require.NoError(t, pub.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.callCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisherRetriesThenSucceeds(t *testing.T) {
	bus := &flakyBus{failures: 2}
	pub, path := newTestPublisher(t, bus, 5)

	require.NoError(t, pub.Publish(context.Background(), NewFarmStartedEvent("seed#0", "seed")))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pub.Shutdown(ctx))

	assert.Equal(t, 3, bus.callCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisherDeadLettersAfterExhaustion(t *testing.T) {
	bus := &flakyBus{failures: 100}
	pub, path := newTestPublisher(t, bus, 2)

	evt := NewFarmEndedEvent("seed#7", "seed", domain.NewAmount(50))
	require.NoError(t, pub.Publish(context.Background(), evt))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pub.Shutdown(ctx))

	// Initial attempt plus two retries.
	assert.Equal(t, 3, bus.callCount())

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, FarmEnded, entries[0].Event.Type)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Contains(t, entries[0].LastError, "bus unavailable")
}

func TestResilientPublisherPublishAfterShutdownDeadLetters(t *testing.T) {
	bus := &flakyBus{failures: 100}
	pub, path := newTestPublisher(t, bus, 3)

	require.NoError(t, pub.Shutdown(context.Background()))

	// Reopen the dead-letter file for the post-shutdown write check.
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	pub.deadLetter = dlw

	require.NoError(t, pub.Publish(context.Background(), NewFarmStartedEvent("seed#0", "seed")))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Attempts)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}
