package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/dashboard-api/internal/core/ports"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []ports.OrderPlaced
	err    error
	done   chan struct{}
	want   int
}

func newRecordingHandler(want int) *recordingHandler {
	return &recordingHandler{done: make(chan struct{}), want: want}
}

func (h *recordingHandler) HandleOrderPlaced(_ context.Context, e ports.OrderPlaced) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
	if len(h.events) == h.want {
		close(h.done)
	}
	return h.err
}

func (h *recordingHandler) wait(t *testing.T) {
	t.Helper()
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	h := newRecordingHandler(20)
	d := NewDispatcher(3, h, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		d.Publish(ports.OrderPlaced{OrderID: string(rune('a' + i)), UserID: "user-1", Amount: i})
	}
	h.wait(t)
	cancel()
	d.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.events, 20)
	for i, e := range h.events {
		assert.Equal(t, i, e.Amount)
	}
}

func TestDispatcher_HandlerErrorDoesNotStopWorker(t *testing.T) {
	h := newRecordingHandler(2)
	h.err = errors.New("boom")
	d := NewDispatcher(1, h, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Publish(ports.OrderPlaced{OrderID: "1", UserID: "u"})
	d.Publish(ports.OrderPlaced{OrderID: "2", UserID: "u"})
	h.wait(t)
}

func TestDispatcher_PublishDropsWhenFull(t *testing.T) {
	h := newRecordingHandler(-1)
	d := NewDispatcher(1, h, zerolog.Nop())

	// Not started: nothing drains the channel.
	for i := 0; i < channelBuffer+5; i++ {
		d.Publish(ports.OrderPlaced{UserID: "u"})
	}
	assert.Len(t, d.workers[0], channelBuffer)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingHandler(-1), zerolog.Nop())
	require.Len(t, d.workers, defaultWorkers)

	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.shardIndex("user-42"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, defaultWorkers)
}
