package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/types"
)

func TestEmitterDeliversToAllSubscribers(t *testing.T) {
	emitter := NewDefaultEventEmitter()
	defer emitter.Close()

	first, cleanupFirst := emitter.Subscribe(context.Background())
	defer cleanupFirst()
	second, cleanupSecond := emitter.Subscribe(context.Background())
	defer cleanupSecond()

	assert.Equal(t, 2, emitter.SubscriberCount())

	event := NewEvent(EventFallbackUsed, types.NewID(), map[string]any{"template": "generic"})
	require.NoError(t, emitter.Emit(context.Background(), event))

	assert.Equal(t, EventFallbackUsed, (<-first).Type)
	assert.Equal(t, EventFallbackUsed, (<-second).Type)
}

func TestEmitterDropsForFullSubscriber(t *testing.T) {
	emitter := NewDefaultEventEmitter(WithBufferSize(1))
	defer emitter.Close()

	events, cleanup := emitter.Subscribe(context.Background())
	defer cleanup()

	id := types.NewID()
	require.NoError(t, emitter.Emit(context.Background(), NewEvent(EventPlanGenerated, id, nil)))
	// Buffer is full; this one is dropped rather than blocking.
	require.NoError(t, emitter.Emit(context.Background(), NewEvent(EventPlanScheduled, id, nil)))

	assert.Equal(t, EventPlanGenerated, (<-events).Type)
	assert.Empty(t, events)
}

func TestEmitterClosedRejectsEmit(t *testing.T) {
	emitter := NewDefaultEventEmitter()
	require.NoError(t, emitter.Close())
	assert.Error(t, emitter.Emit(context.Background(), NewEvent(EventPlanGenerated, types.NewID(), nil)))

	// Closing twice is fine.
	assert.NoError(t, emitter.Close())
}

func TestUnsubscribeRemovesChannel(t *testing.T) {
	emitter := NewDefaultEventEmitter()
	defer emitter.Close()

	_, cleanup := emitter.Subscribe(context.Background())
	cleanup()
	assert.Equal(t, 0, emitter.SubscriberCount())
	// Cleanup is idempotent.
	cleanup()
}
