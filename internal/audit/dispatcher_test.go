package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (w *recordingWriter) Write(_ context.Context, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func TestDispatcherDeliversQueuedEventsBeforeClose(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w, zap.NewNop())

	for _, action := range []string{ActionAvailabilitySet, ActionAvailabilityReset, ActionAvailabilityCopied} {
		d.Dispatch(Event{Actor: "admin@example.com", Action: action, Entity: EntityAvailability})
	}
	d.Close()

	assert.Len(t, w.events, 3)
	assert.Equal(t, ActionAvailabilitySet, w.events[0].Action)
	assert.Equal(t, ActionAvailabilityCopied, w.events[2].Action)
}

func TestDispatcherAfterCloseDrops(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w, zap.NewNop())
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAvailabilityDeleted})
	})
	assert.NotPanics(t, d.Close)
	assert.Empty(t, w.events)
}

func TestDispatcherSurvivesWriterErrors(t *testing.T) {
	w := &recordingWriter{err: errors.New("db down")}
	d := NewDispatcher(w, zap.NewNop())

	d.Dispatch(Event{Action: ActionAvailabilitySet})
	d.Dispatch(Event{Action: ActionAvailabilityReset})
	d.Close()

	assert.Len(t, w.events, 2)
}

func TestEncodeMetadata(t *testing.T) {
	assert.Equal(t, "", encodeMetadata(nil))
	assert.JSONEq(t, `{"targets":["2024-06-02"]}`, encodeMetadata(map[string]any{
		"targets": []string{"2024-06-02"},
	}))
}
