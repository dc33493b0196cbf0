package service

import (
	"context"
	"log"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// EventEmitter: decouples services from whatever renders the editor
// ─────────────────────────────────────────────────────────────

// Events emitted by the services in this package.
const (
	EventComponentsChanged   = "components:changed"
	EventQuestionnaireLoaded = "questionnaire:loaded"
	EventQuestionnaireFailed = "questionnaire:load-failed"
	EventListChanged         = "list:changed"
)

// EventEmitter broadcasts editor events to views. Services receive this
// interface instead of a concrete transport so they stay testable with
// MockEmitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// NoopEmitter drops every event.
type NoopEmitter struct{}

func (NoopEmitter) Emit(_ context.Context, _ string, _ any) {}

// LogEmitter writes event names to the standard logger. Used when no view is
// attached, e.g. when the editor is driven over MCP stdio.
type LogEmitter struct{}

func (LogEmitter) Emit(_ context.Context, event string, _ any) {
	log.Printf("event: %s", event)
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	mu     sync.Mutex
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Names returns the recorded event names in emission order.
func (m *MockEmitter) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Event
	}
	return out
}
