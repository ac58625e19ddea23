package services

import (
	"context"
	"encoding/json"
	"sync"

	"fpm-inspections-core/internal/infrastructure/progress"
)

// memoryTasks fait office de TaskStore et de Reporter, comme Redis en production
type memoryTasks struct {
	mu      sync.Mutex
	last    map[string]progress.Event
	results map[string]json.RawMessage
	subs    map[string][]chan progress.Event
}

func newMemoryTasks() *memoryTasks {
	return &memoryTasks{
		last:    map[string]progress.Event{},
		results: map[string]json.RawMessage{},
		subs:    map[string][]chan progress.Event{},
	}
}

func (m *memoryTasks) Report(_ context.Context, ev progress.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[ev.TaskID] = ev
	for _, ch := range m.subs[ev.TaskID] {
		ch <- ev
	}
	return nil
}

func (m *memoryTasks) SaveResult(_ context.Context, taskID string, result interface{}) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.results[taskID] = payload
	m.mu.Unlock()
	return nil
}

func (m *memoryTasks) Result(_ context.Context, taskID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[taskID], nil
}

func (m *memoryTasks) LastEvent(_ context.Context, taskID string) (*progress.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.last[taskID]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (m *memoryTasks) Subscribe(_ context.Context, taskID string) (*Subscription, error) {
	ch := make(chan progress.Event, 16)
	m.mu.Lock()
	m.subs[taskID] = append(m.subs[taskID], ch)
	m.mu.Unlock()
	return &Subscription{Events: ch, Close: func() error { return nil }}, nil
}
