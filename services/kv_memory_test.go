package services

import (
	"context"
	"encoding/json"
	"sync"
)

// -------- test fakes --------

// memoryKV is an in-memory KVStore used by the service tests.
type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		delete(m.data, key)
		return false, nil
	}
	return true, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryKV) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// recordingNotifier captures fan-out events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notifiedEvent
}

type notifiedEvent struct {
	UserID  string
	Event   string
	Payload interface{}
}

func (n *recordingNotifier) NotifyUser(userID, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifiedEvent{UserID: userID, Event: event, Payload: payload})
}

func (n *recordingNotifier) eventsFor(userID string) []notifiedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notifiedEvent
	for _, e := range n.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
