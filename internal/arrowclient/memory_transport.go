package arrowclient

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vanshika/gdsclient/internal/table"
)

// MemoryTransport is an in-memory Transport used to exercise the job protocol
// in tests. Unless overridden, every job reports as done.
type MemoryTransport struct {
	mu        sync.Mutex
	actions   []RecordedAction
	tickets   [][]byte
	queued    map[string][][]byte
	fallbacks map[string][]byte
	streams   []*table.Table
	err       error
	pings     int
}

// RecordedAction captures a DoAction call.
type RecordedAction struct {
	Type string
	Raw  []byte
	Body map[string]any
}

// NewMemoryTransport instantiates an empty MemoryTransport.
func NewMemoryTransport() *MemoryTransport {
	m := &MemoryTransport{
		queued:    map[string][][]byte{},
		fallbacks: map[string][]byte{},
	}
	m.AlwaysRespond(ActionJobStatus, JobStatus{Status: StatusDone})
	return m
}

// WithError configures the transport to fail every subsequent call.
func (m *MemoryTransport) WithError(err error) *MemoryTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Ping counts the call and fails with the configured error, if any.
func (m *MemoryTransport) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pings++
	return m.err
}

// Pings reports how often Ping was called.
func (m *MemoryTransport) Pings() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pings
}

// Respond queues v, JSON encoded, as the next response to actionType.
func (m *MemoryTransport) Respond(actionType string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued[actionType] = append(m.queued[actionType], raw)
}

// AlwaysRespond sets the response to actionType once its queue is drained.
func (m *MemoryTransport) AlwaysRespond(actionType string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks[actionType] = raw
}

// PushStream appends a table returned by the next GetStream call.
func (m *MemoryTransport) PushStream(t *table.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = append(m.streams, t)
}

func (m *MemoryTransport) DoAction(_ context.Context, actionType string, body []byte) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	rec := RecordedAction{Type: actionType, Raw: append([]byte(nil), body...)}
	_ = json.Unmarshal(body, &rec.Body)
	m.actions = append(m.actions, rec)

	if queue := m.queued[actionType]; len(queue) > 0 {
		m.queued[actionType] = queue[1:]
		return [][]byte{queue[0]}, nil
	}
	if raw, ok := m.fallbacks[actionType]; ok {
		return [][]byte{raw}, nil
	}
	return nil, nil
}

func (m *MemoryTransport) GetStream(_ context.Context, ticket []byte) (*table.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	m.tickets = append(m.tickets, append([]byte(nil), ticket...))
	if len(m.streams) == 0 {
		return table.New(), nil
	}
	t := m.streams[0]
	m.streams = m.streams[1:]
	return t, nil
}

func (m *MemoryTransport) Close() error {
	return nil
}

// Actions returns a snapshot of executed actions.
func (m *MemoryTransport) Actions() []RecordedAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedAction(nil), m.actions...)
}

// ActionTypes returns the types of executed actions in call order.
func (m *MemoryTransport) ActionTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.actions))
	for _, a := range m.actions {
		types = append(types, a.Type)
	}
	return types
}

// Tickets returns a snapshot of requested stream tickets.
func (m *MemoryTransport) Tickets() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.tickets...)
}
