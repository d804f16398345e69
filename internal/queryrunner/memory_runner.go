package queryrunner

import (
	"context"
	"sort"
	"sync"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/table"
)

// MemoryRunner is an in-memory implementation of the QueryRunner interface used
// for unit testing endpoint logic without requiring a running engine.
type MemoryRunner struct {
	mu           sync.Mutex
	calls        []ProcedureCall
	results      []*table.Table
	err          error
	connectivity error
}

// ProcedureCall captures a procedure invocation.
type ProcedureCall struct {
	Endpoint string
	Query    string
	Params   map[string]any
	Logging  bool
}

// NewMemoryRunner instantiates an empty MemoryRunner.
func NewMemoryRunner() *MemoryRunner {
	return &MemoryRunner{}
}

// WithError makes every later procedure call fail with err.
func (m *MemoryRunner) WithError(err error) *MemoryRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError makes VerifyConnectivity fail with err.
func (m *MemoryRunner) WithConnectivityError(err error) *MemoryRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushResult appends a table returned by the next call.
func (m *MemoryRunner) PushResult(res *table.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}

// PushRow appends a single-row table built from row. Columns are sorted by name.
func (m *MemoryRunner) PushRow(row map[string]any) {
	columns := make([]string, 0, len(row))
	for k := range row {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	m.PushResult(table.FromRows(columns, []map[string]any{row}))
}

func (m *MemoryRunner) CallProcedure(_ context.Context, endpoint string, p *params.CallParameters, logging bool) (*table.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	m.calls = append(m.calls, ProcedureCall{
		Endpoint: endpoint,
		Query:    ProcedureQuery(endpoint, p),
		Params:   p.ToMap(),
		Logging:  logging,
	})
	return m.pop(), nil
}

func (m *MemoryRunner) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryRunner) Close(context.Context) error {
	return nil
}

// Calls returns a snapshot of executed procedure calls.
func (m *MemoryRunner) Calls() []ProcedureCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProcedureCall(nil), m.calls...)
}

func (m *MemoryRunner) pop() *table.Table {
	if len(m.results) == 0 {
		return table.New()
	}
	res := m.results[0]
	m.results = m.results[1:]
	return res
}
