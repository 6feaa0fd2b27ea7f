package graph

import (
	"context"
	"sync"
)

// Fake is an in-memory Querier used to unit test repository logic without a
// running graph database. Results are scripted per call in FIFO order and
// every executed statement is recorded for inspection.
type Fake struct {
	mu           sync.Mutex
	reads        []Statement
	writes       []Statement
	readResults  [][]Record
	writeResults [][]Record
	err          error
	connectivity error
}

// Statement captures a cypher query and its bound parameters.
type Statement struct {
	Cypher string
	Params map[string]any
}

// NewFake returns an empty fake client.
func NewFake() *Fake {
	return &Fake{}
}

// FailWith makes every subsequent Read and Write return err.
func (f *Fake) FailWith(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// FailConnectivity makes VerifyConnectivity return err.
func (f *Fake) FailConnectivity(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connectivity = err
	return f
}

// QueueRead appends rows that the next Read call will return.
func (f *Fake) QueueRead(rows ...Record) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readResults = append(f.readResults, rows)
	return f
}

// QueueWrite appends rows that the next Write call will return.
func (f *Fake) QueueWrite(rows ...Record) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeResults = append(f.writeResults, rows)
	return f
}

func (f *Fake) Read(_ context.Context, cypher string, params map[string]any) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.reads = append(f.reads, Statement{Cypher: cypher, Params: cloneParams(params)})

	if len(f.readResults) == 0 {
		return nil, nil
	}
	rows := f.readResults[0]
	f.readResults = f.readResults[1:]
	return rows, nil
}

func (f *Fake) Write(_ context.Context, cypher string, params map[string]any) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.writes = append(f.writes, Statement{Cypher: cypher, Params: cloneParams(params)})

	if len(f.writeResults) == 0 {
		return nil, nil
	}
	rows := f.writeResults[0]
	f.writeResults = f.writeResults[1:]
	return rows, nil
}

func (f *Fake) VerifyConnectivity(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectivity
}

func (f *Fake) Close(context.Context) error { return nil }

// Reads returns a snapshot of executed read statements.
func (f *Fake) Reads() []Statement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Statement(nil), f.reads...)
}

// Writes returns a snapshot of executed write statements.
func (f *Fake) Writes() []Statement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Statement(nil), f.writes...)
}

func cloneParams(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
