package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MockCall records a method call for assertion
type MockCall struct {
	Method string
	Args   []any
}

// MockLedger is a configurable in-memory Client for tests and local
// development. Set the *Func fields to override behavior per method; the
// defaults mint into an in-memory record list and serve reads from it.
type MockLedger struct {
	mu sync.Mutex

	// Call tracking
	Calls []MockCall

	RecordsByCreatorFunc func(ctx context.Context, creator string, limit int) ([]ContentRecord, error)
	MintFunc             func(ctx context.Context, identity Identity, params MintParams) (MintResult, error)
	AttachMetadataFunc   func(ctx context.Context, identity Identity, id string, meta Metadata) (string, error)

	records map[string][]ContentRecord // keyed by creator address
	nextID  int
}

// NewMockLedger creates an empty mock ledger.
func NewMockLedger() *MockLedger {
	return &MockLedger{records: make(map[string][]ContentRecord)}
}

func (m *MockLedger) recordCall(method string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// CallCount returns how many times the named method was invoked.
func (m *MockLedger) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// AddRecord seeds a record under the given creator without going through
// the mint path.
func (m *MockLedger) AddRecord(creator string, record ContentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[creator] = append(m.records[creator], record)
}

// RecordsByCreator returns the seeded and minted records for a creator.
func (m *MockLedger) RecordsByCreator(ctx context.Context, creator string, limit int) ([]ContentRecord, error) {
	m.recordCall("RecordsByCreator", creator, limit)
	if m.RecordsByCreatorFunc != nil {
		return m.RecordsByCreatorFunc(ctx, creator, limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	records := m.records[creator]
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]ContentRecord, len(records))
	copy(out, records)
	return out, nil
}

// Mint creates a record with a generated ID under params.Collection.
func (m *MockLedger) Mint(ctx context.Context, identity Identity, params MintParams) (MintResult, error) {
	m.recordCall("Mint", params)
	if m.MintFunc != nil {
		return m.MintFunc(ctx, identity, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("record-%04d", m.nextID)
	m.records[params.Collection] = append(m.records[params.Collection], ContentRecord{
		ID:   id,
		Name: params.Name,
	})
	return MintResult{ID: id, MetadataAddress: id + "-meta"}, nil
}

// AttachMetadata fills in the metadata of a previously minted record.
func (m *MockLedger) AttachMetadata(ctx context.Context, identity Identity, id string, meta Metadata) (string, error) {
	m.recordCall("AttachMetadata", id, meta)
	if m.AttachMetadataFunc != nil {
		return m.AttachMetadataFunc(ctx, identity, id, meta)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	uri := "mock://metadata/" + id
	for creator, records := range m.records {
		for i, r := range records {
			if r.ID == id {
				r.URI = uri
				r.Name = meta.Name
				r.Description = meta.Description
				r.Image = meta.Image
				r.Attributes = meta.Attributes
				m.records[creator][i] = r
			}
		}
	}
	return uri, nil
}

var _ Client = (*MockLedger)(nil)
