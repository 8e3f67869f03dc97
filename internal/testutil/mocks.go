package testutil

import (
	"context"
	"sync"

	"github.com/credara/statements-backend/internal/domain"
)

// MockStatementProvider is a mock implementation of domain.StatementProvider
type MockStatementProvider struct {
	Statements map[int]*domain.RawStatement
	FetchFn    func(ctx context.Context, creditID int, cutoffDate string) (*domain.RawStatement, error)
	Calls      int
}

// NewMockStatementProvider creates a new MockStatementProvider
func NewMockStatementProvider() *MockStatementProvider {
	return &MockStatementProvider{
		Statements: make(map[int]*domain.RawStatement),
	}
}

// Fetch returns the configured statement for a credit
func (m *MockStatementProvider) Fetch(ctx context.Context, creditID int, cutoffDate string) (*domain.RawStatement, error) {
	m.Calls++
	if m.FetchFn != nil {
		return m.FetchFn(ctx, creditID, cutoffDate)
	}
	if stmt, ok := m.Statements[creditID]; ok {
		return stmt, nil
	}
	return nil, domain.ErrStatementUnavailable
}

// AddStatement registers a statement for a credit (helper for tests)
func (m *MockStatementProvider) AddStatement(creditID int, stmt *domain.RawStatement) {
	m.Statements[creditID] = stmt
}

// MockReferenceRepository is a mock implementation of domain.ReferenceRepository
type MockReferenceRepository struct {
	References map[int]*domain.ClientReferences
	GetFn      func(ctx context.Context, creditID int) (*domain.ClientReferences, error)
}

// NewMockReferenceRepository creates a new MockReferenceRepository
func NewMockReferenceRepository() *MockReferenceRepository {
	return &MockReferenceRepository{
		References: make(map[int]*domain.ClientReferences),
	}
}

// GetByCreditID retrieves references for a credit
func (m *MockReferenceRepository) GetByCreditID(ctx context.Context, creditID int) (*domain.ClientReferences, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, creditID)
	}
	if refs, ok := m.References[creditID]; ok {
		return refs, nil
	}
	return nil, domain.ErrReferencesNotFound
}

// MockCreditSearchRepository is a mock implementation of domain.CreditSearchRepository
type MockCreditSearchRepository struct {
	Results  []*domain.CreditSummary
	SearchFn func(ctx context.Context, name string) ([]*domain.CreditSummary, error)
}

// NewMockCreditSearchRepository creates a new MockCreditSearchRepository
func NewMockCreditSearchRepository() *MockCreditSearchRepository {
	return &MockCreditSearchRepository{}
}

// SearchByName returns the configured search results
func (m *MockCreditSearchRepository) SearchByName(ctx context.Context, name string) ([]*domain.CreditSummary, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, name)
	}
	return m.Results, nil
}

// MockAuditRepository is a mock implementation of domain.AuditRepository that
// records every entry it receives.
type MockAuditRepository struct {
	mu               sync.Mutex
	StatementEntries []domain.StatementAudit
	DocumentEntries  []domain.DocumentAudit
	RecordErr        error
}

// NewMockAuditRepository creates a new MockAuditRepository
func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

// RecordStatement stores a statement audit entry
func (m *MockAuditRepository) RecordStatement(ctx context.Context, entry domain.StatementAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.StatementEntries = append(m.StatementEntries, entry)
	return nil
}

// RecordDocument stores a document audit entry
func (m *MockAuditRepository) RecordDocument(ctx context.Context, entry domain.DocumentAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.DocumentEntries = append(m.DocumentEntries, entry)
	return nil
}

// MockDocumentStore is a mock implementation of domain.DocumentStore backed
// by an in-memory object map.
type MockDocumentStore struct {
	Objects map[string][]byte
	FetchFn func(ctx context.Context, key string) ([]byte, error)
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		Objects: make(map[string][]byte),
	}
}

// Fetch returns the stored object content
func (m *MockDocumentStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	if m.FetchFn != nil {
		return m.FetchFn(ctx, key)
	}
	if data, ok := m.Objects[key]; ok {
		return data, nil
	}
	return nil, domain.ErrDocumentNotFound
}

// AddObject stores object content under a key (helper for tests)
func (m *MockDocumentStore) AddObject(key string, data []byte) {
	m.Objects[key] = data
}
