package service

import (
	"context"
	"fmt"
	"time"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/credara/statements-backend/internal/ledger"
	"github.com/rs/zerolog/log"
)

// ProcessedStatement is the full result of one statement lookup: the upstream
// identity data, the display-only references, and the allocated ledger.
type ProcessedStatement struct {
	CreditID   int                      `json:"creditId"`
	CutoffDate string                   `json:"cutoffDate"`
	Client     domain.RawClient         `json:"client"`
	References *domain.ClientReferences `json:"references,omitempty"`
	Ledger     []*domain.LedgerRow      `json:"ledger"`
}

// StatementService fetches, enriches, and allocates account statements
type StatementService struct {
	provider      domain.StatementProvider
	referenceRepo domain.ReferenceRepository
	searchRepo    domain.CreditSearchRepository
	auditRepo     domain.AuditRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(
	provider domain.StatementProvider,
	referenceRepo domain.ReferenceRepository,
	searchRepo domain.CreditSearchRepository,
	auditRepo domain.AuditRepository,
) *StatementService {
	return &StatementService{
		provider:      provider,
		referenceRepo: referenceRepo,
		searchRepo:    searchRepo,
		auditRepo:     auditRepo,
	}
}

// Process runs one full statement lookup for a credit as of a cutoff date.
//
// The upstream fetch is the only hard failure; reference enrichment and audit
// writes degrade gracefully. Each call normalizes the raw records from
// scratch, so repeated lookups of the same credit are independent.
func (s *StatementService) Process(ctx context.Context, actor string, creditID int, cutoffDate string) (*ProcessedStatement, error) {
	if _, err := time.Parse(domain.CutoffDateLayout, cutoffDate); err != nil {
		return nil, domain.ErrInvalidCutoffDate
	}

	// 1. Fetch the raw statement from the upstream provider
	raw, err := s.provider.Fetch(ctx, creditID, cutoffDate)
	if err != nil {
		s.auditStatement(ctx, actor, creditID, cutoffDate, false, err.Error())
		return nil, err
	}

	// 2. The upstream answers unknown credits with an empty statement
	if raw.Empty() {
		s.auditStatement(ctx, actor, creditID, cutoffDate, false, "empty credit")
		return nil, domain.ErrCreditEmpty
	}

	// 3. Enrich with reference data; failure degrades to no references
	references, err := s.referenceRepo.GetByCreditID(ctx, creditID)
	if err != nil {
		log.Warn().Err(err).Int("credit_id", creditID).Msg("Reference lookup failed")
		references = nil
	}

	s.auditStatement(ctx, actor, creditID, cutoffDate, true, "")

	// 4. Normalize and allocate
	rows := s.allocate(raw, creditID)

	return &ProcessedStatement{
		CreditID:   creditID,
		CutoffDate: cutoffDate,
		Client:     raw.Client,
		References: references,
		Ledger:     rows,
	}, nil
}

// allocate runs the engine over the raw records. The engine is total for any
// well-formed-but-incomplete input; the recover is a backstop for programming
// defects only, degrading to an empty ledger instead of a failed request.
func (s *StatementService) allocate(raw *domain.RawStatement, creditID int) (rows []*domain.LedgerRow) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Int("credit_id", creditID).Msg("Ledger allocation failed")
			rows = []*domain.LedgerRow{}
		}
	}()

	charges := ledger.NormalizeCharges(raw.Charges)
	payments := ledger.NormalizePayments(raw.Payments)
	return ledger.Allocate(charges, payments)
}

// SearchCredits finds credits by customer name.
func (s *StatementService) SearchCredits(ctx context.Context, name string) ([]*domain.CreditSummary, error) {
	results, err := s.searchRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search credits by name: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrCreditNotFound
	}
	return results, nil
}

// auditStatement records the lookup outcome; audit failures are logged and
// swallowed, never surfaced to the caller.
func (s *StatementService) auditStatement(ctx context.Context, actor string, creditID int, cutoffDate string, success bool, message string) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.StatementAudit{
		Actor:      actor,
		CreditID:   creditID,
		CutoffDate: cutoffDate,
		Success:    success,
		Message:    message,
	}
	if err := s.auditRepo.RecordStatement(ctx, entry); err != nil {
		log.Warn().Err(err).Int("credit_id", creditID).Msg("Failed to record statement audit")
	}
}
