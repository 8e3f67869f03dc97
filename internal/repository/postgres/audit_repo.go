package postgres

import (
	"context"
	"fmt"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository implements domain.AuditRepository using PostgreSQL
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// RecordStatement inserts one statement lookup audit entry.
func (r *AuditRepository) RecordStatement(ctx context.Context, entry domain.StatementAudit) error {
	const query = `
		INSERT INTO statement_audit (id, actor, credit_id, cutoff_date, success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), now())`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(), entry.Actor, entry.CreditID, entry.CutoffDate, entry.Success, entry.Message)
	if err != nil {
		return fmt.Errorf("insert statement audit: %w", err)
	}
	return nil
}

// RecordDocument inserts one document retrieval audit entry.
func (r *AuditRepository) RecordDocument(ctx context.Context, entry domain.DocumentAudit) error {
	const query = `
		INSERT INTO document_audit (id, actor, document_kind, document_name, reference_id, success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), now())`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(), entry.Actor, entry.DocumentKind, entry.DocumentName, entry.ReferenceID, entry.Success, entry.Message)
	if err != nil {
		return fmt.Errorf("insert document audit: %w", err)
	}
	return nil
}
