package postgres

import (
	"context"
	"fmt"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferenceRepository implements domain.ReferenceRepository using PostgreSQL
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository creates a new ReferenceRepository
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// GetByCreditID retrieves the contact references for a credit. Missing
// columns come back as empty strings so callers always see three complete
// reference slots.
func (r *ReferenceRepository) GetByCreditID(ctx context.Context, creditID int) (*domain.ClientReferences, error) {
	const query = `
		SELECT c.credit_id,
		       COALESCE(c.client_name, ''),
		       COALESCE(ref.reference1_name, ''),
		       COALESCE(ref.reference1_phone, ''),
		       COALESCE(ref.reference2_name, ''),
		       COALESCE(ref.reference2_phone, ''),
		       COALESCE(ref.reference3_name, ''),
		       COALESCE(ref.reference3_phone, '')
		FROM credits c
		LEFT JOIN credit_references ref ON ref.credit_id = c.credit_id
		WHERE c.credit_id = $1`

	refs := &domain.ClientReferences{}
	err := r.pool.QueryRow(ctx, query, creditID).Scan(
		&refs.CreditID,
		&refs.ClientName,
		&refs.Reference1Name,
		&refs.Reference1Phone,
		&refs.Reference2Name,
		&refs.Reference2Phone,
		&refs.Reference3Name,
		&refs.Reference3Phone,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrReferencesNotFound
		}
		return nil, fmt.Errorf("query references: %w", err)
	}

	return refs, nil
}
