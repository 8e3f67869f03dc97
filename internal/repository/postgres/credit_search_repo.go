package postgres

import (
	"context"
	"fmt"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreditSearchRepository implements domain.CreditSearchRepository using PostgreSQL
type CreditSearchRepository struct {
	pool *pgxpool.Pool
}

// NewCreditSearchRepository creates a new CreditSearchRepository
func NewCreditSearchRepository(pool *pgxpool.Pool) *CreditSearchRepository {
	return &CreditSearchRepository{pool: pool}
}

// SearchByName finds credits whose customer name contains the given text,
// case-insensitively, capped at domain.MaxCreditSearchResults rows.
func (r *CreditSearchRepository) SearchByName(ctx context.Context, name string) ([]*domain.CreditSummary, error) {
	const query = `
		SELECT credit_id,
		       COALESCE(client_name, ''),
		       COALESCE(to_char(start_date, 'YYYY-MM-DD'), '')
		FROM credits
		WHERE client_name ILIKE '%' || $1 || '%'
		ORDER BY credit_id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, name, domain.MaxCreditSearchResults)
	if err != nil {
		return nil, fmt.Errorf("search credits: %w", err)
	}
	defer rows.Close()

	var results []*domain.CreditSummary
	for rows.Next() {
		summary := &domain.CreditSummary{}
		if err := rows.Scan(&summary.CreditID, &summary.ClientName, &summary.StartDate); err != nil {
			return nil, fmt.Errorf("scan credit row: %w", err)
		}
		results = append(results, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credit rows: %w", err)
	}

	return results, nil
}
