package domain

import "context"

// StatementAudit records one statement lookup attempt.
type StatementAudit struct {
	Actor      string
	CreditID   int
	CutoffDate string
	Success    bool
	Message    string
}

// DocumentAudit records one document retrieval attempt.
type DocumentAudit struct {
	Actor        string
	DocumentKind string
	DocumentName string
	ReferenceID  string
	Success      bool
	Message      string
}

// AuditRepository persists audit entries. Implementations are fire-and-forget
// from the caller's point of view: failures are logged, never propagated.
type AuditRepository interface {
	RecordStatement(ctx context.Context, entry StatementAudit) error
	RecordDocument(ctx context.Context, entry DocumentAudit) error
}
