package domain

import "errors"

// Domain errors
var (
	ErrStatementUnavailable = errors.New("statement unavailable")
	ErrCreditEmpty          = errors.New("credit has no data")
	ErrCreditNotFound       = errors.New("credit not found")
	ErrReferencesNotFound   = errors.New("reference data not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrInvalidDocumentKind  = errors.New("invalid document kind")
	ErrClientIDMissing      = errors.New("client id missing from statement")
	ErrInvalidCutoffDate    = errors.New("cutoff date must be YYYY-MM-DD")
)

// Validation constants
const (
	// CutoffDateLayout is the wire format for the statement cutoff date.
	CutoffDateLayout = "2006-01-02"
	// MaxCreditSearchResults caps credit-by-name searches.
	MaxCreditSearchResults = 50
)
