package domain

import "context"

// ClientReferences holds the contact references attached to a credit. The
// fields are display-only and always present, empty strings when unknown.
type ClientReferences struct {
	CreditID        int    `json:"creditId"`
	ClientName      string `json:"clientName"`
	Reference1Name  string `json:"reference1Name"`
	Reference1Phone string `json:"reference1Phone"`
	Reference2Name  string `json:"reference2Name"`
	Reference2Phone string `json:"reference2Phone"`
	Reference3Name  string `json:"reference3Name"`
	Reference3Phone string `json:"reference3Phone"`
}

// CreditSummary is one row of a credit search by customer name.
type CreditSummary struct {
	CreditID   int    `json:"creditId"`
	ClientName string `json:"clientName"`
	StartDate  string `json:"startDate"`
}

// ReferenceRepository looks up display-only reference data for a credit.
type ReferenceRepository interface {
	GetByCreditID(ctx context.Context, creditID int) (*ClientReferences, error)
}

// CreditSearchRepository searches credits by customer name.
type CreditSearchRepository interface {
	SearchByName(ctx context.Context, name string) ([]*CreditSummary, error)
}
