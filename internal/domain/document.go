package domain

import "context"

// DocumentKind identifies the kinds of identity and contract documents the
// document store can resolve.
type DocumentKind string

const (
	DocumentKindINE      DocumentKind = "INE"
	DocumentKindInvoice  DocumentKind = "Factura"
	DocumentKindContract DocumentKind = "Contrato"
)

// Document is a retrieved binary document ready to serve.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// DocumentStore resolves an object key to its binary content.
type DocumentStore interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}
