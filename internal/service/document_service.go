package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"
)

const (
	// ineDPI is the print resolution the combined INE PDF is laid out at.
	ineDPI = 150.0
	// mmPerInch converts pixel dimensions at ineDPI into PDF millimeters.
	mmPerInch = 25.4

	ineJPEGQuality = 92
)

// DocumentService resolves identity and contract documents for a credit
type DocumentService struct {
	store     domain.DocumentStore
	provider  domain.StatementProvider
	auditRepo domain.AuditRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(store domain.DocumentStore, provider domain.StatementProvider, auditRepo domain.AuditRepository) *DocumentService {
	return &DocumentService{
		store:     store,
		provider:  provider,
		auditRepo: auditRepo,
	}
}

// ParseDocumentKind maps the wire value of the document type parameter to a
// DocumentKind.
func ParseDocumentKind(value string) (domain.DocumentKind, error) {
	switch domain.DocumentKind(value) {
	case domain.DocumentKindINE, domain.DocumentKindInvoice, domain.DocumentKindContract:
		return domain.DocumentKind(value), nil
	default:
		return "", domain.ErrInvalidDocumentKind
	}
}

// Fetch retrieves a document by kind for a credit. INE documents are
// assembled from the stored front/back photographs into a single PDF; invoice
// and contract documents are stored PDFs served as-is. Every attempt is
// audited.
func (s *DocumentService) Fetch(ctx context.Context, actor string, kind domain.DocumentKind, creditID int) (*domain.Document, error) {
	switch kind {
	case domain.DocumentKindINE:
		return s.fetchINE(ctx, actor, creditID)
	case domain.DocumentKindInvoice:
		return s.fetchStored(ctx, actor, kind, "Factura", creditID,
			fmt.Sprintf("FACTURA/%d_factura.pdf", creditID))
	case domain.DocumentKindContract:
		return s.fetchStored(ctx, actor, kind, "Contrato validaciones", creditID,
			fmt.Sprintf("VALIDACIONES/%d_validaciones.pdf", creditID))
	default:
		s.auditDocument(ctx, actor, string(kind), string(kind), creditID, false, "invalid document kind")
		return nil, domain.ErrInvalidDocumentKind
	}
}

// fetchINE resolves the client behind the credit, downloads both sides of the
// identity card, and combines them into one PDF page per side.
func (s *DocumentService) fetchINE(ctx context.Context, actor string, creditID int) (*domain.Document, error) {
	const docName = "INE completo"

	clientID, err := s.lookupClientID(ctx, creditID)
	if err != nil {
		s.auditDocument(ctx, actor, "INE", docName, creditID, false, err.Error())
		return nil, err
	}

	front, frontErr := s.store.Fetch(ctx, fmt.Sprintf("INE/%s_frente.jpeg", clientID))
	back, backErr := s.store.Fetch(ctx, fmt.Sprintf("INE/%s_reverso.jpeg", clientID))

	var missing []string
	if frontErr != nil {
		missing = append(missing, "front")
	}
	if backErr != nil {
		missing = append(missing, "back")
	}
	if len(missing) > 0 {
		msg := "missing INE sides: " + strings.Join(missing, ", ")
		s.auditDocument(ctx, actor, "INE", docName, creditID, false, msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, msg)
	}

	pdf, err := combineImagesToPDF(front, back)
	if err != nil {
		s.auditDocument(ctx, actor, "INE", docName, creditID, false, err.Error())
		return nil, fmt.Errorf("combine INE images: %w", err)
	}

	s.auditDocument(ctx, actor, "INE", docName, creditID, true, "")
	return &domain.Document{
		Filename:    fmt.Sprintf("%d_INE.pdf", creditID),
		ContentType: "application/pdf",
		Content:     pdf,
	}, nil
}

// fetchStored serves a document that already lives in the store as a PDF.
func (s *DocumentService) fetchStored(ctx context.Context, actor string, kind domain.DocumentKind, docName string, creditID int, key string) (*domain.Document, error) {
	content, err := s.store.Fetch(ctx, key)
	if err != nil {
		s.auditDocument(ctx, actor, string(kind), docName, creditID, false, err.Error())
		return nil, err
	}

	s.auditDocument(ctx, actor, string(kind), docName, creditID, true, "")
	return &domain.Document{
		Filename:    fmt.Sprintf("%d_%s.pdf", creditID, strings.ToLower(string(kind))),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// lookupClientID asks the statement provider who owns the credit; the
// document store keys identity documents by client, not by credit.
func (s *DocumentService) lookupClientID(ctx context.Context, creditID int) (string, error) {
	today := time.Now().Format(domain.CutoffDateLayout)
	stmt, err := s.provider.Fetch(ctx, creditID, today)
	if err != nil {
		return "", err
	}

	clientID := formatID(stmt.Client.ClientID)
	if clientID == "" {
		return "", domain.ErrClientIDMissing
	}
	return clientID, nil
}

// combineImagesToPDF lays out each JPEG as its own PDF page, sized at ineDPI.
func combineImagesToPDF(images ...[]byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	for i, data := range images {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", i+1, err)
		}

		// Re-encode to normalize color model and strip any odd metadata.
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(ineJPEGQuality)); err != nil {
			return nil, fmt.Errorf("encode image %d: %w", i+1, err)
		}

		widthMM := float64(img.Bounds().Dx()) / ineDPI * mmPerInch
		heightMM := float64(img.Bounds().Dy()) / ineDPI * mmPerInch

		name := fmt.Sprintf("side-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: widthMM, Ht: heightMM})
		pdf.ImageOptions(name, 0, 0, widthMM, heightMM, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return out.Bytes(), nil
}

// formatID renders a loosely typed upstream identifier for use in object keys.
func formatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return fmt.Sprintf("%d", int64(id))
	default:
		return fmt.Sprintf("%v", id)
	}
}

// auditDocument records the retrieval outcome; audit failures are logged and
// swallowed.
func (s *DocumentService) auditDocument(ctx context.Context, actor, kind, docName string, creditID int, success bool, message string) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.DocumentAudit{
		Actor:        actor,
		DocumentKind: kind,
		DocumentName: docName,
		ReferenceID:  fmt.Sprintf("%d", creditID),
		Success:      success,
		Message:      message,
	}
	if err := s.auditRepo.RecordDocument(ctx, entry); err != nil {
		log.Warn().Err(err).Str("kind", kind).Int("credit_id", creditID).Msg("Failed to record document audit")
	}
}
