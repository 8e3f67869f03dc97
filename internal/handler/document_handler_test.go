package handler

import (
	"bytes"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/credara/statements-backend/internal/service"
	"github.com/credara/statements-backend/internal/testutil"
	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
)

func documentTestHandler(t *testing.T) (*DocumentHandler, *testutil.MockDocumentStore) {
	t.Helper()

	img := imaging.New(320, 200, color.NRGBA{R: 180, G: 180, B: 180, A: 255})
	var jpeg bytes.Buffer
	if err := imaging.Encode(&jpeg, img, imaging.JPEG); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	store := testutil.NewMockDocumentStore()
	store.AddObject("INE/7_frente.jpeg", jpeg.Bytes())
	store.AddObject("INE/7_reverso.jpeg", jpeg.Bytes())
	store.AddObject("FACTURA/42_factura.pdf", []byte("%PDF-1.4 invoice"))

	provider := testutil.NewMockStatementProvider()
	provider.AddStatement(42, &domain.RawStatement{
		CreditID: 42.0,
		Client:   domain.RawClient{ClientID: 7.0, Fields: map[string]any{"idCliente": 7.0}},
	})

	svc := service.NewDocumentService(store, provider, testutil.NewMockAuditRepository())
	return NewDocumentHandler(svc), store
}

func documentContext(e *echo.Echo, creditID, docType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+creditID+"?type="+docType, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(creditID)
	return c, rec
}

func TestGetDocument_INE(t *testing.T) {
	e := echo.New()
	h, _ := documentTestHandler(t)

	c, rec := documentContext(e, "42", "INE")
	if err := h.GetDocument(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Errorf("Expected PDF content type, got %s", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "42_INE.pdf") {
		t.Errorf("Expected filename in disposition header, got %s", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("Expected response body to be a PDF")
	}
}

func TestGetDocument_Invoice(t *testing.T) {
	e := echo.New()
	h, _ := documentTestHandler(t)

	c, rec := documentContext(e, "42", "Factura")
	if err := h.GetDocument(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), []byte("%PDF-1.4 invoice")) {
		t.Error("Expected stored invoice bytes passed through")
	}
}

func TestGetDocument_InvalidCreditID(t *testing.T) {
	e := echo.New()
	h, _ := documentTestHandler(t)

	for _, id := range []string{"abc", "-5", "0"} {
		c, rec := documentContext(e, id, "INE")
		if err := h.GetDocument(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("ID %q: expected status 400, got %d", id, rec.Code)
		}
	}
}

func TestGetDocument_InvalidType(t *testing.T) {
	e := echo.New()
	h, _ := documentTestHandler(t)

	c, rec := documentContext(e, "42", "Pagare")
	if err := h.GetDocument(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	e := echo.New()
	h, store := documentTestHandler(t)
	delete(store.Objects, "FACTURA/42_factura.pdf")

	c, rec := documentContext(e, "42", "Factura")
	if err := h.GetDocument(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
