package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/credara/statements-backend/internal/middleware"
	"github.com/credara/statements-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DocumentHandler handles document download requests
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// GetDocument handles GET /api/v1/documents/:id
// @Summary Download a credit document
// @Description Downloads the INE, invoice, or contract document for a credit. INE documents are assembled from the stored front and back photographs into a single PDF.
// @Tags documents
// @Produce application/pdf
// @Param id path int true "Credit ID"
// @Param type query string true "Document type" Enums(INE, Factura, Contrato)
// @Success 200 {file} binary
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c echo.Context) error {
	creditID, err := strconv.Atoi(c.Param("id"))
	if err != nil || creditID <= 0 {
		return NewValidationError(c, "Invalid credit ID", []ValidationError{
			{Field: "id", Message: "must be a positive integer"},
		})
	}

	kind, err := service.ParseDocumentKind(c.QueryParam("type"))
	if err != nil {
		return NewValidationError(c, "Invalid document type", []ValidationError{
			{Field: "type", Message: "must be one of INE, Factura, Contrato"},
		})
	}

	actor := middleware.GetActor(c)
	doc, err := h.documentService.Fetch(c.Request().Context(), actor, kind, creditID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			return NewNotFoundError(c, err.Error())
		case errors.Is(err, domain.ErrClientIDMissing):
			return NewNotFoundError(c, "Credit has no associated client")
		case errors.Is(err, domain.ErrStatementUnavailable):
			return NewBadGatewayError(c, err.Error())
		default:
			log.Error().Err(err).Int("credit_id", creditID).Str("kind", string(kind)).Msg("Failed to fetch document")
			return NewInternalError(c, "Failed to fetch document")
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
