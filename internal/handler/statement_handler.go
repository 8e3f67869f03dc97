package handler

import (
	"errors"
	"net/http"

	"github.com/credara/statements-backend/internal/domain"
	"github.com/credara/statements-backend/internal/middleware"
	"github.com/credara/statements-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// StatementHandler handles statement processing requests
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// ProcessStatementRequest is the request body for processing a statement
type ProcessStatementRequest struct {
	CreditID   int    `json:"creditId"`
	CutoffDate string `json:"cutoffDate"`
}

// ProcessStatement handles POST /api/v1/statements
// @Summary Process an account statement
// @Description Fetches the raw statement for a credit, enriches it with reference data, and allocates payments across installments
// @Tags statements
// @Accept json
// @Produce json
// @Param request body ProcessStatementRequest true "Credit and cutoff date"
// @Success 200 {object} service.ProcessedStatement
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Security BearerAuth
// @Router /statements [post]
func (h *StatementHandler) ProcessStatement(c echo.Context) error {
	var req ProcessStatementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var validationErrors []ValidationError
	if req.CreditID <= 0 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "creditId",
			Message: "must be a positive integer",
		})
	}
	if req.CutoffDate == "" {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "cutoffDate",
			Message: "is required",
		})
	}
	if len(validationErrors) > 0 {
		return NewValidationError(c, "Invalid statement request", validationErrors)
	}

	actor := middleware.GetActor(c)
	result, err := h.statementService.Process(c.Request().Context(), actor, req.CreditID, req.CutoffDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCutoffDate):
			return NewValidationError(c, "Cutoff date must be in YYYY-MM-DD format", []ValidationError{
				{Field: "cutoffDate", Message: "must be in YYYY-MM-DD format"},
			})
		case errors.Is(err, domain.ErrCreditEmpty):
			return NewNotFoundError(c, "Credit has no statement data")
		case errors.Is(err, domain.ErrStatementUnavailable):
			return NewBadGatewayError(c, err.Error())
		default:
			log.Error().Err(err).Int("credit_id", req.CreditID).Msg("Failed to process statement")
			return NewInternalError(c, "Failed to process statement")
		}
	}

	return c.JSON(http.StatusOK, result)
}

// SearchCredits handles GET /api/v1/credits
// @Summary Search credits by client name
// @Description Finds credits whose client name contains the given fragment
// @Tags credits
// @Produce json
// @Param name query string true "Client name fragment"
// @Success 200 {array} domain.CreditSummary
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Security BearerAuth
// @Router /credits [get]
func (h *StatementHandler) SearchCredits(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return NewValidationError(c, "Missing search parameter", []ValidationError{
			{Field: "name", Message: "is required"},
		})
	}

	results, err := h.statementService.SearchCredits(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrCreditNotFound) {
			return NewNotFoundError(c, "No credits match the given name")
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to search credits")
		return NewInternalError(c, "Failed to search credits")
	}

	return c.JSON(http.StatusOK, results)
}
