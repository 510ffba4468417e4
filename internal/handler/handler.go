package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/farescout/internal/engine"
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/provider"
)

type FareHandler struct {
	engine *engine.Engine
}

func NewFareHandler(e *engine.Engine) *FareHandler {
	return &FareHandler{engine: e}
}

// Search serves a plain direct search.
func (h *FareHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	offers, err := h.engine.Search(ctx, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Request: req,
		Metadata: models.SearchMetadata{
			RunID:        uuid.NewString(),
			TotalResults: len(offers),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Offers: offers,
	})
}

// Evaluate runs the full fare evaluation: baseline plus hub sweep.
func (h *FareHandler) Evaluate(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	evaluation, err := h.engine.Evaluate(ctx, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, models.EvaluationResponse{
		Request: evaluation.Request,
		Metadata: models.SearchMetadata{
			RunID:        uuid.NewString(),
			TotalResults: len(evaluation.Candidates),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Baseline:     evaluation.Baseline,
		DirectOffers: evaluation.DirectOffers,
		Candidates:   evaluation.Candidates,
		ResultPath:   evaluation.ResultPath,
	})
}

func writeError(c echo.Context, err error) error {
	var validationErr models.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if errors.Is(err, provider.ErrUnavailable) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "provider_unavailable",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "search_error",
		Message: "Failed to evaluate fares: " + err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
