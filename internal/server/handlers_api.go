package server

import (
	"errors"
	"fmt"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
	apperrors "github.com/Tanishqstar/sentiment-command-center/internal/errors"
	"github.com/Tanishqstar/sentiment-command-center/internal/query"
)

type feedbackListResponse struct {
	Records   []domain.FeedbackRecord `json:"records"`
	IsLoading bool                    `json:"is_loading"`
	IsStale   bool                    `json:"is_stale"`
}

type summaryResponse struct {
	query.Summary
	IsLoading bool `json:"is_loading"`
	IsStale   bool `json:"is_stale"`
}

type trendResponse struct {
	Points    []query.TrendPoint `json:"points"`
	IsLoading bool               `json:"is_loading"`
	IsStale   bool               `json:"is_stale"`
}

type createFeedbackRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	RawText       string `json:"raw_text"`
	SourceChannel string `json:"source_channel"`
	Category      string `json:"category"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleListFeedback(c echo.Context) error {
	records, status := s.service.Snapshot()

	spec := query.FilterSpec{
		SearchText: c.QueryParam("search"),
		Status:     c.QueryParam("status"),
		Sentiment:  c.QueryParam("sentiment"),
		Category:   c.QueryParam("category"),
	}

	resp := feedbackListResponse{
		Records:   query.Filter(records, spec),
		IsLoading: status.IsLoading,
		IsStale:   status.IsStale,
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCreateFeedback(c echo.Context) error {
	var req createFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	record, err := s.service.Insert(c.Request().Context(), domain.FeedbackDraft{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		RawText:       req.RawText,
		SourceChannel: req.SourceChannel,
		Category:      req.Category,
	})
	if err != nil {
		return mapServiceError(err)
	}

	if err := c.JSON(201, record); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid feedback ID").WithField("id", c.Param("id"))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	if err := s.service.UpdateStatus(c.Request().Context(), id, domain.ResolutionStatus(req.Status)); err != nil {
		return mapServiceError(err)
	}

	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSummary(c echo.Context) error {
	records, status := s.service.Snapshot()

	resp := summaryResponse{
		Summary:   query.Aggregate(records),
		IsLoading: status.IsLoading,
		IsStale:   status.IsStale,
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleTrend(c echo.Context) error {
	records, status := s.service.Snapshot()

	resp := trendResponse{
		Points:    query.Trend(records),
		IsLoading: status.IsLoading,
		IsStale:   status.IsStale,
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// mapServiceError translates cache and store errors into structured
// errors with the right HTTP status.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return apperrors.ValidationError("customer name, email and feedback text are required")
	case errors.Is(err, domain.ErrInvalidStatus):
		return apperrors.ValidationError("status must be one of New, In-Progress, Resolved")
	case errors.Is(err, domain.ErrRecordNotFound):
		return apperrors.NotFoundError("feedback record not found")
	case errors.Is(err, circuitbreaker.ErrOpen):
		return apperrors.UnavailableError("feedback store temporarily unavailable", err)
	default:
		var writeErr *domain.StoreWriteError
		if errors.As(err, &writeErr) {
			return apperrors.ExternalError("feedback store write failed", err)
		}
		return apperrors.InternalError("unexpected error", err)
	}
}
