package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/api/metrics"
	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
)

// FeedbackHandler serves feedback submission, listing and staff triage.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /api/feedback.
//
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Category and message"
// @Success      201   {object}  feedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	author, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Submit(c.Request().Context(), author, ports.SubmitFeedbackInput{
		Category: domain.FeedbackCategory(req.Type),
		Message:  req.Message,
	})
	if err != nil {
		return err
	}

	metrics.FeedbackSubmittedTotal.WithLabelValues(string(item.Type)).Inc()
	return c.JSON(http.StatusCreated, feedbackResponse{Success: true, Feedback: item})
}

// My handles GET /api/feedback/my — the caller's items in submission order.
//
// @Summary      List my feedback
// @Tags         feedback
// @Produce      json
// @Success      200  {array}   domain.Feedback
// @Failure      401  {object}  errorResponse
// @Router       /api/feedback/my [get]
func (h *FeedbackHandler) My(c echo.Context) error {
	author, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListMine(c.Request().Context(), author.SteamID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// List handles GET /api/feedback — the full collection (moderator and up).
//
// @Summary      List all feedback
// @Tags         feedback
// @Produce      json
// @Success      200  {array}   domain.Feedback
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	actor, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListAll(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Update handles PATCH /api/feedback/:id — status change and/or staff reply.
//
// @Summary      Update a feedback item
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Feedback id"
// @Param        body  body      moderateFeedbackRequest  true  "New status and/or reply"
// @Success      200   {object}  feedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/feedback/{id} [patch]
func (h *FeedbackHandler) Update(c echo.Context) error {
	actor, err := mustCurrentUser(c)
	if err != nil {
		return err
	}

	var req moderateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Moderate(c.Request().Context(), actor, c.Param("id"), ports.ModerateFeedbackInput{
		Status: req.Status,
		Reply:  req.Reply,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbackResponse{Success: true, Feedback: item})
}
