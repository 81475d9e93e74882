package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ReviewHandler drives one card through front, response and back
type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
	}
}

// ShowFront renders the question side of a card
// @Summary Show card front
// @Tags reviews
// @Produce json
// @Param id path uint true "Note ID"
// @Param ordinal path int true "Card ordinal"
// @Success 200 {object} services.CardView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /notes/{id}/cards/{ordinal}/front [get]
func (h *ReviewHandler) ShowFront(c *gin.Context) {
	noteID, ordinal, ok := h.parseCard(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Showing card front", "note_id", noteID, "ordinal", ordinal)

	view, err := h.reviewService.ShowFront(c.Request.Context(), noteID, ordinal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitResponse stores the user's response for the card
// @Summary Submit response
// @Tags reviews
// @Accept json
// @Param id path uint true "Note ID"
// @Param ordinal path int true "Card ordinal"
// @Param response body models.UserResponse false "User response"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id}/cards/{ordinal}/response [put]
func (h *ReviewHandler) SubmitResponse(c *gin.Context) {
	noteID, ordinal, ok := h.parseCard(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot read request body", err)
		return
	}
	// an empty body is an explicit don't-know
	response, err := models.ParseUserResponse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid response payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting response", "note_id", noteID, "ordinal", ordinal, "idk", response.DeclaredDontKnow)

	if err := h.reviewService.SubmitResponse(c.Request.Context(), noteID, ordinal, response); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ShowBack renders the answer side and scores the stored response
// @Summary Show card back
// @Tags reviews
// @Produce json
// @Param id path uint true "Note ID"
// @Param ordinal path int true "Card ordinal"
// @Success 200 {object} services.BackView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id}/cards/{ordinal}/back [post]
func (h *ReviewHandler) ShowBack(c *gin.Context) {
	noteID, ordinal, ok := h.parseCard(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Showing card back", "note_id", noteID, "ordinal", ordinal)

	view, err := h.reviewService.ShowBack(c.Request.Context(), noteID, ordinal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ReviewHandler) parseCard(c *gin.Context) (uint, int, bool) {
	noteID := h.parseIDParam(c, "id")
	if noteID == 0 {
		return 0, 0, false
	}
	ordinal := h.parseOrdinalParam(c)
	if ordinal < 0 {
		return 0, 0, false
	}
	return noteID, ordinal, true
}
