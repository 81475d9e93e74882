package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// QuestionHandler exposes stateless build and evaluate over raw note fields
type QuestionHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewQuestionHandler(reviewService services.ReviewService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
	}
}

// BuildQuestion builds a question from note fields
// @Summary Build question
// @Description Builds the question for one card of a note without storing anything
// @Tags questions
// @Accept json
// @Produce json
// @Param request body services.BuildRequest true "Note fields and card"
// @Success 200 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /questions/build [post]
func (h *QuestionHandler) BuildQuestion(c *gin.Context) {
	h.LogRequest(c, "Building question")

	var req services.BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.reviewService.Preview(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// EvaluateAnswer builds a question and scores a response against it
// @Summary Evaluate answer
// @Description Builds the card from note fields and evaluates the user response
// @Tags questions
// @Accept json
// @Produce json
// @Param request body services.GradeRequest true "Note fields and response"
// @Success 200 {object} services.GradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /questions/evaluate [post]
func (h *QuestionHandler) EvaluateAnswer(c *gin.Context) {
	h.LogRequest(c, "Evaluating answer")

	var req services.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.reviewService.Grade(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
