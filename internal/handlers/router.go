package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	noteHandler     *NoteHandler
	reviewHandler   *ReviewHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		questionHandler: NewQuestionHandler(serviceManager.Review(), logger),
		noteHandler:     NewNoteHandler(serviceManager.Review(), serviceManager.ImportExport(), logger),
		reviewHandler:   NewReviewHandler(serviceManager.Review(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Stateless question routes
		questions := v1.Group("/questions")
		{
			questions.POST("/build", hm.questionHandler.BuildQuestion)
			questions.POST("/evaluate", hm.questionHandler.EvaluateAnswer)
		}

		// Note routes
		notes := v1.Group("/notes")
		{
			notes.POST("", hm.noteHandler.CreateNote)
			notes.GET("", hm.noteHandler.ListNotes)
			notes.POST("/import", hm.noteHandler.ImportNotes)
			notes.GET("/:id", hm.noteHandler.GetNote)
			notes.PUT("/:id", hm.noteHandler.UpdateNote)
			notes.DELETE("/:id", hm.noteHandler.DeleteNote)

			// Review history
			notes.GET("/:id/reviews", hm.noteHandler.GetReviewHistory)
			notes.GET("/:id/reviews/export", hm.noteHandler.ExportReviews)

			// Card session
			notes.GET("/:id/cards/:ordinal/front", hm.reviewHandler.ShowFront)
			notes.PUT("/:id/cards/:ordinal/response", hm.reviewHandler.SubmitResponse)
			notes.POST("/:id/cards/:ordinal/back", hm.reviewHandler.ShowBack)
		}
	}
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "flashcard-quiz-service",
	})
}
