package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportSize   = 10 << 20
)

// NoteHandler manages stored notes, deck import and review history
type NoteHandler struct {
	BaseHandler
	reviewService       services.ReviewService
	importExportService services.ImportExportService
}

func NewNoteHandler(
	reviewService services.ReviewService,
	importExportService services.ImportExportService,
	logger utils.Logger,
) *NoteHandler {
	return &NoteHandler{
		BaseHandler:         NewBaseHandler(logger),
		reviewService:       reviewService,
		importExportService: importExportService,
	}
}

// CreateNote stores a new note
// @Summary Create note
// @Tags notes
// @Accept json
// @Produce json
// @Param note body services.CreateNoteRequest true "Note data"
// @Success 201 {object} models.Note
// @Failure 400 {object} ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	h.LogRequest(c, "Creating note")

	var req services.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	note, err := h.reviewService.CreateNote(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// GetNote retrieves a note by ID
// @Summary Get note
// @Tags notes
// @Produce json
// @Param id path uint true "Note ID"
// @Success 200 {object} models.Note
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	note, err := h.reviewService.GetNote(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// UpdateNote replaces a note
// @Summary Update note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path uint true "Note ID"
// @Param note body services.CreateNoteRequest true "Note data"
// @Success 200 {object} models.Note
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating note", "note_id", id)

	var req services.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	note, err := h.reviewService.UpdateNote(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote deletes a note and its reviews
// @Summary Delete note
// @Tags notes
// @Param id path uint true "Note ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting note", "note_id", id)

	if err := h.reviewService.DeleteNote(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListNotes lists notes with filters
// @Summary List notes
// @Tags notes
// @Produce json
// @Param deck query string false "Deck"
// @Param variant query string false "Variant (basic, cloze)"
// @Param tag query string false "Tag contained in the tags field"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} ListResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	filters, page, size := h.parseNoteFilters(c)

	notes, total, err := h.reviewService.ListNotes(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Data:  notes,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// ImportNotes imports a deck from an uploaded .csv or .xlsx file
// @Summary Import notes
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Deck file"
// @Param deck formData string false "Default deck name"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Router /notes/import [post]
func (h *NoteHandler) ImportNotes(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File is required",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "File too large",
			Details: fmt.Sprintf("maximum size is %d bytes", maxImportSize),
		})
		return
	}

	deck := strings.TrimSpace(c.PostForm("deck"))
	h.LogRequest(c, "Importing notes", "filename", fileHeader.Filename, "deck", deck)

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot read uploaded file", err)
		return
	}
	defer file.Close()

	summary, err := h.importExportService.ImportNotesFromFile(c.Request.Context(), file, fileHeader.Filename, deck)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetReviewHistory lists the reviews of a note with aggregate stats
// @Summary Review history
// @Tags reviews
// @Produce json
// @Param id path uint true "Note ID"
// @Param card query int false "Card ordinal"
// @Param verdict query string false "correct, incorrect, dont_know or ungraded"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} services.HistoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id}/reviews [get]
func (h *NoteHandler) GetReviewHistory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	filters, ok := h.parseReviewFilters(c)
	if !ok {
		return
	}

	history, err := h.reviewService.History(c.Request.Context(), id, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// ExportReviews downloads the review history of a note
// @Summary Export reviews
// @Tags reviews
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param id path uint true "Note ID"
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /notes/{id}/reviews/export [get]
func (h *NoteHandler) ExportReviews(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	h.LogRequest(c, "Exporting reviews", "note_id", id, "format", format)

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		data, err = h.importExportService.ExportReviewsToExcel(c.Request.Context(), id)
		contentType = xlsxContentType
	case "csv":
		data, err = h.importExportService.ExportReviewsToCSV(c.Request.Context(), id)
		contentType = "text/csv"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid format",
			Details: "format must be xlsx or csv",
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("note_%d_reviews.%s", id, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// ===== HELPERS =====

func (h *NoteHandler) parseNoteFilters(c *gin.Context) (repositories.NoteFilters, int, int) {
	page, size := h.parsePage(c)

	filters := repositories.NoteFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if deck := c.Query("deck"); deck != "" {
		filters.Deck = &deck
	}
	if variant := c.Query("variant"); variant != "" {
		v := models.NoteVariant(strings.ToLower(variant))
		filters.Variant = &v
	}
	if tag := c.Query("tag"); tag != "" {
		filters.Tag = &tag
	}

	return filters, page, size
}

func (h *NoteHandler) parseReviewFilters(c *gin.Context) (repositories.ReviewFilters, bool) {
	page, size := h.parsePage(c)

	filters := repositories.ReviewFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}

	if card := h.parseIntQuery(c, "card", 0); card > 0 {
		filters.CardOrdinal = &card
	}
	if verdict := c.Query("verdict"); verdict != "" {
		v := models.Verdict(verdict)
		filters.Verdict = &v
	}

	for param, target := range map[string]**time.Time{"from": &filters.DateFrom, "to": &filters.DateTo} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid " + param,
				Details: "expected RFC3339 timestamp",
			})
			return filters, false
		}
		*target = &t
	}

	return filters, true
}
