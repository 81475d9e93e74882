package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/cloze"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/events"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// exportPageSize matches the repository page cap; exports read page by page.
const exportPageSize = 200

// ImportExportService handles deck import and review export
type ImportExportService interface {
	ImportNotesFromFile(ctx context.Context, reader io.Reader, filename, deck string) (*models.ImportSummary, error)
	ImportNotesFromCSV(ctx context.Context, reader io.Reader, deck string) (*models.ImportSummary, error)
	ImportNotesFromExcel(ctx context.Context, reader io.Reader, deck string) (*models.ImportSummary, error)

	ExportReviewsToExcel(ctx context.Context, noteID uint) ([]byte, error)
	ExportReviewsToCSV(ctx context.Context, noteID uint) ([]byte, error)
}

type importExportService struct {
	notes      repositories.NoteRepository
	reviews    repositories.ReviewRepository
	builder    QuestionBuilder
	validation *ValidationService
	publisher  events.EventPublisher
	logger     *ServiceLogger
}

func NewImportExportService(
	notes repositories.NoteRepository,
	reviews repositories.ReviewRepository,
	builder QuestionBuilder,
	validation *ValidationService,
	publisher events.EventPublisher,
	logger *ServiceLogger,
) ImportExportService {
	return &importExportService{
		notes:      notes,
		reviews:    reviews,
		builder:    builder,
		validation: validation,
		publisher:  publisher,
		logger:     logger,
	}
}

var reviewHeaders = []string{
	"Review ID", "Card", "Kind", "Verdict", "Correct", "Don't Know", "Suggested Ease", "Reviewed At",
}

// ===== IMPORT OPERATIONS =====

func (s *importExportService) ImportNotesFromFile(ctx context.Context, reader io.Reader, filename, deck string) (*models.ImportSummary, error) {
	s.logger.Logger().Info("Starting note import", "filename", filename, "deck", deck)

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return s.ImportNotesFromCSV(ctx, reader, deck)
	case ".xlsx":
		return s.ImportNotesFromExcel(ctx, reader, deck)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

func (s *importExportService) ImportNotesFromCSV(ctx context.Context, reader io.Reader, deck string) (*models.ImportSummary, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", ErrBadRequest, err)
	}

	return s.importRows(ctx, records, deck, "csv")
}

func (s *importExportService) ImportNotesFromExcel(ctx context.Context, reader io.Reader, deck string) (*models.ImportSummary, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrBadRequest, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return s.importRows(ctx, rows, deck, "excel")
}

func (s *importExportService) importRows(ctx context.Context, rows [][]string, deck, source string) (*models.ImportSummary, error) {
	start := time.Now()

	if len(rows) < 2 {
		return nil, NewValidationError("file", "must have header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	if _, ok := headerMap["answer"]; !ok {
		return nil, NewValidationError("headers", "missing required column: answer", "answer")
	}

	summary := &models.ImportSummary{
		CreatedNotes: make([]uint, 0),
		Errors:       make([]models.ImportValidationError, 0),
	}

	var notes []*models.Note
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		summary.TotalRows++
		summary.ProcessedRows++

		note, rowErrors := s.parseRow(row, headerMap, rowNum, deck)
		if len(rowErrors) > 0 {
			summary.Errors = append(summary.Errors, rowErrors...)
			summary.ErrorCount++
			continue
		}
		notes = append(notes, note)
		summary.SuccessCount++
	}

	if len(notes) > 0 {
		if err := s.notes.CreateBatch(ctx, nil, notes); err != nil {
			return nil, fmt.Errorf("failed to save notes: %w", err)
		}
		for _, note := range notes {
			summary.CreatedNotes = append(summary.CreatedNotes, note.ID)
		}
	}
	summary.ProcessingTime = time.Since(start)

	if s.publisher != nil && summary.SuccessCount > 0 {
		if err := s.publisher.PublishReviewEvent(ctx, events.NewNoteImportedEvent(deck, summary)); err != nil {
			s.logger.Logger().Warn("Failed to publish import event", "deck", deck, "error", err)
		}
	}

	s.logger.LogImport(ctx, source, deck, summary)

	return summary, nil
}

func (s *importExportService) parseRow(row []string, headerMap map[string]int, rowNum int, deck string) (*models.Note, []models.ImportValidationError) {
	get := func(column string) string {
		if idx, ok := headerMap[column]; ok && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	req := &CreateNoteRequest{
		Deck:    deck,
		Variant: models.VariantBasic,
		Fields: models.NoteFields{
			Prompt:      get("prompt"),
			Options:     get("options"),
			Answer:      get("answer"),
			Explanation: get("explanation"),
			Hints:       get("hints"),
			Tags:        get("tags"),
		},
	}
	if d := strings.TrimSpace(get("deck")); d != "" {
		req.Deck = d
	}
	if v := strings.ToLower(strings.TrimSpace(get("variant"))); v != "" {
		req.Variant = models.NoteVariant(v)
	}

	var rowErrors []models.ImportValidationError
	for _, ve := range s.validation.ValidateNoteCreate(req) {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row:     rowNum,
			Column:  importColumn(ve.Field),
			Message: ve.Message,
			Value:   importValue(ve.Value),
			Code:    "invalid_" + ruleOrDefault(ve.Rule),
		})
	}
	if len(rowErrors) > 0 {
		return nil, rowErrors
	}

	// the first card must build or the note can never be shown
	_, err := s.builder.Build(BuildRequest{
		Variant:     req.Variant,
		Fields:      req.Fields,
		CardOrdinal: firstCardOrdinal(req),
	})
	if err != nil {
		code := "build_failed"
		if IsConstructionFailed(err) {
			code = "no_valid_quiz_type"
		}
		return nil, []models.ImportValidationError{{
			Row:     rowNum,
			Column:  "tags",
			Message: err.Error(),
			Value:   req.Fields.Tags,
			Code:    code,
		}}
	}

	return &models.Note{
		Deck:    req.Deck,
		Variant: req.Variant,
		Fields:  req.Fields,
	}, nil
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportReviewsToExcel(ctx context.Context, noteID uint) ([]byte, error) {
	records, err := s.reviewsForExport(ctx, noteID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Reviews"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := writeSheetRow(f, sheetName, 1, reviewHeaders); err != nil {
		return nil, err
	}
	for i, record := range records {
		if err := writeSheetRow(f, sheetName, i+2, reviewToRow(record)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *importExportService) ExportReviewsToCSV(ctx context.Context, noteID uint) ([]byte, error) {
	records, err := s.reviewsForExport(ctx, noteID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reviewHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(reviewToRow(record)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *importExportService) reviewsForExport(ctx context.Context, noteID uint) ([]*models.ReviewRecord, error) {
	note, err := s.notes.GetByID(ctx, nil, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	var records []*models.ReviewRecord
	for {
		page, total, err := s.reviews.GetByNote(ctx, nil, noteID, repositories.ReviewFilters{
			Limit:  exportPageSize,
			Offset: len(records),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get reviews: %w", err)
		}
		records = append(records, page...)
		if len(page) == 0 || int64(len(records)) >= total {
			return records, nil
		}
	}
}

// ===== HELPERS =====

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func reviewToRow(record *models.ReviewRecord) []string {
	correct := ""
	if record.IsCorrect != nil {
		correct = strconv.FormatBool(*record.IsCorrect)
	}
	return []string{
		strconv.FormatUint(uint64(record.ID), 10),
		strconv.Itoa(record.CardOrdinal),
		string(record.Kind),
		string(record.Verdict),
		correct,
		strconv.FormatBool(record.EffectiveDontKnow),
		strconv.Itoa(record.SuggestedEase),
		record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func firstCardOrdinal(req *CreateNoteRequest) int {
	if req.Variant != models.VariantCloze {
		return 1
	}
	lowest := 0
	for _, deletion := range cloze.Scan(req.Fields.Answer) {
		if deletion.Index >= 1 && (lowest == 0 || deletion.Index < lowest) {
			lowest = deletion.Index
		}
	}
	if lowest == 0 {
		return 1
	}
	return lowest
}

func importColumn(field string) string {
	return strings.TrimPrefix(field, "fields.")
}

func importValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func ruleOrDefault(rule string) string {
	if rule == "" {
		return "value"
	}
	return rule
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
