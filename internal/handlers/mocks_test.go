package handlers

import (
	"context"
	"io"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockReviewService is a mock implementation of services.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Preview(ctx context.Context, req services.BuildRequest) (*models.Question, error) {
	args := m.Called(ctx, req)
	q, _ := args.Get(0).(*models.Question)
	return q, args.Error(1)
}

func (m *MockReviewService) Grade(ctx context.Context, req *services.GradeRequest) (*services.GradeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.GradeResponse)
	return resp, args.Error(1)
}

func (m *MockReviewService) CreateNote(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	args := m.Called(ctx, req)
	note, _ := args.Get(0).(*models.Note)
	return note, args.Error(1)
}

func (m *MockReviewService) GetNote(ctx context.Context, id uint) (*models.Note, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*models.Note)
	return note, args.Error(1)
}

func (m *MockReviewService) ListNotes(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, int64, error) {
	args := m.Called(ctx, filters)
	notes, _ := args.Get(0).([]*models.Note)
	return notes, args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewService) UpdateNote(ctx context.Context, id uint, req *services.CreateNoteRequest) (*models.Note, error) {
	args := m.Called(ctx, id, req)
	note, _ := args.Get(0).(*models.Note)
	return note, args.Error(1)
}

func (m *MockReviewService) DeleteNote(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) ShowFront(ctx context.Context, noteID uint, ordinal int) (*services.CardView, error) {
	args := m.Called(ctx, noteID, ordinal)
	view, _ := args.Get(0).(*services.CardView)
	return view, args.Error(1)
}

func (m *MockReviewService) SubmitResponse(ctx context.Context, noteID uint, ordinal int, response models.UserResponse) error {
	args := m.Called(ctx, noteID, ordinal, response)
	return args.Error(0)
}

func (m *MockReviewService) ShowBack(ctx context.Context, noteID uint, ordinal int) (*services.BackView, error) {
	args := m.Called(ctx, noteID, ordinal)
	view, _ := args.Get(0).(*services.BackView)
	return view, args.Error(1)
}

func (m *MockReviewService) History(ctx context.Context, noteID uint, filters repositories.ReviewFilters) (*services.HistoryResponse, error) {
	args := m.Called(ctx, noteID, filters)
	history, _ := args.Get(0).(*services.HistoryResponse)
	return history, args.Error(1)
}

// MockImportExportService is a mock implementation of services.ImportExportService
type MockImportExportService struct {
	mock.Mock
}

func (m *MockImportExportService) ImportNotesFromFile(ctx context.Context, reader io.Reader, filename, deck string) (*models.ImportSummary, error) {
	args := m.Called(ctx, reader, filename, deck)
	summary, _ := args.Get(0).(*models.ImportSummary)
	return summary, args.Error(1)
}

func (m *MockImportExportService) ImportNotesFromCSV(ctx context.Context, reader io.Reader, deck string) (*models.ImportSummary, error) {
	args := m.Called(ctx, reader, deck)
	summary, _ := args.Get(0).(*models.ImportSummary)
	return summary, args.Error(1)
}

func (m *MockImportExportService) ImportNotesFromExcel(ctx context.Context, reader io.Reader, deck string) (*models.ImportSummary, error) {
	args := m.Called(ctx, reader, deck)
	summary, _ := args.Get(0).(*models.ImportSummary)
	return summary, args.Error(1)
}

func (m *MockImportExportService) ExportReviewsToExcel(ctx context.Context, noteID uint) ([]byte, error) {
	args := m.Called(ctx, noteID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockImportExportService) ExportReviewsToCSV(ctx context.Context, noteID uint) ([]byte, error) {
	args := m.Called(ctx, noteID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// stubServiceManager hands the mocks to NewHandlerManager
type stubServiceManager struct {
	review       *MockReviewService
	importExport *MockImportExportService
}

func (s *stubServiceManager) Builder() services.QuestionBuilder          { return nil }
func (s *stubServiceManager) Evaluator() services.AnswerEvaluator        { return nil }
func (s *stubServiceManager) Review() services.ReviewService             { return s.review }
func (s *stubServiceManager) ImportExport() services.ImportExportService { return s.importExport }
