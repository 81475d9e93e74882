package services

import (
	"context"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, tx *gorm.DB, note *models.Note) error {
	args := m.Called(ctx, tx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Note, error) {
	args := m.Called(ctx, tx, id)
	note, _ := args.Get(0).(*models.Note)
	return note, args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, tx *gorm.DB, note *models.Note) error {
	args := m.Called(ctx, tx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockNoteRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.NoteFilters) ([]*models.Note, int64, error) {
	args := m.Called(ctx, tx, filters)
	notes, _ := args.Get(0).([]*models.Note)
	return notes, args.Get(1).(int64), args.Error(2)
}

func (m *MockNoteRepository) CreateBatch(ctx context.Context, tx *gorm.DB, notes []*models.Note) error {
	args := m.Called(ctx, tx, notes)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, tx *gorm.DB, record *models.ReviewRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByNote(ctx context.Context, tx *gorm.DB, noteID uint, filters repositories.ReviewFilters) ([]*models.ReviewRecord, int64, error) {
	args := m.Called(ctx, tx, noteID, filters)
	records, _ := args.Get(0).([]*models.ReviewRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GetStats(ctx context.Context, tx *gorm.DB, noteID uint) (*models.ReviewStats, error) {
	args := m.Called(ctx, tx, noteID)
	stats, _ := args.Get(0).(*models.ReviewStats)
	return stats, args.Error(1)
}

func (m *MockReviewRepository) DeleteByNote(ctx context.Context, tx *gorm.DB, noteID uint) error {
	args := m.Called(ctx, tx, noteID)
	return args.Error(0)
}

// reverseShuffler makes shuffled order predictable.
type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}
