package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/cache"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/events"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
	"gorm.io/datatypes"
)

const defaultSessionTTL = 24 * time.Hour

// ===== REQUEST / RESPONSE TYPES =====

type CreateNoteRequest struct {
	Deck    string             `json:"deck" validate:"max=200"`
	Variant models.NoteVariant `json:"variant" validate:"required,note_variant"`
	Fields  models.NoteFields  `json:"fields"`
}

type GradeRequest struct {
	Note     BuildRequest        `json:"note"`
	Response models.UserResponse `json:"response"`
}

type GradeResponse struct {
	Question *models.Question        `json:"question"`
	Result   models.EvaluationResult `json:"result"`
	Verdict  models.Verdict          `json:"verdict"`
}

// CardView is one rendered side of a card.
type CardView struct {
	NoteID       uint             `json:"note_id"`
	CardOrdinal  int              `json:"card_ordinal"`
	Side         CardSide         `json:"side"`
	Question     *models.Question `json:"question"`
	DisplayOrder []string         `json:"display_order,omitempty"`
}

type BackView struct {
	CardView
	Response models.UserResponse     `json:"response"`
	Result   models.EvaluationResult `json:"result"`
	Review   *models.ReviewRecord    `json:"review"`
}

type HistoryResponse struct {
	NoteID  uint                   `json:"note_id"`
	Reviews []*models.ReviewRecord `json:"reviews"`
	Total   int64                  `json:"total"`
	Stats   *models.ReviewStats    `json:"stats"`
}

// ReviewService drives a card through front, response capture and back.
type ReviewService interface {
	Preview(ctx context.Context, req BuildRequest) (*models.Question, error)
	Grade(ctx context.Context, req *GradeRequest) (*GradeResponse, error)

	CreateNote(ctx context.Context, req *CreateNoteRequest) (*models.Note, error)
	GetNote(ctx context.Context, id uint) (*models.Note, error)
	ListNotes(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, int64, error)
	UpdateNote(ctx context.Context, id uint, req *CreateNoteRequest) (*models.Note, error)
	DeleteNote(ctx context.Context, id uint) error

	ShowFront(ctx context.Context, noteID uint, ordinal int) (*CardView, error)
	SubmitResponse(ctx context.Context, noteID uint, ordinal int, response models.UserResponse) error
	ShowBack(ctx context.Context, noteID uint, ordinal int) (*BackView, error)
	History(ctx context.Context, noteID uint, filters repositories.ReviewFilters) (*HistoryResponse, error)
}

type ReviewServiceDeps struct {
	Notes      repositories.NoteRepository
	Reviews    repositories.ReviewRepository
	Store      cache.CacheService
	Publisher  events.EventPublisher
	Builder    QuestionBuilder
	Evaluator  AnswerEvaluator
	Validator  *validator.Validator
	Shuffler   Shuffler
	Logger     *ServiceLogger
	SessionTTL time.Duration
}

type reviewService struct {
	notes      repositories.NoteRepository
	reviews    repositories.ReviewRepository
	store      cache.CacheService
	publisher  events.EventPublisher
	builder    QuestionBuilder
	evaluator  AnswerEvaluator
	validator  *validator.Validator
	validation *ValidationService
	shuffler   Shuffler
	logger     *ServiceLogger
	sessionTTL time.Duration
}

func NewReviewService(deps ReviewServiceDeps) ReviewService {
	if deps.Shuffler == nil {
		deps.Shuffler = NewRandomShuffler()
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = defaultSessionTTL
	}
	return &reviewService{
		notes:      deps.Notes,
		reviews:    deps.Reviews,
		store:      deps.Store,
		publisher:  deps.Publisher,
		builder:    deps.Builder,
		evaluator:  deps.Evaluator,
		validator:  deps.Validator,
		validation: NewValidationService(deps.Validator),
		shuffler:   deps.Shuffler,
		logger:     deps.Logger,
		sessionTTL: deps.SessionTTL,
	}
}

// ===== STATELESS OPERATIONS =====

func (s *reviewService) Preview(ctx context.Context, req BuildRequest) (*models.Question, error) {
	op := s.logger.WithOperation(ctx, "preview")

	if err := s.validator.Validate(req); err != nil {
		op.LogResult(0, "question", err)
		return nil, err
	}

	question, err := s.builder.Build(req)
	op.LogResult(0, "question", err)
	return question, err
}

func (s *reviewService) Grade(ctx context.Context, req *GradeRequest) (*GradeResponse, error) {
	op := s.logger.WithOperation(ctx, "grade")

	if err := s.validator.Validate(req.Note); err != nil {
		op.LogResult(0, "question", err)
		return nil, err
	}

	question, err := s.builder.Build(req.Note)
	if err != nil {
		op.LogResult(0, "question", err)
		return nil, err
	}

	result := s.evaluator.Evaluate(question, req.Response)
	op.LogResult(0, "question", nil)

	return &GradeResponse{
		Question: question,
		Result:   result,
		Verdict:  result.Verdict(),
	}, nil
}

// ===== NOTES =====

func (s *reviewService) CreateNote(ctx context.Context, req *CreateNoteRequest) (*models.Note, error) {
	op := s.logger.WithOperation(ctx, "create_note")

	if errs := s.validation.ValidateNoteCreate(req); len(errs) > 0 {
		op.LogResult(0, "note", errs)
		return nil, errs
	}

	note := &models.Note{
		Deck:    req.Deck,
		Variant: req.Variant,
		Fields:  req.Fields,
	}
	if err := s.notes.Create(ctx, nil, note); err != nil {
		err = fmt.Errorf("failed to create note: %w", err)
		op.LogResult(0, "note", err)
		return nil, err
	}

	op.LogResult(note.ID, "note", nil)
	return note, nil
}

func (s *reviewService) GetNote(ctx context.Context, id uint) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *reviewService) ListNotes(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, int64, error) {
	notes, total, err := s.notes.List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, total, nil
}

// UpdateNote replaces the deck, variant and fields of a note. Open card
// sessions for the note are dropped since their cards may no longer exist.
func (s *reviewService) UpdateNote(ctx context.Context, id uint, req *CreateNoteRequest) (*models.Note, error) {
	op := s.logger.WithOperation(ctx, "update_note")

	if errs := s.validation.ValidateNoteCreate(req); len(errs) > 0 {
		op.LogResult(id, "note", errs)
		return nil, errs
	}

	note, err := s.GetNote(ctx, id)
	if err != nil {
		op.LogResult(id, "note", err)
		return nil, err
	}

	if note.Variant != req.Variant {
		stats, err := s.reviews.GetStats(ctx, nil, id)
		if err != nil {
			err = fmt.Errorf("failed to get review stats: %w", err)
			op.LogResult(id, "note", err)
			return nil, err
		}
		if stats.TotalReviews > 0 {
			err := NewBusinessRuleError("variant_locked",
				"variant cannot change once the note has reviews",
				map[string]interface{}{"note_id": id, "reviews": stats.TotalReviews})
			op.LogResult(id, "note", err)
			return nil, err
		}
	}

	note.Deck = req.Deck
	note.Variant = req.Variant
	note.Fields = req.Fields
	if err := s.notes.Update(ctx, nil, note); err != nil {
		err = fmt.Errorf("failed to update note: %w", err)
		op.LogResult(id, "note", err)
		return nil, err
	}

	s.clearSessions(ctx, id)
	op.LogResult(id, "note", nil)
	return note, nil
}

// DeleteNote removes a note together with its review history.
func (s *reviewService) DeleteNote(ctx context.Context, id uint) error {
	op := s.logger.WithOperation(ctx, "delete_note")

	if _, err := s.GetNote(ctx, id); err != nil {
		op.LogResult(id, "note", err)
		return err
	}

	if err := s.reviews.DeleteByNote(ctx, nil, id); err != nil {
		err = fmt.Errorf("failed to delete reviews: %w", err)
		op.LogResult(id, "note", err)
		return err
	}
	if err := s.notes.Delete(ctx, nil, id); err != nil {
		err = fmt.Errorf("failed to delete note: %w", err)
		op.LogResult(id, "note", err)
		return err
	}

	s.clearSessions(ctx, id)
	op.LogResult(id, "note", nil)
	return nil
}

// ===== CARD SESSION =====

func (s *reviewService) ShowFront(ctx context.Context, noteID uint, ordinal int) (*CardView, error) {
	op := s.logger.WithOperation(ctx, "show_front")

	note, err := s.loadCard(ctx, noteID, ordinal)
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}

	question, err := s.builder.Build(cardRequest(note, ordinal, SideQuestion))
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}

	shuffled, order := ShuffleQuestion(question, s.shuffler)

	// a new front discards whatever the previous showing captured
	if err := s.store.Delete(ctx, responseKey(noteID, ordinal)); err != nil {
		err = fmt.Errorf("%w: %v", ErrSessionStore, err)
		op.LogResult(noteID, "note", err)
		return nil, err
	}
	if order != nil {
		if err := s.store.Set(ctx, orderKey(noteID, ordinal), order, s.sessionTTL); err != nil {
			err = fmt.Errorf("%w: %v", ErrSessionStore, err)
			op.LogResult(noteID, "note", err)
			return nil, err
		}
	} else if err := s.store.Delete(ctx, orderKey(noteID, ordinal)); err != nil {
		err = fmt.Errorf("%w: %v", ErrSessionStore, err)
		op.LogResult(noteID, "note", err)
		return nil, err
	}

	op.LogResult(noteID, "note", nil)
	return &CardView{
		NoteID:       noteID,
		CardOrdinal:  ordinal,
		Side:         SideQuestion,
		Question:     shuffled,
		DisplayOrder: order,
	}, nil
}

func (s *reviewService) SubmitResponse(ctx context.Context, noteID uint, ordinal int, response models.UserResponse) error {
	op := s.logger.WithOperation(ctx, "submit_response")

	if _, err := s.loadCard(ctx, noteID, ordinal); err != nil {
		op.LogResult(noteID, "note", err)
		return err
	}

	if err := s.store.Set(ctx, responseKey(noteID, ordinal), response, s.sessionTTL); err != nil {
		err = fmt.Errorf("%w: %v", ErrSessionStore, err)
		op.LogResult(noteID, "note", err)
		return err
	}

	op.LogResult(noteID, "note", nil)
	return nil
}

// ShowBack consumes the stored response and display order. A second call for
// the same card sees neither and is scored as don't-know.
func (s *reviewService) ShowBack(ctx context.Context, noteID uint, ordinal int) (*BackView, error) {
	op := s.logger.WithOperation(ctx, "show_back")

	note, err := s.loadCard(ctx, noteID, ordinal)
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}

	response, err := s.takeResponse(ctx, noteID, ordinal)
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}
	order, err := s.takeOrder(ctx, noteID, ordinal)
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}

	question, err := s.builder.Build(cardRequest(note, ordinal, SideAnswer))
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}
	question = ApplyDisplayOrder(question, order)

	result := s.evaluator.Evaluate(question, response)

	record, err := newReviewRecord(noteID, ordinal, question.Kind, response, result)
	if err != nil {
		op.LogResult(noteID, "note", err)
		return nil, err
	}
	if err := s.reviews.Create(ctx, nil, record); err != nil {
		err = fmt.Errorf("failed to record review: %w", err)
		op.LogResult(noteID, "note", err)
		return nil, err
	}

	s.logger.LogReview(ctx, record)
	s.publishReview(ctx, record)

	op.LogResult(noteID, "note", nil)
	return &BackView{
		CardView: CardView{
			NoteID:       noteID,
			CardOrdinal:  ordinal,
			Side:         SideAnswer,
			Question:     question,
			DisplayOrder: order,
		},
		Response: response,
		Result:   result,
		Review:   record,
	}, nil
}

func (s *reviewService) History(ctx context.Context, noteID uint, filters repositories.ReviewFilters) (*HistoryResponse, error) {
	if _, err := s.GetNote(ctx, noteID); err != nil {
		return nil, err
	}

	records, total, err := s.reviews.GetByNote(ctx, nil, noteID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	stats, err := s.reviews.GetStats(ctx, nil, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review stats: %w", err)
	}

	return &HistoryResponse{
		NoteID:  noteID,
		Reviews: records,
		Total:   total,
		Stats:   stats,
	}, nil
}

// ===== HELPERS =====

func (s *reviewService) loadCard(ctx context.Context, noteID uint, ordinal int) (*models.Note, error) {
	note, err := s.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.validation.ValidateCardOrdinal(note, ordinal); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *reviewService) takeResponse(ctx context.Context, noteID uint, ordinal int) (models.UserResponse, error) {
	var response models.UserResponse
	err := s.store.Take(ctx, responseKey(noteID, ordinal), &response)
	if errors.Is(err, cache.ErrCacheMiss) {
		return models.DefaultUserResponse(), nil
	}
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}
	return response, nil
}

func (s *reviewService) takeOrder(ctx context.Context, noteID uint, ordinal int) ([]string, error) {
	var order []string
	err := s.store.Take(ctx, orderKey(noteID, ordinal), &order)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStore, err)
	}
	return order, nil
}

// clearSessions drops stored responses and display orders for every card of a
// note. Leftover keys expire with the session TTL, so failures only warn.
func (s *reviewService) clearSessions(ctx context.Context, noteID uint) {
	if err := s.store.DeletePattern(ctx, fmt.Sprintf("review:%d:*", noteID)); err != nil {
		s.logger.Logger().Warn("Failed to clear card sessions", "note_id", noteID, "error", err)
	}
}

// publishReview never fails the review; the record is already stored.
func (s *reviewService) publishReview(ctx context.Context, record *models.ReviewRecord) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReviewEvent(ctx, events.NewReviewEvaluatedEvent(record)); err != nil {
		s.logger.Logger().Warn("Failed to publish review event",
			"note_id", record.NoteID,
			"review_id", record.ID,
			"error", err)
	}
}

func newReviewRecord(noteID uint, ordinal int, kind models.QuestionKind, response models.UserResponse, result models.EvaluationResult) (*models.ReviewRecord, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return &models.ReviewRecord{
		NoteID:            noteID,
		CardOrdinal:       ordinal,
		Kind:              kind,
		IsCorrect:         result.IsCorrect,
		EffectiveDontKnow: result.EffectiveDontKnow,
		Verdict:           result.Verdict(),
		SuggestedEase:     result.SuggestedEase(),
		Response:          datatypes.JSON(responseJSON),
		Result:            datatypes.JSON(resultJSON),
		CreatedAt:         time.Now(),
	}, nil
}

func cardRequest(note *models.Note, ordinal int, side CardSide) BuildRequest {
	return BuildRequest{
		Variant:     note.Variant,
		Fields:      note.Fields,
		CardOrdinal: ordinal,
		Side:        side,
	}
}

func responseKey(noteID uint, ordinal int) string {
	return fmt.Sprintf("review:%d:%d:response", noteID, ordinal)
}

func orderKey(noteID uint, ordinal int) string {
	return fmt.Sprintf("review:%d:%d:order", noteID, ordinal)
}
