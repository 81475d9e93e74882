package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/cache"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/events"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/grammar"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/repositories"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
)

// ServiceManager gives handlers access to every service
type ServiceManager interface {
	Builder() QuestionBuilder
	Evaluator() AnswerEvaluator
	Review() ReviewService
	ImportExport() ImportExportService
}

type ServiceManagerConfig struct {
	Notes      repositories.NoteRepository
	Reviews    repositories.ReviewRepository
	Store      cache.CacheService
	Publisher  events.EventPublisher
	Kinds      grammar.KindTable
	Validator  *validator.Validator
	Logger     *slog.Logger
	SessionTTL time.Duration
	Shuffler   Shuffler
	Debug      bool
}

type serviceManager struct {
	builder      QuestionBuilder
	evaluator    AnswerEvaluator
	review       ReviewService
	importExport ImportExportService
}

func NewServiceManager(cfg ServiceManagerConfig) ServiceManager {
	builder := NewQuestionBuilder(cfg.Kinds, cfg.Validator, cfg.Logger.With("component", "builder"))
	evaluator := NewAnswerEvaluator(cfg.Logger.With("component", "evaluator"))

	review := NewReviewService(ReviewServiceDeps{
		Notes:     cfg.Notes,
		Reviews:   cfg.Reviews,
		Store:     cfg.Store,
		Publisher: cfg.Publisher,
		Builder:   builder,
		Evaluator: evaluator,
		Validator: cfg.Validator,
		Shuffler:  cfg.Shuffler,
		Logger: NewServiceLogger(cfg.Logger, LogConfig{
			Service:     "flashcard-quiz-service",
			Component:   "review",
			EnableDebug: cfg.Debug,
		}),
		SessionTTL: cfg.SessionTTL,
	})

	importExport := NewImportExportService(
		cfg.Notes,
		cfg.Reviews,
		builder,
		NewValidationService(cfg.Validator),
		cfg.Publisher,
		NewServiceLogger(cfg.Logger, LogConfig{
			Service:     "flashcard-quiz-service",
			Component:   "import_export",
			EnableDebug: cfg.Debug,
		}),
	)

	return &serviceManager{
		builder:      builder,
		evaluator:    evaluator,
		review:       review,
		importExport: importExport,
	}
}

func (m *serviceManager) Builder() QuestionBuilder          { return m.builder }
func (m *serviceManager) Evaluator() AnswerEvaluator        { return m.evaluator }
func (m *serviceManager) Review() ReviewService             { return m.review }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
