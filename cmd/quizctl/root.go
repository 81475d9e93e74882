package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/config"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/validator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Build and grade flashcard questions offline",
		Long:          "quizctl runs the question builder, answer evaluator and text differ against local files. Nothing is stored.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("kind-table", "", "Path to a YAML tag table (defaults to the built-in table)")
	root.PersistentFlags().Bool("debug", false, "Log builder and evaluator decisions to stderr")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newDiffCmd())
	return root
}

// noteFile is the YAML layout accepted by --fields.
type noteFile struct {
	Variant string `yaml:"variant"`
	Fields  struct {
		Prompt      string `yaml:"prompt"`
		Options     string `yaml:"options"`
		Answer      string `yaml:"answer"`
		Explanation string `yaml:"explanation"`
		Hints       string `yaml:"hints"`
		Tags        string `yaml:"tags"`
	} `yaml:"fields"`
}

func loadNoteFile(path string) (models.NoteVariant, models.NoteFields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", models.NoteFields{}, fmt.Errorf("read fields file: %w", err)
	}

	var nf noteFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return "", models.NoteFields{}, fmt.Errorf("parse fields file: %w", err)
	}

	variant := models.NoteVariant(nf.Variant)
	if variant == "" {
		variant = models.VariantBasic
	}

	return variant, models.NoteFields{
		Prompt:      nf.Fields.Prompt,
		Options:     nf.Fields.Options,
		Answer:      nf.Fields.Answer,
		Explanation: nf.Fields.Explanation,
		Hints:       nf.Fields.Hints,
		Tags:        nf.Fields.Tags,
	}, nil
}

// engine wires the builder and evaluator from the persistent flags.
type engine struct {
	builder   services.QuestionBuilder
	evaluator services.AnswerEvaluator
	validator *validator.Validator
}

func newEngine(cmd *cobra.Command) (*engine, error) {
	tablePath, _ := cmd.Flags().GetString("kind-table")
	debug, _ := cmd.Flags().GetBool("debug")

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	kinds, err := config.LoadKindTable(tablePath)
	if err != nil {
		return nil, err
	}

	v := validator.New()
	return &engine{
		builder:   services.NewQuestionBuilder(kinds, v, logger),
		evaluator: services.NewAnswerEvaluator(logger),
		validator: v,
	}, nil
}

func (e *engine) build(req services.BuildRequest) (*models.Question, error) {
	if err := e.validator.Validate(req); err != nil {
		return nil, err
	}
	return e.builder.Build(req)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
