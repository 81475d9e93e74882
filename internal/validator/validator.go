package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct tag validation with question invariant checks
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_kind", validateQuestionKind)
	validate.RegisterValidation("note_variant", validateNoteVariant)
	validate.RegisterValidation("card_ordinal", validateCardOrdinal)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionKind(fl validator.FieldLevel) bool {
	return models.QuestionKind(fl.Field().String()).IsValid()
}

func validateNoteVariant(fl validator.FieldLevel) bool {
	return models.NoteVariant(fl.Field().String()).IsValid()
}

func validateCardOrdinal(fl validator.FieldLevel) bool {
	return fl.Field().Int() >= 1
}
