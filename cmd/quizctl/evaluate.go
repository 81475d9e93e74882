package main

import (
	"fmt"
	"os"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Grade a response against one card of a note",
		Long: `Builds the answer side of the card and evaluates the JSON response file.

The response file holds {"answer": ..., "idk": bool}. An empty file is an explicit don't-know.`,
		RunE: runEvaluate,
	}

	cmd.Flags().String("fields", "", "YAML file with the note variant and fields (required)")
	cmd.Flags().String("response", "", "JSON file with the user response (required)")
	cmd.Flags().Int("ordinal", 1, "Card ordinal (cloze deletion index)")
	_ = cmd.MarkFlagRequired("fields")
	_ = cmd.MarkFlagRequired("response")
	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	fieldsPath, _ := cmd.Flags().GetString("fields")
	responsePath, _ := cmd.Flags().GetString("response")
	ordinal, _ := cmd.Flags().GetInt("ordinal")

	variant, fields, err := loadNoteFile(fieldsPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(responsePath)
	if err != nil {
		return fmt.Errorf("read response file: %w", err)
	}
	response, err := models.ParseUserResponse(data)
	if err != nil {
		return err
	}

	e, err := newEngine(cmd)
	if err != nil {
		return err
	}

	question, err := e.build(services.BuildRequest{
		Variant:     variant,
		Fields:      fields,
		CardOrdinal: ordinal,
		Side:        services.SideAnswer,
	})
	if err != nil {
		return err
	}

	result := e.evaluator.Evaluate(question, response)
	return writeJSON(cmd.OutOrStdout(), services.GradeResponse{
		Question: question,
		Result:   result,
		Verdict:  result.Verdict(),
	})
}
