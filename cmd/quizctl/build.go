package main

import (
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the question for one card of a note",
		RunE:  runBuild,
	}

	cmd.Flags().String("fields", "", "YAML file with the note variant and fields (required)")
	cmd.Flags().Int("ordinal", 1, "Card ordinal (cloze deletion index)")
	cmd.Flags().String("side", string(services.SideQuestion), "Card side: question or answer")
	_ = cmd.MarkFlagRequired("fields")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	fieldsPath, _ := cmd.Flags().GetString("fields")
	ordinal, _ := cmd.Flags().GetInt("ordinal")
	side, _ := cmd.Flags().GetString("side")

	variant, fields, err := loadNoteFile(fieldsPath)
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
		Side:        services.CardSide(side),
	})
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), question)
}
