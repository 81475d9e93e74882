package main

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/diff"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <typed> <expected>",
		Short: "Show the character diff between a typed answer and the expected one",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiff,
	}

	cmd.Flags().Bool("json", false, "Print the raw diff tokens as JSON")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	tokens := diff.Compute(args[0], args[1])
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), tokens)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTokens(tokens))
	return err
}

// renderTokens marks runs of added characters with [+...] and removed ones with [-...].
func renderTokens(tokens []models.DiffToken) string {
	var b strings.Builder
	var run models.DiffKind
	for _, tok := range tokens {
		if tok.Kind != run {
			if run == models.DiffAdded || run == models.DiffRemoved {
				b.WriteByte(']')
			}
			switch tok.Kind {
			case models.DiffAdded:
				b.WriteString("[+")
			case models.DiffRemoved:
				b.WriteString("[-")
			}
			run = tok.Kind
		}
		b.WriteString(tok.Char)
	}
	if run == models.DiffAdded || run == models.DiffRemoved {
		b.WriteByte(']')
	}
	return b.String()
}
