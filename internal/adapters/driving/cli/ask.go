package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
)

var (
	askTopK int
	askJSON bool
)

// Styles for the rendered answer.
var (
	answerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(76)

	evidenceHeaderStyle = lipgloss.NewStyle().Bold(true)

	evidenceMetaStyle = lipgloss.NewStyle().Faint(true)
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the ingested literature",
	Long: `Retrieves the most similar chunks for the question and asks the
language model for a short answer grounded in them. The articles backing
the answer are listed as evidence.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	answer, err := answerService.Answer(context.Background(), args[0], askTopK)
	if err != nil {
		if errors.Is(err, domain.ErrNotIngested) {
			return errors.New("the index is empty; run 'litqa ingest' first")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerStyled(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerStyled(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answerBoxStyle.Render(answer.Text))

	if len(answer.Evidence) == 0 {
		return nil
	}

	cmd.Println(evidenceHeaderStyle.Render("Evidence:"))
	for i, ev := range answer.Evidence {
		cmd.Printf("  [%d] %s\n", i+1, ev.Title)
		cmd.Println(evidenceMetaStyle.Render(fmt.Sprintf("      %s, %s. %s", ev.Journal, ev.PublicationDate, ev.Authors)))
	}
	return nil
}
