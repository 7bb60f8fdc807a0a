package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/infra/memory"
	"quiz-session-service/internal/transport/terminal"
)

// NewPlayCmd runs a quiz in the terminal straight from a bank file.
func NewPlayCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := memory.ReadBankFile(file)
			if err != nil {
				return err
			}
			quiz, err := app.NewQuizSession(bank.Questions, rand.New(rand.NewSource(time.Now().UnixNano())))
			if err != nil {
				return err
			}
			return terminal.Run(quiz, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/questions_full.json", "question bank file")
	return cmd
}
