package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"quiz-session-service/internal/config"
	"quiz-session-service/internal/infra/memory"
	"quiz-session-service/internal/infra/postgres"
)

// NewSeedCmd imports a question bank file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var (
		file   string
		bankID string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a JSON or YAML question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file, bankID)
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/questions_full.json", "question bank file")
	cmd.Flags().StringVar(&bankID, "bank-id", "", "bank id (defaults to the file name)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file, bankID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	bank, err := memory.ReadBankFile(file)
	if err != nil {
		return err
	}
	if bankID != "" {
		bank.ID = bankID
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateDB(ctx, db); err != nil {
		return err
	}
	if err := postgres.SaveBank(ctx, db, bank); err != nil {
		return err
	}
	log.Printf("seeded bank %q with %d questions", bank.ID, len(bank.Questions))
	return nil
}
