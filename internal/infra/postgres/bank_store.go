package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-session-service/internal/domain"
)

// SaveBank validates bank and upserts it into question_banks.
func SaveBank(ctx context.Context, db bun.IDB, bank domain.Bank) error {
	if bank.ID == "" {
		return fmt.Errorf("bank id is required")
	}
	if err := domain.ValidateBank(bank.Questions); err != nil {
		return fmt.Errorf("bank %s: %w", bank.ID, err)
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data, updated_at) VALUES (?, ?::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		bank.ID, string(data))
	if err != nil {
		return fmt.Errorf("save bank %s: %w", bank.ID, err)
	}
	return nil
}
