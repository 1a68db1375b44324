package migrations

import (
	"context"
	"encoding/json"

	"drb-quiz-service/internal/questions"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			return UpsertBank(ctx, db, questions.BuiltinID, questions.Builtin())
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DELETE FROM question_banks WHERE id = ?`, questions.BuiltinID)
			return err
		},
	)
}

// UpsertBank writes bank content as JSONB under id.
func UpsertBank(ctx context.Context, db bun.IDB, id string, bank any) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO question_banks (id, data) VALUES (?, ?::jsonb)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, id, string(data))
	return err
}
