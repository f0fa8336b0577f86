package cli

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"couple-quiz-service/internal/config"
	"couple-quiz-service/internal/domain"
)

//go:embed seed_questions.json
var seedQuestionsJSON []byte

// NewSeedCmd loads the predefined question bank into postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the predefined question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg)
		},
	}
}

func runSeed(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	var questions []domain.BankQuestion
	if err := json.Unmarshal(seedQuestionsJSON, &questions); err != nil {
		return fmt.Errorf("parse seed questions: %w", err)
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	var existing int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM questions`).Scan(&existing); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if existing > 0 {
		log.Printf("question bank already seeded (%d questions), skipping", existing)
		return nil
	}

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO questions (id, language, type, question_text, options)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), q.Language, q.Type, q.QuestionText, options)
		if err != nil {
			return fmt.Errorf("insert question %q: %w", q.QuestionText, err)
		}
	}
	log.Printf("seeded %d questions", len(questions))
	return nil
}
