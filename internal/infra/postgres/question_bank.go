package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"couple-quiz-service/internal/domain"
)

// BankLoader loads the predefined question bank from Postgres. A TTL cache
// (memory or redis) normally sits in front of it.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, language string) ([]domain.BankQuestion, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, language, type, question_text, options
		FROM questions WHERE language=$1`, language)
	if err != nil {
		return nil, fmt.Errorf("query question bank: %w", err)
	}
	defer rows.Close()

	var questions []domain.BankQuestion
	for rows.Next() {
		var q domain.BankQuestion
		var options []byte
		if err := rows.Scan(&q.ID, &q.Language, &q.Type, &q.QuestionText, &options); err != nil {
			return nil, fmt.Errorf("scan bank question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
