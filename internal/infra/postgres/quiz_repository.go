package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"couple-quiz-service/internal/domain"
)

const pgUniqueViolation = "23505"

// QuizRepository is the pgx-backed implementation of app.QuizRepository.
// Quiz creation and answer batches run in transactions; the completion flip
// is a single conditional UPDATE so concurrent submitters cannot both win.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, language, creator_name, partner_name, question_count,
	COALESCE(share_token, ''),
	creator_completed, creator_completed_at, creator_score,
	partner_completed, partner_completed_at, partner_score,
	created_at, expires_at`

func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz domain.Quiz, questions []domain.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create quiz: %w", err)
	}
	defer tx.Rollback(ctx)

	var token interface{}
	if quiz.ShareToken != "" {
		token = quiz.ShareToken
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO quizzes (id, language, creator_name, partner_name, question_count, share_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		quiz.ID, quiz.Language, quiz.CreatorName, quiz.PartnerName, quiz.QuestionCount, token, quiz.CreatedAt, quiz.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO quiz_questions (id, quiz_id, question_text, type, options, correct_answer_index, is_custom, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			q.ID, q.QuizID, q.QuestionText, q.Type, options, q.CorrectAnswerIndex, q.IsCustom, q.OrderIndex)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id=$1`, quizID)
	return scanQuiz(row)
}

func (r *QuizRepository) GetQuizByShareToken(ctx context.Context, token string) (domain.Quiz, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE share_token=$1`, token)
	return scanQuiz(row)
}

func scanQuiz(row pgx.Row) (domain.Quiz, error) {
	var q domain.Quiz
	err := row.Scan(
		&q.ID, &q.Language, &q.CreatorName, &q.PartnerName, &q.QuestionCount,
		&q.ShareToken,
		&q.CreatorCompleted, &q.CreatorCompletedAt, &q.CreatorScore,
		&q.PartnerCompleted, &q.PartnerCompletedAt, &q.PartnerScore,
		&q.CreatedAt, &q.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("scan quiz: %w", err)
	}
	return q, nil
}

func (r *QuizRepository) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, quiz_id, question_text, type, options, correct_answer_index, is_custom, order_index
		FROM quiz_questions WHERE quiz_id=$1 ORDER BY order_index`, quizID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var options []byte
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.Type, &options, &q.CorrectAnswerIndex, &q.IsCustom, &q.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuizRepository) SetShareToken(ctx context.Context, quizID, token string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE quizzes SET share_token=$2 WHERE id=$1`, quizID, token)
	if err != nil {
		return fmt.Errorf("update share token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (r *QuizRepository) InsertAnswers(ctx context.Context, answers []domain.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert answers: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range answers {
		_, err := tx.Exec(ctx, `
			INSERT INTO answers (quiz_id, player_type, question_id, selected_option_index, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			a.QuizID, a.PlayerType, a.QuestionID, a.SelectedOptionIndex, a.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return domain.ErrDuplicateAnswer
			}
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *QuizRepository) GetAnswers(ctx context.Context, quizID string) ([]domain.Answer, error) {
	return r.queryAnswers(ctx, `
		SELECT quiz_id, player_type, question_id, selected_option_index, created_at
		FROM answers WHERE quiz_id=$1`, quizID)
}

func (r *QuizRepository) GetPlayerAnswers(ctx context.Context, quizID string, player domain.PlayerType) ([]domain.Answer, error) {
	return r.queryAnswers(ctx, `
		SELECT quiz_id, player_type, question_id, selected_option_index, created_at
		FROM answers WHERE quiz_id=$1 AND player_type=$2`, quizID, player)
}

func (r *QuizRepository) queryAnswers(ctx context.Context, sql string, args ...interface{}) ([]domain.Answer, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.QuizID, &a.PlayerType, &a.QuestionID, &a.SelectedOptionIndex, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *QuizRepository) CompletePlayer(ctx context.Context, quizID string, player domain.PlayerType, score int, completedAt time.Time) error {
	var sql string
	switch player {
	case domain.PlayerCreator:
		sql = `UPDATE quizzes SET creator_completed=TRUE, creator_completed_at=$2, creator_score=$3
			WHERE id=$1 AND creator_completed=FALSE`
	case domain.PlayerPartner:
		sql = `UPDATE quizzes SET partner_completed=TRUE, partner_completed_at=$2, partner_score=$3
			WHERE id=$1 AND partner_completed=FALSE`
	default:
		return fmt.Errorf("%w: unknown player type %q", domain.ErrInvalidInput, player)
	}

	tag, err := r.pool.Exec(ctx, sql, quizID, completedAt, score)
	if err != nil {
		return fmt.Errorf("complete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the flag was already set or the quiz vanished; callers have
		// verified existence, so report the completion race.
		return domain.ErrAlreadyCompleted
	}
	return nil
}
