package app

import (
	"context"
	"time"

	"couple-quiz-service/internal/domain"
)

// QuizRepository is the persistence boundary for quiz aggregates and answers
// (Postgres in production, in-memory for tests and local runs).
type QuizRepository interface {
	// CreateQuiz persists the header and its questions as one atomic unit.
	CreateQuiz(ctx context.Context, quiz domain.Quiz, questions []domain.Question) error
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	GetQuizByShareToken(ctx context.Context, token string) (domain.Quiz, error)
	// GetQuestions returns the quiz's questions ordered by order_index.
	GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
	SetShareToken(ctx context.Context, quizID, token string) error
	// InsertAnswers appends the batch all-or-nothing; a duplicate
	// (quiz, player, question) triple fails the whole batch with
	// domain.ErrDuplicateAnswer.
	InsertAnswers(ctx context.Context, answers []domain.Answer) error
	GetAnswers(ctx context.Context, quizID string) ([]domain.Answer, error)
	GetPlayerAnswers(ctx context.Context, quizID string, player domain.PlayerType) ([]domain.Answer, error)
	// CompletePlayer flips the player's completion flag and stores the score
	// in one conditional write. It fails with domain.ErrAlreadyCompleted when
	// the flag is already set, so concurrent submitters cannot both win.
	CompletePlayer(ctx context.Context, quizID string, player domain.PlayerType, score int, completedAt time.Time) error
}

// QuestionBank supplies the predefined question bank for a language.
type QuestionBank interface {
	Bank(ctx context.Context, language string) ([]domain.BankQuestion, error)
}
