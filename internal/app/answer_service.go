package app

import (
	"context"
	"fmt"
	"time"

	"couple-quiz-service/internal/domain"
)

// AnswerService implements the batch answer submission protocol: the batch is
// appended all-or-nothing, and when the player's persisted answers cover every
// question the score is computed and the completion flag flipped in one
// conditional write.
type AnswerService struct {
	repo QuizRepository
	now  func() time.Time
}

func NewAnswerService(repo QuizRepository) *AnswerService {
	return NewAnswerServiceWithClock(repo, time.Now)
}

// NewAnswerServiceWithClock is test-only for deterministic timestamps.
func NewAnswerServiceWithClock(repo QuizRepository, now func() time.Time) *AnswerService {
	return &AnswerService{repo: repo, now: now}
}

// AnswerInput is one entry of a submission batch.
type AnswerInput struct {
	QuestionID          string
	SelectedOptionIndex int
}

// SubmitResult reports whether the batch completed the quiz for the player,
// and the stored percentage when it did.
type SubmitResult struct {
	Completed bool
	Score     int
}

// Submit validates and appends a batch of answers for one player. Every
// question id in the batch must belong to the quiz being answered. Duplicate
// (quiz, player, question) triples fail the entire batch; the uniqueness
// constraint in the store is the authority, not an application-level check.
func (s *AnswerService) Submit(ctx context.Context, quizID string, player domain.PlayerType, batch []AnswerInput) (SubmitResult, error) {
	switch {
	case quizID == "":
		return SubmitResult{}, fmt.Errorf("%w: quizId required", domain.ErrInvalidInput)
	case !player.Valid():
		return SubmitResult{}, fmt.Errorf("%w: unknown player type %q", domain.ErrInvalidInput, player)
	case len(batch) == 0:
		return SubmitResult{}, fmt.Errorf("%w: batch required", domain.ErrInvalidInput)
	}
	for _, in := range batch {
		if in.QuestionID == "" || in.SelectedOptionIndex < 0 {
			return SubmitResult{}, fmt.Errorf("%w: malformed batch entry", domain.ErrInvalidInput)
		}
	}

	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return SubmitResult{}, err
	}
	if quiz.CompletedFor(player) {
		return SubmitResult{}, domain.ErrAlreadyCompleted
	}

	questions, err := s.repo.GetQuestions(ctx, quizID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return SubmitResult{}, fmt.Errorf("quiz %s has no questions", quizID)
	}
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}
	for _, in := range batch {
		if _, ok := known[in.QuestionID]; !ok {
			return SubmitResult{}, fmt.Errorf("%w: question %s is not part of quiz %s", domain.ErrInvalidInput, in.QuestionID, quizID)
		}
	}

	now := s.now()
	answers := make([]domain.Answer, len(batch))
	for i, in := range batch {
		answers[i] = domain.Answer{
			QuizID:              quizID,
			PlayerType:          player,
			QuestionID:          in.QuestionID,
			SelectedOptionIndex: in.SelectedOptionIndex,
			CreatedAt:           now,
		}
	}
	if err := s.repo.InsertAnswers(ctx, answers); err != nil {
		return SubmitResult{}, err
	}

	// Score from the canonical persisted state, not the request payload: the
	// batch may only be the tail of answers submitted across several calls.
	persisted, err := s.repo.GetPlayerAnswers(ctx, quizID, player)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load answers: %w", err)
	}
	answered := make(map[string]struct{}, len(persisted))
	for _, a := range persisted {
		answered[a.QuestionID] = struct{}{}
	}
	// Completion means every question of the quiz has an answer on record,
	// not that the row count lines up.
	for _, q := range questions {
		if _, ok := answered[q.ID]; !ok {
			return SubmitResult{}, nil
		}
	}

	score := Score(questions, persisted)
	if err := s.repo.CompletePlayer(ctx, quizID, player, score, s.now()); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Completed: true, Score: score}, nil
}
