package memory

import (
	"context"
	"sync"
	"time"

	"couple-quiz-service/internal/domain"
)

// QuizRepository is a mutex-guarded in-memory implementation of
// app.QuizRepository, used for tests and redis/postgres-less local runs. It
// mirrors the store-level guarantees: atomic create, all-or-nothing answer
// batches with the (quiz, player, question) uniqueness rule, and a
// conditional completion update.
type QuizRepository struct {
	mu        sync.RWMutex
	quizzes   map[string]domain.Quiz
	questions map[string][]domain.Question
	answers   map[string][]domain.Answer
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{
		quizzes:   make(map[string]domain.Quiz),
		questions: make(map[string][]domain.Question),
		answers:   make(map[string][]domain.Answer),
	}
}

func (r *QuizRepository) CreateQuiz(_ context.Context, quiz domain.Quiz, questions []domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.ID] = quiz
	r.questions[quiz.ID] = append([]domain.Question(nil), questions...)
	return nil
}

func (r *QuizRepository) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (r *QuizRepository) GetQuizByShareToken(_ context.Context, token string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, quiz := range r.quizzes {
		if quiz.ShareToken != "" && quiz.ShareToken == token {
			return quiz, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (r *QuizRepository) GetQuestions(_ context.Context, quizID string) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Question(nil), r.questions[quizID]...), nil
}

func (r *QuizRepository) SetShareToken(_ context.Context, quizID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	quiz.ShareToken = token
	r.quizzes[quizID] = quiz
	return nil
}

func (r *QuizRepository) InsertAnswers(_ context.Context, answers []domain.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	quizID := answers[0].QuizID
	seen := make(map[string]struct{})
	for _, a := range r.answers[quizID] {
		seen[answerKey(a.PlayerType, a.QuestionID)] = struct{}{}
	}
	// Reject the whole batch before touching state; duplicates inside the
	// batch itself count too.
	for _, a := range answers {
		key := answerKey(a.PlayerType, a.QuestionID)
		if _, dup := seen[key]; dup {
			return domain.ErrDuplicateAnswer
		}
		seen[key] = struct{}{}
	}
	r.answers[quizID] = append(r.answers[quizID], answers...)
	return nil
}

func (r *QuizRepository) GetAnswers(_ context.Context, quizID string) ([]domain.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Answer(nil), r.answers[quizID]...), nil
}

func (r *QuizRepository) GetPlayerAnswers(_ context.Context, quizID string, player domain.PlayerType) ([]domain.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Answer
	for _, a := range r.answers[quizID] {
		if a.PlayerType == player {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *QuizRepository) CompletePlayer(_ context.Context, quizID string, player domain.PlayerType, score int, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	if quiz.CompletedFor(player) {
		return domain.ErrAlreadyCompleted
	}
	at := completedAt
	if player == domain.PlayerCreator {
		quiz.CreatorCompleted = true
		quiz.CreatorCompletedAt = &at
		quiz.CreatorScore = &score
	} else {
		quiz.PartnerCompleted = true
		quiz.PartnerCompletedAt = &at
		quiz.PartnerScore = &score
	}
	r.quizzes[quizID] = quiz
	return nil
}

func answerKey(player domain.PlayerType, questionID string) string {
	return string(player) + "/" + questionID
}
