package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"couple-quiz-service/internal/domain"
)

// QuizService covers the quiz aggregate lifecycle: creation, reads,
// duplication, and share-token issue/resolve.
type QuizService struct {
	repo    QuizRepository
	quizTTL time.Duration
	now     func() time.Time
}

func NewQuizService(repo QuizRepository, quizTTL time.Duration) *QuizService {
	return NewQuizServiceWithClock(repo, quizTTL, time.Now)
}

// NewQuizServiceWithClock is test-only for deterministic timestamps.
func NewQuizServiceWithClock(repo QuizRepository, quizTTL time.Duration, now func() time.Time) *QuizService {
	return &QuizService{repo: repo, quizTTL: quizTTL, now: now}
}

// QuestionInput is the creator's question as it arrives in the create call.
type QuestionInput struct {
	QuestionText       string
	Type               string
	Options            []domain.Option
	CorrectAnswerIndex int
	IsCustom           bool
}

// CreateQuizInput carries everything needed to build a new quiz aggregate.
type CreateQuizInput struct {
	Language      string
	CreatorName   string
	PartnerName   string
	QuestionCount int
	Questions     []QuestionInput
}

// Create persists the quiz header plus its ordered questions as one atomic
// unit and mints the initial share token.
func (s *QuizService) Create(ctx context.Context, in CreateQuizInput) (domain.Quiz, error) {
	switch {
	case in.Language == "":
		return domain.Quiz{}, fmt.Errorf("%w: language required", domain.ErrInvalidInput)
	case in.CreatorName == "":
		return domain.Quiz{}, fmt.Errorf("%w: creatorName required", domain.ErrInvalidInput)
	case in.PartnerName == "":
		return domain.Quiz{}, fmt.Errorf("%w: partnerName required", domain.ErrInvalidInput)
	case in.QuestionCount <= 0:
		return domain.Quiz{}, fmt.Errorf("%w: questionCount required", domain.ErrInvalidInput)
	case len(in.Questions) == 0:
		return domain.Quiz{}, fmt.Errorf("%w: questions required", domain.ErrInvalidInput)
	}

	now := s.now()
	quiz := domain.Quiz{
		ID:            uuid.NewString(),
		Language:      in.Language,
		CreatorName:   in.CreatorName,
		PartnerName:   in.PartnerName,
		QuestionCount: in.QuestionCount,
		ShareToken:    newShareToken(),
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.quizTTL),
	}

	questions := make([]domain.Question, len(in.Questions))
	for i, q := range in.Questions {
		questions[i] = domain.Question{
			ID:                 uuid.NewString(),
			QuizID:             quiz.ID,
			QuestionText:       q.QuestionText,
			Type:               q.Type,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			IsCustom:           q.IsCustom,
			OrderIndex:         i,
		}
	}

	if err := s.repo.CreateQuiz(ctx, quiz, questions); err != nil {
		return domain.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// Get returns the quiz header and its ordered questions, rejecting expired
// quizzes.
func (s *QuizService) Get(ctx context.Context, quizID string) (domain.Quiz, []domain.Question, error) {
	if quizID == "" {
		return domain.Quiz{}, nil, fmt.Errorf("%w: quiz id required", domain.ErrInvalidInput)
	}
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, nil, err
	}
	if quiz.Expired(s.now()) {
		return domain.Quiz{}, nil, domain.ErrQuizExpired
	}
	questions, err := s.repo.GetQuestions(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, nil, fmt.Errorf("load questions: %w", err)
	}
	return quiz, questions, nil
}

// Duplicate clones a quiz's question set into a fresh aggregate with fresh
// ids and timestamps, zero answers, and both completion flags false. Names
// are substituted when provided.
func (s *QuizService) Duplicate(ctx context.Context, quizID, newCreatorName, newPartnerName string) (domain.Quiz, error) {
	if quizID == "" {
		return domain.Quiz{}, fmt.Errorf("%w: quiz id required", domain.ErrInvalidInput)
	}
	src, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	questions, err := s.repo.GetQuestions(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}

	creatorName := src.CreatorName
	if newCreatorName != "" {
		creatorName = newCreatorName
	}
	partnerName := src.PartnerName
	if newPartnerName != "" {
		partnerName = newPartnerName
	}

	now := s.now()
	clone := domain.Quiz{
		ID:            uuid.NewString(),
		Language:      src.Language,
		CreatorName:   creatorName,
		PartnerName:   partnerName,
		QuestionCount: src.QuestionCount,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.quizTTL),
	}

	copied := make([]domain.Question, len(questions))
	for i, q := range questions {
		copied[i] = domain.Question{
			ID:                 uuid.NewString(),
			QuizID:             clone.ID,
			QuestionText:       q.QuestionText,
			Type:               q.Type,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			IsCustom:           q.IsCustom,
			OrderIndex:         q.OrderIndex,
		}
	}

	if err := s.repo.CreateQuiz(ctx, clone, copied); err != nil {
		return domain.Quiz{}, fmt.Errorf("duplicate quiz: %w", err)
	}
	return clone, nil
}

// IssueShareToken mints a fresh token for a live quiz, replacing any prior
// token so at most one is active per quiz.
func (s *QuizService) IssueShareToken(ctx context.Context, quizID string) (string, error) {
	if quizID == "" {
		return "", fmt.Errorf("%w: quiz id required", domain.ErrInvalidInput)
	}
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return "", err
	}
	if quiz.Expired(s.now()) {
		return "", domain.ErrQuizExpired
	}
	token := newShareToken()
	if err := s.repo.SetShareToken(ctx, quizID, token); err != nil {
		return "", fmt.Errorf("store share token: %w", err)
	}
	return token, nil
}

// ResolveShareToken maps a token back to its quiz. Expiration is a property
// of the quiz, not the token, so it is surfaced here as well.
func (s *QuizService) ResolveShareToken(ctx context.Context, token string) (domain.Quiz, error) {
	if token == "" {
		return domain.Quiz{}, fmt.Errorf("%w: token required", domain.ErrInvalidInput)
	}
	quiz, err := s.repo.GetQuizByShareToken(ctx, token)
	if err != nil {
		return domain.Quiz{}, err
	}
	if quiz.Expired(s.now()) {
		return domain.Quiz{}, domain.ErrQuizExpired
	}
	return quiz, nil
}

// newShareToken returns a 128-bit token in hex form.
func newShareToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
