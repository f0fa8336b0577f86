package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"couple-quiz-service/internal/app"
	"couple-quiz-service/internal/domain"
	"couple-quiz-service/internal/infra/memory"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func validCreateInput() app.CreateQuizInput {
	yesNo := []domain.Option{{Text: "Yes", Index: 0}, {Text: "No", Index: 1}}
	return app.CreateQuizInput{
		Language:      "en",
		CreatorName:   "Alice",
		PartnerName:   "Bob",
		QuestionCount: 4,
		Questions: []app.QuestionInput{
			{QuestionText: "Coffee over tea?", Type: "yesno", Options: yesNo, CorrectAnswerIndex: 0},
			{QuestionText: "Morning person?", Type: "yesno", Options: yesNo, CorrectAnswerIndex: 1},
			{QuestionText: "Stay in on Fridays?", Type: "yesno", Options: yesNo, CorrectAnswerIndex: 0},
			{QuestionText: "Wants a pet?", Type: "yesno", Options: yesNo, CorrectAnswerIndex: 1},
		},
	}
}

func TestCreateQuiz(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuizRepository()
	service := app.NewQuizServiceWithClock(repo, 24*time.Hour, fixedClock(baseTime))

	quiz, err := service.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if quiz.ID == "" {
		t.Fatal("expected a quiz id")
	}
	if quiz.ShareToken == "" {
		t.Fatal("expected an initial share token")
	}
	if !quiz.ExpiresAt.Equal(baseTime.Add(24 * time.Hour)) {
		t.Fatalf("expires_at = %v, want %v", quiz.ExpiresAt, baseTime.Add(24*time.Hour))
	}

	questions, err := repo.GetQuestions(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if q.OrderIndex != i {
			t.Fatalf("question %d has order_index %d", i, q.OrderIndex)
		}
		if q.QuizID != quiz.ID {
			t.Fatalf("question %d bound to quiz %q", i, q.QuizID)
		}
	}
}

func TestCreateQuizValidation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuizRepository()
	service := app.NewQuizService(repo, 24*time.Hour)

	tests := []struct {
		name   string
		mutate func(*app.CreateQuizInput)
	}{
		{"missing language", func(in *app.CreateQuizInput) { in.Language = "" }},
		{"missing creator name", func(in *app.CreateQuizInput) { in.CreatorName = "" }},
		{"missing partner name", func(in *app.CreateQuizInput) { in.PartnerName = "" }},
		{"zero question count", func(in *app.CreateQuizInput) { in.QuestionCount = 0 }},
		{"empty questions", func(in *app.CreateQuizInput) { in.Questions = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			if _, err := service.Create(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDuplicateQuiz(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuizRepository()
	service := app.NewQuizService(repo, 24*time.Hour)

	src, err := service.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Give the source some state the clone must not inherit.
	answerSvc := app.NewAnswerService(repo)
	if _, err := answerSvc.Submit(ctx, src.ID, domain.PlayerPartner, fullBatch(t, ctx, repo, src.ID)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	clone, err := service.Duplicate(ctx, src.ID, "Carol", "")
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if clone.ID == src.ID {
		t.Fatal("clone must have a fresh id")
	}
	if clone.CreatorName != "Carol" || clone.PartnerName != "Bob" {
		t.Fatalf("name substitution wrong: %q/%q", clone.CreatorName, clone.PartnerName)
	}
	if clone.PartnerCompleted || clone.PartnerScore != nil {
		t.Fatal("clone must start with zero completion state")
	}

	srcQuestions, _ := repo.GetQuestions(ctx, src.ID)
	cloneQuestions, _ := repo.GetQuestions(ctx, clone.ID)
	if len(cloneQuestions) != len(srcQuestions) {
		t.Fatalf("expected %d questions, got %d", len(srcQuestions), len(cloneQuestions))
	}
	for i := range srcQuestions {
		s, c := srcQuestions[i], cloneQuestions[i]
		if c.ID == s.ID {
			t.Fatalf("question %d reused the source id", i)
		}
		if c.QuestionText != s.QuestionText || c.Type != s.Type ||
			c.CorrectAnswerIndex != s.CorrectAnswerIndex || c.OrderIndex != s.OrderIndex {
			t.Fatalf("question %d differs from source", i)
		}
	}

	answers, _ := repo.GetAnswers(ctx, clone.ID)
	if len(answers) != 0 {
		t.Fatalf("clone must start with zero answers, got %d", len(answers))
	}
}

func TestDuplicateUnknownQuiz(t *testing.T) {
	service := app.NewQuizService(memory.NewQuizRepository(), 24*time.Hour)
	if _, err := service.Duplicate(context.Background(), "missing", "", ""); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuizRepository()
	service := app.NewQuizServiceWithClock(repo, 24*time.Hour, fixedClock(baseTime))

	quiz, err := service.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	token, err := service.IssueShareToken(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == quiz.ShareToken {
		t.Fatal("issue must replace the creation-time token")
	}

	resolved, err := service.ResolveShareToken(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != quiz.ID {
		t.Fatalf("resolved quiz %q, want %q", resolved.ID, quiz.ID)
	}

	// The replaced token must no longer resolve.
	if _, err := service.ResolveShareToken(ctx, quiz.ShareToken); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound for stale token, got %v", err)
	}
}

func TestExpiredQuiz(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuizRepository()
	service := app.NewQuizServiceWithClock(repo, time.Hour, fixedClock(baseTime))

	quiz, err := service.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	token, err := service.IssueShareToken(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Same repo, clock past the expiry window.
	late := app.NewQuizServiceWithClock(repo, time.Hour, fixedClock(baseTime.Add(2*time.Hour)))

	if _, _, err := late.Get(ctx, quiz.ID); !errors.Is(err, domain.ErrQuizExpired) {
		t.Fatalf("Get: expected ErrQuizExpired, got %v", err)
	}
	if _, err := late.ResolveShareToken(ctx, token); !errors.Is(err, domain.ErrQuizExpired) {
		t.Fatalf("Resolve: expected ErrQuizExpired, got %v", err)
	}
	if _, err := late.IssueShareToken(ctx, quiz.ID); !errors.Is(err, domain.ErrQuizExpired) {
		t.Fatalf("Issue: expected ErrQuizExpired, got %v", err)
	}
}

// fullBatch builds a batch answering every question of the quiz with option 0.
func fullBatch(t *testing.T, ctx context.Context, repo app.QuizRepository, quizID string) []app.AnswerInput {
	t.Helper()
	questions, err := repo.GetQuestions(ctx, quizID)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	batch := make([]app.AnswerInput, len(questions))
	for i, q := range questions {
		batch[i] = app.AnswerInput{QuestionID: q.ID, SelectedOptionIndex: 0}
	}
	return batch
}
