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

func TestResultsAggregation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuizRepository()
	quizSvc := app.NewQuizService(repo, 24*time.Hour)
	answerSvc := app.NewAnswerService(repo)
	resultsSvc := app.NewResultsService(repo)

	quiz, err := quizSvc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := answerSvc.Submit(ctx, quiz.ID, domain.PlayerPartner, fullBatch(t, ctx, repo, quiz.ID)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	view, err := resultsSvc.Results(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if view.ID != quiz.ID || view.CreatorName != "Alice" || view.PartnerName != "Bob" {
		t.Fatalf("header fields wrong: %+v", view)
	}
	if len(view.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(view.Questions))
	}
	if len(view.Answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(view.Answers))
	}
	if !view.PartnerCompleted || view.PartnerScore == nil {
		t.Fatal("expected stored partner score, not a recomputation")
	}
	// Correct indices are [0,1,0,1]; the all-zero batch matches two of them.
	if *view.PartnerScore != 50 {
		t.Fatalf("partner score = %d, want 50", *view.PartnerScore)
	}
}

func TestResultsUnknownQuiz(t *testing.T) {
	resultsSvc := app.NewResultsService(memory.NewQuizRepository())
	if _, err := resultsSvc.Results(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}
