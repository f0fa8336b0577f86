package memory

import (
	"context"
	"testing"
	"time"

	"couple-quiz-service/internal/domain"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string][]domain.BankQuestion{
			"en": sampleBank(),
		}),
	}
	bank := NewQuestionBank(loader, time.Minute)

	questions, err := bank.Bank(context.Background(), "en")
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := bank.Bank(context.Background(), "en"); err != nil {
		t.Fatalf("bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}

	// A different language is a separate cache entry.
	if _, err := bank.Bank(context.Background(), "fr"); err != nil {
		t.Fatalf("bank fr: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected second load for fr, got %d", loader.calls)
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, language string) ([]domain.BankQuestion, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, language)
}

func sampleBank() []domain.BankQuestion {
	yesNo := []domain.Option{{Text: "Yes", Index: 0}, {Text: "No", Index: 1}}
	return []domain.BankQuestion{
		{ID: "b1", Language: "en", Type: "yesno", QuestionText: "Coffee over tea?", Options: yesNo},
		{ID: "b2", Language: "en", Type: "yesno", QuestionText: "Morning person?", Options: yesNo},
	}
}
