package app

import (
	"context"
	"fmt"
	"math/rand"

	"couple-quiz-service/internal/domain"
)

// QuestionService picks random predefined questions from the per-language
// bank. Selection shuffles in-process so the bank itself stays cacheable.
type QuestionService struct {
	bank QuestionBank
}

func NewQuestionService(bank QuestionBank) *QuestionService {
	return &QuestionService{bank: bank}
}

// Random returns up to count random questions for a language.
func (s *QuestionService) Random(ctx context.Context, language string, count int) ([]domain.BankQuestion, error) {
	if language == "" {
		return nil, fmt.Errorf("%w: language required", domain.ErrInvalidInput)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", domain.ErrInvalidInput)
	}

	all, err := s.bank.Bank(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	if len(all) == 0 {
		return nil, domain.ErrQuestionBankEmpty
	}

	picked := make([]domain.BankQuestion, len(all))
	copy(picked, all)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if count < len(picked) {
		picked = picked[:count]
	}
	return picked, nil
}
