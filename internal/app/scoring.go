package app

import (
	"math"

	"couple-quiz-service/internal/domain"
)

// Score computes the integer percentage of questions answered correctly.
// Each question is matched to the answer with the same question id; missing
// or mismatched answers count as incorrect, and a question contributes at
// most once even if the answer set carries duplicates. Rounding is half-up.
// The caller guarantees a non-empty question set.
func Score(questions []domain.Question, answers []domain.Answer) int {
	selected := make(map[string]int, len(answers))
	for _, a := range answers {
		if _, ok := selected[a.QuestionID]; !ok {
			selected[a.QuestionID] = a.SelectedOptionIndex
		}
	}

	correct := 0
	for _, q := range questions {
		if idx, ok := selected[q.ID]; ok && idx == q.CorrectAnswerIndex {
			correct++
		}
	}

	return int(math.Round(float64(correct*100) / float64(len(questions))))
}
