package app

import (
	"context"
	"fmt"
	"time"

	"couple-quiz-service/internal/domain"
)

// ResultsService is a read-only composition over the repository; scores are
// read back from the quiz header, never recomputed here.
type ResultsService struct {
	repo QuizRepository
}

func NewResultsService(repo QuizRepository) *ResultsService {
	return &ResultsService{repo: repo}
}

// ResultQuestion is the slice of a question needed by the recap view.
type ResultQuestion struct {
	ID                 string `json:"id"`
	QuestionText       string `json:"question_text"`
	CorrectAnswerIndex int    `json:"correct_answer_index"`
}

// ResultAnswer is one submitted answer as shown in the recap view.
type ResultAnswer struct {
	QuestionID          string            `json:"question_id"`
	SelectedOptionIndex int               `json:"selected_option_index"`
	PlayerType          domain.PlayerType `json:"player_type"`
}

// Results joins the quiz header, its questions, and all answers.
type Results struct {
	ID                 string           `json:"id"`
	Language           string           `json:"language"`
	CreatorName        string           `json:"creator_name"`
	PartnerName        string           `json:"partner_name"`
	QuestionCount      int              `json:"question_count"`
	CreatorScore       *int             `json:"creator_score"`
	PartnerScore       *int             `json:"partner_score"`
	CreatorCompleted   bool             `json:"creator_completed"`
	CreatorCompletedAt *time.Time       `json:"creator_completed_at"`
	PartnerCompleted   bool             `json:"partner_completed"`
	PartnerCompletedAt *time.Time       `json:"partner_completed_at"`
	CreatedAt          time.Time        `json:"created_at"`
	Questions          []ResultQuestion `json:"questions"`
	Answers            []ResultAnswer   `json:"answers"`
}

// Results assembles the composite payload for the results/recap view.
func (s *ResultsService) Results(ctx context.Context, quizID string) (Results, error) {
	if quizID == "" {
		return Results{}, fmt.Errorf("%w: quiz id required", domain.ErrInvalidInput)
	}
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return Results{}, err
	}
	questions, err := s.repo.GetQuestions(ctx, quizID)
	if err != nil {
		return Results{}, fmt.Errorf("load questions: %w", err)
	}
	answers, err := s.repo.GetAnswers(ctx, quizID)
	if err != nil {
		return Results{}, fmt.Errorf("load answers: %w", err)
	}

	view := Results{
		ID:                 quiz.ID,
		Language:           quiz.Language,
		CreatorName:        quiz.CreatorName,
		PartnerName:        quiz.PartnerName,
		QuestionCount:      quiz.QuestionCount,
		CreatorScore:       quiz.CreatorScore,
		PartnerScore:       quiz.PartnerScore,
		CreatorCompleted:   quiz.CreatorCompleted,
		CreatorCompletedAt: quiz.CreatorCompletedAt,
		PartnerCompleted:   quiz.PartnerCompleted,
		PartnerCompletedAt: quiz.PartnerCompletedAt,
		CreatedAt:          quiz.CreatedAt,
		Questions:          make([]ResultQuestion, 0, len(questions)),
		Answers:            make([]ResultAnswer, 0, len(answers)),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, ResultQuestion{
			ID:                 q.ID,
			QuestionText:       q.QuestionText,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
		})
	}
	for _, a := range answers {
		view.Answers = append(view.Answers, ResultAnswer{
			QuestionID:          a.QuestionID,
			SelectedOptionIndex: a.SelectedOptionIndex,
			PlayerType:          a.PlayerType,
		})
	}
	return view, nil
}
