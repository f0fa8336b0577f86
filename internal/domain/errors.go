package domain

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid payload")
	// ErrQuizNotFound indicates the quiz (or share token) does not resolve.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizExpired indicates the quiz's expires_at has passed.
	ErrQuizExpired = errors.New("quiz expired")
	// ErrAlreadyCompleted indicates the player already finished this quiz.
	ErrAlreadyCompleted = errors.New("quiz already completed")
	// ErrDuplicateAnswer indicates a (quiz, player, question) uniqueness violation.
	ErrDuplicateAnswer = errors.New("player has already answered this question")
	// ErrQuestionBankEmpty indicates no predefined questions exist for a language.
	ErrQuestionBankEmpty = errors.New("question bank is empty")
)
