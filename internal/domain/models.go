package domain

import "time"

// PlayerType identifies which side of the quiz an answer belongs to.
type PlayerType string

const (
	PlayerCreator PlayerType = "creator"
	PlayerPartner PlayerType = "partner"
)

// Valid reports whether the player type is one of the two known roles.
func (p PlayerType) Valid() bool {
	return p == PlayerCreator || p == PlayerPartner
}

// Option is one selectable answer of a question.
type Option struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Quiz is the header row of a quiz aggregate. Completion fields flip from
// false to true exactly once per player; scores are set only with that flip.
type Quiz struct {
	ID                 string     `json:"id"`
	Language           string     `json:"language"`
	CreatorName        string     `json:"creator_name"`
	PartnerName        string     `json:"partner_name"`
	QuestionCount      int        `json:"question_count"`
	ShareToken         string     `json:"share_token,omitempty"`
	CreatorCompleted   bool       `json:"creator_completed"`
	CreatorCompletedAt *time.Time `json:"creator_completed_at,omitempty"`
	CreatorScore       *int       `json:"creator_score,omitempty"`
	PartnerCompleted   bool       `json:"partner_completed"`
	PartnerCompletedAt *time.Time `json:"partner_completed_at,omitempty"`
	PartnerScore       *int       `json:"partner_score,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ExpiresAt          time.Time  `json:"expires_at"`
}

// Expired reports whether the quiz's fixed expiry window has passed.
func (q Quiz) Expired(now time.Time) bool {
	return q.ExpiresAt.Before(now)
}

// CompletedFor reports whether the given player already finished the quiz.
func (q Quiz) CompletedFor(p PlayerType) bool {
	if p == PlayerCreator {
		return q.CreatorCompleted
	}
	return q.PartnerCompleted
}

// Question is a child row of a quiz, ordered by OrderIndex (contiguous
// 0..N-1 at creation time).
type Question struct {
	ID                 string   `json:"id"`
	QuizID             string   `json:"quiz_id"`
	QuestionText       string   `json:"question_text"`
	Type               string   `json:"type"` // yesno | multiple
	Options            []Option `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	IsCustom           bool     `json:"is_custom"`
	OrderIndex         int      `json:"order_index"`
}

// Answer is an append-only row; (QuizID, PlayerType, QuestionID) is unique.
type Answer struct {
	QuizID              string     `json:"quiz_id"`
	PlayerType          PlayerType `json:"player_type"`
	QuestionID          string     `json:"question_id"`
	SelectedOptionIndex int        `json:"selected_option_index"`
	CreatedAt           time.Time  `json:"created_at"`
}

// BankQuestion is a predefined question from the per-language question bank.
// The correct answer is not part of the bank; the creator picks it when the
// quiz is assembled.
type BankQuestion struct {
	ID           string   `json:"id"`
	Language     string   `json:"language"`
	Type         string   `json:"type"`
	QuestionText string   `json:"question_text"`
	Options      []Option `json:"options"`
}
