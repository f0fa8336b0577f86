package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"couple-quiz-service/internal/app"
	"couple-quiz-service/internal/domain"
)

type AnswerHandler struct {
	service *app.AnswerService
}

func NewAnswerHandler(service *app.AnswerService) *AnswerHandler {
	return &AnswerHandler{service: service}
}

type submitAnswersRequest struct {
	QuizID     string `json:"quizId"`
	PlayerType string `json:"playerType"`
	Batch      []struct {
		QuestionID          string `json:"questionId"`
		SelectedOptionIndex int    `json:"selectedOptionIndex"`
	} `json:"batch"`
}

// SubmitAnswers handles POST /answers: one batch carrying all of a player's
// answers for a quiz.
func (h *AnswerHandler) SubmitAnswers(c *gin.Context) {
	var req submitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	batch := make([]app.AnswerInput, len(req.Batch))
	for i, a := range req.Batch {
		batch[i] = app.AnswerInput{QuestionID: a.QuestionID, SelectedOptionIndex: a.SelectedOptionIndex}
	}

	result, err := h.service.Submit(c.Request.Context(), req.QuizID, domain.PlayerType(req.PlayerType), batch)
	if err != nil {
		writeError(c, err)
		return
	}
	if !result.Completed {
		c.JSON(http.StatusCreated, gin.H{"message": "Answers recorded"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Quiz completed", "score": result.Score})
}
