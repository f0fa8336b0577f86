package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"couple-quiz-service/internal/app"
)

type QuestionHandler struct {
	service *app.QuestionService
}

func NewQuestionHandler(service *app.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// RandomQuestions handles GET /questions?language=&count=.
func (h *QuestionHandler) RandomQuestions(c *gin.Context) {
	language := c.Query("language")
	count, err := strconv.Atoi(c.Query("count"))
	if language == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language and count required"})
		return
	}

	questions, err := h.service.Random(c.Request.Context(), language, count)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}
