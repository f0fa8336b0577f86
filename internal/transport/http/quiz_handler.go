package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"couple-quiz-service/internal/app"
	"couple-quiz-service/internal/domain"
)

type QuizHandler struct {
	service     *app.QuizService
	shareDomain string
}

func NewQuizHandler(service *app.QuizService, shareDomain string) *QuizHandler {
	return &QuizHandler{service: service, shareDomain: shareDomain}
}

type createQuestionRequest struct {
	QuestionText       string          `json:"questionText"`
	Type               string          `json:"type"`
	Options            []domain.Option `json:"options"`
	CorrectAnswerIndex int             `json:"correctAnswerIndex"`
	IsCustom           bool            `json:"isCustom"`
}

type createQuizRequest struct {
	Language      string                  `json:"language"`
	CreatorName   string                  `json:"creatorName"`
	PartnerName   string                  `json:"partnerName"`
	QuestionCount int                     `json:"questionCount"`
	Questions     []createQuestionRequest `json:"questions"`
}

type quizView struct {
	domain.Quiz
	Questions []domain.Question `json:"questions"`
}

// CreateQuiz handles POST /quizzes.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "MISSING_FIELDS"})
		return
	}

	in := app.CreateQuizInput{
		Language:      req.Language,
		CreatorName:   req.CreatorName,
		PartnerName:   req.PartnerName,
		QuestionCount: req.QuestionCount,
		Questions:     make([]app.QuestionInput, len(req.Questions)),
	}
	for i, q := range req.Questions {
		in.Questions[i] = app.QuestionInput{
			QuestionText:       q.QuestionText,
			Type:               q.Type,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			IsCustom:           q.IsCustom,
		}
	}

	quiz, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quizId": quiz.ID, "shareToken": quiz.ShareToken})
}

// GetQuiz handles GET /quizzes/:id.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, questions, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizView{Quiz: quiz, Questions: questions})
}

// QuizAction dispatches the two three-segment GET routes. Gin's router
// cannot register the static segment "share" next to the :id wildcard, so
// GET /quizzes/share/:token and GET /quizzes/:id/duplicate share this route.
func (h *QuizHandler) QuizAction(c *gin.Context) {
	id := c.Param("id")
	action := c.Param("action")

	if id == "share" {
		h.resolveShareToken(c, action)
		return
	}
	if action == "duplicate" {
		h.duplicateQuiz(c, id)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func (h *QuizHandler) duplicateQuiz(c *gin.Context, quizID string) {
	clone, err := h.service.Duplicate(c.Request.Context(), quizID,
		c.Query("newCreatorName"), c.Query("newPartnerName"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newQuizId": clone.ID})
}

func (h *QuizHandler) resolveShareToken(c *gin.Context, token string) {
	quiz, err := h.service.ResolveShareToken(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// ShareQuiz handles POST /quizzes/:id/share and responds with the full link
// the frontend can hand to the partner.
func (h *QuizHandler) ShareQuiz(c *gin.Context) {
	token, err := h.service.IssueShareToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	link := fmt.Sprintf("%s/play/%s", strings.TrimRight(h.shareDomain, "/"), token)
	c.JSON(http.StatusOK, gin.H{"shareLink": link})
}
