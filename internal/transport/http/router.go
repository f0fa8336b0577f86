package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"couple-quiz-service/internal/app"
)

// Config carries the transport-level settings the handlers need.
type Config struct {
	// ShareDomain is the frontend origin share links point at.
	ShareDomain string
	// AllowedOrigins enables CORS for the listed origins when non-empty.
	AllowedOrigins []string
}

// NewRouter wires the REST surface onto a gin engine.
func NewRouter(
	quizzes *app.QuizService,
	answers *app.AnswerService,
	questions *app.QuestionService,
	results *app.ResultsService,
	cfg Config,
) *gin.Engine {
	r := gin.Default()

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Origin", "Cache-Control", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	quizHandler := NewQuizHandler(quizzes, cfg.ShareDomain)
	answerHandler := NewAnswerHandler(answers)
	questionHandler := NewQuestionHandler(questions)
	resultsHandler := NewResultsHandler(results)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/questions", questionHandler.RandomQuestions)

	quizGroup := r.Group("/quizzes")
	{
		quizGroup.POST("", quizHandler.CreateQuiz)
		quizGroup.GET("/:id", quizHandler.GetQuiz)
		quizGroup.GET("/:id/:action", quizHandler.QuizAction)
		quizGroup.POST("/:id/share", quizHandler.ShareQuiz)
	}

	r.POST("/answers", answerHandler.SubmitAnswers)
	r.GET("/results/:quizId", resultsHandler.GetResults)

	return r
}
