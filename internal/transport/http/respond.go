package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"couple-quiz-service/internal/domain"
)

// writeError translates domain errors to HTTP statuses. Anything outside the
// taxonomy is logged with detail server-side and crosses the boundary as a
// generic message unless gin runs in debug mode.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz already completed"})
	case errors.Is(err, domain.ErrDuplicateAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
	case errors.Is(err, domain.ErrQuestionBankEmpty):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrQuizExpired):
		c.JSON(http.StatusGone, gin.H{"error": "Quiz expired"})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if gin.Mode() == gin.DebugMode {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
