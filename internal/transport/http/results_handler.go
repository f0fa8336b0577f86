package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"couple-quiz-service/internal/app"
)

type ResultsHandler struct {
	service *app.ResultsService
}

func NewResultsHandler(service *app.ResultsService) *ResultsHandler {
	return &ResultsHandler{service: service}
}

// GetResults handles GET /results/:quizId.
func (h *ResultsHandler) GetResults(c *gin.Context) {
	view, err := h.service.Results(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
