package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/lcdparts/models"
)

// Runner is the search operation behind the HTTP surface.
type Runner interface {
	Run(ctx context.Context, query string) *models.SearchResult
	EngineName() string
}

// Search returns a handler for POST /api/v1/search.
//
// Every upstream outcome is a 200: a failed fetch and a search with no
// matches both come back with an empty products array. Only a malformed
// request body is rejected.
func Search(svc Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, svc.Run(c.Request.Context(), req.SearchQuery))
	}
}
