// internal/handlers/search/search_handler.go
package search

import (
	"net/http"
	"strconv"
	"strings"

	"journal-service/internal/middleware"
	"journal-service/internal/pkg/response"
	searchService "journal-service/internal/service/search"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *searchService.SearchService
}

func NewSearchHandler(svc *searchService.SearchService) *SearchHandler {
	return &SearchHandler{searchService: svc}
}

func (h *SearchHandler) Search(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	q := searchService.Query{
		Text:  c.Query("q"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if mood := c.Query("mood"); mood != "" {
		q.Mood = &mood
	}
	if tags := c.Query("tags"); tags != "" {
		q.Tags = strings.Split(tags, ",")
	}

	results, err := h.searchService.Search(c.Request.Context(), userID, q)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"results": results, "page": q.Page, "limit": q.Limit})
}

func (h *SearchHandler) Suggestions(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	tags, err := h.searchService.TagSuggestions(c.Request.Context(), userID, c.Query("q"), queryInt(c, "limit", 10))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"suggestions": tags})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
