// internal/handlers/entry/entry_handler.go
package entry

import (
	"net/http"
	"strconv"

	"journal-service/internal/domain/entry"
	"journal-service/internal/middleware"
	"journal-service/internal/pkg/apierror"
	"journal-service/internal/pkg/response"
	entryService "journal-service/internal/service/entry"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct {
	entryService *entryService.EntryService
}

func NewEntryHandler(svc *entryService.EntryService) *EntryHandler {
	return &EntryHandler{entryService: svc}
}

func (h *EntryHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req entry.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	created, err := h.entryService.CreateEntry(c.Request.Context(), userID, &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

func (h *EntryHandler) Get(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	found, err := h.entryService.GetEntry(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, found)
}

// List supports pagination, sort order and draft/favorite filters via query
// params.
func (h *EntryHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	filter := entry.ListFilter{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
		SortDesc: c.DefaultQuery("sort", "desc") != "asc",
	}
	if v, ok := queryBool(c, "is_draft"); ok {
		filter.IsDraft = &v
	}
	if v, ok := queryBool(c, "is_favorite"); ok {
		filter.IsFavorite = &v
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), userID, filter)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"entries": entries, "page": filter.Page, "limit": filter.Limit})
}

func (h *EntryHandler) Drafts(c *gin.Context) {
	h.listFixed(c, true, nil)
}

func (h *EntryHandler) Favorites(c *gin.Context) {
	fav := true
	h.listFixed(c, false, &fav)
}

func (h *EntryHandler) listFixed(c *gin.Context, draft bool, favorite *bool) {
	userID := middleware.MustGetUserID(c)

	filter := entry.ListFilter{
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
		SortDesc:   true,
		IsDraft:    &draft,
		IsFavorite: favorite,
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), userID, filter)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"entries": entries, "page": filter.Page, "limit": filter.Limit})
}

func (h *EntryHandler) Update(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req entry.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	updated, err := h.entryService.UpdateEntry(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.entryService.DeleteEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Entry deleted"})
}

func (h *EntryHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *EntryHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *EntryHandler) setFavorite(c *gin.Context, favorite bool) {
	userID := middleware.MustGetUserID(c)

	updated, err := h.entryService.SetFavorite(c.Request.Context(), userID, c.Param("id"), favorite)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

func (h *EntryHandler) Calendar(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		response.Err(c, apierror.Validation("year and month are required", "year", "required"))
		return
	}

	days, err := h.entryService.Calendar(c.Request.Context(), userID, year, month)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"days": days})
}

func (h *EntryHandler) OnThisDay(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	month, errM := strconv.Atoi(c.Query("month"))
	day, errD := strconv.Atoi(c.Query("day"))
	if errM != nil || errD != nil {
		response.Err(c, apierror.Validation("month and day are required", "month", "required"))
		return
	}

	entries, err := h.entryService.OnThisDay(c.Request.Context(), userID, month, day)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"entries": entries})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryBool(c *gin.Context, key string) (bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
