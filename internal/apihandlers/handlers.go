package apihandlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cardkeep/internal/app"
	"cardkeep/internal/models"
	"cardkeep/internal/store"
	"cardkeep/pkg/tagger"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// boolQuery interprets the usual truthy query values.
func boolQuery(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || v == "true" || v == "yes"
}

// TagHandler runs tag inference for a draft without persisting anything.
// Recoverable failures still answer 200 with a degraded TagResult; only
// input validation maps to 4xx.
func (h *APIHandler) TagHandler(c *gin.Context) {
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	opts := tagger.Options{
		Trace:          boolQuery(c, "trace"),
		ForceHeuristic: boolQuery(c, "force"),
	}

	res, err := h.App.Tagger.Generate(c.Request.Context(), draft, opts)
	if err != nil {
		h.respondTaggingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) respondTaggingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInputTooLarge):
		PayloadTooLarge(c, err.Error())
	case errors.Is(err, models.ErrInputTooShort):
		BadRequest(c, err.Error())
	default:
		Internal(c, err.Error())
	}
}

type createItemRequest struct {
	models.Draft
	AllowFallback *bool `json:"allowFallback,omitempty"`
}

// allowFallback resolves the per-request override against the configured
// default policy.
func (h *APIHandler) allowFallback(c *gin.Context, body *bool) bool {
	if c.Query("allow_fallback") != "" {
		return boolQuery(c, "allow_fallback")
	}
	if body != nil {
		return *body
	}
	return h.App.Config.Tagging.AllowFallback
}

func (h *APIHandler) CreateItemHandler(c *gin.Context) {
	if h.App.ItemService == nil {
		Unavailable(c, "item persistence is not configured")
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	opts := tagger.Options{ForceHeuristic: boolQuery(c, "force")}
	item, err := h.App.ItemService.CreateFromDraft(c.Request.Context(), req.Draft, h.allowFallback(c, req.AllowFallback), opts)
	if err != nil {
		h.respondItemError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (h *APIHandler) ListItemsHandler(c *gin.Context) {
	if h.App.ItemService == nil {
		Unavailable(c, "item persistence is not configured")
		return
	}
	items, err := h.App.ItemService.ListItems(c.Request.Context())
	if err != nil {
		Internal(c, "failed to list items: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *APIHandler) GetItemHandler(c *gin.Context) {
	if h.App.ItemService == nil {
		Unavailable(c, "item persistence is not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid item id")
		return
	}
	item, err := h.App.ItemService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.respondItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (h *APIHandler) UpdateItemHandler(c *gin.Context) {
	if h.App.ItemService == nil {
		Unavailable(c, "item persistence is not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid item id")
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	retag := boolQuery(c, "retag")
	opts := tagger.Options{ForceHeuristic: boolQuery(c, "force")}
	item, err := h.App.ItemService.UpdateItem(c.Request.Context(), id, req.Draft, retag, h.allowFallback(c, req.AllowFallback), opts)
	if err != nil {
		h.respondItemError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (h *APIHandler) DeleteItemHandler(c *gin.Context) {
	if h.App.ItemService == nil {
		Unavailable(c, "item persistence is not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid item id")
		return
	}
	if err := h.App.ItemService.DeleteItem(c.Request.Context(), id); err != nil {
		h.respondItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// WatchItemsHandler streams item change events as server-sent events until
// the client disconnects.
func (h *APIHandler) WatchItemsHandler(c *gin.Context) {
	if h.App.ItemService == nil {
		Unavailable(c, "item persistence is not configured")
		return
	}

	ch, cancel := h.App.ItemService.Watch()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *APIHandler) respondItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInputTooLarge):
		PayloadTooLarge(c, err.Error())
	case errors.Is(err, models.ErrInputTooShort):
		BadRequest(c, err.Error())
	case errors.Is(err, models.ErrEmptyTags), errors.Is(err, models.ErrFallbackRejected):
		// Gate rejections surface verbatim so the UI can show them.
		Unprocessable(c, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, models.ErrNotFound):
		NotFound(c, "item not found")
	default:
		Internal(c, err.Error())
	}
}
