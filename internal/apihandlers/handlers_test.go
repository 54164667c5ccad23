package apihandlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardkeep/internal/app"
	"cardkeep/internal/config"
	"cardkeep/internal/models"
	"cardkeep/pkg/tagger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Tagging.MinTags = 6
	cfg.Tagging.MaxTags = 10

	// No credential configured: the tagging surface degrades to the
	// heuristic path, which is exactly what these tests exercise.
	a := &app.App{
		Config: cfg,
		Tagger: tagger.NewClient(tagger.Config{}),
	}
	h := NewAPIHandler(a)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/tag", h.TagHandler)
	v1.POST("/items", h.CreateItemHandler)
	v1.GET("/items", h.ListItemsHandler)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTagHandler_ForceHeuristic(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/tag?force=1", models.Draft{Title: "Netflix 解約", Type: "subscription"})
	require.Equal(t, http.StatusOK, w.Code)

	var res models.TagResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Fallback)
	assert.Equal(t, tagger.ModelHeuristicForce, res.Model)
	assert.GreaterOrEqual(t, len(res.Tags), 6)
	assert.LessOrEqual(t, len(res.Tags), 10)
	assert.Contains(t, res.Tags, "サブスク")
}

func TestTagHandler_MissingKeyStillAnswers200(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/tag", models.Draft{Title: "買い物メモ"})
	require.Equal(t, http.StatusOK, w.Code, "recoverable failures answer 200 with a degraded result")

	var res models.TagResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Fallback)
	assert.NotEmpty(t, res.Error)
}

func TestTagHandler_InputTooShort(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/tag", models.Draft{Title: "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bad_request", body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}

func TestTagHandler_InputTooLarge(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/tag", models.Draft{Title: strings.Repeat("あ", 2001)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "payload_too_large", body.Error.Code)
}

func TestTagHandler_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tag", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemHandlers_UnavailableWithoutStore(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/items", models.Draft{Title: "メモです"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
