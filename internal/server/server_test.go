package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inodb/vibe-structure/internal/interval"
	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/structure"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(zap.NewNop())
}

func post(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHighlightRoute(t *testing.T) {
	router := setupRouter()

	w := post(t, router, "/highlight", `{
		"transcript": {"gene": {"startIndex": 1000}, "exon": [{"start": 0, "end": 29}]},
		"region": {"startIndex": 1010, "endIndex": 1012},
		"position": "A/B=1-50"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HighlightResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Highlight)
	assert.Equal(t, interval.Range{Start: 3, End: 4}, *resp.Highlight)
	assert.Equal(t, []structure.ChainHighlight{
		{ChainID: "A", Start: 3, End: 4},
		{ChainID: "B", Start: 3, End: 4},
	}, resp.ChainHighlights)
	assert.Empty(t, resp.Errors)
}

func TestHighlightRoute_NoOverlap(t *testing.T) {
	router := setupRouter()

	w := post(t, router, "/highlight", `{
		"transcript": {"gene": {"startIndex": 1000}, "exon": [{"start": 0, "end": 29}]},
		"region": {"startIndex": 5000, "endIndex": 5010},
		"position": "A=1-50"
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"highlight": null, "chainHighlights": []}`, w.Body.String())
}

func TestHighlightRoute_MalformedMapping(t *testing.T) {
	router := setupRouter()

	w := post(t, router, "/highlight", `{
		"transcript": {"gene": {"startIndex": 1000}, "exon": [{"start": 0, "end": 29}]},
		"region": {"startIndex": 1010, "endIndex": 1012},
		"position": "A1-50, B=1-50, C=x-1"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HighlightResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []structure.ChainHighlight{{ChainID: "B", Start: 3, End: 4}}, resp.ChainHighlights)
	require.Len(t, resp.Errors, 2)
	assert.Contains(t, resp.Errors[0], "missing '='")
	assert.Contains(t, resp.Errors[1], "invalid range start")
}

func TestPlanRoute(t *testing.T) {
	router := setupRouter()

	w := post(t, router, "/plan", `{
		"chains": [{"chainId": "A"}, {"chainId": "B"}],
		"chainId": "A",
		"chainHighlights": [{"chainId": "A", "start": 3, "end": 3}]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Representations, 4)
	assert.Equal(t, "chain B", resp.Representations[1].Selector)
	assert.Equal(t, represent.MaterialGlass, resp.Representations[1].Material)
	assert.Nil(t, resp.Representations[0].Color)
	require.NotNil(t, resp.Representations[2].Color)
	assert.Equal(t, "", *resp.Representations[2].Color)
	assert.Equal(t, represent.HeteroSelector, resp.Representations[3].Selector)
}

func TestPlanRoute_NoChains(t *testing.T) {
	router := setupRouter()

	w := post(t, router, "/plan", `{"chains": []}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"representations": []}`, w.Body.String())
}

func TestRoutes_BadJSON(t *testing.T) {
	router := setupRouter()

	for _, path := range []string{"/highlight", "/plan"} {
		w := post(t, router, path, `{"chains": [`)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "error", path)
	}
}
