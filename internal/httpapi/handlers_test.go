package httpapi

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
	"go.uber.org/zap/zaptest"

	"github.com/dshills/gobabygo/internal/planner"
	"github.com/dshills/gobabygo/internal/report"
)

const londonJSON = `{
  "baby_age_months": 6,
  "flight_hours": 7,
  "layovers": 1,
  "departure_time": "Morning (7-11 AM)",
  "pumping_needed": true,
  "parent_experience": "Experienced traveler (4+ flights)",
  "destination": "London",
  "departure_date": "2026-06-01",
  "return_date": "2026-06-06"
}`

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := zaptest.NewLogger(t)
	svc, err := planner.NewBuiltin(log)
	require.NoError(t, err)
	return NewRouter(svc, log, Options{})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Greater(t, body["destinations"], float64(0))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trip-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trip-42", w.Header().Get("X-Request-ID"))
}

func TestStrategies(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/strategies", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"strategies":["comfort","stress"]}`, w.Body.String())
}

func TestDestinationsSearch(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/destinations?q=london&limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Destinations []struct {
			Name string `json:"name"`
		} `json:"destinations"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Destinations)
	assert.Equal(t, "London", body.Destinations[0].Name)
	assert.LessOrEqual(t, body.Count, 3)

	w = do(t, r, http.MethodGet, "/api/v1/destinations?q=zzzzzz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"destinations":[]`)

	w = do(t, r, http.MethodGet, "/api/v1/destinations?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDestinationDetail(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/destinations/Dubai", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Region  string `json:"region"`
		Climate struct {
			Tier string `json:"tier"`
		} `json:"climate"`
		Insights struct {
			FamilyRating string `json:"family_rating"`
		} `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "middle_east", body.Region)
	assert.Equal(t, "hot", body.Climate.Tier)
	assert.Equal(t, "Excellent", body.Insights.FamilyRating)

	w = do(t, r, http.MethodGet, "/api/v1/destinations/Atlantis", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestions(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/suggestions?prefix=Lo", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "London")

	w = do(t, r, http.MethodGet, "/api/v1/suggestions?prefix=L", "")
	assert.JSONEq(t, `{"suggestions":[]}`, w.Body.String())
}

func TestAnalyze(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze", londonJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 8, rep.Summary.Score)
	assert.Equal(t, "comfort", rep.Input.Strategy)
	assert.Len(t, rep.Packing.Items, 16)
	assert.NotEmpty(t, rep.Hotels)
}

func TestAnalyzeStressQuery(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze?strategy=stress", londonJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"strategy":"stress"`)
}

func TestAnalyzeValidationError(t *testing.T) {
	body := strings.Replace(londonJSON, `"flight_hours": 7`, `"flight_hours": -3`, 1)
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Path string `json:"path"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	require.NotEmpty(t, resp.Details)
	assert.Equal(t, "flight_hours", resp.Details[0].Path)
}

func TestAnalyzeUnknownStrategy(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze?strategy=luck", londonJSON)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"strategy"`)
}

func TestAnalyzeBadJSON(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze", `{"baby_age_months": "six"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON body")
}

func TestAnalyzeMarkdown(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze/markdown", londonJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "# Baby Travel Report: London")
}

func TestAnalyzePDF(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/analyze/pdf", londonJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "baby-travel-report.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestNoRoute(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

func TestCORSPreflight(t *testing.T) {
	log := zaptest.NewLogger(t)
	svc, err := planner.NewBuiltin(log)
	require.NoError(t, err)
	r := NewRouter(svc, log, Options{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryReturns500(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zaptest.NewLogger(t)))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
