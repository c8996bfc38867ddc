// internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analytics-dashboard/internal/analytics/classifier"
	"analytics-dashboard/internal/analytics/session"
	"analytics-dashboard/internal/common/config"
	"analytics-dashboard/internal/common/validation"
	"analytics-dashboard/internal/models"
)

// ==========================
// Test Doubles
// ==========================

type testLogger struct{}

func (l *testLogger) Info(msg string, fields map[string]interface{})  {}
func (l *testLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *testLogger) Error(msg string, fields map[string]interface{}) {}
func (l *testLogger) With(fields map[string]interface{}) Logger       { return l }

// patternResolver runs the real classifier so handler tests exercise the
// full context round-trip without any remote endpoint.
type patternResolver struct {
	lastConvCtx *models.Context
}

func (r *patternResolver) Resolve(ctx context.Context, query string, convCtx *models.Context) *models.Resolution {
	r.lastConvCtx = convCtx
	result := classifier.Classify(query, convCtx)
	res := &models.Resolution{Query: result, Source: models.SourcePattern, FallbackUsed: true}
	if result.Entity != "" && result.Metric != "" && result.Confidence >= models.ConfidenceChartMinimum {
		res.Title = string(result.Metric)
	}
	return res
}

type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Details   string `json:"details"`
		Retryable bool   `json:"retryable"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*Server, *patternResolver) {
	t.Helper()
	validator, err := validation.NewValidator()
	require.NoError(t, err)
	res := &patternResolver{}
	s := NewServer(
		config.ServerConfig{Address: ":0", ReadTimeout: 1000, WriteTimeout: 1000},
		session.NewStore(),
		res,
		nil,
		validator,
		nil,
		&testLogger{},
	)
	return s, res
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var sess session.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.ID)
	return sess.ID
}

// ==========================
// Health and Sessions
// ==========================

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var sess session.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, id, sess.ID)
	assert.Empty(t, sess.Messages)
}

func TestGetSession_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "SESSION_NOT_FOUND", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "missing")
}

// ==========================
// Messages
// ==========================

func TestPostMessage(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		`{"content":"show new users"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "user", resp.UserMessage.Role)
	assert.Equal(t, "show new users", resp.UserMessage.Content)
	assert.NotEmpty(t, resp.UserMessage.ID)

	assert.Equal(t, "assistant", resp.AssistantMessage.Role)
	assert.NotEmpty(t, resp.AssistantMessage.Content)
	require.NotNil(t, resp.AssistantMessage.Resolution)
	assert.Equal(t, models.MetricNewUsers, resp.AssistantMessage.Resolution.Query.Metric)

	// Both turns are on the transcript.
	got := doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+id, "")
	var sess session.Session
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &sess))
	assert.Len(t, sess.Messages, 2)
}

func TestPostMessage_ContextFlowsToFollowUp(t *testing.T) {
	s, res := newTestServer(t)
	id := createSession(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		`{"content":"show new users"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, res.lastConvCtx, "first turn has no context")

	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		`{"content":"make it a line chart"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, res.lastConvCtx, "second turn sees the advanced context")
	assert.Equal(t, models.MetricNewUsers, res.lastConvCtx.Metric)

	var resp messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.IntentChangeVisualization, resp.AssistantMessage.Resolution.Query.Intent)
	assert.Equal(t, models.VisualizationLine, resp.AssistantMessage.Resolution.Query.Visualization)
}

func TestPostMessage_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s)

	tests := []struct {
		name string
		body string
	}{
		{"empty content", `{"content":""}`},
		{"missing content", `{}`},
		{"not json", `hello`},
		{"over length limit", fmt.Sprintf(`{"content":%q}`, strings.Repeat("a", 2001))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/messages", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var envelope errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, "MESSAGE_INVALID", envelope.Error.Code)
		})
	}
}

func TestPostMessage_UnknownSession(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/missing/messages",
		`{"content":"show new users"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetSession(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s)

	doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		`{"content":"show new users"}`)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/reset", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	got := doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+id, "")
	var sess session.Session
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &sess))
	assert.Empty(t, sess.Messages)
	assert.Nil(t, sess.Context)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/missing/reset", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Feedback
// ==========================

func TestPostFeedback_PersistenceDisabled(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/feedback",
		`{"messageId":"m1","helpful":true}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"saved":false}`, rec.Body.String())
}

func TestPostFeedback_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/feedback",
		`{"messageId":"m1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostFeedback_UnknownSession(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/missing/feedback",
		`{"messageId":"m1","helpful":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ==========================
// Widgets
// ==========================

func TestListWidgets(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/widgets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var options []widgetOption
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	require.Len(t, options, len(models.AllEntities))

	assert.Equal(t, models.EntityCompanies, options[0].Entity)
	require.Len(t, options[0].Metrics, 3)
	assert.Equal(t, models.MetricNewCompanies, options[0].Metrics[0].Metric)
	assert.Equal(t, "New Companies", options[0].Metrics[0].Title)
}

func TestResolveWidget(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/widgets/resolve",
		`{"entity":"users","metric":"new_users","visualization":"line","timeframe":"last_3_months"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, models.EntityUsers, res.Query.Entity)
	assert.Equal(t, models.VisualizationLine, res.Query.Visualization)
	assert.Equal(t, models.TimeframeLast3Months, res.Query.Timeframe)
	assert.Equal(t, 1.0, res.Query.Confidence)
	assert.True(t, res.Query.IsValidCombination)
	assert.Equal(t, "New Users", res.Title)
	require.NotNil(t, res.Data)
	assert.Len(t, res.Data.Series, 3)
}

func TestResolveWidget_Defaults(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/widgets/resolve",
		`{"entity":"users","metric":"new_users"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, models.VisualizationBar, res.Query.Visualization)
	assert.Equal(t, models.DefaultTimeframe, res.Query.Timeframe)
}

func TestResolveWidget_UnknownEntity(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/widgets/resolve",
		`{"entity":"spaceships","metric":"launches"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "UNKNOWN_WIDGET", envelope.Error.Code)
}

func TestResolveWidget_BadVisualizationRejected(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/widgets/resolve",
		`{"entity":"users","metric":"new_users","visualization":"pie"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Middleware
// ==========================

func TestCORSHeaders(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/widgets", "")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
