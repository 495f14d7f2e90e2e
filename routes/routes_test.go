package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"poshchat/controllers"
	"poshchat/middlewares"
	"poshchat/models"
	"poshchat/services"
)

type countingCompleter struct {
	calls int
	out   string
}

func (c *countingCompleter) Complete(_ context.Context, _ []models.ChatMessage) (string, error) {
	c.calls++
	return c.out, nil
}

func newRouter(t *testing.T, apiKey string, completer services.Completer, reg *prometheus.Registry) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts := []services.ChatServiceOption{}
	if reg != nil {
		opts = append(opts, services.WithRecorder(services.NewMetrics(reg)))
	}
	chat, err := services.NewChatService(apiKey, completer, opts...)
	require.NoError(t, err)
	cc, err := controllers.NewChatController(chat, nil)
	require.NoError(t, err)

	return SetupRouter(Deps{Chat: cc, Registry: reg, MaxBodyBytes: 64})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_MissingKeyMakesNoOutboundCall(t *testing.T) {
	spy := &countingCompleter{out: "unused"}
	r := newRouter(t, "", spy, nil)

	for _, body := range []string{`{"message":"hi"}`, `{}`, ``} {
		w := do(r, http.MethodPost, "/api/chat", body)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, w.Body.String(), `"error"`)
	}
	require.Zero(t, spy.calls)
}

func TestRouter_ChatRoundTrip(t *testing.T) {
	spy := &countingCompleter{out: "Hello there"}
	r := newRouter(t, "sk-test", spy, nil)

	w := do(r, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"response":"Hello there"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))

	w = do(r, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, spy.calls)
}

func TestRouter_BodyLimit(t *testing.T) {
	spy := &countingCompleter{out: "ok"}
	r := newRouter(t, "sk-test", spy, nil)

	w := do(r, http.MethodPost, "/api/chat", `{"message":"`+strings.Repeat("a", 128)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Zero(t, spy.calls)
}

func TestRouter_IndexPage(t *testing.T) {
	r := newRouter(t, "", &countingCompleter{}, nil)

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "Posh AI")
}

func TestRouter_Preflight(t *testing.T) {
	r := newRouter(t, "", &countingCompleter{}, nil)

	w := do(r, http.MethodOptions, "/api/chat", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(t, "sk-test", &countingCompleter{out: "ok"}, reg)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/chat", `{"message":"hi"}`).Code)

	w := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `poshchat_relay_total{outcome="success"} 1`)
	require.Contains(t, w.Body.String(), `poshchat_http_requests_total{method="POST",route="/api/chat",status="200"} 1`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	r := newRouter(t, "", &countingCompleter{}, nil)
	require.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/metrics", "").Code)
}
