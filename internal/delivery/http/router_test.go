package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusevents/internal/adapters/auth"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
	"campusevents/internal/repository/memory"
	"campusevents/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMailer struct{}

func (nopMailer) Send(context.Context, string, string, string, string) error { return nil }

type plainRenderer struct{}

func (plainRenderer) Render(_ string, data any) (string, string, string, error) {
	a := data.(domain.Announcement)
	return a.Title, a.Message, a.Message, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	creds, err := auth.NewStaticCredentialStore(auth.DefaultCredentials())
	require.NoError(t, err)
	authSvc := services.NewAuthService(creds, auth.NewOpaqueCodec(), logger)
	eventSvc := services.NewEventService(memory.NewEventRepository([]*domain.Event{
		{ID: 1, Title: "Festival Night", Description: "Lights", Date: "2025-05-20", Location: "Main Lawn", Category: "Festival"},
	}), logger, time.Second)
	annSvc := services.NewAnnouncementService(nopMailer{}, plainRenderer{}, []string{"all@sunmoon.ac.kr"}, logger)

	handler := NewHandler(logger, authSvc, nil, Controllers{
		Events:        controllers.NewEventController(logger, eventSvc),
		Auth:          controllers.NewAuthController(logger, authSvc, 7*24*time.Hour, false),
		Announcements: controllers.NewAnnouncementController(logger, annSvc),
		Health:        controllers.NewHealthController(eventSvc),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string, cookies ...*http.Cookie) (*http.Response, helpers.APIResponse) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func login(t *testing.T, srv *httptest.Server, email, password string) *http.Cookie {
	t.Helper()
	resp, _ := do(t, http.MethodPost, srv.URL+"/auth/login", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == domain.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestRouter_admin_and_student_flows(t *testing.T) {
	srv := newTestServer(t)
	const newEvent = `{"title":"Hackathon","description":"24h","date":"2025-07-10","location":"Lab","category":"Tech"}`

	resp, env := do(t, http.MethodPost, srv.URL+"/events", newEvent)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "anonymous create")
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeUnauthorized, env.Error.Code)

	student := login(t, srv, "student@sunmoon.ac.kr", "student123")
	resp, _ = do(t, http.MethodPost, srv.URL+"/events", newEvent, student)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "student create")

	_, env = do(t, http.MethodGet, srv.URL+"/auth/me", "", student)
	me := env.Data.(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "user", me["role"])

	admin := login(t, srv, "admin@sunmoon.ac.kr", "admin123")
	resp, env = do(t, http.MethodPost, srv.URL+"/events", newEvent, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := env.Data.(map[string]any)
	assert.Equal(t, float64(2), created["id"])
	assert.Equal(t, float64(0), created["likes"])

	resp, env = do(t, http.MethodPost, srv.URL+"/events/2/like", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), env.Data.(map[string]any)["likes"])

	resp, env = do(t, http.MethodGet, srv.URL+"/events?search=hack", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.([]any), 1)

	resp, env = do(t, http.MethodGet, srv.URL+"/dashboard/stats", "", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), env.Data.(map[string]any)["total_events"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/announcements", `{"title":"t","message":"m"}`, admin)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/events/2", "", admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, http.MethodDelete, srv.URL+"/events/2", "", admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = do(t, http.MethodPost, srv.URL+"/auth/logout", "", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, env = do(t, http.MethodGet, srv.URL+"/auth/me", "")
	assert.Nil(t, env.Data.(map[string]any)["user"])
}

func TestRouter_public_routes(t *testing.T) {
	srv := newTestServer(t)

	resp, env := do(t, http.MethodGet, srv.URL+"/events/previous", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data.([]any), 4)

	resp, env = do(t, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StoreHealthy, env.Data.(map[string]any)["state"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, _ = do(t, http.MethodPost, srv.URL+"/auth/login", `{"email":"admin@sunmoon.ac.kr","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	forged := &http.Cookie{Name: domain.SessionCookieName, Value: "not-base64!"}
	_, env = do(t, http.MethodGet, srv.URL+"/auth/me", "", forged)
	assert.Nil(t, env.Data.(map[string]any)["user"], "bad token is anonymous")

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `campusevents_http_requests_total{method="GET",route="GET /health",status="200"}`)
}
