package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/qmikke-api/internal/config"
	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/service"
	"github.com/vietanh2810/qmikke-api/internal/testhelpers"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "0",
			BaseURL:            "localhost",
			PublicURL:          "https://rally.example",
			AllowedCORSDomains: []string{"http://localhost:3000"},
			JWTSigningKey:      "test-signing-key",
			SessionSecret:      "test-session-secret",
			IPHashKey:          "test-ip-key",
		},
		Gin:      &config.GinConfig{Mode: "test"},
		Postgres: &config.PostgresConfig{},
		Redis:    &config.RedisConfig{DraftTTL: time.Minute},
		Rally: &config.RallyConfig{
			CodeAttempts:     5,
			TotalizeGrantTTL: time.Hour,
			GaugeSchedule:    "@every 1m",
			QRSize:           128,
		},
	}
}

type testServer struct {
	*Server
	db   *gorm.DB
	seed testhelpers.SeededEvent
}

func setupServer(t *testing.T, withRedis bool, required ...bool) *testServer {
	t.Helper()

	return setupServerWithWindow(t, withRedis, nil, required...)
}

func setupServerWithWindow(t *testing.T, withRedis bool, window *[2]time.Time, required ...bool) *testServer {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	seed := testhelpers.SeedEvent(t, db, window, required...)

	var rdb *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}

	return &testServer{Server: NewServer(testConfig(), db, rdb), db: db, seed: seed}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func (s *testServer) stamp(t *testing.T, spot int, visitor string) *httptest.ResponseRecorder {
	t.Helper()

	return s.do(t, http.MethodPost, "/api/v1/stamps", map[string]any{
		"event_id":   s.seed.EventID(),
		"spot_id":    s.seed.SpotID(spot),
		"token":      s.seed.SpotTokens[spot],
		"visitor_id": visitor,
	})
}

func (s *testServer) eventPath(format string, args ...any) string {
	return fmt.Sprintf("/api/v1/events/%d", s.seed.EventID()) + fmt.Sprintf(format, args...)
}

func TestServer_Healthcheck(t *testing.T) {
	s := setupServer(t, false)

	w := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[response.HealthcheckResponse](t, w).Status)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "qmikke_http_requests_total")
}

func TestServer_RallyFlow(t *testing.T) {
	s := setupServer(t, false, true, true, false)

	w := s.stamp(t, 0, "visitor-1")
	require.Equal(t, http.StatusOK, w.Code)
	stamp := decode[response.StampResponse](t, w)
	assert.True(t, stamp.Success)
	assert.True(t, stamp.Stamped)
	require.NotNil(t, stamp.Result)
	assert.Equal(t, 0, *stamp.Result)

	stamp = decode[response.StampResponse](t, s.stamp(t, 0, "visitor-1"))
	assert.True(t, stamp.Success)
	assert.False(t, stamp.Stamped)
	require.NotNil(t, stamp.Result)
	assert.Equal(t, 1, *stamp.Result)
	assert.NotEmpty(t, stamp.Message)

	w = s.do(t, http.MethodPost, s.eventPath("/goal"), map[string]string{"token": "goal", "visitor_id": "visitor-1"})
	require.Equal(t, http.StatusOK, w.Code)
	final := decode[response.FinalizeResponse](t, w)
	assert.False(t, final.Success)
	assert.Empty(t, final.Code)

	s.stamp(t, 1, "visitor-1")

	w = s.do(t, http.MethodPost, s.eventPath("/goal"), map[string]string{"token": "goal", "visitor_id": "visitor-1"})
	require.Equal(t, http.StatusOK, w.Code)
	final = decode[response.FinalizeResponse](t, w)
	assert.True(t, final.Success)
	assert.Regexp(t, `^\d{8}$`, final.Code)
	assert.False(t, final.AlreadyGoaled)

	again := decode[response.FinalizeResponse](t, s.do(t, http.MethodPost, s.eventPath("/goal"), map[string]string{"token": "goal", "visitor_id": "visitor-1"}))
	assert.Equal(t, final.Code, again.Code)
	assert.True(t, again.AlreadyGoaled)

	stamp = decode[response.StampResponse](t, s.stamp(t, 2, "visitor-1"))
	assert.True(t, stamp.Success)
	assert.False(t, stamp.Stamped)
	require.NotNil(t, stamp.Result)
	assert.Equal(t, 5, *stamp.Result)

	w = s.do(t, http.MethodGet, s.eventPath("/progress?visitor_id=visitor-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[service.Progress](t, w)
	assert.True(t, progress.Complete)
	assert.True(t, progress.Goaled)
	assert.Len(t, progress.Spots, 3)

	w = s.do(t, http.MethodPost, s.eventPath("/goal-status"), map[string]string{"visitor_id": "visitor-1"})
	assert.True(t, decode[response.StampGoalStatusResponse](t, w).Goaled)

	w = s.do(t, http.MethodPost, s.eventPath("/goal/status"), map[string]string{"token": "goal", "visitor_id": "visitor-1"})
	status := decode[service.GoalStatus](t, w)
	assert.True(t, status.Goaled)
	assert.Equal(t, final.Code, status.Code)

	w = s.do(t, http.MethodPost, s.eventPath("/achievement"), map[string]string{"visitor_id": "visitor-1"})
	assert.Equal(t, final.Code, decode[response.AchievementResponse](t, w).Code)
}

func TestServer_StampRefusalsCarryNoResult(t *testing.T) {
	t.Run("event ended", func(t *testing.T) {
		ended := [2]time.Time{time.Now().Add(-48 * time.Hour), time.Now().Add(-24 * time.Hour)}
		s := setupServerWithWindow(t, false, &ended, true)

		w := s.stamp(t, 0, "visitor-1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"result"`)
		stamp := decode[response.StampResponse](t, w)
		assert.False(t, stamp.Success)
		assert.False(t, stamp.Stamped)
		assert.Nil(t, stamp.Result)
		assert.NotEmpty(t, stamp.Message)
	})

	t.Run("blocked session", func(t *testing.T) {
		s := setupServer(t, false, true, false)
		require.True(t, decode[response.StampResponse](t, s.stamp(t, 0, "visitor-2")).Success)
		require.NoError(t, s.db.Table("participant_sessions").
			Where("session_key = ?", "visitor-2").
			Update("is_blocked", true).Error)

		w := s.stamp(t, 1, "visitor-2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"result"`)
		stamp := decode[response.StampResponse](t, w)
		assert.False(t, stamp.Success)
		assert.Nil(t, stamp.Result)
	})
}

func TestServer_InvalidLinks(t *testing.T) {
	s := setupServer(t, false, true, false)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{
			name:   "wrong spot token",
			method: http.MethodPost,
			path:   "/api/v1/stamps",
			body: map[string]any{
				"event_id": s.seed.EventID(), "spot_id": s.seed.SpotID(1),
				"token": s.seed.SpotTokens[0], "visitor_id": "v",
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "unknown event",
			method: http.MethodPost,
			path:   "/api/v1/stamps",
			body: map[string]any{
				"event_id": s.seed.EventID() + 100, "spot_id": s.seed.SpotID(0),
				"token": s.seed.SpotTokens[0], "visitor_id": "v",
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "missing visitor",
			method:   http.MethodPost,
			path:     "/api/v1/stamps",
			body:     map[string]any{"event_id": s.seed.EventID(), "spot_id": s.seed.SpotID(0), "token": "x"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong goal token",
			method:   http.MethodPost,
			path:     s.eventPath("/goal"),
			body:     map[string]string{"token": "nope", "visitor_id": "v"},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "scan page with wrong token",
			method:   http.MethodGet,
			path:     s.eventPath("/spots/%d?t=nope", s.seed.SpotID(0)),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "bad event id",
			method:   http.MethodGet,
			path:     "/api/v1/events/abc/goal?t=goal",
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.wantCode, w.Code, w.Body.String())
		})
	}

	// Not found and bad token read the same.
	a := s.do(t, http.MethodGet, s.eventPath("/goal?t=nope"), nil)
	b := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/events/%d/goal?t=goal", s.seed.EventID()+100), nil)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestServer_Posters(t *testing.T) {
	s := setupServer(t, false, true)

	w := s.do(t, http.MethodGet, s.eventPath("/spots/%d/qr?t=%s", s.seed.SpotID(0), s.seed.SpotTokens[0]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(t, http.MethodGet, s.eventPath("/goal/qr?t=goal"), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, s.eventPath("/goal/qr?t=wrong"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Totalize(t *testing.T) {
	s := setupServer(t, false, false)

	s.stamp(t, 0, "a")
	final := decode[response.FinalizeResponse](t, s.do(t, http.MethodPost, s.eventPath("/goal"), map[string]string{"token": "goal", "visitor_id": "a"}))
	require.True(t, final.Success)

	w := s.do(t, http.MethodGet, s.eventPath("/totalize"), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, s.eventPath("/totalize/auth"), map[string]string{"token": "totalize", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, s.eventPath("/totalize/auth"), map[string]string{"token": "totalize", "password": "password"})
	require.Equal(t, http.StatusOK, w.Code)
	grant := decode[response.TotalizeAuthResponse](t, w)
	require.NotEmpty(t, grant.Token)
	require.NotEmpty(t, w.Result().Cookies())

	bearer := []string{"Authorization", "Bearer " + grant.Token}

	w = s.do(t, http.MethodGet, s.eventPath("/totalize"), nil, bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[domain.Summary](t, w)
	assert.Equal(t, int64(1), summary.TotalStamps)
	assert.Equal(t, int64(1), summary.TotalGoals)

	dashed := final.Code[:4] + "-" + final.Code[4:]
	w = s.do(t, http.MethodGet, s.eventPath("/totalize/codes/%s", dashed), nil, bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	lookup := decode[domain.CodeLookup](t, w)
	assert.Equal(t, domain.CodeGoaled, lookup.Status)

	w = s.do(t, http.MethodGet, s.eventPath("/totalize/codes/1234"), nil, bearer...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/events/%d/totalize", s.seed.EventID()+1), nil, bearer...)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServer_DraftsRequireRedis(t *testing.T) {
	s := setupServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/drafts", map[string]string{"event_title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Drafts(t *testing.T) {
	s := setupServer(t, true)

	w := s.do(t, http.MethodPost, "/api/v1/drafts", map[string]any{
		"event_title": "Harbour walk",
		"spots": []map[string]any{
			{"spot_name": "Lighthouse", "is_required": true},
			{"spot_name": "Fish market"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	draft := decode[domain.EventDraft](t, w)
	require.NotEmpty(t, draft.ID)

	w = s.do(t, http.MethodGet, "/api/v1/drafts/"+draft.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/drafts/"+draft.ID+"/publish", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.CreatedEvent](t, w)
	require.Len(t, created.Spots, 2)
	assert.Len(t, created.RequiredSpotIDs, 1)

	// The returned secrets work against the new event.
	spot := created.Spots[0]
	w = s.do(t, http.MethodPost, "/api/v1/stamps", map[string]any{
		"event_id": created.Event.ID, "spot_id": spot.Spot.ID, "token": spot.Token, "visitor_id": "v",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[response.StampResponse](t, w).Stamped)

	w = s.do(t, http.MethodGet, "/api/v1/drafts/"+draft.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/drafts", map[string]any{
		"event_title": "Inverted",
		"valid_from":  "2026-10-02T00:00:00Z",
		"valid_to":    "2026-10-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_LiveFeed(t *testing.T) {
	s := setupServer(t, true, false)
	srv := httptest.NewServer(s.Router)
	t.Cleanup(srv.Close)

	w := s.do(t, http.MethodPost, s.eventPath("/totalize/auth"), map[string]string{"token": "totalize", "password": "password"})
	require.Equal(t, http.StatusOK, w.Code)
	grant := decode[response.TotalizeAuthResponse](t, w)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + s.eventPath("/totalize/live")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Authorization": {"Bearer " + grant.Token}})
	require.NoError(t, err)
	defer resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snapshot struct {
		Kind    string         `json:"kind"`
		Summary domain.Summary `json:"summary"`
	}
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, "snapshot", snapshot.Kind)
	assert.Zero(t, snapshot.Summary.TotalStamps)

	s.stamp(t, 0, "live-visitor")

	var update struct {
		Kind    string         `json:"kind"`
		Summary domain.Summary `json:"summary"`
	}
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, string(domain.FeedStamped), update.Kind)
	assert.Equal(t, int64(1), update.Summary.TotalStamps)
}
