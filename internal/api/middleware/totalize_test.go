package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateRouter(t *testing.T, gate *TotalizeGate) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Sessions("test-secret", false))
	router.POST("/events/:eventID/auth", func(ctx *gin.Context) {
		token, _, err := gate.Issue(ctx, 7)
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"token": token})
	})
	router.GET("/events/:eventID/secure", gate.VerifyGrant(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"event_id": ctx.GetUint(ContextKeyGrantEventID)})
	})

	return router
}

func issue(t *testing.T, router *gin.Engine) (string, []*http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events/7/auth", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body.Token, w.Result().Cookies()
}

func TestTotalizeGate(t *testing.T) {
	gate := NewTotalizeGate("signing-key", time.Hour)
	router := setupGateRouter(t, gate)
	token, cookies := issue(t, router)
	require.NotEmpty(t, cookies)

	tests := []struct {
		name     string
		path     string
		bearer   string
		cookies  []*http.Cookie
		wantCode int
	}{
		{name: "session cookie", path: "/events/7/secure", cookies: cookies, wantCode: http.StatusOK},
		{name: "bearer token", path: "/events/7/secure", bearer: token, wantCode: http.StatusOK},
		{name: "nothing", path: "/events/7/secure", wantCode: http.StatusUnauthorized},
		{name: "garbage bearer", path: "/events/7/secure", bearer: "nope", wantCode: http.StatusUnauthorized},
		{name: "other event by bearer", path: "/events/8/secure", bearer: token, wantCode: http.StatusForbidden},
		{name: "other event by cookie", path: "/events/8/secure", cookies: cookies, wantCode: http.StatusUnauthorized},
		{name: "bad id", path: "/events/x/secure", bearer: token, wantCode: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			for _, c := range tc.cookies {
				req.AddCookie(c)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestTotalizeGate_Expired(t *testing.T) {
	gate := NewTotalizeGate("signing-key", time.Minute)
	router := setupGateRouter(t, gate)
	token, _ := issue(t, router)

	gate.now = func() time.Time { return time.Now().Add(time.Hour) }

	req := httptest.NewRequest(http.MethodGet, "/events/7/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
