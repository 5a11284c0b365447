package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/qmikke-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/qmikke-api/internal/pkg/jwthelper"
)

const (
	sessionName = "qmikke_session"

	// ContextKeyGrantEventID holds the event id of a verified totalize grant.
	ContextKeyGrantEventID = "totalize_event_id"
)

var (
	errMissingGrant = errors.New("totalize authorization required")
	errGrantEvent   = errors.New("authorization was granted for another event")
)

func grantSessionKey(eventID uint) string {
	return fmt.Sprintf("totalize_auth:%d", eventID)
}

// Sessions mounts the signed cookie session that carries totalize grants between page loads.
func Sessions(secret string, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sessions.Sessions(sessionName, store)
}

// TotalizeGate issues and checks the grant that unlocks an event's totalize view. A grant is
// a JWT bound to one event; browsers keep it in the session, API clients send it as a Bearer token.
type TotalizeGate struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewTotalizeGate(signingKey string, ttl time.Duration) *TotalizeGate {
	return &TotalizeGate{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Issue signs a grant for eventID and stores it in the caller's session.
func (g *TotalizeGate) Issue(ctx *gin.Context, eventID uint) (string, time.Time, error) {
	now := g.now()
	token, err := jwthelper.GenerateGrant(g.signingKey, eventID, g.ttl, now)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwthelper.GenerateGrant -> %w", err)
	}

	session := sessions.Default(ctx)
	session.Set(grantSessionKey(eventID), token)
	if err = session.Save(); err != nil {
		return "", time.Time{}, fmt.Errorf("session.Save -> %w", err)
	}

	return token, now.Add(g.ttl), nil
}

func (g *TotalizeGate) VerifyGrant() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		token := bearerToken(ctx)
		if token == "" {
			if v, ok := sessions.Default(ctx).Get(grantSessionKey(uint(eventID))).(string); ok {
				token = v
			}
		}
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingGrant))
			return
		}

		claims, err := jwthelper.ParseGrant(g.signingKey, token, g.now())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingGrant))
			return
		}
		if claims.EventID != uint(eventID) {
			response.RenderErr(ctx, response.ErrPermissionDenied(errGrantEvent))
			return
		}

		ctx.Set(ContextKeyGrantEventID, claims.EventID)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}
