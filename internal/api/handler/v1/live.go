package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type FeedSubscriber interface {
	Subscribe(ctx context.Context, eventID uint) (<-chan domain.FeedEvent, error)
}

type SummaryReader interface {
	Summary(ctx context.Context, eventID uint) (domain.Summary, error)
}

// LiveMessage is pushed to the totalize screen. Kind is "snapshot" on connect, then the
// kind of the notification that triggered the refresh.
type LiveMessage struct {
	Kind    string         `json:"kind"`
	At      time.Time      `json:"at"`
	Summary domain.Summary `json:"summary"`
}

// LiveHandler streams a refreshed summary to organizers whenever a stamp or goal lands
// on any instance.
type LiveHandler struct {
	feed     FeedSubscriber
	summary  SummaryReader
	upgrader websocket.Upgrader
}

func NewLiveHandler(feed FeedSubscriber, summary SummaryReader, allowedOrigins []string) *LiveHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &LiveHandler{
		feed:    feed,
		summary: summary,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// HandleLive godoc
// @Summary      Live totalize feed
// @Description  WebSocket pushing a fresh summary after every stamp and goal of the event.
// @Tags         totalize
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      101      {string}  string  "Switching Protocols to WebSocket"
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Router       /events/{eventID}/totalize/live [get]
// @Security BearerAuth
func (h *LiveHandler) HandleLive(c *gin.Context) {
	eventID, ok := parseID(c, "eventID")
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := h.feed.Subscribe(ctx, eventID)
	if err != nil {
		zap.L().Error("feed subscribe failed", zap.Uint("event_id", eventID), zap.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "feed unavailable"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go readPump(conn, cancel)
	h.writePump(ctx, conn, eventID, events)
}

// readPump discards client messages and cancels the stream once the peer goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("live feed connection closed", zap.Error(err))
			}
			return
		}
	}
}

func (h *LiveHandler) writePump(ctx context.Context, conn *websocket.Conn, eventID uint, events <-chan domain.FeedEvent) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	if !h.push(ctx, conn, eventID, "snapshot", time.Now().UTC()) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !h.push(ctx, conn, eventID, string(ev.Kind), ev.At) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push re-reads the summary from the store and sends it.
func (h *LiveHandler) push(ctx context.Context, conn *websocket.Conn, eventID uint, kind string, at time.Time) bool {
	summary, err := h.summary.Summary(ctx, eventID)
	if err != nil {
		zap.L().Error("live summary failed", zap.Uint("event_id", eventID), zap.Error(err))
		return false
	}

	payload, err := json.Marshal(LiveMessage{Kind: kind, At: at, Summary: summary})
	if err != nil {
		zap.L().Error("live message marshal failed", zap.Error(err))
		return false
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, payload) == nil
}
