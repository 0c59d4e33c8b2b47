package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. The feed is server push only.
	maxMessageSize = 512

	// How often the store is checked for new writes.
	feedPollInterval = 100 * time.Millisecond
)

// feedMessage is the envelope sent on the live feed.
type feedMessage struct {
	Type string        `json:"type"`
	From string        `json:"from"`
	Data frameResponse `json:"data"`
}

func newUpgrader(devMode bool) *websocket.Upgrader {
	u := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if devMode {
		u.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return u
}

// handleFrameFeed pushes the current frame on connect and after every
// observed write.
func handleFrameFeed(w http.ResponseWriter, r *http.Request, deps APIV1Deps, upgrader *websocket.Upgrader) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		deps.Logger.Infof("feed", "upgrade failed [%s]: %v", requestIDFrom(r.Context()), err)
		return
	}

	done := make(chan struct{})
	go readFeedControl(conn, done)
	writeFeed(r.Context(), conn, deps, done)
}

// readFeedControl consumes control frames so pongs and close are handled.
func readFeedControl(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFeed(ctx context.Context, conn *websocket.Conn, deps APIV1Deps, done <-chan struct{}) {
	poll := time.NewTicker(feedPollInterval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		poll.Stop()
		ping.Stop()
		_ = conn.Close()
	}()

	snap := deps.Frames.Snapshot()
	lastWrites := snap.Writes
	if err := sendFrame(conn, snap.Frame); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		case <-poll.C:
			snap := deps.Frames.Snapshot()
			if snap.Writes == lastWrites {
				continue
			}
			lastWrites = snap.Writes
			if err := sendFrame(conn, snap.Frame); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func sendFrame(conn *websocket.Conn, frame string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(feedMessage{Type: "frame", From: "server", Data: frameResponse{Frame: frame}})
}
