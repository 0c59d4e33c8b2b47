package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rook-computer/framerelay/internal/state"
)

func dialFeed(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/frame/ws"
	return websocket.DefaultDialer.Dial(url, header)
}

func readFeedMessage(t *testing.T, conn *websocket.Conn) feedMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg feedMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read feed: %v", err)
	}
	return msg
}

func TestFrameFeedPushesWrites(t *testing.T) {
	frames := state.NewFrameStore()
	frames.Write("0f")
	srv := httptest.NewServer(NewRouter("", APIV1Deps{Frames: frames}))
	defer srv.Close()

	conn, _, err := dialFeed(t, srv, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	first := readFeedMessage(t, conn)
	if first.Type != "frame" || first.From != "server" || first.Data.Frame != "0f" {
		t.Fatalf("unexpected initial message %+v", first)
	}

	frames.Write("abcd")
	next := readFeedMessage(t, conn)
	if next.Data.Frame != "abcd" {
		t.Fatalf("frame=%q, want abcd", next.Data.Frame)
	}
}

func TestFrameFeedOriginCheck(t *testing.T) {
	tests := []struct {
		name    string
		devMode bool
		wantOK  bool
	}{
		{name: "cross origin rejected", devMode: false, wantOK: false},
		{name: "cross origin allowed in dev", devMode: true, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(NewRouter("", APIV1Deps{DevMode: tt.devMode}))
			defer srv.Close()

			header := http.Header{"Origin": {"http://elsewhere.example"}}
			conn, resp, err := dialFeed(t, srv, header)
			if conn != nil {
				defer conn.Close()
			}
			if tt.wantOK && err != nil {
				t.Fatalf("dial: %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatalf("expected handshake failure")
				}
				if resp == nil || resp.StatusCode != http.StatusForbidden {
					t.Fatalf("expected 403, got %v", resp)
				}
			}
		})
	}
}

func TestFrameFeedRejectsPlainGET(t *testing.T) {
	srv := httptest.NewServer(NewRouter("", APIV1Deps{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/frame/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}
