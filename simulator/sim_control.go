package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rook-computer/framerelay/internal/logging"
	"github.com/rook-computer/framerelay/internal/render"
)

const defaultPushInterval = 500 * time.Millisecond

// Producer pushes an animated test pattern to a relay, standing in for the
// in-game frame source.
type Producer struct {
	// Target is the relay base URL, e.g. http://127.0.0.1:8080.
	Target   string
	Pattern  render.Pattern
	Width    int
	Height   int
	Interval time.Duration

	Client *http.Client
	Logger logging.Logger

	tick   atomic.Int64
	pushed atomic.Uint64
	failed atomic.Uint64
}

// pushError carries the relay's error body for a rejected frame.
type pushError struct {
	Status  int
	Code    string
	Message string
}

func (e *pushError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("relay answered %d", e.Status)
	}
	return fmt.Sprintf("relay answered %d %s: %s", e.Status, e.Code, e.Message)
}

var defaultClient = &http.Client{Timeout: 5 * time.Second}

func (p *Producer) client() *http.Client {
	if p.Client == nil {
		return defaultClient
	}
	return p.Client
}

func (p *Producer) logger() logging.Logger {
	if p.Logger == nil {
		return logging.NoopLogger{}
	}
	return p.Logger
}

func (p *Producer) frameURL() string {
	return strings.TrimRight(p.Target, "/") + "/api/v1/frame"
}

// Next renders the frame for the current tick and advances it.
func (p *Producer) Next() string {
	shift := int(p.tick.Add(1) - 1)
	return render.TestFrameShifted(p.Width, p.Height, p.Pattern, shift)
}

// Push sends one frame.
func (p *Producer) Push(ctx context.Context, frame string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.frameURL(), bytes.NewBufferString(frame))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := p.client().Do(req)
	if err != nil {
		p.failed.Add(1)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		p.pushed.Add(1)
		return nil
	}

	p.failed.Add(1)
	perr := &pushError{Status: resp.StatusCode}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body) == nil {
		perr.Code = body.Error
		perr.Message = body.Message
	}
	return perr
}

// Run pushes a frame every Interval until ctx is done. Failed pushes are
// logged and retried on the next tick.
func (p *Producer) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := p.logger()
	for {
		frame := p.Next()
		if err := p.Push(ctx, frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Warnf("sim", "push failed: %v", err)
		} else {
			log.Infof("sim", "pushed %s frame %dx%d (tick %d)", p.Pattern, p.Width, p.Height, p.tick.Load())
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Stats reports successful and failed pushes.
func (p *Producer) Stats() (pushed, failed uint64) {
	return p.pushed.Load(), p.failed.Load()
}
