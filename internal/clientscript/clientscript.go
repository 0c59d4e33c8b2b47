// Package clientscript renders the Lua client that runs on the in-game
// computer. The template carries two placeholders that are replaced with
// caller values validated by package validate.
package clientscript

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rook-computer/framerelay/internal/validate"
)

const (
	PlaceholderMonitorSide = "{{MONITOR_SIDE}}"
	PlaceholderBackendURL  = "{{BACKEND_URL}}"

	// Filename is the download name suggested to clients.
	Filename = "client.lua"

	// ContentType is used when serving rendered scripts.
	ContentType = "text/x-lua; charset=utf-8"
)

var (
	ErrTemplateUnavailable = errors.New("client template unavailable")
	ErrTemplateFault       = errors.New("client template fault")
)

// Config is the per-request input to Render.
type Config struct {
	BackendURL  string
	MonitorSide string
}

// Validate checks the monitor side first, then the backend URL.
func (c Config) Validate() error {
	if err := validate.MonitorSide(c.MonitorSide); err != nil {
		return err
	}
	return validate.BackendURL(c.BackendURL)
}

// PlaceholderError reports a placeholder that was not found exactly once.
type PlaceholderError struct {
	Placeholder string
	Count       int
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("placeholder %s found %d times, want exactly 1", e.Placeholder, e.Count)
}

func (e *PlaceholderError) Unwrap() error { return ErrTemplateFault }

// Render substitutes cfg into source. cfg must already be validated.
func Render(source string, cfg Config) (string, error) {
	for _, p := range []string{PlaceholderMonitorSide, PlaceholderBackendURL} {
		if n := strings.Count(source, p); n != 1 {
			return "", &PlaceholderError{Placeholder: p, Count: n}
		}
	}
	out := strings.Replace(source, PlaceholderMonitorSide, cfg.MonitorSide, 1)
	out = strings.Replace(out, PlaceholderBackendURL, escapeLuaString(cfg.BackendURL), 1)
	return out, nil
}

// escapeLuaString escapes backslashes and double quotes for a double-quoted Lua
// literal. Quotes are already rejected by validate.BackendURL.
func escapeLuaString(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// Templater loads the template from Path on every call so operators can edit
// it without restarting the service.
type Templater struct {
	Path string
}

func NewTemplater(path string) *Templater {
	return &Templater{Path: path}
}

// RenderFile reads the template and renders it for cfg. Errors carry the
// template path; logging them is left to the caller, which knows the request.
func (t *Templater) RenderFile(cfg Config) ([]byte, error) {
	source, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateUnavailable, t.Path, err)
	}
	out, err := Render(string(source), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Path, err)
	}
	return []byte(out), nil
}
