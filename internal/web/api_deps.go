package web

import (
	"github.com/rook-computer/framerelay/internal/clientscript"
	"github.com/rook-computer/framerelay/internal/logging"
	"github.com/rook-computer/framerelay/internal/state"
	"github.com/rook-computer/framerelay/internal/validate"
)

// FrameStore abstracts the frame buffer used by the API.
//
// The concrete implementation is *state.FrameStore.
type FrameStore interface {
	Read() string
	Write(payload string)
	Snapshot() state.FrameSnapshot
}

// ClientRenderer produces a client script for validated input.
type ClientRenderer interface {
	RenderFile(cfg clientscript.Config) ([]byte, error)
}

type APIV1Deps struct {
	Frames       FrameStore
	Client       ClientRenderer
	Logger       logging.Logger
	MaxFrameSize int
	PublicURL    string
	DevMode      bool
}

// NewAPIV1Deps wires the API to a fresh frame store and a file templater.
func NewAPIV1Deps(cfg ServerConfig, logger logging.Logger) APIV1Deps {
	return APIV1Deps{
		Frames:       state.NewFrameStore(),
		Client:       clientscript.NewTemplater(cfg.ClientTemplatePath),
		Logger:       logger,
		MaxFrameSize: cfg.MaxFrameSize,
		PublicURL:    cfg.PublicURL,
		DevMode:      cfg.DevMode,
	}
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Frames == nil {
		out.Frames = state.NewFrameStore()
	}
	if out.Logger == nil {
		out.Logger = logging.NoopLogger{}
	}
	if out.Client == nil {
		out.Client = NoopClientRenderer{}
	}
	if out.MaxFrameSize <= 0 {
		out.MaxFrameSize = validate.DefaultMaxFrameSize
	}
	return out
}

type NoopClientRenderer struct{ Err error }

func (r NoopClientRenderer) RenderFile(clientscript.Config) ([]byte, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return nil, clientscript.ErrTemplateUnavailable
}
