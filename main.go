package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/framerelay/internal/assets"
	"github.com/rook-computer/framerelay/internal/console"
	"github.com/rook-computer/framerelay/internal/logging"
	"github.com/rook-computer/framerelay/internal/render"
	"github.com/rook-computer/framerelay/internal/web"
)

const envStdioLog = "FRAMERELAY_STDIO_LOG"

func main() {
	defaults, err := web.DefaultServerConfigFromEnv()
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (permissive CORS and websocket origins); also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", defaults.StaticDir, "serve the UI from this directory; when empty the embedded UI is served")
	templatePath := flag.String("client-template", defaults.ClientTemplatePath, "Lua client template, read on every download; also configurable via "+web.EnvClientTemplate)
	maxFrame := flag.Int("max-frame", defaults.MaxFrameSize, "largest accepted frame in characters; also configurable via "+web.EnvMaxFrameSize)
	publicURL := flag.String("public-url", defaults.PublicURL, "externally reachable base url used in QR codes; also configurable via "+web.EnvPublicURL)
	debug := flag.Bool("debug", false, "enable debug level console logging")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	writeTemplate := flag.String("write-template", "", "write the bundled client template to this path and exit")
	fbDevice := flag.String("fb-mirror", "", "mirror the current frame onto this framebuffer device, e.g. /dev/fb0")
	fbWidth := flag.Int("fb-width", render.DefaultTestWidth, "frame width in cells used by the framebuffer mirror")
	fbExitKey := flag.Bool("fb-exit-key", true, "with -fb-mirror, exit when F4 is pressed on a local keyboard")
	flag.Parse()

	if *writeTemplate != "" {
		if err := os.WriteFile(*writeTemplate, assets.ClientTemplate, 0o644); err != nil {
			fmt.Println("write template error:", err)
			os.Exit(1)
		}
		fmt.Println("client template written to", *writeTemplate)
		return
	}

	// Best-effort: keep panic traces when the console is a framebuffer.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	zl, err := logging.New(*debug)
	if err != nil {
		fmt.Println("logger error:", err)
		os.Exit(1)
	}
	logger := logging.NewZapLogger(zl)
	defer func() { _ = logger.Sync() }()

	cfg := web.ServerConfig{
		ListenAddr:         *listenAddr,
		DevMode:            *devMode,
		StaticDir:          *staticDir,
		ClientTemplatePath: *templatePath,
		MaxFrameSize:       *maxFrame,
		PublicURL:          *publicURL,
	}
	if err := cfg.Validate(); err != nil {
		logger.Errorf("main", "invalid config: %v", err)
		os.Exit(2)
	}
	if _, err := os.Stat(cfg.ClientTemplatePath); err != nil {
		// Downloads answer 500 until the file appears; see -write-template.
		logger.Warnf("main", "client template %s: %v", cfg.ClientTemplatePath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := web.NewAPIV1Deps(cfg, logger)
	server := web.NewHTTPServer(cfg, deps)
	if err := server.Start(ctx); err != nil {
		logger.Errorf("main", "server start: %v", err)
		os.Exit(1)
	}

	uiURL := cfg.PublicURL
	if uiURL == "" {
		uiURL = "http://" + trimLeadingColon(server.Addr())
	}
	logger.Infof("main", "web UI: %s/", uiURL)

	if *fbDevice != "" {
		mirror := &render.FBMirror{
			Device: *fbDevice,
			Width:  *fbWidth,
			Source: deps.Frames,
			Logger: logger,
			IdleQR: uiURL + "/",
		}
		restore := console.EnterGraphics(logger)
		defer restore()
		if *fbExitKey {
			console.WatchExitKey(ctx, logger, console.KeyF4, stop)
		}
		go func() {
			err := mirror.Run(ctx)
			if errors.Is(err, render.ErrMirrorUnsupported) {
				logger.Warnf("main", "%v", err)
			} else if err != nil {
				logger.Errorf("main", "framebuffer mirror: %v", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Infof("main", "shutting down")
	if err := server.Stop(); err != nil {
		logger.Errorf("main", "server stop: %v", err)
	}
}

// trimLeadingColon turns a bind address into something usable in a URL.
func trimLeadingColon(addr string) string {
	if addr == "" {
		return "127.0.0.1" + web.DefaultListenAddr
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if len(addr) > 8 && addr[:8] == "0.0.0.0:" {
		return "127.0.0.1" + addr[7:]
	}
	if len(addr) > 5 && addr[:5] == "[::]:" {
		return "127.0.0.1" + addr[4:]
	}
	return addr
}
