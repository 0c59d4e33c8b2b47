package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rook-computer/framerelay/internal/logging"
	"github.com/rook-computer/framerelay/internal/render"
)

func main() {
	target := flag.String("target", "http://127.0.0.1:8080", "relay base url")
	pattern := flag.String("pattern", string(render.PatternRainbow), "test pattern: gradient | vertical | checkerboard | rainbow | noise")
	width := flag.Int("width", render.DefaultTestWidth, "frame width in cells")
	height := flag.Int("height", render.DefaultTestHeight, "frame height in cells")
	interval := flag.Duration("interval", defaultPushInterval, "time between pushes")
	once := flag.Bool("once", false, "push a single frame and exit")
	debug := flag.Bool("debug", false, "enable debug level console logging")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Println("width and height must be positive")
		os.Exit(2)
	}

	zl, err := logging.New(*debug)
	if err != nil {
		fmt.Println("logger error:", err)
		os.Exit(1)
	}
	logger := logging.NewZapLogger(zl)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer := &Producer{
		Target:   *target,
		Pattern:  render.Pattern(*pattern),
		Width:    *width,
		Height:   *height,
		Interval: *interval,
		Logger:   logger,
	}

	if *once {
		pushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := producer.Push(pushCtx, producer.Next()); err != nil {
			logger.Errorf("sim", "push failed: %v", err)
			os.Exit(1)
		}
		logger.Infof("sim", "pushed one %s frame to %s", *pattern, *target)
		return
	}

	logger.Infof("sim", "pushing %s frames to %s every %s", *pattern, *target, *interval)
	_ = producer.Run(ctx)
	pushed, failed := producer.Stats()
	logger.Infof("sim", "stopped after %d pushes (%d failed)", pushed, failed)
}
