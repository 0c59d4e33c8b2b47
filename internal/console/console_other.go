//go:build !linux

package console

import "context"

func EnterGraphics(log Logger) (restore func()) { return func() {} }

func WatchExitKey(ctx context.Context, log Logger, key uint16, onExit func()) {}
