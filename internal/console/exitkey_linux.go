//go:build linux

package console

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// WatchExitKey calls onExit once when key is pressed on any evdev device
// under /dev/input. It returns immediately; readers stop with ctx.
func WatchExitKey(ctx context.Context, log Logger, key uint16, onExit func()) {
	if onExit == nil {
		return
	}
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		log.Infof("input", "no evdev devices, exit key disabled")
		return
	}

	tvSize := binary.Size(unix.Timeval{})
	var once sync.Once
	trigger := func() {
		once.Do(func() {
			log.Infof("input", "exit key pressed")
			onExit()
		})
	}

	for _, path := range paths {
		go watchDevice(ctx, path, tvSize, key, trigger)
	}
}

func watchDevice(ctx context.Context, path string, tvSize int, key uint16, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 4096)
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if keyPressedIn(buf[:n], tvSize, key) {
			trigger()
			return
		}
	}
}
