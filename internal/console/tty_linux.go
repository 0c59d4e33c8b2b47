//go:build linux

package console

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h.
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

var vtPaths = []string{"/dev/tty", "/dev/tty0"}

func setMode(mode int) error {
	var errs []error
	for _, p := range vtPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", p, err))
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err))
	}
	return errors.Join(errs...)
}

func writeVT(s string) error {
	var errs []error
	for _, p := range vtPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("write vt: %w", errors.Join(errs...))
}

// EnterGraphics switches the active VT to graphics mode and hides the cursor
// so the text console does not draw over the mirror. The returned func
// restores text mode. Failures are logged, never fatal.
func EnterGraphics(log Logger) (restore func()) {
	if err := setMode(kdGraphics); err != nil {
		log.Errorf("tty", "graphics mode: %v", err)
	} else {
		log.Infof("tty", "graphics mode set")
	}
	if err := writeVT("\x1b[?25l"); err != nil {
		log.Errorf("tty", "hide cursor: %v", err)
	}
	return func() {
		if err := setMode(kdText); err != nil {
			log.Errorf("tty", "text mode: %v", err)
		}
		_ = writeVT("\x1b[?25h")
	}
}
