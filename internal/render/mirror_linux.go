//go:build linux

package render

import (
	"context"
	"time"

	fb "github.com/gonutz/framebuffer"
)

// Run opens the device and repaints whenever the store sees a new write. It
// returns when ctx is done or the device cannot be opened.
func (m *FBMirror) Run(ctx context.Context) error {
	dev, err := fb.Open(m.Device)
	if err != nil {
		return err
	}
	defer dev.Close()

	log := m.logger()
	bounds := dev.Bounds()
	log.Infof("fb", "mirror open on %s, bounds=%dx%d", m.Device, bounds.Dx(), bounds.Dy())

	ticker := time.NewTicker(m.interval())
	defer ticker.Stop()

	painted := false
	var lastWrites uint64
	for {
		snap := m.Source.Snapshot()
		if !painted || snap.Writes != lastWrites {
			if err := m.paintFrame(dev, snap); err != nil {
				log.Errorf("fb", "paint failed: %v", err)
			}
			painted = true
			lastWrites = snap.Writes
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
