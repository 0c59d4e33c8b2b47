// Package console prepares a Linux virtual terminal for the framebuffer
// mirror: graphics mode without a cursor, and a local exit key.
package console

import "encoding/binary"

// Logger is the subset of logging.Logger used here.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

const (
	evKey = 0x01

	// KeyF4 is the evdev code for F4, from input-event-codes.h.
	KeyF4 = 62

	keyPressed = 1
)

// keyPressedIn scans buf as a sequence of input_event records (timeval, u16
// type, u16 code, s32 value) and reports whether code was pressed.
func keyPressedIn(buf []byte, tvSize int, code uint16) bool {
	eventSize := tvSize + 8
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		c := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ == evKey && c == code && value == keyPressed {
			return true
		}
	}
	return false
}
