package console

import (
	"encoding/binary"
	"testing"
)

const testTVSize = 16

func event(typ, code uint16, value int32) []byte {
	rec := make([]byte, testTVSize+8)
	binary.LittleEndian.PutUint16(rec[testTVSize:], typ)
	binary.LittleEndian.PutUint16(rec[testTVSize+2:], code)
	binary.LittleEndian.PutUint32(rec[testTVSize+4:], uint32(value))
	return rec
}

func TestKeyPressedIn(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{name: "empty", buf: nil, want: false},
		{name: "press", buf: event(evKey, KeyF4, 1), want: true},
		{name: "release", buf: event(evKey, KeyF4, 0), want: false},
		{name: "repeat", buf: event(evKey, KeyF4, 2), want: false},
		{name: "other key", buf: event(evKey, 30, 1), want: false},
		{name: "not a key event", buf: event(0x02, KeyF4, 1), want: false},
		{name: "press after sync", buf: append(event(0, 0, 0), event(evKey, KeyF4, 1)...), want: true},
		{name: "truncated", buf: event(evKey, KeyF4, 1)[:testTVSize+4], want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyPressedIn(tt.buf, testTVSize, KeyF4); got != tt.want {
				t.Fatalf("keyPressedIn=%v, want %v", got, tt.want)
			}
		})
	}
}
