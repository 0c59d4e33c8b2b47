package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestMonitorSide(t *testing.T) {
	for _, side := range []string{"top", "bottom", "left", "right", "front", "back"} {
		if err := MonitorSide(side); err != nil {
			t.Fatalf("MonitorSide(%q) unexpected error: %v", side, err)
		}
	}

	cases := []string{"up", "", "Top", " top", "left\n"}
	for _, side := range cases {
		err := MonitorSide(side)
		if err == nil {
			t.Fatalf("expected error for %q", side)
		}
		if !errors.Is(err, ErrInvalidEnum) {
			t.Fatalf("expected ErrInvalidEnum for %q, got: %v", side, err)
		}
		var enumErr *EnumError
		if !errors.As(err, &enumErr) {
			t.Fatalf("expected *EnumError, got %T", err)
		}
		if enumErr.Value != side {
			t.Fatalf("value=%q, want %q", enumErr.Value, side)
		}
		if len(enumErr.Allowed) != 6 {
			t.Fatalf("allowed=%v, want 6 entries", enumErr.Allowed)
		}
	}
}

func TestMonitorSideMessageListsAllowed(t *testing.T) {
	err := MonitorSide("up")
	want := "top, bottom, left, right, front, back"
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("message %q does not list %q", err.Error(), want)
	}
}

func TestAllowedMonitorSidesIsCopy(t *testing.T) {
	sides := AllowedMonitorSides()
	sides[0] = "up"
	if err := MonitorSide("top"); err != nil {
		t.Fatalf("mutating the returned slice changed validation: %v", err)
	}
}

func TestBackendURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		rule URLRule
	}{
		{name: "http", in: "http://host:9000/frame"},
		{name: "https", in: "https://example.com/api/v1/frame"},
		{name: "exactly max", in: "http://" + strings.Repeat("a", MaxBackendURLLength-len("http://"))},
		{name: "no scheme", in: "host:9000/frame", rule: URLRuleScheme},
		{name: "ftp", in: "ftp://host/frame", rule: URLRuleScheme},
		{name: "empty", in: "", rule: URLRuleScheme},
		{name: "quote", in: `http://x"; os.execute("rm")`, rule: URLRuleCharset},
		{name: "newline", in: "http://x\nos.execute()", rule: URLRuleCharset},
		{name: "carriage return", in: "http://x\r", rule: URLRuleCharset},
		{name: "too long", in: "http://" + strings.Repeat("a", MaxBackendURLLength), rule: URLRuleLength},
		{name: "multibyte at max", in: "http://" + strings.Repeat("é", MaxBackendURLLength-len("http://"))},
		{name: "multibyte over max", in: "http://" + strings.Repeat("é", MaxBackendURLLength-len("http://")+1), rule: URLRuleLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BackendURL(tt.in)
			if tt.rule == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidURL) {
				t.Fatalf("expected ErrInvalidURL, got: %v", err)
			}
			var urlErr *URLError
			if !errors.As(err, &urlErr) {
				t.Fatalf("expected *URLError, got %T", err)
			}
			if urlErr.Rule != tt.rule {
				t.Fatalf("rule=%q, want %q", urlErr.Rule, tt.rule)
			}
		})
	}
}

func TestFramePayload(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, p := range []string{"", "0123456789abcdef", "ABCDEF", "f"} {
			if err := FramePayload(p, 16); err != nil {
				t.Fatalf("FramePayload(%q) unexpected error: %v", p, err)
			}
		}
	})

	t.Run("charset", func(t *testing.T) {
		for _, p := range []string{"12g4", " 0", "0\n", "é"} {
			err := FramePayload(p, 16)
			if !errors.Is(err, ErrInvalidCharset) {
				t.Fatalf("FramePayload(%q): expected ErrInvalidCharset, got: %v", p, err)
			}
		}
	})

	t.Run("too large", func(t *testing.T) {
		err := FramePayload(strings.Repeat("0", 17), 16)
		if !errors.Is(err, ErrPayloadTooLarge) {
			t.Fatalf("expected ErrPayloadTooLarge, got: %v", err)
		}
		if errors.Is(err, ErrInvalidCharset) {
			t.Fatalf("size error must not also be a charset error")
		}
	})

	t.Run("too large wins over charset", func(t *testing.T) {
		err := FramePayload(strings.Repeat("z", 17), 16)
		if !errors.Is(err, ErrPayloadTooLarge) {
			t.Fatalf("expected ErrPayloadTooLarge, got: %v", err)
		}
	})
}

func TestIsHexDigit(t *testing.T) {
	for _, b := range []byte("0123456789abcdefABCDEF") {
		if !IsHexDigit(b) {
			t.Fatalf("IsHexDigit(%q)=false", b)
		}
	}
	for _, b := range []byte("gG/:@`xz \n") {
		if IsHexDigit(b) {
			t.Fatalf("IsHexDigit(%q)=true", b)
		}
	}
}
