package session

import (
	"errors"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec([]byte("0123456789abcdef0123456789abcdef"))

	v, err := c.Encode("abc-123")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	sid, err := c.Decode(v)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sid != "abc-123" {
		t.Errorf("sid = %q", sid)
	}
}

func TestCodecRejectsForeignCookies(t *testing.T) {
	c := NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	other := NewCodec([]byte("fedcba9876543210fedcba9876543210"))

	signed, err := other.Encode("abc-123")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, v := range []string{"", "garbage", signed, signed + "x"} {
		if _, err := c.Decode(v); !errors.Is(err, ErrInvalidCookie) {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidCookie", v, err)
		}
	}
}
