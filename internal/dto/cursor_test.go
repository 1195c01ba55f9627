package dto

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	orig := Cursor{
		At: time.Date(2025, time.June, 1, 12, 30, 45, 123456000, time.UTC),
		ID: 987,
	}

	decoded, err := DecodeCursor(orig.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.At.Equal(orig.At) {
		t.Errorf("At = %v, want %v", decoded.At, orig.At)
	}
	if decoded.ID != orig.ID {
		t.Errorf("ID = %d, want %d", decoded.ID, orig.ID)
	}
}

func TestCursorDropsSubMicrosecond(t *testing.T) {
	// Storage keeps microseconds; nanosecond remainders must not survive a
	// round trip and break keyset comparisons.
	orig := Cursor{At: time.Date(2025, time.June, 1, 0, 0, 0, 999, time.UTC), ID: 1}
	decoded, err := DecodeCursor(orig.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.At.Nanosecond()%1000 != 0 {
		t.Errorf("sub-microsecond precision leaked: %v", decoded.At)
	}
}

func TestDecodeCursorMalformed(t *testing.T) {
	bad := []string{
		"",
		"!!!not-base64!!!",
		"aGVsbG8",        // "hello", no separator
		"MTIzOmFiYw",     // "123:abc", bad id
		"YWJjOjQ1Ng",     // "abc:456", bad timestamp
	}
	for _, token := range bad {
		if _, err := DecodeCursor(token); err == nil {
			t.Errorf("DecodeCursor(%q) should fail", token)
		}
	}
}
