package repository

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 45, 123_000_000, time.UTC)
	decoded, err := DecodeCursor(EncodeCursor(ts))
	if err != nil {
		t.Fatalf("decode cursor: %v", err)
	}
	if !decoded.Equal(ts) {
		t.Fatalf("expected %v, got %v", ts, decoded)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, cursor := range []string{"not base64!!", "bm90LWEtbnVtYmVy"} {
		if _, err := DecodeCursor(cursor); err == nil {
			t.Fatalf("expected error for cursor %q", cursor)
		}
	}
}
