package repository

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// Cursors are opaque to clients: a base64 encoding of the millisecond
// timestamp of the last row on the previous page.

func EncodeCursor(t time.Time) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(t.UnixMilli(), 10)))
}

func DecodeCursor(cursor string) (time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode cursor: %w", err)
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cursor: %w", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
