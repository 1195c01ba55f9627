package dto

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor is the keyset pagination token: the (sort key, id) pair of the
// last item returned. It is opaque to clients.
type Cursor struct {
	At time.Time
	ID int64
}

// Encode packs the cursor into a URL-safe token. Microsecond precision
// matches the storage engine's timestamp resolution so encode/decode
// round-trips agree with persisted values.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d:%d", c.At.UnixMicro(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor unpacks a client-supplied token.
func DecodeCursor(token string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed cursor")
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor timestamp: %w", err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor id: %w", err)
	}
	return &Cursor{At: time.UnixMicro(micros).UTC(), ID: id}, nil
}
