package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/campuslink-app/backend/internal/models"
)

// EncodeCursor serializes a post's sort key as "<unix-millis>:<post-id>".
// The timestamp is encoded as an integer so the token splits cleanly on the
// first colon even though post ids are opaque.
func EncodeCursor(p models.Post) string {
	return fmt.Sprintf("%d:%s", p.CreatedAt.UnixMilli(), p.ID.Hex())
}

// DecodeCursor parses an opaque cursor back into its (timestamp, id) pair.
func DecodeCursor(raw string) (Cursor, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Cursor{}, ErrInvalidCursor
	}

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	return Cursor{
		CreatedAt: time.UnixMilli(millis).UTC(),
		ID:        parts[1],
	}, nil
}

// Before reports whether the post sorts strictly older than the cursor under
// the (created_at desc, id desc) total order. Ids tie-break equal timestamps.
func (c Cursor) Before(p models.Post) bool {
	ts := p.CreatedAt.UnixMilli()
	boundary := c.CreatedAt.UnixMilli()
	if ts != boundary {
		return ts < boundary
	}
	return p.ID.Hex() < c.ID
}
