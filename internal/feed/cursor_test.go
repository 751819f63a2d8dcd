package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	post := newTestPost(1, 42, testEpoch)

	raw := EncodeCursor(post)
	cursor, err := DecodeCursor(raw)

	require.NoError(t, err)
	assert.Equal(t, post.CreatedAt.UnixMilli(), cursor.CreatedAt.UnixMilli())
	assert.Equal(t, post.ID.Hex(), cursor.ID)
}

func TestDecodeCursorMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"noseparator",
		":missing-timestamp",
		"1709294400000:",
		"not-a-number:65f000000000000000000001",
	} {
		_, err := DecodeCursor(raw)
		assert.ErrorIs(t, err, ErrInvalidCursor, "input %q", raw)
	}
}

func TestCursorBeforeOrdering(t *testing.T) {
	boundary := newTestPost(1, 100, testEpoch)
	cursor, err := DecodeCursor(EncodeCursor(boundary))
	require.NoError(t, err)

	older := newTestPost(1, 200, testEpoch.Add(-time.Minute))
	newer := newTestPost(1, 50, testEpoch.Add(time.Minute))

	assert.True(t, cursor.Before(older))
	assert.False(t, cursor.Before(newer))
	assert.False(t, cursor.Before(boundary), "boundary itself is excluded")
}

func TestCursorBeforeTieBreaksOnID(t *testing.T) {
	// Same timestamp: only strictly smaller ids qualify.
	boundary := newTestPost(1, 100, testEpoch)
	cursor, err := DecodeCursor(EncodeCursor(boundary))
	require.NoError(t, err)

	smallerID := newTestPost(1, 99, testEpoch)
	largerID := newTestPost(1, 101, testEpoch)

	assert.True(t, cursor.Before(smallerID))
	assert.False(t, cursor.Before(largerID))
}
