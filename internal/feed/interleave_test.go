package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestPost builds a post with a deterministic ObjectID. Sequence numbers
// count downward in fixtures so slice order matches (created_at desc, id desc).
func newTestPost(societyID uint, seq int, createdAt time.Time) models.Post {
	id, err := primitive.ObjectIDFromHex(fmt.Sprintf("%024x", seq))
	if err != nil {
		panic(err)
	}
	return models.Post{
		ID:        id,
		SocietyID: societyID,
		AuthorID:  1,
		Content:   fmt.Sprintf("post %d", seq),
		CreatedAt: createdAt,
	}
}

// newestFirst builds n posts for a society, newest first, one minute apart.
func newestFirst(societyID uint, n int, start time.Time) []models.Post {
	posts := make([]models.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = newTestPost(societyID, 1000-i, start.Add(-time.Duration(i)*time.Minute))
	}
	return posts
}

func sourceCounts(items []Item) (followed, global int) {
	for _, it := range items {
		if it.FeedSource == SourceFollowed {
			followed++
		} else {
			global++
		}
	}
	return
}

func TestInterleaveSeventyThirtySplit(t *testing.T) {
	followed := tagged(newestFirst(1, 20, testEpoch), SourceFollowed)
	global := tagged(newestFirst(2, 20, testEpoch), SourceGlobal)

	items, counts := interleave(followed, global, 10)

	require.Len(t, items, 10)
	assert.Equal(t, 7, counts.followed)
	assert.Equal(t, 3, counts.global)

	// Followed items never trail global items in any prefix.
	f, g := 0, 0
	for _, it := range items {
		if it.FeedSource == SourceFollowed {
			f++
		} else {
			g++
		}
		assert.GreaterOrEqual(t, f, g, "followed items must lead every prefix")
	}
}

func TestInterleaveRatioConvergence(t *testing.T) {
	for _, limit := range []int{1, 3, 10, 20, 33, 50} {
		t.Run(fmt.Sprintf("limit_%d", limit), func(t *testing.T) {
			followed := tagged(newestFirst(1, limit+5, testEpoch), SourceFollowed)
			global := tagged(newestFirst(2, limit+5, testEpoch), SourceGlobal)

			items, counts := interleave(followed, global, limit)

			require.Len(t, items, limit)
			target := int(0.7*float64(limit) + 0.5)
			assert.InDelta(t, target, counts.followed, 1,
				"followed count should land within one item of 70%%")
		})
	}
}

func TestInterleaveGlobalPoolEmpty(t *testing.T) {
	followed := tagged(newestFirst(1, 15, testEpoch), SourceFollowed)

	items, counts := interleave(followed, nil, 10)

	require.Len(t, items, 10)
	assert.Equal(t, 10, counts.followed)
	assert.Zero(t, counts.global)
	for _, it := range items {
		assert.Equal(t, SourceFollowed, it.FeedSource)
	}
}

func TestInterleaveFollowedPoolEmpty(t *testing.T) {
	global := tagged(newestFirst(2, 15, testEpoch), SourceGlobal)

	items, counts := interleave(nil, global, 10)

	require.Len(t, items, 10)
	assert.Equal(t, 10, counts.global)
	assert.Zero(t, counts.followed)
}

func TestInterleaveShortPools(t *testing.T) {
	// Followed society posted 5 times, the rest of campus 5 times: the page
	// fills from whatever remains once the followed pool runs dry.
	followed := tagged(newestFirst(1, 5, testEpoch), SourceFollowed)
	global := tagged(newestFirst(2, 5, testEpoch), SourceGlobal)

	items, counts := interleave(followed, global, 10)

	require.Len(t, items, 10)
	assert.Equal(t, 5, counts.followed)
	assert.Equal(t, 5, counts.global)
}

func TestInterleaveBothPoolsExhausted(t *testing.T) {
	followed := tagged(newestFirst(1, 2, testEpoch), SourceFollowed)
	global := tagged(newestFirst(2, 1, testEpoch), SourceGlobal)

	items, _ := interleave(followed, global, 10)

	assert.Len(t, items, 3, "page may be shorter than limit")
}

func TestInterleaveEmptyInput(t *testing.T) {
	items, counts := interleave(nil, nil, 10)
	assert.Empty(t, items)
	assert.Zero(t, counts.total())
}

func TestInterleavePreservesPoolOrder(t *testing.T) {
	followed := tagged(newestFirst(1, 10, testEpoch), SourceFollowed)
	global := tagged(newestFirst(2, 10, testEpoch), SourceGlobal)

	items, _ := interleave(followed, global, 10)

	var lastFollowed, lastGlobal *time.Time
	for _, it := range items {
		ts := it.Post.CreatedAt
		if it.FeedSource == SourceFollowed {
			if lastFollowed != nil {
				assert.True(t, ts.Before(*lastFollowed))
			}
			lastFollowed = &ts
		} else {
			if lastGlobal != nil {
				assert.True(t, ts.Before(*lastGlobal))
			}
			lastGlobal = &ts
		}
	}
}

func TestCandidateFetchLimit(t *testing.T) {
	// Twice the share of the page, floored at a full page.
	assert.Equal(t, int64(14), candidateFetchLimit(followedShare, 10))
	assert.Equal(t, int64(10), candidateFetchLimit(globalShare, 10))
	assert.Equal(t, int64(3), candidateFetchLimit(globalShare, 3))
	assert.Equal(t, int64(2), candidateFetchLimit(followedShare, 1))
	assert.Equal(t, int64(70), candidateFetchLimit(followedShare, 50))
}
