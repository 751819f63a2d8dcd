package feed

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollowStore struct {
	ids []uint
	err error
}

func (f *fakeFollowStore) GetFollowedSocietyIDs(userID uint) ([]uint, error) {
	return f.ids, f.err
}

// fakePostStore answers candidate queries from an in-memory post set,
// honoring society filters, cursor predicates, ordering and limits.
type fakePostStore struct {
	mu      sync.Mutex
	posts   []models.Post
	err     error
	queries []CandidateQuery
}

func (f *fakePostStore) ListCandidates(ctx context.Context, q CandidateQuery) ([]models.Post, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	members := make(map[uint]bool, len(q.SocietyIDs))
	for _, id := range q.SocietyIDs {
		members[id] = true
	}

	var out []models.Post
	for _, p := range f.posts {
		if members[p.SocietyID] == q.Exclude {
			continue
		}
		if q.Before != nil && !q.Before.Before(p) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	if int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

type fakeLikeStore struct {
	likedIDs []string
	err      error
}

func (f *fakeLikeStore) GetLikedPostIDs(userID uint, postIDs []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	requested := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		requested[id] = true
	}
	var out []string
	for _, id := range f.likedIDs {
		if requested[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func newTestAssembler(follows FollowSource, posts PostSource, likes LikeSource) *Assembler {
	return NewAssembler(follows, posts, likes, nil)
}

// Two societies posting in lockstep: society 1 on even minutes, society 2 on
// odd minutes, newest first.
func alternatingTimeline(perSociety int) []models.Post {
	var posts []models.Post
	for i := 0; i < perSociety; i++ {
		posts = append(posts,
			newTestPost(1, 1000-2*i, testEpoch.Add(-time.Duration(2*i)*time.Minute)),
			newTestPost(2, 999-2*i, testEpoch.Add(-time.Duration(2*i+1)*time.Minute)),
		)
	}
	return posts
}

func TestBuildSeventyThirtyPage(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(15)}
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, &fakeLikeStore{})

	resp, err := a.Build(context.Background(), 7, 10, "")

	require.NoError(t, err)
	require.Len(t, resp.Data, 10)
	assert.Equal(t, 7, resp.Meta.FollowedPosts)
	assert.Equal(t, 3, resp.Meta.GlobalPosts)
	assert.Equal(t, 10, resp.Meta.TotalReturned)
	assert.Equal(t, 1, resp.Meta.FollowedSocietiesCount)
	require.NotNil(t, resp.Meta.RatioAchieved)
	assert.InDelta(t, 0.7, resp.Meta.RatioAchieved.Followed, 0.01)
	assert.InDelta(t, 0.3, resp.Meta.RatioAchieved.Global, 0.01)
	assert.NotNil(t, resp.Cursor, "full page emits a cursor")
	assert.Nil(t, resp.Nudge)

	// Pools stay disjoint: followed items come only from society 1.
	for _, it := range resp.Data {
		switch it.FeedSource {
		case SourceFollowed:
			assert.Equal(t, uint(1), it.SocietyID)
		case SourceGlobal:
			assert.Equal(t, uint(2), it.SocietyID)
		}
	}
}

func TestBuildGlobalOnlyWhenFollowingNothing(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(5)}
	a := newTestAssembler(&fakeFollowStore{}, posts, &fakeLikeStore{})

	resp, err := a.Build(context.Background(), 7, 3, "")

	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	for _, it := range resp.Data {
		assert.Equal(t, SourceGlobal, it.FeedSource)
	}
	// The three newest posts overall, since no society is followed.
	assert.Equal(t, testEpoch, resp.Data[0].CreatedAt)
	assert.True(t, resp.Data[0].CreatedAt.After(resp.Data[1].CreatedAt))
	assert.True(t, resp.Data[1].CreatedAt.After(resp.Data[2].CreatedAt))
	assert.Zero(t, resp.Meta.FollowedSocietiesCount)
}

func TestBuildFollowLookupFailureDegradesToGlobal(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(10)}
	follows := &fakeFollowStore{err: errors.New("follow store down")}
	a := newTestAssembler(follows, posts, &fakeLikeStore{})

	resp, err := a.Build(context.Background(), 7, 10, "")

	require.NoError(t, err, "follow lookup failure must not fail the request")
	require.Len(t, resp.Data, 10)
	for _, it := range resp.Data {
		assert.Equal(t, SourceGlobal, it.FeedSource)
	}
}

func TestBuildPostFetchFailureIsFatal(t *testing.T) {
	posts := &fakePostStore{err: errors.New("post store down")}
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, &fakeLikeStore{})

	_, err := a.Build(context.Background(), 7, 10, "")

	assert.Error(t, err, "no partial feed on primary fetch failure")
}

func TestBuildAnnotatesLikes(t *testing.T) {
	timeline := alternatingTimeline(10)
	likedID := timeline[0].ID.Hex()
	posts := &fakePostStore{posts: timeline}
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, &fakeLikeStore{likedIDs: []string{likedID}})

	resp, err := a.Build(context.Background(), 7, 10, "")

	require.NoError(t, err)
	var likedSeen int
	for _, it := range resp.Data {
		if it.Post.ID.Hex() == likedID {
			assert.True(t, it.HasLiked)
			likedSeen++
		} else {
			assert.False(t, it.HasLiked)
		}
	}
	assert.Equal(t, 1, likedSeen)
}

func TestBuildLikeLookupFailureDefaultsFalse(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(10)}
	likes := &fakeLikeStore{err: errors.New("like store down")}
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, likes)

	resp, err := a.Build(context.Background(), 7, 10, "")

	require.NoError(t, err, "like lookup is best-effort")
	for _, it := range resp.Data {
		assert.False(t, it.HasLiked)
	}
}

func TestBuildShortPageOmitsCursor(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(2)} // 4 posts total
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, &fakeLikeStore{})

	resp, err := a.Build(context.Background(), 7, 10, "")

	require.NoError(t, err)
	assert.Len(t, resp.Data, 4)
	assert.Nil(t, resp.Cursor, "short page signals end-of-feed")
	assert.Nil(t, resp.Nudge)
}

func TestBuildEmptyFeedNudges(t *testing.T) {
	t.Run("no follows", func(t *testing.T) {
		a := newTestAssembler(&fakeFollowStore{}, &fakePostStore{}, &fakeLikeStore{})

		resp, err := a.Build(context.Background(), 7, 10, "")

		require.NoError(t, err)
		assert.Empty(t, resp.Data)
		require.NotNil(t, resp.Nudge)
		assert.Equal(t, NudgeNoFollows, resp.Nudge.Type)
		assert.Nil(t, resp.Meta.RatioAchieved)
	})

	t.Run("follows but no recent posts", func(t *testing.T) {
		a := newTestAssembler(&fakeFollowStore{ids: []uint{1, 2}}, &fakePostStore{}, &fakeLikeStore{})

		resp, err := a.Build(context.Background(), 7, 10, "")

		require.NoError(t, err)
		require.NotNil(t, resp.Nudge)
		assert.Equal(t, NudgeNoRecentPosts, resp.Nudge.Type)
	})
}

func TestBuildValidation(t *testing.T) {
	a := newTestAssembler(&fakeFollowStore{}, &fakePostStore{}, &fakeLikeStore{})

	for _, limit := range []int{0, -1, 51, 1000} {
		_, err := a.Build(context.Background(), 7, limit, "")
		assert.ErrorIs(t, err, ErrInvalidLimit, "limit %d", limit)
	}

	_, err := a.Build(context.Background(), 7, 10, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestBuildBothPoolsShareCursor(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(20)}
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, &fakeLikeStore{})

	first, err := a.Build(context.Background(), 7, 10, "")
	require.NoError(t, err)
	require.NotNil(t, first.Cursor)

	posts.mu.Lock()
	posts.queries = nil
	posts.mu.Unlock()

	_, err = a.Build(context.Background(), 7, 10, *first.Cursor)
	require.NoError(t, err)

	posts.mu.Lock()
	defer posts.mu.Unlock()
	require.Len(t, posts.queries, 2)
	require.NotNil(t, posts.queries[0].Before)
	require.NotNil(t, posts.queries[1].Before)
	assert.Equal(t, *posts.queries[0].Before, *posts.queries[1].Before,
		"both pools must paginate over the same snapshot boundary")
}

func TestBuildPaginationMonotonicity(t *testing.T) {
	posts := &fakePostStore{posts: alternatingTimeline(40)}
	a := newTestAssembler(&fakeFollowStore{ids: []uint{1}}, posts, &fakeLikeStore{})

	seen := make(map[string]bool)
	cursor := ""
	var lastBoundary *Cursor

	for page := 0; page < 3; page++ {
		resp, err := a.Build(context.Background(), 7, 10, cursor)
		require.NoError(t, err)
		require.NotEmpty(t, resp.Data)

		for _, it := range resp.Data {
			id := it.Post.ID.Hex()
			assert.False(t, seen[id], "post %s repeated across pages", id)
			seen[id] = true
			if lastBoundary != nil {
				assert.True(t, lastBoundary.Before(it.Post),
					"page items must be strictly older than the previous boundary")
			}
		}

		require.NotNil(t, resp.Cursor)
		c, err := DecodeCursor(*resp.Cursor)
		require.NoError(t, err)
		lastBoundary = &c
		cursor = *resp.Cursor
	}
}
