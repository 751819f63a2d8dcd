package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FollowSource lists the societies a viewer follows.
type FollowSource interface {
	GetFollowedSocietyIDs(userID uint) ([]uint, error)
}

// PostSource fetches one ordered candidate pool.
type PostSource interface {
	ListCandidates(ctx context.Context, q CandidateQuery) ([]models.Post, error)
}

// LikeSource returns the subset of postIDs the viewer has liked.
type LikeSource interface {
	GetLikedPostIDs(userID uint, postIDs []string) ([]string, error)
}

// Assembler builds home-feed pages from injected store capabilities. It holds
// no per-request state; one instance serves all requests.
type Assembler struct {
	follows FollowSource
	posts   PostSource
	likes   LikeSource
	timeout time.Duration
	log     *logrus.Logger
}

// NewAssembler creates a feed Assembler. A zero timeout defaults to 5s per
// candidate fetch cycle.
func NewAssembler(follows FollowSource, posts PostSource, likes LikeSource, log *logrus.Logger) *Assembler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{
		follows: follows,
		posts:   posts,
		likes:   likes,
		timeout: 5 * time.Second,
		log:     log,
	}
}

// Build produces one feed page for the viewer. rawCursor may be empty for the
// first page. Validation failures return ErrInvalidLimit/ErrInvalidCursor;
// any other error means the primary post fetch failed and no partial feed is
// returned.
func (a *Assembler) Build(ctx context.Context, viewerID uint, limit int, rawCursor string) (*Response, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}

	var cursor *Cursor
	if rawCursor != "" {
		c, err := DecodeCursor(rawCursor)
		if err != nil {
			return nil, err
		}
		cursor = &c
	}

	// Follow-set lookup is a secondary enrichment: on failure the viewer is
	// treated as following nothing and the feed degrades to global-only.
	followedIDs, err := a.follows.GetFollowedSocietyIDs(viewerID)
	if err != nil {
		a.log.WithError(err).WithField("viewer_id", viewerID).
			Warn("feed: follow lookup failed, serving global-only")
		followedIDs = nil
	}

	followedPool, globalPool, err := a.fetchPools(ctx, followedIDs, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching feed candidates: %w", err)
	}

	items, counts := interleave(tagged(followedPool, SourceFollowed), tagged(globalPool, SourceGlobal), limit)
	a.annotateLikes(viewerID, items)

	resp := &Response{
		Data: items,
		Meta: Meta{
			TotalReturned:          len(items),
			FollowedPosts:          counts.followed,
			GlobalPosts:            counts.global,
			FollowedSocietiesCount: len(followedIDs),
		},
	}

	if n := len(items); n > 0 {
		resp.Meta.RatioAchieved = &Ratio{
			Followed: float64(counts.followed) / float64(n),
			Global:   float64(counts.global) / float64(n),
		}
	} else {
		resp.Nudge = adviseEmpty(len(followedIDs))
	}

	// A cursor is only emitted for full pages; a short page signals
	// end-of-feed to the client even when both pools were merely short.
	if len(items) == limit {
		next := EncodeCursor(items[len(items)-1].Post)
		resp.Cursor = &next
	}

	return resp, nil
}

// fetchPools retrieves both candidate pools concurrently using the same
// cursor, so the page paginates over one consistent snapshot boundary.
func (a *Assembler) fetchPools(ctx context.Context, followedIDs []uint, cursor *Cursor, limit int) (followed, global []models.Post, err error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if len(followedIDs) > 0 {
		g.Go(func() error {
			var err error
			followed, err = a.posts.ListCandidates(ctx, CandidateQuery{
				SocietyIDs: followedIDs,
				Before:     cursor,
				Limit:      candidateFetchLimit(followedShare, limit),
			})
			return err
		})
	}

	g.Go(func() error {
		var err error
		global, err = a.posts.ListCandidates(ctx, CandidateQuery{
			SocietyIDs: followedIDs,
			Exclude:    true,
			Before:     cursor,
			Limit:      candidateFetchLimit(globalShare, limit),
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return followed, global, nil
}

// annotateLikes marks which items the viewer already liked. The lookup is
// best-effort: on failure every item stays unliked rather than failing the page.
func (a *Assembler) annotateLikes(viewerID uint, items []Item) {
	if len(items) == 0 {
		return
	}

	postIDs := make([]string, len(items))
	for i, it := range items {
		postIDs[i] = it.Post.ID.Hex()
	}

	likedIDs, err := a.likes.GetLikedPostIDs(viewerID, postIDs)
	if err != nil {
		a.log.WithError(err).WithField("viewer_id", viewerID).
			Warn("feed: like lookup failed, defaulting has_liked to false")
		return
	}

	liked := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}
	for i := range items {
		items[i].HasLiked = liked[items[i].Post.ID.Hex()]
	}
}

func tagged(posts []models.Post, source Source) []Item {
	items := make([]Item, len(posts))
	for i, p := range posts {
		items[i] = Item{Post: p, FeedSource: source}
	}
	return items
}
