// Package feed assembles the home feed: posts from societies the viewer
// follows interleaved with posts from the rest of the campus under a 70/30
// target ratio, with cursor pagination and per-viewer like annotation.
package feed

import (
	"errors"
	"time"

	"github.com/campuslink-app/backend/internal/models"
)

// Source records which candidate pool a feed item came from.
type Source string

const (
	SourceFollowed Source = "followed"
	SourceGlobal   Source = "global"
)

// Target composition of a full page.
const (
	followedShare = 0.7
	globalShare   = 0.3
)

// Limit bounds for a single page.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

var (
	// ErrInvalidLimit is returned when the requested page size is outside [1, MaxLimit].
	ErrInvalidLimit = errors.New("feed: limit must be between 1 and 50")
	// ErrInvalidCursor is returned when a pagination cursor cannot be decoded.
	ErrInvalidCursor = errors.New("feed: malformed cursor")
)

// Item is a post decorated with viewer-specific state for one response.
type Item struct {
	models.Post
	FeedSource Source `json:"feed_source"`
	HasLiked   bool   `json:"has_liked"`
}

// Nudge is the advisory payload returned instead of content when a page is empty.
type Nudge struct {
	Type    string `json:"type"` // no_follows | no_recent_posts
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// Ratio reports the achieved pool composition of a page.
type Ratio struct {
	Followed float64 `json:"followed"`
	Global   float64 `json:"global"`
}

// Meta carries page composition counters.
type Meta struct {
	TotalReturned          int    `json:"total_returned"`
	FollowedPosts          int    `json:"followed_posts"`
	GlobalPosts            int    `json:"global_posts"`
	FollowedSocietiesCount int    `json:"followed_societies_count"`
	RatioAchieved          *Ratio `json:"ratio_achieved"`
}

// Response is the serialized home-feed page.
type Response struct {
	Data   []Item  `json:"data"`
	Cursor *string `json:"cursor"`
	Meta   Meta    `json:"meta"`
	Nudge  *Nudge  `json:"feed_nudge"`
}

// Cursor is the decoded pagination boundary: the sort key of the last item of
// the previous page. Posts are totally ordered by (created_at desc, id desc);
// a cursor selects items strictly older under that order.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// CandidateQuery describes one pool fetch against the post store.
type CandidateQuery struct {
	// SocietyIDs restricts (Exclude=false) or excludes (Exclude=true) the
	// owning societies. An empty slice with Exclude=true matches all posts.
	SocietyIDs []uint
	Exclude    bool
	Before     *Cursor
	Limit      int64
}
