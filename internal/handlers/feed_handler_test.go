package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/campuslink-app/backend/internal/feed"
	"github.com/campuslink-app/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubFollowStore struct {
	societyIDs []uint
	err        error
}

func (s *stubFollowStore) GetFollowedSocietyIDs(userID uint) ([]uint, error) {
	return s.societyIDs, s.err
}

type stubPostStore struct {
	posts []models.Post
	err   error
}

func (s *stubPostStore) ListCandidates(ctx context.Context, q feed.CandidateQuery) ([]models.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	members := make(map[uint]bool, len(q.SocietyIDs))
	for _, id := range q.SocietyIDs {
		members[id] = true
	}
	var out []models.Post
	for _, p := range s.posts {
		if members[p.SocietyID] == q.Exclude {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

type stubLikeStore struct{}

func (s *stubLikeStore) GetLikedPostIDs(userID uint, postIDs []string) ([]string, error) {
	return nil, nil
}

func feedTestPost(seq int, societyID uint, createdAt time.Time) models.Post {
	oid, _ := primitive.ObjectIDFromHex(fmt.Sprintf("%024x", seq))
	return models.Post{
		ID:        oid,
		SocietyID: societyID,
		AuthorID:  1,
		Content:   fmt.Sprintf("post %d", seq),
		CreatedAt: createdAt,
	}
}

func feedRequest(t *testing.T, h *FeedHandler, target string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}

	err := h.GetHomeFeed(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGetHomeFeedUnauthenticated(t *testing.T) {
	h := NewFeedHandler(feed.NewAssembler(&stubFollowStore{}, &stubPostStore{}, &stubLikeStore{}, nil), nil)

	rec := feedRequest(t, h, "/api/v1/home-feed", 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetHomeFeedRejectsBadLimit(t *testing.T) {
	h := NewFeedHandler(feed.NewAssembler(&stubFollowStore{}, &stubPostStore{}, &stubLikeStore{}, nil), nil)

	for _, target := range []string{
		"/api/v1/home-feed?limit=abc",
		"/api/v1/home-feed?limit=0",
		"/api/v1/home-feed?limit=51",
	} {
		rec := feedRequest(t, h, target, 7)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetHomeFeedRejectsBadCursor(t *testing.T) {
	h := NewFeedHandler(feed.NewAssembler(&stubFollowStore{}, &stubPostStore{}, &stubLikeStore{}, nil), nil)

	rec := feedRequest(t, h, "/api/v1/home-feed?cursor=not-a-cursor", 7)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHomeFeedReturnsPage(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]models.Post, 0, 20)
	for i := 0; i < 10; i++ {
		posts = append(posts, feedTestPost(i, 1, now.Add(-time.Duration(2*i)*time.Minute)))
	}
	for i := 10; i < 20; i++ {
		posts = append(posts, feedTestPost(i, 2, now.Add(-time.Duration(2*(i-10)+1)*time.Minute)))
	}

	assembler := feed.NewAssembler(
		&stubFollowStore{societyIDs: []uint{1}},
		&stubPostStore{posts: posts},
		&stubLikeStore{},
		nil,
	)
	h := NewFeedHandler(assembler, nil)

	rec := feedRequest(t, h, "/api/v1/home-feed?limit=10", 7)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp feed.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 10)
	assert.Equal(t, 7, resp.Meta.FollowedPosts)
	assert.Equal(t, 3, resp.Meta.GlobalPosts)
	require.NotNil(t, resp.Cursor)
	assert.Nil(t, resp.Nudge)
}

func TestGetHomeFeedUpstreamFailure(t *testing.T) {
	assembler := feed.NewAssembler(
		&stubFollowStore{societyIDs: []uint{1}},
		&stubPostStore{err: errors.New("mongo down")},
		&stubLikeStore{},
		nil,
	)
	h := NewFeedHandler(assembler, nil)

	rec := feedRequest(t, h, "/api/v1/home-feed", 7)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetHomeFeedEmptyStateNudge(t *testing.T) {
	assembler := feed.NewAssembler(
		&stubFollowStore{},
		&stubPostStore{},
		&stubLikeStore{},
		nil,
	)
	h := NewFeedHandler(assembler, nil)

	rec := feedRequest(t, h, "/api/v1/home-feed", 7)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp feed.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
	require.NotNil(t, resp.Nudge)
	assert.Equal(t, feed.NudgeNoFollows, resp.Nudge.Type)
}
