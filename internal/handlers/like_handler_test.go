package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/push"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubLikeRepo embeds the interface so only the methods a test exercises need
// bodies; anything else panics loudly.
type stubLikeRepo struct {
	repositories.LikeRepository
	created *models.Like
}

func (s *stubLikeRepo) HasUserLikedPost(postID string, userID uint) (bool, error) {
	return false, nil
}

func (s *stubLikeRepo) CreateLike(like *models.Like) error {
	s.created = like
	return nil
}

type bumpFailPostRepo struct {
	repositories.PostRepository
	post models.Post
}

func (r *bumpFailPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	p := r.post
	return &p, nil
}

func (r *bumpFailPostRepo) IncrementLikesCount(ctx context.Context, postID string) error {
	return errors.New("mongo down")
}

func TestLikePostLogsCounterBumpFailure(t *testing.T) {
	hook := logrustest.NewGlobal()
	defer hook.Reset()

	oid, err := primitive.ObjectIDFromHex("0000000000000000000000ab")
	require.NoError(t, err)
	postRepo := &bumpFailPostRepo{post: models.Post{
		ID:        oid,
		SocietyID: 1,
		AuthorID:  9,
		CreatedAt: time.Now(),
	}}
	likeRepo := &stubLikeRepo{}
	h := NewLikeHandler(likeRepo, postRepo, nil, nil, push.NewNotifier(nil, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/"+oid.Hex()+"/like", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(oid.Hex())
	c.Set("user", &models.JwtCustomClaims{UserID: 4})

	require.NoError(t, h.LikePost(c))

	// The like still lands and the client still gets a success response.
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, likeRepo.created)
	assert.Equal(t, uint(4), likeRepo.created.UserID)

	// The failed counter bump is visible in the logs.
	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "Failed to increment likes count" {
			assert.Equal(t, oid.Hex(), entry.Data["post_id"])
			logged = true
		}
	}
	assert.True(t, logged, "counter bump failure must be logged")
}
