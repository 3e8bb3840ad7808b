package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/mongo"
	"github.com/aussiebroadwan/folio/pkg/idx"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type MongoStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *mongo.Store
}

func TestMongoStore(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(MongoStoreSuite))
}

func (s *MongoStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	t := s.T()

	ctr, err := testcontainers.Run(s.ctx, "mongo:7",
		testcontainers.WithExposedPorts("27017/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("27017/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.PortEndpoint(s.ctx, "27017/tcp", "mongodb")
	require.NoError(t, err)

	st, err := mongo.NewStore(s.ctx, uri, "folio_test")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	s.store = st
}

func (s *MongoStoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *MongoStoreSuite) TestUsers() {
	t := s.T()
	users := s.store.Users()

	u := domain.User{
		ID:           idx.NewString(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, users.CreateUser(s.ctx, u))

	dup := u
	dup.ID = idx.NewString()
	require.ErrorIs(t, users.CreateUser(s.ctx, dup), store.ErrAlreadyExists)

	got, err := users.GetUserByEmail(s.ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, got.Image.IsDefault())

	u.Image = domain.RemoteImage("https://cdn/ada.png", "profiles/ada.png")
	require.NoError(t, users.UpdateUser(s.ctx, u))
	got, err = users.GetUserByID(s.ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "profiles/ada.png", got.Image.ProviderID)

	require.NoError(t, users.DeleteUser(s.ctx, u.ID))
	_, err = users.GetUserByID(s.ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func (s *MongoStoreSuite) TestContentAndComments() {
	t := s.T()
	blogs := s.store.Content(domain.KindBlog)

	b := domain.Content{ID: idx.NewString(), Title: "Mongo post", Body: "body long enough to pass", AuthorID: "a"}
	require.NoError(t, blogs.CreateContent(s.ctx, b))

	_, err := s.store.Content(domain.KindSkill).GetContent(s.ctx, b.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	liked, err := blogs.ToggleLike(s.ctx, b.ID, "u1")
	require.NoError(t, err)
	require.True(t, liked)
	liked, err = blogs.ToggleLike(s.ctx, b.ID, "u1")
	require.NoError(t, err)
	require.False(t, liked)

	require.NoError(t, blogs.AddShare(s.ctx, b.ID, "u1"))
	require.NoError(t, blogs.AddShare(s.ctx, b.ID, "u1"))

	c := domain.Comment{ID: idx.NewString(), BlogID: b.ID, AuthorID: "u1", Text: "hi"}
	require.NoError(t, s.store.Comments().CreateComment(s.ctx, c))
	orphan := domain.Comment{ID: idx.NewString(), BlogID: "missing", AuthorID: "u1", Text: "hi"}
	require.ErrorIs(t, s.store.Comments().CreateComment(s.ctx, orphan), store.ErrNotFound)

	got, err := blogs.GetContent(s.ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, got.LikedBy)
	require.Equal(t, []string{"u1"}, got.SharedBy)
	require.Equal(t, 1, got.CommentCount)

	n, err := s.store.Comments().DeleteCommentsByBlog(s.ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, blogs.DeleteContent(s.ctx, b.ID))
	require.ErrorIs(t, blogs.DeleteContent(s.ctx, b.ID), store.ErrNotFound)
}

func (s *MongoStoreSuite) TestMessages() {
	t := s.T()
	msgs := s.store.Messages()

	m := domain.Message{ID: idx.NewString(), UserID: "u1", Text: "hello"}
	require.NoError(t, msgs.CreateMessage(s.ctx, m))

	list, total, err := msgs.ListMessages(s.ctx, store.ListOptions{Limit: 5})
	require.NoError(t, err)
	require.GreaterOrEqual(t, total, 1)
	require.NotEmpty(t, list)

	require.NoError(t, msgs.DeleteMessage(s.ctx, m.ID))
	require.ErrorIs(t, msgs.DeleteMessage(s.ctx, m.ID), store.ErrNotFound)
}
