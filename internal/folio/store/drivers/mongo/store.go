package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection    = "users"
	contentCollection  = "content"
	commentsCollection = "comments"
	messagesCollection = "messages"
)

// Store keeps every content kind in one collection, discriminated by a kind
// field. Records are keyed by the same ULID strings the sqlite driver uses.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// NewStore connects to uri and verifies the deployment is reachable.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close() error { return s.client.Disconnect(context.Background()) }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Users() store.Users { return &usersRepo{c: s.db.Collection(usersCollection)} }

func (s *Store) Content(kind domain.Kind) store.Content {
	return &contentRepo{
		c:        s.db.Collection(contentCollection),
		comments: s.db.Collection(commentsCollection),
		kind:     kind,
	}
}

func (s *Store) Comments() store.Comments {
	return &commentsRepo{
		c:       s.db.Collection(commentsCollection),
		content: s.db.Collection(contentCollection),
	}
}

func (s *Store) Messages() store.Messages {
	return &messagesRepo{c: s.db.Collection(messagesCollection)}
}

// ApplyMigrations creates the indexes the repositories rely on. Creating an
// index that already exists with the same definition is a no-op.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		contentCollection: {
			{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "blogId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		messagesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func mapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func findOptions(opts store.ListOptions, sort bson.D) *options.FindOptionsBuilder {
	fo := options.Find().SetSort(sort)
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit)).SetSkip(int64(max(opts.Offset, 0)))
	}
	return fo
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
