package mongo

import (
	"context"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type messagesRepo struct {
	c *mongo.Collection
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.c.InsertOne(ctx, messageDocument{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		CreatedAt: nowOr(m.CreatedAt),
	})
	return mapDuplicate(err)
}

func (r *messagesRepo) DeleteMessage(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *messagesRepo) ListMessages(ctx context.Context, opts store.ListOptions) ([]domain.Message, int, error) {
	total, err := r.c.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.c.Find(ctx, bson.D{},
		findOptions(opts, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, 0, err
	}

	var docs []messageDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	msgs := make([]domain.Message, len(docs))
	for i, d := range docs {
		msgs[i] = d.toDomain()
	}
	return msgs, int(total), nil
}
