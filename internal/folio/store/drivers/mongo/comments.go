package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type commentsRepo struct {
	c       *mongo.Collection
	content *mongo.Collection
}

func (r *commentsRepo) GetComment(ctx context.Context, id string) (domain.Comment, error) {
	var doc commentDocument
	if err := r.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

// CreateComment checks the blog exists first; there are no foreign keys here.
func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	n, err := r.content.CountDocuments(ctx,
		bson.D{{Key: "_id", Value: c.BlogID}, {Key: "kind", Value: string(domain.KindBlog)}},
		options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	_, err = r.c.InsertOne(ctx, commentDocument{
		ID:        c.ID,
		BlogID:    c.BlogID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: nowOr(c.CreatedAt),
		UpdatedAt: nowOr(c.UpdatedAt),
	})
	return mapDuplicate(err)
}

func (r *commentsRepo) UpdateComment(ctx context.Context, c domain.Comment) error {
	res, err := r.c.UpdateOne(ctx, bson.D{{Key: "_id", Value: c.ID}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "text", Value: c.Text},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *commentsRepo) ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	cur, err := r.c.Find(ctx, bson.D{{Key: "blogId", Value: blogID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, len(docs))
	for i, d := range docs {
		comments[i] = d.toDomain()
	}
	return comments, nil
}

func (r *commentsRepo) DeleteCommentsByBlog(ctx context.Context, blogID string) (int, error) {
	res, err := r.c.DeleteMany(ctx, bson.D{{Key: "blogId", Value: blogID}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
