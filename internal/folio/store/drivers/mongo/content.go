package mongo

import (
	"context"
	"slices"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type contentRepo struct {
	c        *mongo.Collection
	comments *mongo.Collection
	kind     domain.Kind
}

func (r *contentRepo) byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "kind", Value: string(r.kind)}}
}

func (r *contentRepo) commentCount(ctx context.Context, id string) (int, error) {
	if r.kind != domain.KindBlog {
		return 0, nil
	}
	n, err := r.comments.CountDocuments(ctx, bson.D{{Key: "blogId", Value: id}})
	return int(n), err
}

func (r *contentRepo) GetContent(ctx context.Context, id string) (domain.Content, error) {
	var doc contentDocument
	if err := r.c.FindOne(ctx, r.byID(id)).Decode(&doc); err != nil {
		return domain.Content{}, mapNotFound(err)
	}
	n, err := r.commentCount(ctx, id)
	if err != nil {
		return domain.Content{}, err
	}
	return doc.toDomain(n), nil
}

func (r *contentRepo) CreateContent(ctx context.Context, c domain.Content) error {
	_, err := r.c.InsertOne(ctx, toContentDocument(r.kind, c))
	return mapDuplicate(err)
}

func (r *contentRepo) UpdateContent(ctx context.Context, c domain.Content) error {
	doc := toContentDocument(r.kind, c)
	res, err := r.c.UpdateOne(ctx, r.byID(c.ID), bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "content", Value: doc.Body},
		{Key: "image", Value: doc.Image},
		{Key: "categories", Value: doc.Categories},
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

func (r *contentRepo) DeleteContent(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, r.byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *contentRepo) ListContent(ctx context.Context, opts store.ListOptions) ([]domain.Content, int, error) {
	filter := bson.D{{Key: "kind", Value: string(r.kind)}}
	total, err := r.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.c.Find(ctx, filter,
		findOptions(opts, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, 0, err
	}

	var docs []contentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	items := make([]domain.Content, len(docs))
	for i, d := range docs {
		n, err := r.commentCount(ctx, d.ID)
		if err != nil {
			return nil, 0, err
		}
		items[i] = d.toDomain(n)
	}
	return items, int(total), nil
}

// ToggleLike flips membership with a single pipeline update so concurrent
// toggles by different users never lose each other's changes.
func (r *contentRepo) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	inSet := bson.D{{Key: "$in", Value: bson.A{userID, "$likedBy"}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "likedBy", Value: bson.D{{Key: "$cond", Value: bson.A{
			inSet,
			bson.D{{Key: "$setDifference", Value: bson.A{"$likedBy", bson.A{userID}}}},
			bson.D{{Key: "$concatArrays", Value: bson.A{"$likedBy", bson.A{userID}}}},
		}}}}}}},
	}

	var doc contentDocument
	err := r.c.FindOneAndUpdate(ctx, r.byID(id), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return false, mapNotFound(err)
	}

	return slices.Contains(doc.LikedBy, userID), nil
}

func (r *contentRepo) AddShare(ctx context.Context, id, userID string) error {
	res, err := r.c.UpdateOne(ctx, r.byID(id),
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "sharedBy", Value: userID}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
