package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
)

type contentRepo struct {
	db   *sql.DB
	kind domain.Kind
}

// Membership sets and the comment count are folded into the row so listing
// never issues a query per entry.
const contentSelect = `
	SELECT c.id, c.kind, c.title, c.body,
		c.image_kind, c.image_path, c.image_url, c.image_provider_id,
		c.author_id, c.categories, c.created_at, c.updated_at,
		(SELECT json_group_array(l.user_id) FROM content_likes l WHERE l.content_id = c.id),
		(SELECT json_group_array(s.user_id) FROM content_shares s WHERE s.content_id = c.id),
		(SELECT COUNT(*) FROM comments m WHERE m.blog_id = c.id)
	FROM content c`

func scanContent(row rowScanner) (domain.Content, error) {
	var (
		c                                   domain.Content
		kind, categories, likes, shares     string
		imgKind, imgPath, imgURL, imgProvID string
		created, updated                    int64
	)
	err := row.Scan(&c.ID, &kind, &c.Title, &c.Body,
		&imgKind, &imgPath, &imgURL, &imgProvID,
		&c.AuthorID, &categories, &created, &updated,
		&likes, &shares, &c.CommentCount)
	if err != nil {
		return domain.Content{}, err
	}
	c.Kind = domain.Kind(kind)
	c.Image = mapImage(imgKind, imgPath, imgURL, imgProvID)
	c.Categories = decodeStrings(categories)
	c.LikedBy = decodeStrings(likes)
	c.SharedBy = decodeStrings(shares)
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}

func (r *contentRepo) GetContent(ctx context.Context, id string) (domain.Content, error) {
	row := r.db.QueryRowContext(ctx, contentSelect+` WHERE c.id = ? AND c.kind = ?`, id, string(r.kind))
	c, err := scanContent(row)
	if err != nil {
		return domain.Content{}, mapNotFound(err)
	}
	return c, nil
}

func (r *contentRepo) CreateContent(ctx context.Context, c domain.Content) error {
	categories, err := encodeStrings(c.Categories)
	if err != nil {
		return err
	}
	imgKind, imgPath, imgURL, imgProvID := imageColumns(c.Image)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO content (id, kind, title, body,
			image_kind, image_path, image_url, image_provider_id,
			author_id, categories, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(r.kind), c.Title, c.Body,
		imgKind, imgPath, imgURL, imgProvID,
		c.AuthorID, categories, toMillis(nowOr(c.CreatedAt)), toMillis(nowOr(c.UpdatedAt)),
	)
	return mapConstraint(err)
}

func (r *contentRepo) UpdateContent(ctx context.Context, c domain.Content) error {
	categories, err := encodeStrings(c.Categories)
	if err != nil {
		return err
	}
	imgKind, imgPath, imgURL, imgProvID := imageColumns(c.Image)
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE content SET
			title = ?, body = ?,
			image_kind = ?, image_path = ?, image_url = ?, image_provider_id = ?,
			categories = ?, updated_at = ?
		WHERE id = ? AND kind = ?`,
		c.Title, c.Body, imgKind, imgPath, imgURL, imgProvID,
		categories, toMillis(nowOr(c.UpdatedAt)), c.ID, string(r.kind),
	))
}

func (r *contentRepo) DeleteContent(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM content WHERE id = ? AND kind = ?`, id, string(r.kind)))
}

func (r *contentRepo) ListContent(ctx context.Context, opts store.ListOptions) ([]domain.Content, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE kind = ?`, string(r.kind)).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(opts)
	rows, err := r.db.QueryContext(ctx,
		contentSelect+` WHERE c.kind = ? ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`,
		string(r.kind), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []domain.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *contentRepo) ToggleLike(ctx context.Context, id, userID string) (liked bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.exists(ctx, tx, id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM content_likes WHERE content_id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO content_likes (content_id, user_id, created_at) VALUES (?, ?, ?)`,
			id, userID, toMillis(time.Now()))
		if err != nil {
			return false, mapConstraint(err)
		}
	}

	return removed == 0, tx.Commit()
}

func (r *contentRepo) AddShare(ctx context.Context, id, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.exists(ctx, tx, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO content_shares (content_id, user_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT (content_id, user_id) DO NOTHING`,
		id, userID, toMillis(time.Now()))
	if err != nil {
		return mapConstraint(err)
	}
	return tx.Commit()
}

func (r *contentRepo) exists(ctx context.Context, tx *sql.Tx, id string) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM content WHERE id = ? AND kind = ?`, id, string(r.kind)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
