package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

type commentsRepo struct {
	db *sql.DB
}

const commentColumns = `id, blog_id, author_id, text, created_at, updated_at`

func scanComment(row rowScanner) (domain.Comment, error) {
	var (
		c                domain.Comment
		created, updated int64
	)
	if err := row.Scan(&c.ID, &c.BlogID, &c.AuthorID, &c.Text, &created, &updated); err != nil {
		return domain.Comment{}, err
	}
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}

func (r *commentsRepo) GetComment(ctx context.Context, id string) (domain.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id))
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

// CreateComment relies on the blog_id foreign key: a missing blog surfaces
// as store.ErrNotFound.
func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (`+commentColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.BlogID, c.AuthorID, c.Text,
		toMillis(nowOr(c.CreatedAt)), toMillis(nowOr(c.UpdatedAt)))
	return mapConstraint(err)
}

func (r *commentsRepo) UpdateComment(ctx context.Context, c domain.Comment) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE comments SET text = ?, updated_at = ? WHERE id = ?`,
		c.Text, toMillis(nowOr(c.UpdatedAt)), c.ID))
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id))
}

func (r *commentsRepo) ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE blog_id = ? ORDER BY created_at, id`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentsRepo) DeleteCommentsByBlog(ctx context.Context, blogID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE blog_id = ?`, blogID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
