package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
)

type messagesRepo struct {
	db *sql.DB
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, user_id, text, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.UserID, m.Text, toMillis(nowOr(m.CreatedAt)))
	return mapConstraint(err)
}

func (r *messagesRepo) DeleteMessage(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id))
}

func (r *messagesRepo) ListMessages(ctx context.Context, opts store.ListOptions) ([]domain.Message, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, text, created_at FROM messages
		ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	msgs := []domain.Message{}
	for rows.Next() {
		var (
			m       domain.Message
			created int64
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Text, &created); err != nil {
			return nil, 0, err
		}
		m.CreatedAt = fromMillis(created)
		msgs = append(msgs, m)
	}
	return msgs, total, rows.Err()
}
