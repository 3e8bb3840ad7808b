package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, first_name, last_name, username, email, phone, password_hash, role,
	image_kind, image_path, image_url, image_provider_id, created_at, updated_at`

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                                   domain.User
		role                                string
		imgKind, imgPath, imgURL, imgProvID string
		created, updated                    int64
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.Phone,
		&u.PasswordHash, &role, &imgKind, &imgPath, &imgURL, &imgProvID, &created, &updated)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.Image = mapImage(imgKind, imgPath, imgURL, imgProvID)
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}

func (r *usersRepo) getOne(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `username = ?`, username)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	created := nowOr(u.CreatedAt)
	imgKind, imgPath, imgURL, imgProvID := imageColumns(u.Image)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Username, u.Email, u.Phone, u.PasswordHash, string(u.Role),
		imgKind, imgPath, imgURL, imgProvID, toMillis(created), toMillis(nowOr(u.UpdatedAt)),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	imgKind, imgPath, imgURL, imgProvID := imageColumns(u.Image)
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users SET
			first_name = ?, last_name = ?, username = ?, email = ?, phone = ?,
			password_hash = ?, role = ?,
			image_kind = ?, image_path = ?, image_url = ?, image_provider_id = ?,
			updated_at = ?
		WHERE id = ?`,
		u.FirstName, u.LastName, u.Username, u.Email, u.Phone, u.PasswordHash, string(u.Role),
		imgKind, imgPath, imgURL, imgProvID, toMillis(nowOr(u.UpdatedAt)), u.ID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
}

func (r *usersRepo) ListUsers(ctx context.Context, opts store.ListOptions) ([]domain.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := limitOffset(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
