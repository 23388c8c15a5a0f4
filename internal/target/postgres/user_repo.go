package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"confmigrate/internal/domain"
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, secondary_emails, affiliation,
			phone, address, title, timezone, is_admin, is_system, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.Email, pq.Array(u.SecondaryEmails), u.Affiliation,
		u.Phone, u.Address, u.Title, u.Timezone, u.IsAdmin, u.IsSystem, u.IsDeleted,
	).Scan(&u.ID)
}

// CreateWithID inserts a user with an explicit id, used for the id-0 system
// user. The users sequence must be fixed afterwards.
func (r *UserRepository) CreateWithID(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, secondary_emails, affiliation,
			phone, address, title, timezone, is_admin, is_system, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, pq.Array(u.SecondaryEmails), u.Affiliation,
		u.Phone, u.Address, u.Title, u.Timezone, u.IsAdmin, u.IsSystem, u.IsDeleted,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, secondary_emails, affiliation,
			phone, address, title, timezone, is_admin, is_system, is_deleted
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, pq.Array(&u.SecondaryEmails),
		&u.Affiliation, &u.Phone, &u.Address, &u.Title, &u.Timezone,
		&u.IsAdmin, &u.IsSystem, &u.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) MarkSystem(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_system = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, targetID int) error {
	query := `
		INSERT INTO user_favorites (user_id, target_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, targetID)
	return err
}

func (r *UserRepository) CreateIdentity(ctx context.Context, ident *domain.Identity) error {
	query := `
		INSERT INTO identities (user_id, provider, identifier, password_hash, last_login)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		ident.UserID, ident.Provider, ident.Identifier, ident.PasswordHash, ident.LastLogin,
	).Scan(&ident.ID)
}

func (r *UserRepository) CreateGroup(ctx context.Context, g *domain.Group) error {
	query := `
		INSERT INTO groups (name, provider)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, g.Name, g.Provider).Scan(&g.ID)
}

func (r *UserRepository) AddGroupMember(ctx context.Context, groupID, userID int) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	return err
}
