package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type CreateParams struct {
	Email    string
	Password string // bcrypt hash, never plaintext
	Role     string
	Name     string
	Address  *string
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, p CreateParams) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users (email, password, role, name, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password, role, name, address`,
		p.Email, p.Password, p.Role, p.Name, p.Address,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.Name, &u.Address)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, password, role, name, address
		FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.Name, &u.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
