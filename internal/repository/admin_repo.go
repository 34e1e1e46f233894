package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdminNotFound = errors.New("admin not found")

type Admin struct {
	ID           string `db:"id"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
}

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	var a Admin
	err := r.db.QueryRow(ctx,
		`SELECT id, password_hash, COALESCE(name, '') FROM admins WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.PasswordHash, &a.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}
