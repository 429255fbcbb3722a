package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new user and returns its generated ID.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash, phone string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, phone)
		 VALUES ($1, $2, $3, NULLIF($4, ''))
		 RETURNING id`,
		name, email, passwordHash, phone,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) when no row exists.
func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	var phone sql.NullString
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, phone, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Phone = phone.String
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no row exists.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	var phone sql.NullString
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, phone, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	u.Phone = phone.String
	return &u, nil
}

// EmailExists reports whether a user with the given email already exists.
func (db *DB) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// ListUsers returns one page of users ordered by ID plus the total count.
func (db *DB) ListUsers(ctx context.Context, page, pageSize int) ([]User, int, error) {
	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, password_hash, phone, created_at, updated_at
		 FROM users ORDER BY id
		 LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0, pageSize)
	for rows.Next() {
		var u User
		var phone sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Phone = phone.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// UpdateUser writes the given user's mutable fields and bumps updated_at.
func (db *DB) UpdateUser(ctx context.Context, u *User) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users
		 SET name = $1, email = $2, password_hash = $3, phone = NULLIF($4, ''), updated_at = NOW()
		 WHERE id = $5`,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %d", u.ID)
	}
	return nil
}

// DeleteUser removes a user by ID.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %d", id)
	}
	return nil
}
