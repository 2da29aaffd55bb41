// Package users stores user identities and their access roles.
package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
)

// Role is the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account known to the break-glass system.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Authorized bool      `json:"authorized"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store manages persistence of users and roles.
type Store struct {
	db *db.DB
}

// NewStore creates a new user store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a user. Existing rows with the same ID are replaced.
func (s *Store) Create(ctx context.Context, u User) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, name, email, role, authorized) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Role, u.Authorized)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetByID retrieves a user. Returns nil (no error) when the user is unknown.
func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	var authorized int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, authorized, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &authorized, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.Authorized = authorized != 0
	return &u, nil
}

// List returns all users ordered by creation time.
func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, role, authorized, created_at FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var authorized int
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &authorized, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Authorized = authorized != 0
		out = append(out, u)
	}
	return out, rows.Err()
}

// RoleForUser returns the role of the given user, defaulting to RoleUser
// for unknown ids.
func (s *Store) RoleForUser(ctx context.Context, id string) (Role, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u == nil {
		return RoleUser, nil
	}
	return u.Role, nil
}

// IsAuthorized reports whether the user is cleared to use the system at all.
// Unknown users are not authorized.
func (s *Store) IsAuthorized(ctx context.Context, id string) (bool, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u != nil && u.Authorized, nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *Store) IsAdmin(ctx context.Context, id string) (bool, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u != nil && u.Role == RoleAdmin, nil
}
