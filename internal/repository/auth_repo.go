package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"brewlog/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, is_guest) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, is_guest, is_admin FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password_hash, is_guest, is_admin FROM users WHERE id = ?`
	promoteUserSQL          = `UPDATE users SET username = ?, password_hash = ?, is_guest = 0 WHERE id = ? AND is_guest = 1`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(username, passwordHash string, isGuest bool) (int, error) {
	res, err := r.db.Exec(insertUserSQL, username, passwordHash, isGuest)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsGuest, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByIDSQL, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsGuest, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return &u, nil
}

// Promote turns a guest account into a registered one, keeping the row
// id so all owned data stays attached.
func (r *UserRepository) Promote(id int, username, passwordHash string) error {
	res, err := r.db.Exec(promoteUserSQL, username, passwordHash, id)
	if err != nil {
		return fmt.Errorf("promote user id=%d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("promote user id=%d rows affected: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
