package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"recipebox/internal/models"
)

type AccountSQLite struct {
	db *sql.DB
}

func NewAccountSQLite(db *sql.DB) *AccountSQLite {
	return &AccountSQLite{db: db}
}

var _ Accounts = (*AccountSQLite)(nil)

const (
	insertAccountSQL           = `INSERT INTO accounts (username, password) VALUES (?, ?)`
	selectAccountByUsernameSQL = `SELECT id, username, password FROM accounts WHERE username = ?`
	selectAccountByIDSQL       = `SELECT id, username, password FROM accounts WHERE id = ?`
)

// Create inserts a new account and returns its id.
func (r *AccountSQLite) Create(username, password string) (int, error) {
	res, err := r.db.Exec(insertAccountSQL, username, password)
	if err != nil {
		return 0, fmt.Errorf("insert account %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for account %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches an account by username. Returns (nil, nil) if not found.
func (r *AccountSQLite) GetByUsername(username string) (*models.Account, error) {
	return r.scanOne(r.db.QueryRow(selectAccountByUsernameSQL, username), fmt.Sprintf("username %q", username))
}

// GetByID fetches an account by id. Returns (nil, nil) if not found.
func (r *AccountSQLite) GetByID(id int) (*models.Account, error) {
	return r.scanOne(r.db.QueryRow(selectAccountByIDSQL, id), fmt.Sprintf("id %d", id))
}

func (r *AccountSQLite) scanOne(row *sql.Row, what string) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Username, &a.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select account %s: %w", what, err)
	}
	return &a, nil
}
