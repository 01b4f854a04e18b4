package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/utils"
)

const userColumns = "user_id, user_name, email, password, is_vip"

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func scanUser(s rowScanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsVIP)
	return u, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes password with the given bcrypt cost, inserts the user and
// fills u.ID and u.PasswordHash.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.Email = normalizeEmail(u.Email)
	id, err := insertID(ctx, r.db,
		"INSERT INTO USERS (user_name, email, password, is_vip) VALUES (?, ?, ?, ?)",
		u.Name, u.Email, hash, u.IsVIP)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	u.ID, u.PasswordHash = id, hash
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return queryOne(ctx, r.db, scanUser, ErrUserNotFound,
		"SELECT "+userColumns+" FROM USERS WHERE user_id = ?", id)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return queryOne(ctx, r.db, scanUser, ErrUserNotFound,
		"SELECT "+userColumns+" FROM USERS WHERE email = ? LIMIT 1", normalizeEmail(email))
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	return queryAll(ctx, r.db, scanUser, "SELECT "+userColumns+" FROM USERS ORDER BY user_id")
}

// Update replaces the profile fields of u. The stored hash is only replaced
// when password is non-empty.
func (r *UserRepo) Update(ctx context.Context, u *model.User, password string, cost int) error {
	u.Email = normalizeEmail(u.Email)
	q := "UPDATE USERS SET user_name = ?, email = ?, is_vip = ? WHERE user_id = ?"
	args := []any{u.Name, u.Email, u.IsVIP, u.ID}
	if password != "" {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return err
		}
		q = "UPDATE USERS SET user_name = ?, email = ?, is_vip = ?, password = ? WHERE user_id = ?"
		args = []any{u.Name, u.Email, u.IsVIP, hash, u.ID}
		u.PasswordHash = hash
	}
	err := updateOne(ctx, r.db, "SELECT 1 FROM USERS WHERE user_id = ?", u.ID, ErrUserNotFound, q, args...)
	if isDuplicateKey(err) {
		return ErrEmailExists
	}
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	return deleteOne(ctx, r.db, ErrUserNotFound, "DELETE FROM USERS WHERE user_id = ?", id)
}
