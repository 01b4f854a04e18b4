package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/utils"
)

const orgColumns = "org_id, org_name, address, email, password, is_premium"

// OrganizationRepo encapsulates the queries on ORGANIZATIONS.
type OrganizationRepo struct{ db *sql.DB }

func NewOrganizationRepo(db *sql.DB) *OrganizationRepo { return &OrganizationRepo{db: db} }

func scanOrganization(s rowScanner) (model.Organization, error) {
	var o model.Organization
	var hash sql.NullString
	err := s.Scan(&o.ID, &o.Name, &o.Address, &o.Email, &hash, &o.IsPremium)
	o.PasswordHash = hash.String
	return o, err
}

// Create hashes password, inserts the organization and fills o.ID.
func (r *OrganizationRepo) Create(ctx context.Context, o *model.Organization, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	o.Email = normalizeEmail(o.Email)
	id, err := insertID(ctx, r.db,
		"INSERT INTO ORGANIZATIONS (org_name, address, email, password, is_premium) VALUES (?, ?, ?, ?, ?)",
		o.Name, o.Address, o.Email, hash, o.IsPremium)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	o.ID, o.PasswordHash = id, hash
	return nil
}

func (r *OrganizationRepo) GetByID(ctx context.Context, id uint64) (model.Organization, error) {
	return queryOne(ctx, r.db, scanOrganization, ErrOrganizationNotFound,
		"SELECT "+orgColumns+" FROM ORGANIZATIONS WHERE org_id = ?", id)
}

func (r *OrganizationRepo) GetByEmail(ctx context.Context, email string) (model.Organization, error) {
	return queryOne(ctx, r.db, scanOrganization, ErrOrganizationNotFound,
		"SELECT "+orgColumns+" FROM ORGANIZATIONS WHERE email = ? LIMIT 1", normalizeEmail(email))
}

func (r *OrganizationRepo) List(ctx context.Context) ([]model.Organization, error) {
	return queryAll(ctx, r.db, scanOrganization, "SELECT "+orgColumns+" FROM ORGANIZATIONS ORDER BY org_id")
}

// Update replaces the profile fields; the hash changes only when password is
// non-empty.
func (r *OrganizationRepo) Update(ctx context.Context, o *model.Organization, password string, cost int) error {
	o.Email = normalizeEmail(o.Email)
	q := "UPDATE ORGANIZATIONS SET org_name = ?, address = ?, email = ?, is_premium = ? WHERE org_id = ?"
	args := []any{o.Name, o.Address, o.Email, o.IsPremium, o.ID}
	if password != "" {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return err
		}
		q = "UPDATE ORGANIZATIONS SET org_name = ?, address = ?, email = ?, is_premium = ?, password = ? WHERE org_id = ?"
		args = []any{o.Name, o.Address, o.Email, o.IsPremium, hash, o.ID}
		o.PasswordHash = hash
	}
	err := updateOne(ctx, r.db, "SELECT 1 FROM ORGANIZATIONS WHERE org_id = ?", o.ID, ErrOrganizationNotFound, q, args...)
	if isDuplicateKey(err) {
		return ErrEmailExists
	}
	return err
}

func (r *OrganizationRepo) Delete(ctx context.Context, id uint64) error {
	return deleteOne(ctx, r.db, ErrOrganizationNotFound, "DELETE FROM ORGANIZATIONS WHERE org_id = ?", id)
}
