package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticketr/internal/model"
)

const paymentColumns = "payment_id, user_id, amount, platform_fee, payment_method"

type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func scanPayment(s rowScanner) (model.Payment, error) {
	var p model.Payment
	err := s.Scan(&p.ID, &p.UserID, &p.Amount, &p.PlatformFee, &p.PaymentMethod)
	return p, err
}

func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	id, err := insertID(ctx, r.db,
		"INSERT INTO PAYMENTS (user_id, amount, platform_fee, payment_method) VALUES (?, ?, ?, ?)",
		p.UserID, p.Amount, p.PlatformFee, p.PaymentMethod)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (model.Payment, error) {
	return queryOne(ctx, r.db, scanPayment, ErrPaymentNotFound,
		"SELECT "+paymentColumns+" FROM PAYMENTS WHERE payment_id = ?", id)
}

func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	return queryAll(ctx, r.db, scanPayment, "SELECT "+paymentColumns+" FROM PAYMENTS ORDER BY payment_id")
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Payment, error) {
	return queryAll(ctx, r.db, scanPayment,
		"SELECT "+paymentColumns+" FROM PAYMENTS WHERE user_id = ? ORDER BY payment_id", userID)
}

func (r *PaymentRepo) Update(ctx context.Context, p *model.Payment) error {
	return updateOne(ctx, r.db, "SELECT 1 FROM PAYMENTS WHERE payment_id = ?", p.ID, ErrPaymentNotFound,
		"UPDATE PAYMENTS SET user_id = ?, amount = ?, platform_fee = ?, payment_method = ? WHERE payment_id = ?",
		p.UserID, p.Amount, p.PlatformFee, p.PaymentMethod, p.ID)
}

func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	return deleteOne(ctx, r.db, ErrPaymentNotFound, "DELETE FROM PAYMENTS WHERE payment_id = ?", id)
}
