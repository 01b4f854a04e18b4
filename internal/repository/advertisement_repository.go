package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticketr/internal/model"
)

const adColumns = "advertisement_id, advertiser_name, advertisement_type, event_id, start_date, end_date, cost, status"

type AdvertisementRepo struct{ db *sql.DB }

func NewAdvertisementRepo(db *sql.DB) *AdvertisementRepo { return &AdvertisementRepo{db: db} }

func scanAdvertisement(s rowScanner) (model.Advertisement, error) {
	var a model.Advertisement
	err := s.Scan(&a.ID, &a.AdvertiserName, &a.Type, &a.EventID, &a.StartDate, &a.EndDate, &a.Cost, &a.Status)
	return a, err
}

func (r *AdvertisementRepo) Create(ctx context.Context, a *model.Advertisement) error {
	id, err := insertID(ctx, r.db,
		`INSERT INTO ADVERTISEMENTS (advertiser_name, advertisement_type, event_id, start_date, end_date, cost, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.AdvertiserName, a.Type, a.EventID, a.StartDate, a.EndDate, a.Cost, a.Status)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *AdvertisementRepo) GetByID(ctx context.Context, id uint64) (model.Advertisement, error) {
	return queryOne(ctx, r.db, scanAdvertisement, ErrAdvertisementNotFound,
		"SELECT "+adColumns+" FROM ADVERTISEMENTS WHERE advertisement_id = ?", id)
}

func (r *AdvertisementRepo) List(ctx context.Context) ([]model.Advertisement, error) {
	return queryAll(ctx, r.db, scanAdvertisement,
		"SELECT "+adColumns+" FROM ADVERTISEMENTS ORDER BY advertisement_id")
}

// ListByEvent returns the advertisements promoting one event.
func (r *AdvertisementRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Advertisement, error) {
	return queryAll(ctx, r.db, scanAdvertisement,
		"SELECT "+adColumns+" FROM ADVERTISEMENTS WHERE event_id = ? ORDER BY advertisement_id", eventID)
}

func (r *AdvertisementRepo) Update(ctx context.Context, a *model.Advertisement) error {
	return updateOne(ctx, r.db, "SELECT 1 FROM ADVERTISEMENTS WHERE advertisement_id = ?", a.ID, ErrAdvertisementNotFound,
		`UPDATE ADVERTISEMENTS SET advertiser_name = ?, advertisement_type = ?, event_id = ?, start_date = ?,
			end_date = ?, cost = ?, status = ?
		 WHERE advertisement_id = ?`,
		a.AdvertiserName, a.Type, a.EventID, a.StartDate, a.EndDate, a.Cost, a.Status, a.ID)
}

func (r *AdvertisementRepo) Delete(ctx context.Context, id uint64) error {
	return deleteOne(ctx, r.db, ErrAdvertisementNotFound, "DELETE FROM ADVERTISEMENTS WHERE advertisement_id = ?", id)
}
