package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/utils"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

var eventCols = []string{
	"event_id", "org_id", "event_name", "event_date", "location", "max_attendees",
	"ticket_price", "event_category", "event_status", "is_sponsored", "sponsor_name",
	"vip_access_time", "general_access_time",
}

func TestUserCreateHashesAndNormalizesEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q("INSERT INTO USERS (user_name, email, password, is_vip)")).
		WithArgs("Ana", "ana@example.com", sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(7, 1))

	u := model.User{Name: "Ana", Email: "  Ana@Example.com ", IsVIP: true}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), &u, "s3cret", bcrypt.MinCost))

	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "s3cret"))
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q("INSERT INTO USERS")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	u := model.User{Name: "Ana", Email: "ana@example.com"}
	err := NewUserRepo(db).Create(context.Background(), &u, "s3cret", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM USERS WHERE email = ?")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name", "email", "password", "is_vip"}))

	_, err := NewUserRepo(db).GetByEmail(context.Background(), "Nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateWithoutPasswordKeepsHash(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q("UPDATE USERS SET user_name = ?, email = ?, is_vip = ? WHERE user_id = ?")).
		WithArgs("Ana", "ana@example.com", false, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := model.User{ID: 3, Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, NewUserRepo(db).Update(context.Background(), &u, "", bcrypt.MinCost))
	assert.Empty(t, u.PasswordHash)
}

func TestUpdateDistinguishesUnchangedFromMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPaymentRepo(db)
	p := model.Payment{ID: 4, UserID: 1, Amount: decimal.NewFromInt(10), PlatformFee: decimal.NewFromInt(1), PaymentMethod: "card"}

	mock.ExpectExec(q("UPDATE PAYMENTS")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q("SELECT 1 FROM PAYMENTS WHERE payment_id = ?")).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	assert.NoError(t, repo.Update(context.Background(), &p))

	mock.ExpectExec(q("UPDATE PAYMENTS")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q("SELECT 1 FROM PAYMENTS WHERE payment_id = ?")).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	assert.ErrorIs(t, repo.Update(context.Background(), &p), ErrPaymentNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q("DELETE FROM ADVERTISEMENTS WHERE advertisement_id = ?")).WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, NewAdvertisementRepo(db).Delete(context.Background(), 9), ErrAdvertisementNotFound)
}

func TestSearchUpcomingAppliesFiltersConjunctively(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2025, time.August, 5, 19, 30, 0, 0, time.UTC)
	mock.ExpectQuery(q("FROM EVENTS WHERE event_status = ? AND ticket_price <= ? AND event_category = ? AND (event_name LIKE ? OR event_name LIKE ?) ORDER BY event_date ASC LIMIT ?")).
		WithArgs("upcoming", "20", "music", "%music%", "%concert%", 10).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(1, 2, "Jazz Concert", at, "Blue Note", nil, "15.00", "music", "upcoming", false, nil, nil, nil))

	price := decimal.NewFromInt(20)
	events, err := NewEventRepo(db).SearchUpcoming(context.Background(), EventSearch{
		Category:     "music",
		NameKeywords: []string{"music", "concert"},
		MaxPrice:     &price,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "Jazz Concert", e.Name)
	assert.True(t, e.Date.Parsed())
	assert.True(t, e.TicketPrice.Equal(decimal.NewFromInt(15)))
	assert.Nil(t, e.MaxAttendees)
	assert.True(t, e.VIPAccessTime.IsZero())
}

func TestSearchUpcomingWithPriceOnly(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM EVENTS WHERE event_status = ? AND ticket_price <= ? ORDER BY event_date ASC LIMIT ?")).
		WithArgs("upcoming", "0", 10).
		WillReturnRows(sqlmock.NewRows(eventCols))

	free := decimal.Zero
	events, err := NewEventRepo(db).SearchUpcoming(context.Background(), EventSearch{MaxPrice: &free})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
}

func TestListUpcoming(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM EVENTS WHERE event_status = ? ORDER BY event_date ASC LIMIT ?")).
		WithArgs("upcoming", 5).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(4, 2, "Open Mic", "next friday", "Cafe", int64(40), "0", "music", "upcoming", false, nil, nil, nil))

	events, err := NewEventRepo(db).ListUpcoming(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Date.Parsed())
	assert.Equal(t, "next friday", events[0].Date.Raw)
	require.NotNil(t, events[0].MaxAttendees)
	assert.Equal(t, int64(40), *events[0].MaxAttendees)
}

func TestEventNullPriceScansAsZero(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM EVENTS WHERE event_id = ?")).WithArgs(6).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(6, 2, "Picnic", nil, "Park", nil, nil, "food", "upcoming", false, nil, nil, nil))

	e, err := NewEventRepo(db).GetByID(context.Background(), 6)
	require.NoError(t, err)
	assert.True(t, e.TicketPrice.IsZero())
	assert.True(t, e.Date.IsZero())
}

func TestEventDeleteCascadesTickets(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM tickets WHERE event_id = ?")).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM EVENTS WHERE event_id = ?")).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, NewEventRepo(db).Delete(context.Background(), 3))
}

func TestEventDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM tickets WHERE event_id = ?")).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q("DELETE FROM EVENTS WHERE event_id = ?")).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, NewEventRepo(db).Delete(context.Background(), 3), ErrEventNotFound)
}

func TestEventCreateNormalizesCategory(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2025, time.May, 1, 18, 0, 0, 0, time.UTC)
	mock.ExpectExec(q("INSERT INTO EVENTS")).
		WithArgs(2, "Expo", at, "Hall", nil, "12.5", "other", "upcoming", false, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(11, 1))

	e := model.Event{OrgID: 2, Name: "Expo", Date: model.NewTimestamp(at), Location: "Hall",
		TicketPrice: decimal.RequireFromString("12.5"), Category: "Opera"}
	require.NoError(t, NewEventRepo(db).Create(context.Background(), &e))
	assert.Equal(t, uint64(11), e.ID)
	assert.Equal(t, model.CategoryOther, e.Category)
	assert.Equal(t, model.EventUpcoming, e.Status)
}

func TestTicketCheckIn(t *testing.T) {
	at := time.Date(2025, time.August, 5, 19, 0, 0, 0, time.UTC)
	update := q("UPDATE tickets SET ticket_status = ?, check_in_time = ? WHERE ticket_id = ? AND ticket_status = ?")
	status := q("SELECT ticket_status FROM tickets WHERE ticket_id = ?")

	t.Run("active", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(update).WithArgs("used", at, 5, "active").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, NewTicketRepo(db).CheckIn(context.Background(), 5, at))
	})
	t.Run("already used", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(status).WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"ticket_status"}).AddRow("used"))
		assert.ErrorIs(t, NewTicketRepo(db).CheckIn(context.Background(), 5, at), ErrConflict)
	})
	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(status).WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"ticket_status"}))
		assert.ErrorIs(t, NewTicketRepo(db).CheckIn(context.Background(), 5, at), ErrTicketNotFound)
	})
}

func TestChatCreateWithoutUser(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(q("INSERT INTO CHAT_HISTORY (user_id, message, response, recommended_event_id)")).
		WithArgs(nil, "hi", "hello", 4).
		WillReturnResult(sqlmock.NewResult(2, 1))

	ev := uint64(4)
	c := model.ChatRecord{Message: "hi", Response: "hello", RecommendedEventID: &ev}
	require.NoError(t, NewChatRepo(db).Create(context.Background(), &c))
	assert.Equal(t, uint64(2), c.ID)
}

func TestListByUserScansRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(q("FROM PAYMENTS WHERE user_id = ? ORDER BY payment_id")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id", "user_id", "amount", "platform_fee", "payment_method"}).
			AddRow(1, 1, "20.00", "1.50", "card").
			AddRow(2, 1, "5.00", "0.25", "paypal"))

	payments, err := NewPaymentRepo(db).ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "1.5", payments[0].PlatformFee.String())
	assert.Equal(t, "paypal", payments[1].PaymentMethod)
}
