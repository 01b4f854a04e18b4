package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticketr/internal/model"
)

const chatColumns = "chat_id, user_id, message, response, recommended_event_id"

// ChatRepo stores chat turns in CHAT_HISTORY. Its Create method is what the
// recommender's best-effort recorder calls.
type ChatRepo struct{ db *sql.DB }

func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{db: db} }

func scanChat(s rowScanner) (model.ChatRecord, error) {
	var c model.ChatRecord
	err := s.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.RecommendedEventID)
	return c, err
}

func (r *ChatRepo) Create(ctx context.Context, c *model.ChatRecord) error {
	id, err := insertID(ctx, r.db,
		"INSERT INTO CHAT_HISTORY (user_id, message, response, recommended_event_id) VALUES (?, ?, ?, ?)",
		c.UserID, c.Message, c.Response, c.RecommendedEventID)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *ChatRepo) GetByID(ctx context.Context, id uint64) (model.ChatRecord, error) {
	return queryOne(ctx, r.db, scanChat, ErrChatNotFound,
		"SELECT "+chatColumns+" FROM CHAT_HISTORY WHERE chat_id = ?", id)
}

func (r *ChatRepo) List(ctx context.Context) ([]model.ChatRecord, error) {
	return queryAll(ctx, r.db, scanChat, "SELECT "+chatColumns+" FROM CHAT_HISTORY ORDER BY chat_id")
}

func (r *ChatRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ChatRecord, error) {
	return queryAll(ctx, r.db, scanChat,
		"SELECT "+chatColumns+" FROM CHAT_HISTORY WHERE user_id = ? ORDER BY chat_id", userID)
}

// ListByRecommendedEvent returns the turns that pointed at eventID.
func (r *ChatRepo) ListByRecommendedEvent(ctx context.Context, eventID uint64) ([]model.ChatRecord, error) {
	return queryAll(ctx, r.db, scanChat,
		"SELECT "+chatColumns+" FROM CHAT_HISTORY WHERE recommended_event_id = ? ORDER BY chat_id", eventID)
}

func (r *ChatRepo) Update(ctx context.Context, c *model.ChatRecord) error {
	return updateOne(ctx, r.db, "SELECT 1 FROM CHAT_HISTORY WHERE chat_id = ?", c.ID, ErrChatNotFound,
		"UPDATE CHAT_HISTORY SET user_id = ?, message = ?, response = ?, recommended_event_id = ? WHERE chat_id = ?",
		c.UserID, c.Message, c.Response, c.RecommendedEventID, c.ID)
}

func (r *ChatRepo) Delete(ctx context.Context, id uint64) error {
	return deleteOne(ctx, r.db, ErrChatNotFound, "DELETE FROM CHAT_HISTORY WHERE chat_id = ?", id)
}
