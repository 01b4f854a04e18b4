package model

// ChatRecord mirrors a row of CHAT_HISTORY: one chat turn with the reply the
// assistant gave and, optionally, the event it pointed at.
type ChatRecord struct {
	ID                 uint64  `json:"chat_id"`
	UserID             *uint64 `json:"user_id"`
	Message            string  `json:"message"`
	Response           string  `json:"response"`
	RecommendedEventID *uint64 `json:"recommended_event_id"`
}
