package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/ticketr/internal/config"
	"github.com/iliyamo/ticketr/internal/metrics"
	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/recommend"
	"github.com/iliyamo/ticketr/internal/repository"
)

// ChatHandler serves /api/chats: the recommendation endpoint and the chat log.
type ChatHandler struct {
	Cfg         config.Config
	Chats       *repository.ChatRepo
	Recommender *recommend.Recommender
	Recorder    recommend.Recorder
	Log         zerolog.Logger
}

func NewChatHandler(cfg config.Config, chats *repository.ChatRepo, rec *recommend.Recommender, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{Cfg: cfg, Chats: chats, Recommender: rec, Recorder: chats, Log: log}
}

type chatReq struct {
	Message string  `json:"message"`
	UserID  *uint64 `json:"user_id"`
	Context string  `json:"context"`
}

type chatRecordReq struct {
	UserID             *uint64 `json:"user_id"`
	Message            string  `json:"message" validate:"required"`
	Response           string  `json:"response" validate:"required"`
	RecommendedEventID *uint64 `json:"recommended_event_id"`
}

func (r chatRecordReq) model(id uint64) model.ChatRecord {
	return model.ChatRecord{
		ID:                 id,
		UserID:             r.UserID,
		Message:            r.Message,
		Response:           r.Response,
		RecommendedEventID: r.RecommendedEventID,
	}
}

// Chat answers a free-text question with event suggestions. It always
// answers 200 once the message is present: the matcher degrades to an
// apology instead of failing, and logging the turn happens in the
// background without touching the response.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "message is required")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	reply := h.Recommender.Recommend(ctx, recommend.Request{Message: req.Message, Context: req.Context})

	errc := recommend.Record(c.Request().Context(), h.Recorder, recommend.Turn{
		UserID:  req.UserID,
		Message: req.Message,
		Reply:   reply,
	}, h.Cfg.ChatLogTimeout)
	go func() {
		if err := <-errc; err != nil {
			metrics.ChatRecordFailures.Inc()
			h.Log.Warn().Err(err).Msg("chat turn not recorded")
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"response":           reply.Response,
		"recommended_events": reply.Events,
		"message":            "Chat processed successfully",
	})
}

// CreateRecord inserts a chat row as given, without running the matcher.
func (h *ChatHandler) CreateRecord(c echo.Context) error {
	var req chatRecordReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	rec := req.model(0)
	if err := h.Chats.Create(ctx, &rec); err != nil {
		return serverError(c, h.Log, err, "failed to create chat")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Chat created successfully", "chat_id": rec.ID})
}

func (h *ChatHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	chats, err := h.Chats.List(ctx)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list chats")
	}
	return c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid chat id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	rec, err := h.Chats.GetByID(ctx, id)
	if errors.Is(err, repository.ErrChatNotFound) {
		return notFound(c, "Chat not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to load chat")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *ChatHandler) ListByUser(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	chats, err := h.Chats.ListByUser(ctx, userID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list chats")
	}
	return c.JSON(http.StatusOK, chats)
}

// ListByRecommendedEvent returns the turns that suggested :event_id.
func (h *ChatHandler) ListByRecommendedEvent(c echo.Context) error {
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	chats, err := h.Chats.ListByRecommendedEvent(ctx, eventID)
	if err != nil {
		return serverError(c, h.Log, err, "failed to list chats")
	}
	return c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid chat id")
	}
	var req chatRecordReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	rec := req.model(id)
	err := h.Chats.Update(ctx, &rec)
	if errors.Is(err, repository.ErrChatNotFound) {
		return notFound(c, "Chat not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to update chat")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Chat updated successfully"})
}

func (h *ChatHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid chat id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Chats.Delete(ctx, id)
	if errors.Is(err, repository.ErrChatNotFound) {
		return notFound(c, "Chat not found")
	}
	if err != nil {
		return serverError(c, h.Log, err, "failed to delete chat")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Chat deleted successfully"})
}
