package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/ticketr/internal/model"
)

// Recorder persists chat turns. *repository.ChatRepo satisfies it.
type Recorder interface {
	Create(ctx context.Context, c *model.ChatRecord) error
}

// Turn is a finished exchange ready to be logged.
type Turn struct {
	UserID  *uint64
	Message string
	Reply   Reply
}

// Record stores turn on its own goroutine and returns immediately. The
// returned channel yields exactly one value (nil on success) and is then
// closed. The write runs detached from ctx cancellation, bounded by timeout.
func Record(ctx context.Context, rec Recorder, turn Turn, timeout time.Duration) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		errc <- record(context.WithoutCancel(ctx), rec, turn, timeout)
	}()
	return errc
}

func record(ctx context.Context, rec Recorder, turn Turn, timeout time.Duration) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("chat record panicked: %v", p)
		}
	}()
	if rec == nil {
		return errors.New("no chat recorder configured")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c := &model.ChatRecord{
		UserID:   turn.UserID,
		Message:  turn.Message,
		Response: turn.Reply.Response,
	}
	if len(turn.Reply.Events) > 0 {
		id := turn.Reply.Events[0].ID
		c.RecommendedEventID = &id
	}
	if err := rec.Create(ctx, c); err != nil {
		return fmt.Errorf("record chat turn: %w", err)
	}
	return nil
}
