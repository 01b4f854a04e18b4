// Package recommend turns a free-text chat message into event suggestions.
// It derives filters with fixed keyword tables, runs at most one store read
// and renders a short reply. It never fails: store errors and panics become
// an apology with no events.
package recommend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticketr/internal/metrics"
	"github.com/iliyamo/ticketr/internal/model"
	"github.com/iliyamo/ticketr/internal/repository"
)

const (
	searchLimit   = 10
	fallbackLimit = 5
	listedInText  = 3
)

// EventSearcher is the slice of the event store the matcher reads.
// *repository.EventRepo satisfies it.
type EventSearcher interface {
	SearchUpcoming(ctx context.Context, q repository.EventSearch) ([]model.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]model.Event, error)
}

// Request is one chat turn. Context is an optional earlier message used when
// Message alone yields no filter.
type Request struct {
	Message string
	Context string
}

// Suggestion is an event reduced to what the chat client displays.
type Suggestion struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Price     string `json:"price"`
	Attendees *int64 `json:"attendees"`
	Status    string `json:"status"`
}

// Reply is the chat answer: the rendered text and the suggestions behind it.
type Reply struct {
	Response string       `json:"response"`
	Events   []Suggestion `json:"recommended_events"`
}

// Recommender turns a chat message into event suggestions. It never fails;
// store errors and panics become the apology reply.
type Recommender struct {
	events EventSearcher
	log    zerolog.Logger
}

// New returns a Recommender reading from events.
func New(events EventSearcher, log zerolog.Logger) *Recommender {
	return &Recommender{events: events, log: log.With().Str("component", "recommend").Logger()}
}

// Recommend answers req. Events holds at most ten suggestions ordered by
// date; the text lists the first three.
func (r *Recommender) Recommend(ctx context.Context, req Request) (reply Reply) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Msg("recommendation panicked")
			metrics.Recommendations.WithLabelValues("degraded").Inc()
			reply = degraded()
		}
	}()

	f := Analyze(req.Message)
	if f.Empty() && strings.TrimSpace(req.Context) != "" {
		f = Analyze(req.Context)
	}

	var (
		events []model.Event
		err    error
	)
	if f.Empty() {
		events, err = r.events.ListUpcoming(ctx, fallbackLimit)
	} else {
		events, err = r.events.SearchUpcoming(ctx, f.search())
	}
	if err != nil {
		r.log.Warn().Err(err).Str("category", f.Category).Msg("event search failed")
		metrics.Recommendations.WithLabelValues("degraded").Inc()
		return degraded()
	}

	if len(events) > searchLimit {
		events = events[:searchLimit]
	}
	suggestions := make([]Suggestion, 0, len(events))
	for _, e := range events {
		suggestions = append(suggestions, suggest(e))
	}

	outcome := "matched"
	if len(suggestions) == 0 {
		outcome = "empty"
	}
	metrics.Recommendations.WithLabelValues(outcome).Inc()

	return Reply{Response: render(f, suggestions), Events: suggestions}
}

func (f Filters) search() repository.EventSearch {
	q := repository.EventSearch{Category: f.Category, NameKeywords: f.Keywords, Limit: searchLimit}
	if f.MaxPrice != nil {
		bound := decimal.NewFromInt(int64(*f.MaxPrice))
		q.MaxPrice = &bound
	}
	return q
}

func degraded() Reply {
	return Reply{Response: apology, Events: []Suggestion{}}
}
