package session

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lox/altus/internal/debounce"
	"github.com/lox/altus/internal/models"
)

// Suggester turns keystrokes into debounced suggestion lookups. Only the
// last input in a burst triggers a lookup; clearing or shortening the input
// cancels the pending one and reports an empty list right away.
type Suggester struct {
	session  *Session
	debounce *debounce.Debouncer
	onResult func(query string, locs []models.Location)
	timeout  time.Duration
}

func NewSuggester(s *Session, delay time.Duration, onResult func(query string, locs []models.Location)) *Suggester {
	return &Suggester{
		session:  s,
		debounce: debounce.New(delay),
		onResult: onResult,
		timeout:  10 * time.Second,
	}
}

// Input records the current contents of the search box.
func (g *Suggester) Input(text string) {
	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < MinSuggestLength {
		g.debounce.Cancel()
		g.onResult(query, nil)
		return
	}

	g.debounce.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()
		g.onResult(query, g.session.Suggest(ctx, query))
	})
}

// Cancel drops a pending lookup.
func (g *Suggester) Cancel() {
	g.debounce.Cancel()
}

// Pending reports whether a lookup is waiting for the input to settle.
func (g *Suggester) Pending() bool {
	return g.debounce.Pending()
}
