package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

// ctxNotifier blocks until its context ends and reports why.
type ctxNotifier struct {
	err error
}

func (c *ctxNotifier) Notify(ctx context.Context, _ Notification) error {
	<-ctx.Done()
	c.err = ctx.Err()
	return c.err
}

func TestDispatcher_Send(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	tests := []struct {
		name      string
		notifier  *recordingNotifier
		notes     []Notification
		wantCount int
		wantLog   string
	}{
		{
			name:      "delivers",
			notifier:  &recordingNotifier{},
			notes:     []Notification{{Tag: "weather-rain-Nantes", Type: TypeRain}},
			wantCount: 1,
		},
		{
			name:      "nothing to send",
			notifier:  &recordingNotifier{},
			wantCount: 0,
		},
		{
			name:      "failure is logged",
			notifier:  &recordingNotifier{err: errors.New("refused")},
			notes:     []Notification{{Tag: "weather-rain-Nantes", Type: TypeRain}},
			wantCount: 1,
			wantLog:   "notify: notifications for Nantes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			d := NewDispatcher(tt.notifier, time.Second)
			d.Send(context.Background(), "Nantes", tt.notes)
			d.Wait()
			if len(tt.notifier.got) != tt.wantCount {
				t.Errorf("delivered %d, want %d", len(tt.notifier.got), tt.wantCount)
			}
			if tt.wantLog != "" && !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log %q missing %q", buf.String(), tt.wantLog)
			}
		})
	}
}

func TestDispatcher_DetachedFromCaller(t *testing.T) {
	n := &ctxNotifier{}
	d := NewDispatcher(n, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	d.Send(ctx, "Nantes", []Notification{{Tag: "weather-rain-Nantes", Type: TypeRain}})
	cancel()
	d.Wait()

	if !errors.Is(n.err, context.DeadlineExceeded) {
		t.Errorf("delivery ended with %v, want the dispatcher deadline", n.err)
	}
}

func TestDispatcher_Nil(t *testing.T) {
	var d *Dispatcher
	d.Send(context.Background(), "Nantes", []Notification{{Tag: "x"}})
	d.Wait()
}
