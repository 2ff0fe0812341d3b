package notify

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/metrics"
)

const (
	TypeRain        = "rain"
	TypeTemperature = "temperature"
)

// Notification is one user-facing alert. Tag lets the receiver replace an
// earlier notification of the same type and city instead of stacking.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
	Type  string `json:"type"`
}

// Notifier delivers notifications. Whether delivery is permitted at all
// (permissions, opt-in) is the implementation's concern.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ShouldDispatch reports whether alerts for the selected day are sent.
// Only today's alerts are; other days are displayed without notifying.
func ShouldDispatch(day int) bool {
	return day == 0
}

// ForAlerts builds the notifications for an alert result, rain first.
func ForAlerts(city string, r forecast.AlertResult) []Notification {
	var out []Notification
	if r.RainAlert && r.RainHourOffset != nil {
		out = append(out, newNotification(city, TypeRain, rainBody(*r.RainHourOffset)))
	}
	if r.TempAlert && r.HighTemp != nil {
		out = append(out, newNotification(city, TypeTemperature, tempBody(*r.HighTemp)))
	}
	return out
}

func newNotification(city, typ, body string) Notification {
	return Notification{
		Title: "Altus - " + city,
		Body:  body,
		Tag:   fmt.Sprintf("weather-%s-%s", typ, city),
		Type:  typ,
	}
}

func rainBody(hours int) string {
	unit := "heure"
	if hours > 1 {
		unit = "heures"
	}
	return fmt.Sprintf("🌧️ Pluie prévue dans %d %s !", hours, unit)
}

func tempBody(temp float64) string {
	return fmt.Sprintf("🌡️ Température supérieure à %d°C prévue (%d°C)", int(forecast.TempThreshold), int(math.Round(temp)))
}

// Dispatch sends every notification through n and records the outcome.
// All notifications are attempted; failures are joined.
func Dispatch(ctx context.Context, n Notifier, notes []Notification) error {
	var errs []error
	for _, note := range notes {
		if err := n.Notify(ctx, note); err != nil {
			metrics.NotificationsTotal.WithLabelValues(note.Type, "error").Inc()
			errs = append(errs, fmt.Errorf("notify %s: %w", note.Tag, err))
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(note.Type, "sent").Inc()
	}
	return errors.Join(errs...)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) error { return nil }
