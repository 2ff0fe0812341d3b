package session

import (
	"strconv"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/metrics"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/notify"
)

// DefaultHours is the initial length of the hourly strip.
const DefaultHours = 4

// ViewState is everything needed to re-render without refetching.
type ViewState struct {
	City    *models.Location
	Payload *models.ForecastPayload
	Day     int
	Hours   int
}

// View is the rendered result of a ViewState.
type View struct {
	City          models.Location           `json:"city"`
	Name          string                    `json:"name"`
	Snapshot      forecast.Snapshot         `json:"snapshot"`
	Condition     forecast.WeatherCondition `json:"condition"`
	Palette       *forecast.Palette         `json:"palette,omitempty"`
	Hourly        []forecast.HourSlot       `json:"hourly"`
	Alerts        forecast.AlertResult      `json:"alerts"`
	Notifications []notify.Notification     `json:"notifications,omitempty"`
	Days          []forecast.DayTab         `json:"days"`
	Day           int                       `json:"day"`
	Hours         int                       `json:"hours"`
	Timezone      string                    `json:"timezone,omitempty"`
	Favorite      bool                      `json:"favorite"`
}

// BuildView renders state. Alerts always look DefaultAlertHorizon hours
// from the start of the selected day, whatever the strip length.
func BuildView(state ViewState) (View, error) {
	if state.City == nil || state.Payload == nil {
		return View{}, ErrNoCity
	}
	if state.Hours < 1 {
		return View{}, ErrInvalidWindow
	}

	start, err := forecast.DayStartIndex(state.Day)
	if err != nil {
		return View{}, err
	}
	snap, err := forecast.SnapshotFor(state.Payload, state.Day)
	if err != nil {
		return View{}, err
	}

	p := state.Payload
	alerts := forecast.Evaluate(p.Hourly, start, forecast.DefaultAlertHorizon)
	recordAlerts(alerts)

	v := View{
		City:      *state.City,
		Name:      state.City.DisplayName(),
		Snapshot:  snap,
		Condition: forecast.ConditionFor(snap.WeatherCode),
		Hourly:    forecast.HourlySlice(p.Hourly, start, state.Hours),
		Alerts:    alerts,
		Days:      forecast.DayTabs(p.Daily),
		Day:       state.Day,
		Hours:     state.Hours,
		Timezone:  p.Timezone,
	}
	if notify.ShouldDispatch(state.Day) {
		v.Notifications = notify.ForAlerts(v.Name, alerts)
	}
	return v, nil
}

func recordAlerts(r forecast.AlertResult) {
	metrics.AlertsEvaluated.WithLabelValues(notify.TypeRain, strconv.FormatBool(r.RainAlert)).Inc()
	metrics.AlertsEvaluated.WithLabelValues(notify.TypeTemperature, strconv.FormatBool(r.TempAlert)).Inc()
}
