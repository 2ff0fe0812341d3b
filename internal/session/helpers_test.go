package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/notify"
	"github.com/lox/altus/internal/openmeteo"
)

var (
	paris = models.Location{Name: "Paris", Admin1: "Île-de-France", Country: "France", Latitude: 48.85341, Longitude: 2.3488}
	lyon  = models.Location{Name: "Lyon", Admin1: "Auvergne-Rhône-Alpes", Country: "France", Latitude: 45.74846, Longitude: 4.84671}
)

// coolPayload is a dry 7-day forecast at 5°C everywhere.
func coolPayload() *models.ForecastPayload {
	n := forecast.ForecastDays * forecast.HoursPerDay
	h := models.HourlySeries{
		Time:        make([]string, n),
		Temperature: make([]float64, n),
		WeatherCode: make([]int, n),
	}
	for i := 0; i < n; i++ {
		h.Time[i] = fmt.Sprintf("2026-10-%02dT%02d:00", 14+i/24, i%24)
		h.Temperature[i] = 5
		h.WeatherCode[i] = 3
	}
	d := models.DailySeries{}
	for i := 0; i < forecast.ForecastDays; i++ {
		d.Time = append(d.Time, fmt.Sprintf("2026-10-%02d", 14+i))
		d.WeatherCode = append(d.WeatherCode, 3)
		d.TempMax = append(d.TempMax, 8)
		d.TempMin = append(d.TempMin, 2)
	}
	return &models.ForecastPayload{
		Timezone: "Europe/Paris",
		Current:  models.CurrentConditions{Temperature: 6, ApparentTemperature: 4, HumidityPercent: 90, WindSpeed: 20, WeatherCode: 3},
		Hourly:   h,
		Daily:    d,
	}
}

type fakeResolver struct {
	results map[string][]models.Location
	err     error
	calls   []int
}

func (f *fakeResolver) Resolve(_ context.Context, query string, maxResults int) ([]models.Location, error) {
	f.calls = append(f.calls, maxResults)
	if f.err != nil {
		return nil, fmt.Errorf("%w: %w", openmeteo.ErrGeocodingUnavailable, f.err)
	}
	return f.results[query], nil
}

type fakeFetcher struct {
	mu       sync.Mutex
	payloads map[float64]*models.ForecastPayload
	err      error
	calls    int
}

func (f *fakeFetcher) Fetch(_ context.Context, lat, _ float64) (*models.ForecastPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, fmt.Errorf("%w: %w", openmeteo.ErrForecastUnavailable, f.err)
	}
	if p, ok := f.payloads[lat]; ok {
		return p, nil
	}
	return coolPayload(), nil
}

type fakeFavorites struct {
	favs []models.Favorite
}

func (f *fakeFavorites) Favorites() ([]models.Favorite, error) { return f.favs, nil }

func (f *fakeFavorites) IsFavorite(name string) (bool, error) {
	for _, fav := range f.favs {
		if fav.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavorites) ToggleFavorite(fav models.Favorite) (bool, error) {
	for i, existing := range f.favs {
		if existing.Name == fav.Name {
			f.favs = append(f.favs[:i], f.favs[i+1:]...)
			return false, nil
		}
	}
	f.favs = append(f.favs, fav)
	return true, nil
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []notify.Notification

	// alerts is the dispatcher delivering to this notifier; count waits
	// for it so background deliveries are observed.
	alerts *notify.Dispatcher
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.alerts.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

// blockingNotifier holds every delivery until release is closed or the
// delivery context ends.
type blockingNotifier struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once

	mu     sync.Mutex
	ctxErr error
}

func newBlockingNotifier() *blockingNotifier {
	return &blockingNotifier{release: make(chan struct{}), started: make(chan struct{})}
}

func (b *blockingNotifier) err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctxErr
}

func (b *blockingNotifier) Notify(ctx context.Context, _ notify.Notification) error {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		b.mu.Lock()
		b.ctxErr = ctx.Err()
		b.mu.Unlock()
		return ctx.Err()
	}
}

var errBoom = errors.New("boom")
