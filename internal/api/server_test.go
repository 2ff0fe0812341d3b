package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lox/altus/internal/api"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/notify"
	"github.com/lox/altus/internal/openmeteo"
	"github.com/lox/altus/internal/store"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	if err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	return s
}

// fixturePayload is 7 days of dry weather at 8°C with rain at 02:00 and
// 14°C at 03:00 on the first day.
func fixturePayload() models.ForecastPayload {
	var h models.HourlySeries
	for i := 0; i < 7*24; i++ {
		h.Time = append(h.Time, fmt.Sprintf("2026-10-%02dT%02d:00", 14+i/24, i%24))
		h.Temperature = append(h.Temperature, 8)
		h.WeatherCode = append(h.WeatherCode, 1)
		p := 10
		h.PrecipitationProbability = append(h.PrecipitationProbability, &p)
	}
	h.WeatherCode[2] = 63
	h.Temperature[3] = 14

	var d models.DailySeries
	for i := 0; i < 7; i++ {
		d.Time = append(d.Time, fmt.Sprintf("2026-10-%02d", 14+i))
		d.WeatherCode = append(d.WeatherCode, 1)
		d.TempMax = append(d.TempMax, 12)
		d.TempMin = append(d.TempMin, 4)
	}
	return models.ForecastPayload{
		Latitude:  48.86,
		Longitude: 2.35,
		Timezone:  "Europe/Paris",
		Current: models.CurrentConditions{
			Time: "2026-10-14T00:00", Temperature: 9.4, ApparentTemperature: 7.1,
			HumidityPercent: 76, WindSpeed: 11.2, WeatherCode: 1,
		},
		Hourly: h,
		Daily:  d,
	}
}

type upstream struct {
	geocodeStatus  atomic.Int32
	forecastStatus atomic.Int32
}

func newUpstream(t *testing.T, u *upstream) (geocodeURL, forecastURL string) {
	t.Helper()
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status := u.geocodeStatus.Load(); status != 0 {
			w.WriteHeader(int(status))
			return
		}
		if r.URL.Query().Get("name") != "Paris" {
			io.WriteString(w, `{"generationtime_ms":0.4}`)
			return
		}
		io.WriteString(w, `{"results":[{"name":"Paris","admin1":"Île-de-France","country":"France","latitude":48.85341,"longitude":2.3488}]}`)
	}))
	fc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status := u.forecastStatus.Load(); status != 0 {
			w.WriteHeader(int(status))
			io.WriteString(w, `{"error":true,"reason":"boom"}`)
			return
		}
		json.NewEncoder(w).Encode(fixturePayload())
	}))
	t.Cleanup(geo.Close)
	t.Cleanup(fc.Close)
	return geo.URL, fc.URL
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

type testEnv struct {
	handler  http.Handler
	store    *store.Store
	upstream *upstream
	notes    *recordingNotifier
	alerts   *notify.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	u := &upstream{}
	geoURL, fcURL := newUpstream(t, u)
	st := setupTestStore(t)
	notes := &recordingNotifier{}
	alerts := notify.NewDispatcher(notes, time.Second)

	srv := api.NewServer(
		openmeteo.NewGeocodingClient(http.DefaultClient, geoURL),
		openmeteo.NewForecastClient(http.DefaultClient, fcURL),
		st, alerts, ":0",
	)
	return &testEnv{handler: srv.Handler(), store: st, upstream: u, notes: notes, alerts: alerts}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, target, body string) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, target, w.Body.String(), err)
	}
	return w.Code, env
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	code, env := e.do(t, "GET", "/health", "")
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(string(env.Data), `"status":"ok"`) {
		t.Errorf("health body = %s", env.Data)
	}
}

func TestIndexPage(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	if _, err := e.store.AddFavorite(models.Favorite{Name: "Nice, Provence-Alpes-Côte d'Azur, France", Lat: 43.7, Lon: 7.27}); err != nil {
		t.Fatal(err)
	}
	if err := e.store.SetTheme(models.ThemeDark); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `data-theme="dark"`) {
		t.Error("expected saved dark theme on <html>")
	}
	if !strings.Contains(body, "Nice, Provence-Alpes-Côte d&#39;Azur, France") {
		t.Error("expected favorite in the list")
	}
	for _, h := range []string{`data-hours="4"`, `data-hours="8"`, `data-hours="12"`} {
		if !strings.Contains(body, h) {
			t.Errorf("missing hour toggle %s", h)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	tests := []struct {
		query string
		want  int
	}{
		{"P", 0},
		{"Paris", 1},
		{"Xyzzy", 0},
	}
	for _, tt := range tests {
		code, env := e.do(t, "GET", "/api/suggest?q="+tt.query, "")
		if code != 200 {
			t.Fatalf("suggest %q: status %d", tt.query, code)
		}
		var locs []map[string]any
		if err := json.Unmarshal(env.Data, &locs); err != nil {
			t.Fatalf("suggest %q: %v", tt.query, err)
		}
		if len(locs) != tt.want {
			t.Errorf("suggest %q = %d results, want %d", tt.query, len(locs), tt.want)
		}
	}

	e.upstream.geocodeStatus.Store(http.StatusServiceUnavailable)
	code, env := e.do(t, "GET", "/api/suggest?q=Paris", "")
	if code != 200 || string(env.Data) != "[]" {
		t.Errorf("suggest with geocoder down = %d %s, want 200 []", code, env.Data)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	code, env := e.do(t, "GET", "/api/search?q=Paris", "")
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(string(env.Data), `"display_name":"Paris, Île-de-France, France"`) {
		t.Errorf("search body = %s", env.Data)
	}

	tests := []struct {
		name   string
		query  string
		status int
		msg    string
	}{
		{"empty", "", 400, "Veuillez entrer un nom de ville."},
		{"unknown", "Atlantis", 404, `Ville "Atlantis" non trouvée. Vérifiez l'orthographe.`},
	}
	for _, tt := range tests {
		code, env := e.do(t, "GET", "/api/search?q="+tt.query, "")
		if code != tt.status || env.Error == nil || env.Error.Message != tt.msg {
			t.Errorf("%s: got %d %+v, want %d %q", tt.name, code, env.Error, tt.status, tt.msg)
		}
	}
}

func TestSearch_GeocoderDown(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.upstream.geocodeStatus.Store(http.StatusInternalServerError)

	code, env := e.do(t, "GET", "/api/search?q=Paris", "")
	if code != http.StatusBadGateway || env.Error == nil || env.Error.Message != "Erreur de géocodage" {
		t.Errorf("got %d %+v", code, env.Error)
	}
}

type weatherView struct {
	Name   string `json:"name"`
	Day    int    `json:"day"`
	Hours  int    `json:"hours"`
	Hourly []struct {
		Hour          int  `json:"hour"`
		RainAlert     bool `json:"rain_alert"`
		HighTempAlert bool `json:"high_temp_alert"`
	} `json:"hourly"`
	Alerts struct {
		RainAlert      bool     `json:"rain_alert"`
		RainHourOffset *int     `json:"rain_hour_offset"`
		TempAlert      bool     `json:"temp_alert"`
		HighTemp       *float64 `json:"high_temp"`
	} `json:"alerts"`
	Notifications []notify.Notification `json:"notifications"`
	Days          []struct {
		Label string `json:"label"`
	} `json:"days"`
	Favorite bool `json:"favorite"`
	Palette  *struct {
		Background string `json:"background"`
	} `json:"palette"`
}

func TestWeather_Today(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	code, env := e.do(t, "GET", "/api/weather?lat=48.85341&lon=2.3488&name=Paris,+France&hours=8", "")
	if code != 200 {
		t.Fatalf("expected 200, got %d: %+v", code, env.Error)
	}
	var v weatherView
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatal(err)
	}

	if v.Name != "Paris, France" || v.Day != 0 || v.Hours != 8 || len(v.Hourly) != 8 {
		t.Errorf("view = %q day %d hours %d (%d slots)", v.Name, v.Day, v.Hours, len(v.Hourly))
	}
	if !v.Alerts.RainAlert || *v.Alerts.RainHourOffset != 3 {
		t.Errorf("rain alert = %+v, want in 3h", v.Alerts)
	}
	if !v.Alerts.TempAlert || *v.Alerts.HighTemp != 14 {
		t.Errorf("temp alert = %+v, want 14", v.Alerts)
	}
	if !v.Hourly[2].RainAlert || !v.Hourly[3].HighTempAlert {
		t.Error("hour slots missing alert flags")
	}
	if len(v.Days) != 7 || v.Days[0].Label != "Aujourd'hui" {
		t.Errorf("days = %+v", v.Days)
	}
	if v.Palette == nil || v.Palette.Background == "" {
		t.Error("expected a palette for the current condition")
	}
	if len(v.Notifications) != 2 {
		t.Fatalf("notifications = %+v, want 2", v.Notifications)
	}
	if v.Notifications[0].Tag != "weather-rain-Paris, France" {
		t.Errorf("rain tag = %q", v.Notifications[0].Tag)
	}

	e.alerts.Wait()
	e.notes.mu.Lock()
	sent := len(e.notes.got)
	e.notes.mu.Unlock()
	if sent != 2 {
		t.Errorf("notifier received %d notifications, want 2", sent)
	}
}

func TestWeather_FutureDayDoesNotNotify(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	code, env := e.do(t, "GET", "/api/weather?lat=48.85&lon=2.35&day=3", "")
	if code != 200 {
		t.Fatalf("expected 200, got %d: %+v", code, env.Error)
	}
	var v weatherView
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatal(err)
	}
	if v.Day != 3 || len(v.Hourly) != 4 || v.Hourly[0].Hour != 0 {
		t.Errorf("view day %d with %d slots", v.Day, len(v.Hourly))
	}
	if v.Alerts.RainAlert || v.Alerts.TempAlert || len(v.Notifications) != 0 {
		t.Errorf("unexpected alerts on a dry day: %+v", v)
	}
	e.alerts.Wait()
	e.notes.mu.Lock()
	defer e.notes.mu.Unlock()
	if len(e.notes.got) != 0 {
		t.Errorf("future day sent %d notifications", len(e.notes.got))
	}
}

func TestWeather_BadRequests(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing lat", "lon=2.35", 400},
		{"lat out of range", "lat=91&lon=2.35", 400},
		{"bad lon", "lat=48&lon=east", 400},
		{"day too large", "lat=48&lon=2&day=7", 400},
		{"negative day", "lat=48&lon=2&day=-1", 400},
		{"unsupported window", "lat=48&lon=2&hours=5", 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := e.do(t, "GET", "/api/weather?"+tt.query, "")
			if code != tt.status || env.Error == nil {
				t.Errorf("got %d %+v, want %d", code, env.Error, tt.status)
			}
		})
	}
}

func TestWeather_UpstreamDown(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.upstream.forecastStatus.Store(http.StatusInternalServerError)

	code, env := e.do(t, "GET", "/api/weather?lat=48&lon=2", "")
	if code != http.StatusBadGateway || env.Error == nil {
		t.Fatalf("got %d %+v", code, env.Error)
	}
	if env.Error.Message != "Erreur lors de la récupération des données météo" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestFavorites(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	fav := `{"name":"Paris, Île-de-France, France","lat":48.85341,"lon":2.3488}`
	code, env := e.do(t, "POST", "/api/favorites", fav)
	if code != 200 || !strings.Contains(string(env.Data), `"favorite":true`) {
		t.Fatalf("toggle on = %d %s", code, env.Data)
	}

	code, env = e.do(t, "GET", "/api/weather?lat=48.85341&lon=2.3488&name=Paris,+%C3%8Ele-de-France,+France", "")
	if code != 200 || !strings.Contains(string(env.Data), `"favorite":true`) {
		t.Errorf("weather view favorite flag missing: %d", code)
	}

	code, env = e.do(t, "GET", "/api/favorites", "")
	if code != 200 || !strings.Contains(string(env.Data), `"lat":48.85341`) {
		t.Errorf("list = %d %s", code, env.Data)
	}

	code, _ = e.do(t, "DELETE", "/api/favorites?name=Paris,+%C3%8Ele-de-France,+France", "")
	if code != 200 {
		t.Errorf("delete = %d", code)
	}
	code, _ = e.do(t, "DELETE", "/api/favorites?name=Paris,+%C3%8Ele-de-France,+France", "")
	if code != 404 {
		t.Errorf("second delete = %d, want 404", code)
	}

	code, _ = e.do(t, "POST", "/api/favorites", `{"lat":1}`)
	if code != 400 {
		t.Errorf("nameless favorite = %d, want 400", code)
	}
}

func TestTheme(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	code, env := e.do(t, "GET", "/api/theme", "")
	if code != 200 || string(env.Data) != `{"theme":"light"}` {
		t.Errorf("default theme = %d %s", code, env.Data)
	}
	code, env = e.do(t, "POST", "/api/theme/toggle", "")
	if code != 200 || string(env.Data) != `{"theme":"dark"}` {
		t.Errorf("toggle = %d %s", code, env.Data)
	}
	code, env = e.do(t, "PUT", "/api/theme", `{"theme":"light"}`)
	if code != 200 || string(env.Data) != `{"theme":"light"}` {
		t.Errorf("put = %d %s", code, env.Data)
	}
	code, _ = e.do(t, "PUT", "/api/theme", `{"theme":"sepia"}`)
	if code != 400 {
		t.Errorf("put unknown theme = %d, want 400", code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.do(t, "GET", "/api/search?q=Paris", "")

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "altus_upstream_requests_total") {
		t.Error("expected upstream request counter in metrics output")
	}
}

func TestWeather_FailingWebhookDoesNotDelayResponse(t *testing.T) {
	t.Parallel()
	u := &upstream{}
	geoURL, fcURL := newUpstream(t, u)

	var hits atomic.Int32
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(hook.Close)

	alerts := notify.NewDispatcher(notify.NewWebhookNotifier(hook.URL, http.DefaultClient), 2*time.Second)
	srv := api.NewServer(
		openmeteo.NewGeocodingClient(http.DefaultClient, geoURL),
		openmeteo.NewForecastClient(http.DefaultClient, fcURL),
		setupTestStore(t), alerts, ":0",
	)

	start := time.Now()
	req := httptest.NewRequest("GET", "/api/weather?lat=48.85&lon=2.35&day=0", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("response took %v behind a failing webhook", elapsed)
	}

	alerts.Wait()
	if time.Since(start) > 10*time.Second {
		t.Error("delivery retried past the dispatcher timeout")
	}
	if hits.Load() == 0 {
		t.Error("webhook never called")
	}
}
