package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/altus/internal/httputil"
	"github.com/lox/altus/internal/notify"
	"github.com/lox/altus/internal/openmeteo"
	"github.com/lox/altus/internal/session"
	"github.com/lox/altus/internal/store"
)

type Globals struct {
	EnvFile      kongdotenv.ENVFileConfig `kong:"optional,name=env-file,help='Load environment variables from this file.'"`
	DB           string                   `help:"Path to SQLite database." default:"data/altus.db" env:"ALTUS_DB" type:"path"`
	GeocodingURL string                   `help:"Open-Meteo geocoding endpoint." default:"${geocoding_url}" env:"ALTUS_GEOCODING_URL"`
	ForecastURL  string                   `help:"Open-Meteo forecast endpoint." default:"${forecast_url}" env:"ALTUS_FORECAST_URL"`
	WebhookURL   string                   `help:"POST today's weather alerts to this URL." env:"ALTUS_WEBHOOK_URL"`
	Timeout      time.Duration            `help:"Upstream HTTP timeout." default:"30s" env:"ALTUS_TIMEOUT"`
}

type CLI struct {
	Globals

	Serve     ServeCmd     `cmd:"" help:"Run the web interface."`
	Search    SearchCmd    `cmd:"" help:"Show the forecast for a city."`
	Suggest   SuggestCmd   `cmd:"" help:"List cities matching a partial name."`
	Favorites FavoritesCmd `cmd:"" help:"Manage favorite cities."`
	Theme     ThemeCmd     `cmd:"" help:"Show or change the interface theme."`
	Shell     ShellCmd     `cmd:"" help:"Interactive weather lookup."`
}

// App holds the collaborators shared by every command.
type App struct {
	db       *sql.DB
	Store    *store.Store
	Geocoder *openmeteo.GeocodingClient
	Forecast *openmeteo.ForecastClient
	Alerts   *notify.Dispatcher
}

func (g *Globals) open() (*App, error) {
	if dir := filepath.Dir(g.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", g.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	client := httputil.NewClient(g.Timeout)
	notifiers := notify.Multi{notify.LogNotifier{}}
	if g.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(g.WebhookURL, client))
	}

	return &App{
		db:       db,
		Store:    st,
		Geocoder: openmeteo.NewGeocodingClient(client, g.GeocodingURL),
		Forecast: openmeteo.NewForecastClient(client, g.ForecastURL),
		Alerts:   notify.NewDispatcher(notifiers, notify.DefaultDispatchTimeout),
	}, nil
}

func (a *App) Session() *session.Session {
	return session.New(a.Geocoder, a.Forecast, a.Store, a.Alerts)
}

// Close waits for alert deliveries still in flight, then closes the
// database.
func (a *App) Close() error {
	a.Alerts.Wait()
	return a.db.Close()
}

// run executes cmd and always closes app afterwards. The command error
// wins over the close error.
func run(app *App, cmd func(*App) error) error {
	err := cmd(app)
	if cerr := app.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	return err
}

func main() {
	log.SetFlags(log.LstdFlags)

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("altus"),
		kong.Description("Seven-day weather lookup with rain and temperature alerts."),
		kong.UsageOnError(),
		kong.Vars{
			"geocoding_url": openmeteo.DefaultGeocodingURL,
			"forecast_url":  openmeteo.DefaultForecastURL,
		},
	)

	app, err := cli.Globals.open()
	ctx.FatalIfErrorf(err)

	// FatalIfErrorf exits the process, so the app is closed before it runs.
	ctx.FatalIfErrorf(run(app, func(a *App) error { return ctx.Run(a) }))
}
