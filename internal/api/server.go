package api

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/altus/internal/notify"
	"github.com/lox/altus/internal/session"
	"github.com/lox/altus/internal/store"
)

// HourlyWindows are the strip lengths offered by the page and the API.
var HourlyWindows = []int{4, 8, 12}

type Server struct {
	resolver session.Resolver
	fetcher  session.Fetcher
	store    *store.Store
	alerts   *notify.Dispatcher
	addr     string
	tmpl     *template.Template
}

// NewServer wires the HTTP surface. alerts receives today's alerts for
// every forecast served and may be nil.
func NewServer(resolver session.Resolver, fetcher session.Fetcher, st *store.Store, alerts *notify.Dispatcher, addr string) *Server {
	return &Server{
		resolver: resolver,
		fetcher:  fetcher,
		store:    st,
		alerts:   alerts,
		addr:     addr,
		tmpl:     newTemplates(),
	}
}

// newSession returns a fresh session per request. The HTTP surface is
// stateless; the browser carries city, day and window between calls.
func (s *Server) newSession() *session.Session {
	return session.New(s.resolver, s.fetcher, s.store, s.alerts)
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodGet)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/weather", s.handleWeather).Methods(http.MethodGet)
	api.HandleFunc("/favorites", s.handleListFavorites).Methods(http.MethodGet)
	api.HandleFunc("/favorites", s.handleToggleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/favorites", s.handleRemoveFavorite).Methods(http.MethodDelete)
	api.HandleFunc("/theme", s.handleGetTheme).Methods(http.MethodGet)
	api.HandleFunc("/theme", s.handleSetTheme).Methods(http.MethodPut)
	api.HandleFunc("/theme/toggle", s.handleToggleTheme).Methods(http.MethodPost)
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           handlers.LoggingHandler(os.Stdout, s.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server: shutdown: %v", err)
		}
	}()

	log.Printf("server: listening on %s", s.addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	s.alerts.Wait()
	return nil
}
