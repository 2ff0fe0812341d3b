package api

import (
	"log"
	"net/http"

	"github.com/lox/altus/internal/debounce"
	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/session"
)

type IndexData struct {
	Theme         models.Theme
	Palette       forecast.Palette
	Favorites     []models.Favorite
	HourlyWindows []int
	DefaultHours  int
	DebounceMs    int64
	MinQuery      int
	Threshold     float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	theme, err := s.store.Theme()
	if err != nil {
		log.Printf("api: load theme: %v", err)
	}
	favs, err := s.store.Favorites()
	if err != nil {
		log.Printf("api: load favorites: %v", err)
	}

	data := IndexData{
		Theme:         theme,
		Palette:       forecast.PaletteFor(forecast.DefaultCondition, theme),
		Favorites:     favs,
		HourlyWindows: HourlyWindows,
		DefaultHours:  session.DefaultHours,
		DebounceMs:    debounce.DefaultDelay.Milliseconds(),
		MinQuery:      session.MinSuggestLength,
		Threshold:     forecast.TempThreshold,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("api: template error: %v", err)
	}
}

type HealthStatus struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schema_version"`
	Error         string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := s.store.MigrationVersion()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, HealthStatus{Status: "error", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthStatus{Status: "ok", SchemaVersion: version})
}
