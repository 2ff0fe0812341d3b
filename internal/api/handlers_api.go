package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/openmeteo"
	"github.com/lox/altus/internal/session"
)

type locationResult struct {
	models.Location
	DisplayName string `json:"display_name"`
}

func newLocationResult(l models.Location) locationResult {
	return locationResult{Location: l, DisplayName: l.DisplayName()}
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	locs := s.newSession().Suggest(r.Context(), r.URL.Query().Get("q"))

	results := make([]locationResult, 0, len(locs))
	for _, l := range locs {
		results = append(results, newLocationResult(l))
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	loc, err := s.newSession().Locate(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newLocationResult(loc))
}

var errBadCoordinates = errors.New("invalid coordinates")

type weatherParams struct {
	loc   models.Location
	day   int
	hours int
}

func parseWeatherParams(r *http.Request) (weatherParams, error) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return weatherParams{}, fmt.Errorf("%w: lat %q", errBadCoordinates, q.Get("lat"))
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return weatherParams{}, fmt.Errorf("%w: lon %q", errBadCoordinates, q.Get("lon"))
	}

	p := weatherParams{day: 0, hours: session.DefaultHours}
	p.loc = models.Location{Name: q.Get("name"), Latitude: lat, Longitude: lon}
	if p.loc.Name == "" {
		p.loc.Name = fmt.Sprintf("%.4f, %.4f", lat, lon)
	}

	if v := q.Get("day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil {
			return weatherParams{}, fmt.Errorf("%w: %q", forecast.ErrInvalidDayIndex, v)
		}
		p.day = day
	}
	if v := q.Get("hours"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || !slices.Contains(HourlyWindows, hours) {
			return weatherParams{}, fmt.Errorf("%w: %q", session.ErrInvalidWindow, v)
		}
		p.hours = hours
	}
	return p, nil
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	p, err := parseWeatherParams(r)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	view, err := s.newSession().Show(r.Context(), p.loc, p.day, p.hours)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	theme, err := s.store.Theme()
	if err != nil {
		log.Printf("api: load theme: %v", err)
	}
	palette := forecast.PaletteFor(view.Condition, theme)
	view.Palette = &palette
	writeJSON(w, http.StatusOK, view)
}

type favoritesResult struct {
	Favorite  *bool             `json:"favorite,omitempty"`
	Favorites []models.Favorite `json:"favorites"`
}

func (s *Server) writeFavorites(w http.ResponseWriter, r *http.Request, favorite *bool) {
	favs, err := s.store.Favorites()
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoritesResult{Favorite: favorite, Favorites: favs})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	s.writeFavorites(w, r, nil)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var f models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}
	if f.Name == "" {
		writeError(w, http.StatusBadRequest, "nom de ville manquant")
		return
	}

	on, err := s.store.ToggleFavorite(f)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	s.writeFavorites(w, r, &on)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "nom de ville manquant")
		return
	}

	removed, err := s.store.RemoveFavorite(name)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "favori introuvable")
		return
	}
	off := false
	s.writeFavorites(w, r, &off)
}

type themeResult struct {
	Theme models.Theme `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Theme()
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResult{Theme: t})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeResult
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}
	if body.Theme != models.ThemeLight && body.Theme != models.ThemeDark {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("thème inconnu %q", body.Theme))
		return
	}
	if err := s.store.SetTheme(body.Theme); err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.ToggleTheme()
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResult{Theme: t})
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	var noMatch *session.NoMatchError
	switch {
	case errors.Is(err, session.ErrEmptyQuery),
		errors.Is(err, session.ErrInvalidWindow),
		errors.Is(err, forecast.ErrInvalidDayIndex),
		errors.Is(err, errBadCoordinates):
		return http.StatusBadRequest
	case errors.As(err, &noMatch):
		return http.StatusNotFound
	case errors.Is(err, openmeteo.ErrGeocodingUnavailable),
		errors.Is(err, openmeteo.ErrForecastUnavailable),
		errors.Is(err, forecast.ErrInsufficientData):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
	}

	msg := session.UserMessage(err)
	if errors.Is(err, errBadCoordinates) {
		msg = "Coordonnées invalides."
	}
	writeError(w, status, msg)
}
