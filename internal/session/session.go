// Package session holds the state of one user looking at the weather: the
// selected city, its forecast, the selected day and the hourly window.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/notify"
	"github.com/lox/altus/internal/openmeteo"
)

// MinSuggestLength is the shortest query that triggers suggestions.
const MinSuggestLength = 2

type Resolver interface {
	Resolve(ctx context.Context, query string, maxResults int) ([]models.Location, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*models.ForecastPayload, error)
}

type FavoritesStore interface {
	Favorites() ([]models.Favorite, error)
	IsFavorite(name string) (bool, error)
	ToggleFavorite(f models.Favorite) (bool, error)
}

type Session struct {
	resolver  Resolver
	fetcher   Fetcher
	favorites FavoritesStore
	alerts    *notify.Dispatcher

	mu    sync.Mutex
	state ViewState
	gen   uint64
}

// New returns a session with no city selected. favorites and alerts may
// be nil. Today's notifications are handed to alerts, which delivers them
// in the background.
func New(resolver Resolver, fetcher Fetcher, favorites FavoritesStore, alerts *notify.Dispatcher) *Session {
	return &Session{
		resolver:  resolver,
		fetcher:   fetcher,
		favorites: favorites,
		alerts:    alerts,
		state:     ViewState{Hours: DefaultHours},
	}
}

// State returns a copy of the current view state.
func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Search resolves query to its best match and loads that city.
func (s *Session) Search(ctx context.Context, query string) (View, error) {
	loc, err := s.Locate(ctx, query)
	if err != nil {
		return View{}, err
	}
	return s.SelectCity(ctx, loc)
}

// Locate resolves query to its best match without loading anything.
func (s *Session) Locate(ctx context.Context, query string) (models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Location{}, ErrEmptyQuery
	}

	locs, err := s.resolver.Resolve(ctx, query, openmeteo.SearchCount)
	if err != nil {
		return models.Location{}, fmt.Errorf("search %q: %w", query, err)
	}
	if len(locs) == 0 {
		return models.Location{}, &NoMatchError{Query: query}
	}
	return locs[0], nil
}

// Suggest returns up to SuggestionCount candidates for a partial query.
// Short queries and lookup failures yield nil; failures are only logged.
func (s *Session) Suggest(ctx context.Context, query string) []models.Location {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSuggestLength {
		return nil
	}

	locs, err := s.resolver.Resolve(ctx, query, openmeteo.SuggestionCount)
	if err != nil {
		log.Printf("session: suggestions for %q: %v", query, err)
		return nil
	}
	if len(locs) == 0 {
		return nil
	}
	return locs
}

// SelectCity fetches the forecast for loc and shows today.
func (s *Session) SelectCity(ctx context.Context, loc models.Location) (View, error) {
	return s.Show(ctx, loc, 0, 0)
}

// Show fetches the forecast for loc and shows day with an hourly window of
// hours, keeping the current window when hours is 0. Notifications are
// dispatched when the shown day is today.
func (s *Session) Show(ctx context.Context, loc models.Location, day, hours int) (View, error) {
	if _, err := forecast.DayStartIndex(day); err != nil {
		return View{}, err
	}
	if hours < 0 {
		return View{}, ErrInvalidWindow
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if hours == 0 {
		hours = s.state.Hours
	}
	s.mu.Unlock()

	payload, err := s.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return View{}, fmt.Errorf("load %s: %w", loc.DisplayName(), err)
	}

	city := loc
	next := ViewState{City: &city, Payload: payload, Day: day, Hours: hours}
	v, err := BuildView(next)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return View{}, ErrSuperseded
	}
	s.state = next
	s.mu.Unlock()

	v.Favorite = s.isFavorite(v.Name)
	s.alerts.Send(ctx, v.Name, v.Notifications)
	return v, nil
}

// SelectDay re-renders the loaded forecast for another day without
// refetching.
func (s *Session) SelectDay(ctx context.Context, day int) (View, error) {
	s.mu.Lock()
	next := s.state
	next.Day = day
	v, err := s.renderLocked(next)
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	v.Favorite = s.isFavorite(v.Name)
	s.alerts.Send(ctx, v.Name, v.Notifications)
	return v, nil
}

// SetHourlyWindow changes the strip length. The new length is kept even
// when no city is loaded yet, in which case ErrNoCity is returned.
func (s *Session) SetHourlyWindow(count int) (View, error) {
	if count < 1 {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidWindow, count)
	}

	s.mu.Lock()
	if s.state.Payload == nil {
		s.state.Hours = count
		s.mu.Unlock()
		return View{}, ErrNoCity
	}
	next := s.state
	next.Hours = count
	v, err := s.renderLocked(next)
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	v.Favorite = s.isFavorite(v.Name)
	return v, nil
}

// renderLocked builds next and commits it on success.
func (s *Session) renderLocked(next ViewState) (View, error) {
	if next.Payload == nil {
		return View{}, ErrNoCity
	}
	v, err := BuildView(next)
	if err != nil {
		return View{}, err
	}
	s.state = next
	return v, nil
}

// ToggleFavorite adds or removes the current city and reports whether it
// is a favorite afterwards.
func (s *Session) ToggleFavorite() (bool, error) {
	s.mu.Lock()
	city := s.state.City
	s.mu.Unlock()

	if city == nil {
		return false, ErrNoCity
	}
	if s.favorites == nil {
		return false, fmt.Errorf("toggle favorite: no favorites store")
	}
	on, err := s.favorites.ToggleFavorite(models.FavoriteFrom(*city))
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return on, nil
}

// IsFavorite reports whether the current city is saved.
func (s *Session) IsFavorite() bool {
	s.mu.Lock()
	city := s.state.City
	s.mu.Unlock()

	if city == nil {
		return false
	}
	return s.isFavorite(city.DisplayName())
}

// Favorites lists the saved cities.
func (s *Session) Favorites() ([]models.Favorite, error) {
	if s.favorites == nil {
		return []models.Favorite{}, nil
	}
	return s.favorites.Favorites()
}

func (s *Session) isFavorite(name string) bool {
	if s.favorites == nil {
		return false
	}
	ok, err := s.favorites.IsFavorite(name)
	if err != nil {
		log.Printf("session: favorite lookup for %q: %v", name, err)
		return false
	}
	return ok
}
