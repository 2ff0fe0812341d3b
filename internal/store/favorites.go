package store

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/lox/altus/internal/metrics"
	"github.com/lox/altus/internal/models"
)

// Favorites returns the saved cities in insertion order. A corrupt stored
// list is logged and read as empty, like a fresh browser profile.
func (s *Store) Favorites() ([]models.Favorite, error) {
	raw, ok, err := s.Get(KeyFavorites)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Favorite{}, nil
	}

	var favs []models.Favorite
	if err := json.Unmarshal([]byte(raw), &favs); err != nil {
		log.Printf("store: ignoring unreadable favorites: %v", err)
		return []models.Favorite{}, nil
	}
	if favs == nil {
		favs = []models.Favorite{}
	}
	return favs, nil
}

// SaveFavorites overwrites the whole list.
func (s *Store) SaveFavorites(favs []models.Favorite) error {
	if favs == nil {
		favs = []models.Favorite{}
	}
	b, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	return s.Set(KeyFavorites, string(b))
}

// IsFavorite reports whether a favorite with this name exists.
func (s *Store) IsFavorite(name string) (bool, error) {
	favs, err := s.Favorites()
	if err != nil {
		return false, err
	}
	return indexOf(favs, name) >= 0, nil
}

// AddFavorite appends f unless its name is already saved. It reports
// whether the list changed.
func (s *Store) AddFavorite(f models.Favorite) (bool, error) {
	favs, err := s.Favorites()
	if err != nil {
		return false, err
	}
	if indexOf(favs, f.Name) >= 0 {
		return false, nil
	}
	if err := s.SaveFavorites(append(favs, f)); err != nil {
		return false, err
	}
	metrics.FavoritesChanged.WithLabelValues("add").Inc()
	return true, nil
}

// RemoveFavorite drops every entry with this name. It reports whether
// anything was removed.
func (s *Store) RemoveFavorite(name string) (bool, error) {
	favs, err := s.Favorites()
	if err != nil {
		return false, err
	}

	kept := favs[:0]
	for _, f := range favs {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favs) {
		return false, nil
	}
	if err := s.SaveFavorites(kept); err != nil {
		return false, err
	}
	metrics.FavoritesChanged.WithLabelValues("remove").Inc()
	return true, nil
}

// ToggleFavorite removes f if saved, otherwise adds it. It returns whether
// f is a favorite afterwards.
func (s *Store) ToggleFavorite(f models.Favorite) (bool, error) {
	removed, err := s.RemoveFavorite(f.Name)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := s.AddFavorite(f); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf(favs []models.Favorite, name string) int {
	for i, f := range favs {
		if f.Name == name {
			return i
		}
	}
	return -1
}
