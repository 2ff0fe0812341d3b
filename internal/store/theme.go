package store

import "github.com/lox/altus/internal/models"

// Theme returns the saved theme, light when unset.
func (s *Store) Theme() (models.Theme, error) {
	raw, _, err := s.Get(KeyTheme)
	if err != nil {
		return models.ThemeLight, err
	}
	return models.ParseTheme(raw), nil
}

func (s *Store) SetTheme(t models.Theme) error {
	return s.Set(KeyTheme, string(models.ParseTheme(string(t))))
}

// ToggleTheme flips and saves the theme, returning the new value.
func (s *Store) ToggleTheme() (models.Theme, error) {
	t, err := s.Theme()
	if err != nil {
		return t, err
	}
	next := t.Toggle()
	if err := s.SetTheme(next); err != nil {
		return t, err
	}
	return next, nil
}
