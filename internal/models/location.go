package models

// Location is a geocoded place. Name is the short place name; DisplayName
// is what the UI shows and what favorites are keyed on.
type Location struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DisplayName formats the location as "Name, Admin1, Country", omitting
// Admin1 when the geocoder did not return one. An empty Country is omitted
// too rather than leaving a trailing ", ": locations rebuilt from a
// favorite carry the full display name in Name and no Country, and must
// map back to the same favorites key.
func (l Location) DisplayName() string {
	name := l.Name
	if l.Admin1 != "" {
		name += ", " + l.Admin1
	}
	if l.Country != "" {
		name += ", " + l.Country
	}
	return name
}

// Favorite is a saved city. The JSON shape matches the browser storage
// format ({name, lat, lon}) so exported lists stay interchangeable.
type Favorite struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// FavoriteFrom builds a favorite entry keyed on the location's display name.
func FavoriteFrom(l Location) Favorite {
	return Favorite{Name: l.DisplayName(), Lat: l.Latitude, Lon: l.Longitude}
}

// Location converts a favorite back into a location. The display name is
// carried in Name so DisplayName round-trips unchanged.
func (f Favorite) Location() Location {
	return Location{Name: f.Name, Latitude: f.Lat, Longitude: f.Lon}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a theme. Anything other than "dark"
// is light, matching how the page initialises itself.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
