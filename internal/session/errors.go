package session

import (
	"errors"
	"fmt"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/openmeteo"
)

var (
	ErrEmptyQuery    = errors.New("empty query")
	ErrNoCity        = errors.New("no city selected")
	ErrInvalidWindow = errors.New("invalid hourly window")
	// ErrSuperseded is returned by a city load that finished after a newer
	// one started. Its result is discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// NoMatchError is returned when a search finds no city.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("Ville %q non trouvée. Vérifiez l'orthographe.", e.Query)
}

// UserMessage returns the French text shown to the user for err. It is
// empty when there is nothing to show, including for superseded loads.
func UserMessage(err error) string {
	var noMatch *NoMatchError
	switch {
	case err == nil, errors.Is(err, ErrSuperseded):
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Veuillez entrer un nom de ville."
	case errors.As(err, &noMatch):
		return noMatch.Error()
	case errors.Is(err, openmeteo.ErrGeocodingUnavailable):
		return "Erreur de géocodage"
	case errors.Is(err, openmeteo.ErrForecastUnavailable):
		return "Erreur lors de la récupération des données météo"
	case errors.Is(err, ErrNoCity):
		return "Aucune ville sélectionnée."
	case errors.Is(err, forecast.ErrInvalidDayIndex):
		return "Jour invalide."
	case errors.Is(err, forecast.ErrInsufficientData):
		return "Données météo incomplètes pour ce jour."
	case errors.Is(err, ErrInvalidWindow):
		return "Nombre d'heures invalide."
	default:
		return "Une erreur est survenue."
	}
}
