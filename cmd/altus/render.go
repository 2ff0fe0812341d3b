package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/models"
	"github.com/lox/altus/internal/session"
)

func printView(w io.Writer, v session.View) {
	star := "☆"
	if v.Favorite {
		star = "★"
	}
	fmt.Fprintf(w, "%s %s\n", star, v.Name)

	s := v.Snapshot
	fmt.Fprintf(w, "  %s %s  %d°C (ressenti %d°C)\n", s.Emoji, forecast.Label(s.WeatherCode), round(s.Temperature), round(s.FeelsLike))
	approx := ""
	if s.Approximate {
		approx = " (indicatif)"
	}
	fmt.Fprintf(w, "  vent %d km/h, humidité %d%%%s\n", round(s.WindSpeed), round(s.HumidityPercent), approx)

	var days []string
	for _, d := range v.Days {
		label := d.Label
		if d.Index == v.Day {
			label = "[" + label + "]"
		}
		days = append(days, fmt.Sprintf("%d:%s %s %d/%d°", d.Index, label, d.Emoji, round(d.TempMax), round(d.TempMin)))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(days, "  "))

	for _, h := range v.Hourly {
		mark := " "
		switch h.Class() {
		case "rain-alert":
			mark = "!"
		case "temp-alert":
			mark = "+"
		}
		precip := ""
		if h.PrecipChance != nil {
			precip = fmt.Sprintf(" 💧%d%%", *h.PrecipChance)
		}
		fmt.Fprintf(w, "  %s %02dh %s %3d°C%s\n", mark, h.Hour, h.Emoji, round(h.Temperature), precip)
	}

	if v.Alerts.RainAlert {
		fmt.Fprintf(w, "  🌧️ pluie dans %dh\n", *v.Alerts.RainHourOffset)
	}
	if v.Alerts.TempAlert {
		fmt.Fprintf(w, "  🌡️ plus de %d°C (%d°C)\n", int(forecast.TempThreshold), round(*v.Alerts.HighTemp))
	}
}

func printSuggestions(w io.Writer, locs []models.Location) {
	if len(locs) == 0 {
		fmt.Fprintln(w, "  (aucune suggestion)")
		return
	}
	for i, l := range locs {
		fmt.Fprintf(w, "  %d. %s\n", i+1, l.DisplayName())
	}
}

func printFavorites(w io.Writer, favs []models.Favorite) {
	if len(favs) == 0 {
		fmt.Fprintln(w, "Aucun favori.")
		return
	}
	for i, f := range favs {
		fmt.Fprintf(w, "%d. %s (%.4f, %.4f)\n", i+1, f.Name, f.Lat, f.Lon)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
