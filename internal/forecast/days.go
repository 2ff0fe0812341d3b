package forecast

import (
	"fmt"
	"time"

	"github.com/lox/altus/internal/models"
)

// DayTab is one button of the day selector.
type DayTab struct {
	Index       int     `json:"index"`
	Label       string  `json:"label"`
	Date        string  `json:"date"`
	WeatherCode int     `json:"weather_code"`
	Emoji       string  `json:"emoji"`
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
}

const todayLabel = "Aujourd'hui"

// indexed by time.Weekday
var shortDayNames = [...]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

const dayTimeLayout = "2006-01-02"

// DayTabs builds the day selector from the daily series, at most
// ForecastDays entries. Dates that fail to parse keep an empty label.
func DayTabs(d models.DailySeries) []DayTab {
	n := d.Len()
	if n > ForecastDays {
		n = ForecastDays
	}

	tabs := make([]DayTab, 0, n)
	for i := 0; i < n; i++ {
		tab := DayTab{
			Index:       i,
			WeatherCode: d.WeatherCode[i],
			Emoji:       Emoji(d.WeatherCode[i]),
			TempMax:     d.TempMax[i],
			TempMin:     d.TempMin[i],
		}
		if date, err := time.Parse(dayTimeLayout, d.Time[i]); err == nil {
			tab.Label = shortDayNames[date.Weekday()]
			tab.Date = fmt.Sprintf("%d/%d", date.Day(), int(date.Month()))
		}
		if i == 0 {
			tab.Label = todayLabel
		}
		tabs = append(tabs, tab)
	}
	return tabs
}
