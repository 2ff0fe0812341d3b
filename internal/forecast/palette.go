package forecast

import "github.com/lox/altus/internal/models"

// Palette is the colour scheme the page applies for a condition and theme.
type Palette struct {
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
	TextMuted  string `json:"text_muted"`
	Accent     string `json:"accent"`
}

var (
	// DefaultLightPalette is used for conditions without a light entry.
	DefaultLightPalette = Palette{
		Background: "#f4f6fb",
		Card:       "#ffffff",
		Text:       "#1d2433",
		TextMuted:  "#6b7385",
		Accent:     "#2f6fed",
	}
	// DefaultDarkPalette is used for conditions without a dark entry.
	DefaultDarkPalette = Palette{
		Background: "#12151c",
		Card:       "#1c212b",
		Text:       "#e8ecf3",
		TextMuted:  "#98a1b3",
		Accent:     "#6f9bff",
	}
)

type paletteKey struct {
	condition WeatherCondition
	theme     models.Theme
}

var palettes = map[paletteKey]Palette{
	{ConditionClear, models.ThemeLight}: {
		Background: "#fdf6e8", // warm cream
		Card:       "#ffffff",
		Text:       "#2a2520",
		TextMuted:  "#706050",
		Accent:     "#d07020",
	},
	{ConditionClear, models.ThemeDark}: {
		Background: "#0a0a12",
		Card:       "#141420",
		Text:       "#dde0e8",
		TextMuted:  "#556070",
		Accent:     "#ffaa66",
	},
	{ConditionPartlyCloudy, models.ThemeLight}: {
		Background: "#e8ecf0",
		Card:       "#ffffff",
		Text:       "#202830",
		TextMuted:  "#607080",
		Accent:     "#3090c0",
	},
	{ConditionPartlyCloudy, models.ThemeDark}: {
		Background: "#080810",
		Card:       "#121220",
		Text:       "#d8d8e0",
		TextMuted:  "#606070",
		Accent:     "#7080a0",
	},
	{ConditionOvercast, models.ThemeLight}: {
		Background: "#dde0e4", // overcast grey
		Card:       "#f0f2f4",
		Text:       "#252830",
		TextMuted:  "#606870",
		Accent:     "#4080a0",
	},
	{ConditionOvercast, models.ThemeDark}: {
		Background: "#0a0a0c",
		Card:       "#141416",
		Text:       "#d0d0d4",
		TextMuted:  "#585860",
		Accent:     "#606878",
	},
	{ConditionFog, models.ThemeLight}: {
		Background: "#e4e4e0",
		Card:       "#f2f2ee",
		Text:       "#303030",
		TextMuted:  "#707068",
		Accent:     "#708090",
	},
	{ConditionFog, models.ThemeDark}: {
		Background: "#121212",
		Card:       "#1c1c1c",
		Text:       "#d4d4d0",
		TextMuted:  "#707070",
		Accent:     "#8899aa",
	},
	{ConditionDrizzle, models.ThemeLight}: {
		Background: "#dfe7ee",
		Card:       "#eef3f7",
		Text:       "#1c2630",
		TextMuted:  "#5a6b7a",
		Accent:     "#3f7fb0",
	},
	{ConditionRain, models.ThemeLight}: {
		Background: "#d8e0e8", // rainy grey-blue
		Card:       "#e8f0f4",
		Text:       "#182430",
		TextMuted:  "#506070",
		Accent:     "#2070a8",
	},
	{ConditionRain, models.ThemeDark}: {
		Background: "#0c1014",
		Card:       "#161c22",
		Text:       "#d8e0e8",
		TextMuted:  "#607080",
		Accent:     "#5588aa",
	},
	{ConditionShowers, models.ThemeLight}: {
		Background: "#d4e0ea",
		Card:       "#e6eef5",
		Text:       "#182430",
		TextMuted:  "#506070",
		Accent:     "#2a78b4",
	},
	{ConditionFreezing, models.ThemeLight}: {
		Background: "#e4ecf4", // icy light blue
		Card:       "#f4f8fc",
		Text:       "#102030",
		TextMuted:  "#406080",
		Accent:     "#2080b8",
	},
	{ConditionFreezing, models.ThemeDark}: {
		Background: "#040810",
		Card:       "#0a1018",
		Text:       "#d0d8e4",
		TextMuted:  "#506080",
		Accent:     "#5080a0",
	},
	{ConditionSnow, models.ThemeLight}: {
		Background: "#eef2f6",
		Card:       "#ffffff",
		Text:       "#1a2530",
		TextMuted:  "#5a6a7a",
		Accent:     "#4a90c0",
	},
	{ConditionSnow, models.ThemeDark}: {
		Background: "#0e1218",
		Card:       "#182028",
		Text:       "#e8f0f8",
		TextMuted:  "#7090a8",
		Accent:     "#66a0cc",
	},
	{ConditionStorm, models.ThemeLight}: {
		Background: "#c8ccd8", // storm slate
		Card:       "#dde0e8",
		Text:       "#181c28",
		TextMuted:  "#4a5060",
		Accent:     "#6a4fb0",
	},
	{ConditionStorm, models.ThemeDark}: {
		Background: "#08060e",
		Card:       "#141020",
		Text:       "#dcd8e8",
		TextMuted:  "#6a6080",
		Accent:     "#9a7cdd",
	},
}

// aliases share a palette with a close condition.
var aliases = map[WeatherCondition]WeatherCondition{
	ConditionMainlyClear: ConditionClear,
	ConditionHeavySnow:   ConditionSnow,
}

// PaletteFor returns the colours for a condition under the given theme.
// Missing entries fall back to the closest condition, then to the theme
// default.
func PaletteFor(condition WeatherCondition, theme models.Theme) Palette {
	theme = models.ParseTheme(string(theme))
	if alias, ok := aliases[condition]; ok {
		condition = alias
	}
	if p, ok := palettes[paletteKey{condition, theme}]; ok {
		return p
	}
	if theme == models.ThemeDark {
		switch condition {
		case ConditionDrizzle, ConditionShowers:
			return palettes[paletteKey{ConditionRain, models.ThemeDark}]
		}
		return DefaultDarkPalette
	}
	return DefaultLightPalette
}
