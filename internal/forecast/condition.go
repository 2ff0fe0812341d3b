package forecast

// WeatherCondition is a display category derived from a WMO weather code.
type WeatherCondition string

const (
	ConditionClear        WeatherCondition = "clear"
	ConditionMainlyClear  WeatherCondition = "mainly_clear"
	ConditionPartlyCloudy WeatherCondition = "partly_cloudy"
	ConditionOvercast     WeatherCondition = "overcast"
	ConditionFog          WeatherCondition = "fog"
	ConditionDrizzle      WeatherCondition = "drizzle"
	ConditionFreezing     WeatherCondition = "freezing"
	ConditionRain         WeatherCondition = "rain"
	ConditionSnow         WeatherCondition = "snow"
	ConditionHeavySnow    WeatherCondition = "heavy_snow"
	ConditionShowers      WeatherCondition = "showers"
	ConditionStorm        WeatherCondition = "storm"
)

// DefaultCondition is used for codes missing from the table. Open-Meteo
// may add codes over time, so unknown codes must not fail.
const DefaultCondition = ConditionMainlyClear

type codeInfo struct {
	condition WeatherCondition
	emoji     string
	label     string
}

var weatherCodes = map[int]codeInfo{
	0:  {ConditionClear, "☀️", "Ciel dégagé"},
	1:  {ConditionMainlyClear, "🌤️", "Principalement dégagé"},
	2:  {ConditionPartlyCloudy, "⛅", "Partiellement nuageux"},
	3:  {ConditionOvercast, "☁️", "Couvert"},
	45: {ConditionFog, "🌫️", "Brouillard"},
	48: {ConditionFog, "🌫️", "Brouillard givrant"},
	51: {ConditionDrizzle, "🌦️", "Bruine légère"},
	53: {ConditionDrizzle, "🌦️", "Bruine modérée"},
	55: {ConditionDrizzle, "🌧️", "Bruine dense"},
	56: {ConditionFreezing, "🌨️", "Bruine verglaçante légère"},
	57: {ConditionFreezing, "🌨️", "Bruine verglaçante dense"},
	61: {ConditionRain, "🌧️", "Pluie faible"},
	63: {ConditionRain, "🌧️", "Pluie modérée"},
	65: {ConditionRain, "🌧️", "Pluie forte"},
	66: {ConditionFreezing, "🌨️", "Pluie verglaçante légère"},
	67: {ConditionFreezing, "🌨️", "Pluie verglaçante forte"},
	71: {ConditionSnow, "🌨️", "Neige faible"},
	73: {ConditionSnow, "🌨️", "Neige modérée"},
	75: {ConditionHeavySnow, "❄️", "Neige forte"},
	77: {ConditionSnow, "🌨️", "Grains de neige"},
	80: {ConditionShowers, "🌦️", "Averses faibles"},
	81: {ConditionShowers, "🌧️", "Averses modérées"},
	82: {ConditionStorm, "⛈️", "Averses violentes"},
	85: {ConditionSnow, "🌨️", "Averses de neige faibles"},
	86: {ConditionHeavySnow, "❄️", "Averses de neige fortes"},
	95: {ConditionStorm, "⛈️", "Orage"},
	96: {ConditionStorm, "⛈️", "Orage avec grêle faible"},
	99: {ConditionStorm, "⛈️", "Orage avec grêle forte"},
}

var defaultCode = codeInfo{DefaultCondition, "🌤️", "Principalement dégagé"}

func lookup(code int) codeInfo {
	if info, ok := weatherCodes[code]; ok {
		return info
	}
	return defaultCode
}

// ConditionFor returns the display category for a weather code.
func ConditionFor(code int) WeatherCondition {
	return lookup(code).condition
}

// Emoji returns the icon shown for a weather code.
func Emoji(code int) string {
	return lookup(code).emoji
}

// Label returns a short French description of a weather code.
func Label(code int) string {
	return lookup(code).label
}

// rainCodes is every code that raises a rain alert. Snow and freezing
// precipitation count as rain here.
var rainCodes = map[int]struct{}{
	51: {}, 53: {}, 55: {}, 56: {}, 57: {},
	61: {}, 63: {}, 65: {}, 66: {}, 67: {},
	71: {}, 73: {}, 75: {}, 77: {},
	80: {}, 81: {}, 82: {}, 85: {}, 86: {},
	95: {}, 96: {}, 99: {},
}

// IsRainCode reports whether code is in the rain alert set.
func IsRainCode(code int) bool {
	_, ok := rainCodes[code]
	return ok
}

// RainCodes returns the rain alert set in ascending order.
func RainCodes() []int {
	return []int{51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 71, 73, 75, 77, 80, 81, 82, 85, 86, 95, 96, 99}
}
