package flightwx

import(
	"fmt"
	"sort"
)

// A WeatherObservation is one day's summary from a GSOD station file. Missing readings are
// NOT represented as NaN; the loader swaps the NOAA sentinels for out-of-band values
// (temperatures -50, speeds and visibility -1, pressures and precipitation 0). Consumers
// that plot these need to be aware that they are not real readings.
type WeatherObservation struct {
	Date             string  // YYYY-MM-DD
	Temp             float64 // mean, F
	DewPoint         float64
	SeaLevelPressure float64 // mb
	StationPressure  float64
	Visibility       float64 // miles
	WindSpeed        float64 // knots
	MaxWindSpeed     float64
	Gust             float64
	MaxTemp          float64
	MinTemp          float64
	Precipitation    float64 // inches
	SnowDepth        float64

	// Weather events on the day; 0 or 1
	Fog, Rain, Snow, Hail, Thunder, Tornado int
}

func (wo WeatherObservation)String() string {
	return fmt.Sprintf("%s T%.1f[%.1f,%.1f] dew%.1f vis%.1f wind%.1f/%.1f prcp%.2f FRSHTT=%d%d%d%d%d%d",
		wo.Date, wo.Temp, wo.MinTemp, wo.MaxTemp, wo.DewPoint, wo.Visibility, wo.WindSpeed,
		wo.MaxWindSpeed, wo.Precipitation, wo.Fog, wo.Rain, wo.Snow, wo.Hail, wo.Thunder, wo.Tornado)
}

// The names the presentation layer uses for each numeric column; these are the GSOD names.
var weatherFields = map[string]func(WeatherObservation) float64 {
	"TEMP":    func(w WeatherObservation) float64 { return w.Temp },
	"DEWP":    func(w WeatherObservation) float64 { return w.DewPoint },
	"SLP":     func(w WeatherObservation) float64 { return w.SeaLevelPressure },
	"STP":     func(w WeatherObservation) float64 { return w.StationPressure },
	"VISIB":   func(w WeatherObservation) float64 { return w.Visibility },
	"WDSP":    func(w WeatherObservation) float64 { return w.WindSpeed },
	"MXSPD":   func(w WeatherObservation) float64 { return w.MaxWindSpeed },
	"GUST":    func(w WeatherObservation) float64 { return w.Gust },
	"MAX":     func(w WeatherObservation) float64 { return w.MaxTemp },
	"MIN":     func(w WeatherObservation) float64 { return w.MinTemp },
	"PRCP":    func(w WeatherObservation) float64 { return w.Precipitation },
	"SNDP":    func(w WeatherObservation) float64 { return w.SnowDepth },
	"Fog":     func(w WeatherObservation) float64 { return float64(w.Fog) },
	"Rain":    func(w WeatherObservation) float64 { return float64(w.Rain) },
	"Snow":    func(w WeatherObservation) float64 { return float64(w.Snow) },
	"Hail":    func(w WeatherObservation) float64 { return float64(w.Hail) },
	"Thunder": func(w WeatherObservation) float64 { return float64(w.Thunder) },
	"Tornado": func(w WeatherObservation) float64 { return float64(w.Tornado) },
}

// WeatherFields lists the selectable field names, sorted.
func WeatherFields() []string {
	out := []string{}
	for k,_ := range weatherFields { out = append(out, k) }
	sort.Strings(out)
	return out
}

func IsWeatherField(name string) bool {
	_,exists := weatherFields[name]
	return exists
}

func (wo WeatherObservation)Field(name string) (float64, bool) {
	if f,exists := weatherFields[name]; exists {
		return f(wo), true
	}
	return 0, false
}
