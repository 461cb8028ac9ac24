// Package report computes the tables the dashboard draws, for a given selection of city,
// airline, weather field and bin width. Everything here reads a JoinedDataset and never
// changes it.
package report

import(
	"errors"
	"fmt"
	"strings"

	"github.com/skypies/flightwx"
)

var(
	// The selection matched nothing; callers should draw a placeholder.
	ErrNoData = errors.New("no data for selection")
	ErrBadSelection = errors.New("bad selection")
)

const(
	DefaultBinWidth = 5
	MinBinWidth = 1
	MaxBinWidth = 30
	DefaultWeatherField = "TEMP"
)

// Selection holds the dashboard's widget values.
type Selection struct {
	City         string // e.g. "Denver, CO"
	Airline      string // e.g. "United Air Lines Inc."
	WeatherField string // one of flightwx.WeatherFields()
	BinWidth     int    // minutes
}

func (s Selection)String() string {
	return fmt.Sprintf("[%s / %s / %s / %dm]", s.City, s.Airline, s.WeatherField, s.BinWidth)
}

// DefaultSelection mirrors the dashboard's opening state: the first city and airline whose
// names contain the given substrings (or just the first ones), temperature, 5 minute bins.
func DefaultSelection(ds *flightwx.JoinedDataset, citySubstr, airlineSubstr string) Selection {
	return Selection{
		City: firstMatch(ds.Cities(), citySubstr),
		Airline: firstMatch(ds.Airlines(), airlineSubstr),
		WeatherField: DefaultWeatherField,
		BinWidth: DefaultBinWidth,
	}
}

func firstMatch(vals []string, substr string) string {
	for _,v := range vals {
		if substr == "" || strings.Contains(v, substr) { return v }
	}
	if len(vals) > 0 { return vals[0] }
	return ""
}

// {{{ sel.validate

func (s Selection)validateBinWidth() error {
	if s.BinWidth < MinBinWidth || s.BinWidth > MaxBinWidth {
		return fmt.Errorf("%w: bin width %d not in [%d,%d]", ErrBadSelection, s.BinWidth,
			MinBinWidth, MaxBinWidth)
	}
	return nil
}

func (s Selection)validateWeatherField() error {
	if !flightwx.IsWeatherField(s.WeatherField) {
		return fmt.Errorf("%w: weather field %q not one of %v", ErrBadSelection, s.WeatherField,
			flightwx.WeatherFields())
	}
	return nil
}

// }}}
