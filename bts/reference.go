package bts

import(
	"fmt"
	"io"
	"math"

	"github.com/skypies/geo"
	"github.com/skypies/flightwx"
)

var AirlineAliases = map[string]string{
	"Code":        "CAR",
	"Description": "Airline",
}

// The airport table is the BTS master coordinate file (or a trimmed copy of it).
var AirportAliases = map[string]string{
	"DISPLAY_AIRPORT_NAME":           "Airport",
	"DISPLAY_AIRPORT_CITY_NAME_FULL": "City",
	"LATITUDE":                       "LAT",
	"LONGITUDE":                      "LON",
}

// {{{ ReadAirlines

func ReadAirlines(rdr io.Reader) ([]flightwx.AirlineRef, error) {
	rowReader,err := NewRowReader(rdr, AirlineAliases)
	if err != nil { return nil, fmt.Errorf("airlines: %w", err) }
	if missing := rowReader.MissingColumns("CAR", "Airline"); len(missing) > 0 {
		return nil, fmt.Errorf("airlines: missing columns %v", missing)
	}

	refs := []flightwx.AirlineRef{}
	for {
		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil { return nil, fmt.Errorf("airlines: %w", err) }
		refs = append(refs, flightwx.AirlineRef{CarrierCode:row["CAR"], Name:row["Airline"]})
	}
	return refs,nil
}

// }}}
// {{{ ReadAirports

// ReadAirports returns the airports with a usable location, and a count of the rows that
// were dropped for lack of one.
func ReadAirports(rdr io.Reader) ([]flightwx.AirportRef, int, error) {
	rowReader,err := NewRowReader(rdr, AirportAliases)
	if err != nil { return nil, 0, fmt.Errorf("airports: %w", err) }
	if missing := rowReader.MissingColumns("AIRPORT_ID", "Airport", "City", "LAT", "LON"); len(missing) > 0 {
		return nil, 0, fmt.Errorf("airports: missing columns %v", missing)
	}

	refs := []flightwx.AirportRef{}
	nSkipped := 0
	for {
		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil { return nil, nSkipped, fmt.Errorf("airports: %w", err) }

		lat,long := row.Float("LAT"), row.Float("LON")
		if math.IsNaN(lat) || math.IsNaN(long) {
			nSkipped++
			continue
		}
		refs = append(refs, flightwx.AirportRef{
			AirportID: row["AIRPORT_ID"],
			Name: row["Airport"],
			City: row["City"],
			Latlong: geo.Latlong{Lat:lat, Long:long},
		})
	}
	return refs, nSkipped, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
