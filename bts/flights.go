// Package bts reads the Bureau of Transportation Statistics tables: the monthly on-time
// performance file, and the carrier and airport reference tables.
package bts

import(
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skypies/flightwx"
)

// FlightAliases maps the TranStats export names onto the short names.
var FlightAliases = map[string]string{
	"FL_DATE":             "Date",
	"OP_UNIQUE_CARRIER":   "CAR",
	"OP_CARRIER":          "CAR",
	"TAIL_NUM":            "TAIL",
	"OP_CARRIER_FL_NUM":   "FLNum",
	"ORIGIN_AIRPORT_ID":   "ORIGIN_ID",
	"DEST_AIRPORT_ID":     "DEST_ID",
	"CRS_DEP_TIME":        "DEP_SCH",
	"DEP_TIME":            "DEP_ACT",
	"DEP_DELAY":           "DEP_DEL",
	"TAXI_OUT":            "DEP_TAXI",
	"WHEELS_OFF":          "DEP_OFF",
	"WHEELS_ON":           "ARR_ON",
	"TAXI_IN":             "ARR_TAXI",
	"CRS_ARR_TIME":        "ARR_SCH",
	"ARR_TIME":            "ARR_ACT",
	"ARR_DELAY":           "ARR_DEL",
	"CANCELLED":           "CANCEL",
	"CANCELLATION_CODE":   "CANCEL_CODE",
	"DIVERTED":            "DIV",
	"CRS_ELAPSED_TIME":    "FLY_SCH",
	"ACTUAL_ELAPSED_TIME": "FLY_ACT",
	"AIR_TIME":            "FLY_AIR",
	"DISTANCE":            "FLY_DIST",
	"CARRIER_DELAY":       "DEL_CAR",
	"WEATHER_DELAY":       "DEL_WET",
	"NAS_DELAY":           "DEL_NAS",
	"SECURITY_DELAY":      "DEL_SEC",
	"LATE_AIRCRAFT_DELAY": "DEL_AIR",
}

// The columns the reshaper can't do without.
var requiredFlightColumns = []string{"Date", "CAR", "ORIGIN_ID", "DEST_ID",
	"DEP_DEL", "ARR_DEL", "DEP_TAXI", "ARR_TAXI"}

// {{{ NormalizeDate

// NormalizeDate turns the date formats seen in BTS extracts into YYYY-MM-DD. Unrecognized
// strings are returned untouched.
func NormalizeDate(s string) string {
	if len(s) == 10 && s[4] == '-' { return s }

	// "1/5/2018 12:00:00 AM"
	if i := strings.Index(s, " "); i > 0 { s = s[:i] }
	for _,layout := range []string{"1/2/2006", "20060102", "2006/01/02"} {
		if t,err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// }}}
// {{{ row.ToFlightLeg

func (r Row)ToFlightLeg() flightwx.FlightLeg {
	return flightwx.FlightLeg{
		Date:              NormalizeDate(r["Date"]),
		Carrier:           r["CAR"],
		TailNumber:        r["TAIL"],
		FlightNumber:      r["FLNum"],
		OriginID:          r["ORIGIN_ID"],
		Origin:            r["ORIGIN"],
		DestID:            r["DEST_ID"],
		Dest:              r["DEST"],
		DepScheduled:      r["DEP_SCH"],
		DepActual:         r["DEP_ACT"],
		DepDelay:          r.Float("DEP_DEL"),
		DepTaxi:           r.Float("DEP_TAXI"),
		WheelsOff:         r["DEP_OFF"],
		WheelsOn:          r["ARR_ON"],
		ArrTaxi:           r.Float("ARR_TAXI"),
		ArrScheduled:      r["ARR_SCH"],
		ArrActual:         r["ARR_ACT"],
		ArrDelay:          r.Float("ARR_DEL"),
		Cancelled:         r.Bool("CANCEL"),
		CancelCode:        r["CANCEL_CODE"],
		Diverted:          r.Bool("DIV"),
		ElapsedScheduled:  r.Float("FLY_SCH"),
		ElapsedActual:     r.Float("FLY_ACT"),
		AirTime:           r.Float("FLY_AIR"),
		DistanceMiles:     r.Float("FLY_DIST"),
		DelayCarrier:      r.Float("DEL_CAR"),
		DelayWeather:      r.Float("DEL_WET"),
		DelayNAS:          r.Float("DEL_NAS"),
		DelaySecurity:     r.Float("DEL_SEC"),
		DelayLateAircraft: r.Float("DEL_AIR"),
	}
}

// }}}
// {{{ ReadFlightLegs

// ReadFlightLegs reads every row of an on-time file. Optional columns that are absent come
// through as blanks (or NaNs).
func ReadFlightLegs(rdr io.Reader) ([]flightwx.FlightLeg, error) {
	rowReader,err := NewRowReader(rdr, FlightAliases)
	if err != nil { return nil, fmt.Errorf("flights: %w", err) }
	if missing := rowReader.MissingColumns(requiredFlightColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("flights: missing columns %v", missing)
	}

	legs := []flightwx.FlightLeg{}
	for {
		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil { return nil, fmt.Errorf("flights: %w", err) }
		legs = append(legs, row.ToFlightLeg())
	}

	return legs,nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
