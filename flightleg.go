package flightwx

import(
	"fmt"
	"math"
)

// A FlightLeg is one row of the BTS on-time performance table: a single scheduled
// origin->destination segment. Minute-valued fields are NaN when the source was blank
// (e.g. the delays on a cancelled flight). Immutable once loaded.
type FlightLeg struct {
	Date          string // YYYY-MM-DD
	Carrier       string // unique carrier code, e.g. "UA"
	TailNumber    string
	FlightNumber  string

	OriginID      string // BTS numeric airport id, e.g. "11292"
	Origin        string // IATA code, e.g. "DEN"
	DestID        string
	Dest          string

	DepScheduled  string // hhmm local
	DepActual     string
	DepDelay      float64
	DepTaxi       float64
	WheelsOff     string
	WheelsOn      string
	ArrTaxi       float64
	ArrScheduled  string
	ArrActual     string
	ArrDelay      float64

	Cancelled     bool
	CancelCode    string
	Diverted      bool

	ElapsedScheduled float64
	ElapsedActual    float64
	AirTime          float64
	DistanceMiles    float64

	DelayCarrier      float64
	DelayWeather      float64
	DelayNAS          float64
	DelaySecurity     float64
	DelayLateAircraft float64
}

func (l FlightLeg)String() string {
	str := fmt.Sprintf("%s %s%s %s->%s", l.Date, l.Carrier, l.FlightNumber, l.Origin, l.Dest)
	if l.Cancelled { str += " [cancelled]" }
	if l.Diverted { str += " [diverted]" }
	if !math.IsNaN(l.DepDelay) { str += fmt.Sprintf(" dep%+.0fm", l.DepDelay) }
	if !math.IsNaN(l.ArrDelay) { str += fmt.Sprintf(" arr%+.0fm", l.ArrDelay) }
	return str
}
