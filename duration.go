package flightwx

import(
	"fmt"
	"math"
)

type MetricType string
const(
	DepartureDelay MetricType = "DEP_DEL"
	ArrivalDelay   MetricType = "ARR_DEL"
	DepartureTaxi  MetricType = "DEP_TAXI"
	ArrivalTaxi    MetricType = "ARR_TAXI"
)

// The order in which Reshape emits the records for each leg.
var MetricTypes = []MetricType{DepartureDelay, ArrivalDelay, DepartureTaxi, ArrivalTaxi}

func (mt MetricType)IsDeparture() bool { return mt == DepartureDelay || mt == DepartureTaxi }

func (mt MetricType)Description() string {
	switch mt {
	case DepartureDelay: return "departure delay"
	case ArrivalDelay:   return "arrival delay"
	case DepartureTaxi:  return "taxi out"
	case ArrivalTaxi:    return "taxi in"
	}
	return string(mt)
}

func (mt MetricType)order() int {
	for i,m := range MetricTypes {
		if m == mt { return i }
	}
	return len(MetricTypes)
}

// A DurationRecord is the long-format fact that everything else aggregates over. The airport
// is the origin for departure metrics, and the destination for arrival metrics.
type DurationRecord struct {
	Date        string
	CarrierCode string
	AirportID   string
	Minutes     float64 // NaN if the leg had no value (e.g. cancelled)
	MetricType
}

func (dr DurationRecord)HasMinutes() bool { return !math.IsNaN(dr.Minutes) }

func (dr DurationRecord)String() string {
	return fmt.Sprintf("%s %-3.3s %-6.6s %-8.8s %.0f", dr.Date, dr.CarrierCode, dr.AirportID,
		dr.MetricType, dr.Minutes)
}

// {{{ Reshape

// Reshape turns each leg into four DurationRecords. Cancelled and diverted legs are passed
// through as-is; nothing is filtered here.
func Reshape(legs []FlightLeg) []DurationRecord {
	out := make([]DurationRecord, 0, 4*len(legs))

	for _,l := range legs {
		for _,mt := range MetricTypes {
			dr := DurationRecord{Date:l.Date, CarrierCode:l.Carrier, MetricType:mt}
			switch mt {
			case DepartureDelay: dr.AirportID, dr.Minutes = l.OriginID, l.DepDelay
			case ArrivalDelay:   dr.AirportID, dr.Minutes = l.DestID,   l.ArrDelay
			case DepartureTaxi:  dr.AirportID, dr.Minutes = l.OriginID, l.DepTaxi
			case ArrivalTaxi:    dr.AirportID, dr.Minutes = l.DestID,   l.ArrTaxi
			}
			out = append(out, dr)
		}
	}

	return out
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
