package flightwx

import(
	"fmt"

	"github.com/skypies/geo"
)

// Static reference data; loaded once (see bts/), never mutated.
type AirlineRef struct {
	CarrierCode string
	Name        string
}

type AirportRef struct {
	AirportID string
	Name      string
	City      string // e.g. "Denver, CO"
	geo.Latlong
}

func (ar AirportRef)String() string {
	return fmt.Sprintf("[%s] %s (%s) %.4f,%.4f", ar.AirportID, ar.Name, ar.City, ar.Lat, ar.Long)
}

// AirlineTraffic is a significant CarrierTraffic row, with the airline's name.
type AirlineTraffic struct {
	Traffic
	Name string
}

// AirportTraffic is a significant AirportTraffic row, with the airport's reference data, and
// (once AttachAssignments has run) its nearest weather station.
type AirportTraffic struct {
	Traffic
	Name string
	City string
	geo.Latlong

	Station *StationAssignment
}

// {{{ JoinAirlines

// Inner join on carrier code. Traffic with no reference row vanishes, as do reference rows
// with no traffic. If the reference has duplicate codes, the first one wins.
func JoinAirlines(traffic []Traffic, refs []AirlineRef) []AirlineTraffic {
	byCode := map[string]AirlineRef{}
	for _,r := range refs {
		if _,exists := byCode[r.CarrierCode]; !exists { byCode[r.CarrierCode] = r }
	}

	out := []AirlineTraffic{}
	for _,t := range traffic {
		if ref,exists := byCode[t.Code]; exists {
			out = append(out, AirlineTraffic{Traffic:t, Name:ref.Name})
		}
	}
	return out
}

// }}}
// {{{ JoinAirports

// Inner join on airport id, as per JoinAirlines.
func JoinAirports(traffic []Traffic, refs []AirportRef) []AirportTraffic {
	byID := map[string]AirportRef{}
	for _,r := range refs {
		if _,exists := byID[r.AirportID]; !exists { byID[r.AirportID] = r }
	}

	out := []AirportTraffic{}
	for _,t := range traffic {
		if ref,exists := byID[t.Code]; exists {
			out = append(out, AirportTraffic{
				Traffic: t,
				Name: ref.Name,
				City: ref.City,
				Latlong: ref.Latlong,
			})
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
