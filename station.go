package flightwx

import(
	"fmt"
	"math"

	"github.com/skypies/geo"
)

// A WeatherStation is a row from the NOAA ISD station history. Only stations active for the
// whole target month, with a numeric location, make it this far.
type WeatherStation struct {
	StationID  string // USAF id, e.g. "725650"
	WBAN       int
	Name       string
	Country    string
	State      string
	CallSign   string
	geo.Latlong
	ElevationM float64
	ActiveFrom int // YYYYMMDD
	ActiveTo   int // YYYYMMDD
}

func (ws WeatherStation)String() string {
	return fmt.Sprintf("%s-%05d %-4.4s %s (%.3f,%.3f)", ws.StationID, ws.WBAN, ws.CallSign,
		ws.Name, ws.Lat, ws.Long)
}

// A StationAssignment records the nearest station to an airport.
type StationAssignment struct {
	AirportID   string
	StationID   string
	WBAN        int
	DistKM      float64
	StationFile string // the GSOD file holding this station's observations
}

// Distances are shown to the nearest KM.
func (sa StationAssignment)RoundedDistKM() float64 { return math.Round(sa.DistKM) }

func (sa StationAssignment)String() string {
	return fmt.Sprintf("%s -> %s (%.0fKM)", sa.AirportID, sa.StationFile, sa.DistKM)
}

// {{{ StationFileName

func StationFileName(stationID string, wban int, year int) string {
	return fmt.Sprintf("%s-%05d-%d.op.gz", stationID, wban, year)
}

// }}}
// {{{ NearestStation

// NearestStation returns the index of the closest station, and its distance. A full scan; on
// a tie, the station seen first in the catalog wins. Returns -1 if there are no stations.
func NearestStation(loc geo.Latlong, stations []WeatherStation) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i,s := range stations {
		if d := HaversineKM(loc, s.Latlong); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// }}}
// {{{ AssignStations

// AssignStations finds the nearest station for each airport. The location of an airport
// doesn't depend on the metric type, so only the departure-delay rows are looked at.
func AssignStations(airports []AirportTraffic, stations []WeatherStation, ym YearMonth) []StationAssignment {
	out := []StationAssignment{}
	for _,a := range airports {
		if a.MetricType != DepartureDelay { continue }

		i,dist := NearestStation(a.Latlong, stations)
		if i < 0 { continue }

		s := stations[i]
		out = append(out, StationAssignment{
			AirportID: a.Code,
			StationID: s.StationID,
			WBAN: s.WBAN,
			DistKM: dist,
			StationFile: StationFileName(s.StationID, s.WBAN, ym.Year),
		})
	}
	return out
}

// }}}
// {{{ AttachAssignments

// AttachAssignments copies each airport's assignment onto all of its metric-type rows. Rows
// for airports without an assignment (i.e. no departure-delay row survived) are dropped.
func AttachAssignments(airports []AirportTraffic, assignments []StationAssignment) []AirportTraffic {
	byID := map[string]StationAssignment{}
	for _,sa := range assignments { byID[sa.AirportID] = sa }

	out := []AirportTraffic{}
	for _,a := range airports {
		if sa,exists := byID[a.Code]; exists {
			sa := sa
			a.Station = &sa
			out = append(out, a)
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
