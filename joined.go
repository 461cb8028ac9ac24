package flightwx

import(
	"fmt"
	"sort"
)

// A JoinedRecord is a DurationRecord for a significant airport and a significant airline,
// carrying the reference data and station assignment the presentation layer needs.
type JoinedRecord struct {
	DurationRecord

	AirportName        string
	City               string
	AirportFlightCount int // this airport's monthly count, for this metric type
	Station            StationAssignment

	AirlineName        string
	AirlineFlightCount int
}

func (jr JoinedRecord)String() string {
	return fmt.Sprintf("%s %-20.20s %-24.24s %s", jr.DurationRecord, jr.City, jr.AirlineName,
		jr.Station.StationFile)
}

// The JoinedDataset is built once per pipeline run, and is read-only from then on.
type JoinedDataset struct {
	Month   YearMonth
	Records []JoinedRecord
}

// {{{ Join

// Join merges the duration records with the enriched airport rows (on airport id and
// metric type) and the airline rows (on carrier code and metric type). Inner joins; the
// airport rows must already carry their station assignment.
func Join(ym YearMonth, recs []DurationRecord, airports []AirportTraffic, airlines []AirlineTraffic) *JoinedDataset {
	apByKey := map[trafficKey]AirportTraffic{}
	for _,a := range airports {
		if a.Station == nil { continue }
		apByKey[trafficKey{a.Code, a.MetricType}] = a
	}
	alByKey := map[trafficKey]AirlineTraffic{}
	for _,a := range airlines {
		alByKey[trafficKey{a.Code, a.MetricType}] = a
	}

	ds := JoinedDataset{Month:ym, Records:[]JoinedRecord{}}
	for _,r := range recs {
		ap,exists := apByKey[trafficKey{r.AirportID, r.MetricType}]
		if !exists { continue }
		al,exists := alByKey[trafficKey{r.CarrierCode, r.MetricType}]
		if !exists { continue }

		ds.Records = append(ds.Records, JoinedRecord{
			DurationRecord: r,
			AirportName: ap.Name,
			City: ap.City,
			AirportFlightCount: ap.FlightCount,
			Station: *ap.Station,
			AirlineName: al.Name,
			AirlineFlightCount: al.FlightCount,
		})
	}

	return &ds
}

// }}}

// {{{ ds.Cities, ds.Airlines

func sortedUnique(vals map[string]bool) []string {
	out := []string{}
	for k,_ := range vals { out = append(out, k) }
	sort.Strings(out)
	return out
}

func (ds *JoinedDataset)Cities() []string {
	m := map[string]bool{}
	for _,r := range ds.Records { m[r.City] = true }
	return sortedUnique(m)
}

func (ds *JoinedDataset)Airlines() []string {
	m := map[string]bool{}
	for _,r := range ds.Records { m[r.AirlineName] = true }
	return sortedUnique(m)
}

// }}}
// {{{ ds.ForCity, ds.Where

func (ds *JoinedDataset)Where(pred func(JoinedRecord) bool) []JoinedRecord {
	out := []JoinedRecord{}
	for _,r := range ds.Records {
		if pred(r) { out = append(out, r) }
	}
	return out
}

func (ds *JoinedDataset)ForCity(city string) []JoinedRecord {
	return ds.Where(func(r JoinedRecord) bool { return r.City == city })
}

// }}}
// {{{ ds.StationForCity, ds.StationFileForCity

// StationForCity returns the station assigned to the first airport found in the city.
func (ds *JoinedDataset)StationForCity(city string) (StationAssignment, bool) {
	for _,r := range ds.Records {
		if r.City == city { return r.Station, true }
	}
	return StationAssignment{}, false
}

func (ds *JoinedDataset)StationFileForCity(city string) string {
	sa,_ := ds.StationForCity(city)
	return sa.StationFile
}

// }}}
// {{{ ds.Stations

// Stations lists each distinct assignment, ordered by airport id.
func (ds *JoinedDataset)Stations() []StationAssignment {
	m := map[string]StationAssignment{}
	for _,r := range ds.Records { m[r.Station.AirportID] = r.Station }
	out := []StationAssignment{}
	for _,sa := range m { out = append(out, sa) }
	sort.Slice(out, func(i,j int) bool { return out[i].AirportID < out[j].AirportID })
	return out
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
