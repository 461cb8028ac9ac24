package flightwx

import(
	"fmt"
	"sort"
)

// Traffic is a count of DurationRecords for one code (a carrier code, or an airport id) and
// one metric type. It serves as both the CarrierTraffic and the AirportTraffic table.
type Traffic struct {
	Code        string
	MetricType
	FlightCount int
}

func (t Traffic)String() string {
	return fmt.Sprintf("%-6.6s %-8.8s %6d", t.Code, t.MetricType, t.FlightCount)
}

type trafficKey struct {
	Code string
	MetricType
}

// {{{ DistinctDates, SignificanceThreshold

func DistinctDates(recs []DurationRecord) int {
	dates := map[string]bool{}
	for _,r := range recs { dates[r.Date] = true }
	return len(dates)
}

// The threshold is computed once, from the day count across the whole table, and every group
// is compared against it; a carrier that only flew on some days still faces the full-month bar.
func SignificanceThreshold(nDates int) int {
	return MinFlightsPerHour * HoursPerDay * nDates
}

// }}}
// {{{ countTraffic

// countTraffic counts rows per (key, metric type). Every row counts, including those with NaN
// minutes (cancelled or diverted legs); a pandas count() over the duration column would skip
// those, and give a lower figure.
func countTraffic(recs []DurationRecord, keyf func(DurationRecord) string) []Traffic {
	counts := map[trafficKey]int{}
	for _,r := range recs {
		counts[trafficKey{keyf(r), r.MetricType}]++
	}

	out := make([]Traffic, 0, len(counts))
	for k,n := range counts {
		out = append(out, Traffic{Code:k.Code, MetricType:k.MetricType, FlightCount:n})
	}
	sort.Slice(out, func(i,j int) bool {
		if out[i].Code != out[j].Code { return out[i].Code < out[j].Code }
		return out[i].MetricType.order() < out[j].MetricType.order()
	})
	return out
}

// }}}
// {{{ CountCarrierTraffic, CountAirportTraffic

func CountCarrierTraffic(recs []DurationRecord) []Traffic {
	return countTraffic(recs, func(r DurationRecord) string { return r.CarrierCode })
}

func CountAirportTraffic(recs []DurationRecord) []Traffic {
	return countTraffic(recs, func(r DurationRecord) string { return r.AirportID })
}

// }}}
// {{{ FilterSignificant

// Strictly greater than; a group sitting exactly on the threshold is dropped.
func FilterSignificant(traffic []Traffic, threshold int) []Traffic {
	out := []Traffic{}
	for _,t := range traffic {
		if t.FlightCount > threshold { out = append(out, t) }
	}
	return out
}

// }}}
// {{{ SignificantTraffic

func SignificantTraffic(recs []DurationRecord) (carriers, airports []Traffic) {
	threshold := SignificanceThreshold(DistinctDates(recs))
	carriers = FilterSignificant(CountCarrierTraffic(recs), threshold)
	airports = FilterSignificant(CountAirportTraffic(recs), threshold)
	return
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
