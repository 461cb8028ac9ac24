package report

import(
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/skypies/flightwx"
)

// WeatherSource is where daily observations come from; gsod.Library is one.
type WeatherSource interface {
	LookupOrLoad(ctx context.Context, stationFile string, ym flightwx.YearMonth) ([]flightwx.WeatherObservation, error)
}

// A DailyStat summarises one metric at a city, on one day. Records are grouped by the
// airport's monthly total too, so a city with two significant airports gets a row for each.
type DailyStat struct {
	Date string
	flightwx.MetricType
	AirportFlightCount int

	Mean   float64
	Median float64
	Count  int // records with a value
}

type dailyKey struct {
	Date string
	flightwx.MetricType
	AirportFlightCount int
}

// {{{ DailyStats

// DailyStats groups records by (date, metric, airport total), sorted in that order.
func DailyStats(recs []flightwx.JoinedRecord) []DailyStat {
	groups := map[dailyKey][]float64{}
	for _,r := range recs {
		k := dailyKey{r.Date, r.MetricType, r.AirportFlightCount}
		groups[k] = append(groups[k], r.Minutes)
	}

	out := []DailyStat{}
	for k,vals := range groups {
		out = append(out, DailyStat{
			Date: k.Date,
			MetricType: k.MetricType,
			AirportFlightCount: k.AirportFlightCount,
			Mean: Mean(vals),
			Median: Median(vals),
			Count: len(finite(vals)),
		})
	}

	sort.Slice(out, func(i,j int) bool {
		if out[i].Date != out[j].Date { return out[i].Date < out[j].Date }
		if oi,oj := metricOrder(out[i].MetricType), metricOrder(out[j].MetricType); oi != oj {
			return oi < oj
		}
		return out[i].AirportFlightCount < out[j].AirportFlightCount
	})
	return out
}

func metricOrder(mt flightwx.MetricType) int {
	for i,m := range flightwx.MetricTypes {
		if m == mt { return i }
	}
	return len(flightwx.MetricTypes)
}

// }}}

// A WeatherDay is a DailyStat with the station's observations for that date.
type WeatherDay struct {
	DailyStat
	Day     string // day of month, "01".."31"
	Weather flightwx.WeatherObservation
	Value   float64 // the selected weather field
}

// {{{ MergeWeather

// MergeWeather is an inner join on date; stats for days the station has no observation for
// are dropped.
func MergeWeather(stats []DailyStat, obs []flightwx.WeatherObservation, field string) []WeatherDay {
	byDate := map[string]flightwx.WeatherObservation{}
	for _,o := range obs { byDate[o.Date] = o }

	out := []WeatherDay{}
	for _,s := range stats {
		o,exists := byDate[s.Date]
		if !exists { continue }
		v,_ := o.Field(field)
		out = append(out, WeatherDay{DailyStat:s, Day:dayOfMonth(s.Date), Weather:o, Value:v})
	}
	return out
}

func dayOfMonth(date string) string {
	if len(date) < 10 { return "" }
	return date[8:10]
}

// }}}

// The WorstDay is the day with the highest mean delay, for one metric.
type WorstDay struct {
	flightwx.MetricType
	Day       string
	Date      string
	MeanDelay float64
	Histogram
}

// {{{ findWorstDay

// The first day (in date order) with the maximal mean wins. Its histogram is over every
// record at the city with that metric, on that day of the month.
func findWorstDay(days []WeatherDay, recs []flightwx.JoinedRecord, mt flightwx.MetricType, binWidth int) (WorstDay, []float64, bool) {
	wd := WorstDay{MetricType:mt, MeanDelay:math.Inf(-1)}
	for _,d := range days {
		if d.MetricType != mt || math.IsNaN(d.Mean) { continue }
		if d.Mean > wd.MeanDelay {
			wd.Day, wd.Date, wd.MeanDelay = d.Day, d.Date, d.Mean
		}
	}
	if wd.Day == "" { return wd, nil, false }

	vals := []float64{}
	for _,r := range recs {
		if r.MetricType == mt && dayOfMonth(r.Date) == wd.Day { vals = append(vals, r.Minutes) }
	}
	wd.Histogram,_ = NewHistogram(vals, float64(binWidth))
	return wd, vals, true
}

// }}}

// The WeatherView is the bottom half of the dashboard: how one city's delays line up with
// the weather at its station. It covers every airline at the city.
type WeatherView struct {
	Selection
	Station flightwx.StationAssignment

	Days []WeatherDay

	WorstDeparture WorstDay
	WorstArrival   WorstDay
	XMin, XMax     float64 // for the worst-day histograms; 5% and 95% quantiles
}

// {{{ BuildWeatherView

func BuildWeatherView(ctx context.Context, ds *flightwx.JoinedDataset, src WeatherSource, sel Selection) (*WeatherView, error) {
	if err := sel.validateBinWidth(); err != nil { return nil, err }
	if err := sel.validateWeatherField(); err != nil { return nil, err }

	recs := ds.ForCity(sel.City)
	sa,ok := ds.StationForCity(sel.City)
	if len(recs) == 0 || !ok {
		return nil, fmt.Errorf("%w: city %q", ErrNoData, sel.City)
	}

	obs,err := src.LookupOrLoad(ctx, sa.StationFile, ds.Month)
	if err != nil { return nil, err }

	days := MergeWeather(DailyStats(recs), obs, sel.WeatherField)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no weather for %s from %s", ErrNoData, sel.City, sa.StationFile)
	}

	v := WeatherView{Selection:sel, Station:sa, Days:days}

	dep,depVals,depOK := findWorstDay(days, recs, flightwx.DepartureDelay, sel.BinWidth)
	arr,arrVals,arrOK := findWorstDay(days, recs, flightwx.ArrivalDelay, sel.BinWidth)
	v.WorstDeparture, v.WorstArrival = dep, arr

	v.XMin, v.XMax = math.NaN(), math.NaN()
	if depOK || arrOK {
		v.XMin = math.Min(nanTo(Quantile(0.05, depVals), math.Inf(1)), nanTo(Quantile(0.05, arrVals), math.Inf(1)))
		v.XMax = math.Max(nanTo(Quantile(0.95, depVals), math.Inf(-1)), nanTo(Quantile(0.95, arrVals), math.Inf(-1)))
	}

	return &v, nil
}

func nanTo(v, with float64) float64 {
	if math.IsNaN(v) { return with }
	return v
}

// }}}
// {{{ v.DaysFor

// DaysFor returns the rows for one metric, in date order.
func (v WeatherView)DaysFor(mt flightwx.MetricType) []WeatherDay {
	out := []WeatherDay{}
	for _,d := range v.Days {
		if d.MetricType == mt { out = append(out, d) }
	}
	return out
}

// }}}
// {{{ v.Table

func (v WeatherView)Table() Table {
	t := Table{Headers: []string{"date", "day", "metric_type", "airport_flight_count", "mean",
		"median", "count", "station_file", v.WeatherField}}
	for _,d := range v.Days {
		t.Rows = append(t.Rows, []string{d.Date, d.Day, string(d.MetricType),
			fmt.Sprintf("%d", d.AirportFlightCount), fmtFloat(d.Mean), fmtFloat(d.Median),
			fmt.Sprintf("%d", d.Count), v.Station.StationFile, fmtFloat(d.Value)})
	}
	return t
}

// WorstDayTable has the bins of the two worst-day histograms.
func (v WeatherView)WorstDayTable() Table {
	t := Table{Headers: []string{"city", "metric_type", "date", "bin_left", "bin_right", "density"}}
	for _,wd := range []WorstDay{v.WorstDeparture, v.WorstArrival} {
		t.AddHistogram([]string{v.City, string(wd.MetricType), wd.Date}, wd.Histogram)
	}
	return t
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
