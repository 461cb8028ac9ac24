package report

import(
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypies/flightwx"
	"github.com/skypies/flightwx/datasource"
	"github.com/skypies/flightwx/gsod"
)

var kJan2018 = flightwx.YearMonth{Year: 2018, Month: time.January}

// {{{ fixtures

const(
	kDenver = "Denver, CO"
	kUnited = "United Air Lines Inc."
	kDenverStation = "725650-03017-2018.op.gz"
)

func rec(date, city, airline string, mt flightwx.MetricType, mins float64) flightwx.JoinedRecord {
	return flightwx.JoinedRecord{
		DurationRecord: flightwx.DurationRecord{Date:date, CarrierCode:"UA", AirportID:"11292",
			Minutes:mins, MetricType:mt},
		City: city,
		AirlineName: airline,
		AirportFlightCount: 2000,
		Station: flightwx.StationAssignment{AirportID:"11292", StationFile:kDenverStation},
	}
}

// Three days at Denver. Jan 2nd is the bad one for departures, Jan 3rd for arrivals.
func testDataset() *flightwx.JoinedDataset {
	ds := flightwx.JoinedDataset{Month:kJan2018}
	add := func(date string, mt flightwx.MetricType, mins ...float64) {
		for _,m := range mins { ds.Records = append(ds.Records, rec(date, kDenver, kUnited, mt, m)) }
	}
	add("2018-01-01", flightwx.DepartureDelay, 0, 5, 10, 15)
	add("2018-01-02", flightwx.DepartureDelay, 30, 40, 50, math.NaN())
	add("2018-01-03", flightwx.DepartureDelay, 10, 20)
	add("2018-01-01", flightwx.ArrivalDelay, -10, 0, 10)
	add("2018-01-02", flightwx.ArrivalDelay, 0, 5)
	add("2018-01-03", flightwx.ArrivalDelay, 60, 61, 62)
	add("2018-01-01", flightwx.DepartureTaxi, 12, 14, 16, 18, 20)
	add("2018-01-01", flightwx.ArrivalTaxi, 7, 7, 7) // all one value; no bins

	ds.Records = append(ds.Records, rec("2018-01-01", "Chicago, IL", "American Airlines Inc.",
		flightwx.DepartureDelay, 500))
	return &ds
}

type fakeSource struct {
	obs   []flightwx.WeatherObservation
	files []string
}

func (fs *fakeSource)LookupOrLoad(ctx context.Context, file string, ym flightwx.YearMonth) ([]flightwx.WeatherObservation, error) {
	fs.files = append(fs.files, file)
	return fs.obs, nil
}

func testWeather() *fakeSource {
	return &fakeSource{obs: []flightwx.WeatherObservation{
		{Date:"2018-01-01", Temp:20.5, Snow:0},
		{Date:"2018-01-02", Temp:11.0, Snow:1},
		// no observation for the 3rd
	}}
}

// }}}

func TestNewHistogramArange(t *testing.T) {
	// Edges 0,5,10,15; the 17 and 19 fall past the last edge and are dropped.
	h,err := NewHistogram([]float64{0, 1, 5, 9, 10, 15, 17, 19}, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 10, 15}, h.Edges)
	assert.Equal(t, 6, h.N)
	// counts: [0,5)=2 [5,10)=2 [10,15]=2 (15 is in the last bin)
	for _,d := range h.Density {
		assert.InDelta(t, 2.0/(6*5), d, 1e-12)
	}
	assert.InDelta(t, 1.0, h.Integral(), 1e-12)
}

func TestNewHistogramDensityIntegratesToOne(t *testing.T) {
	vals := []float64{}
	for i:=0; i<500; i++ { vals = append(vals, float64((i*37)%113) - 20.0) }

	for _,w := range []float64{1, 3, 5, 7, 30} {
		h,err := NewHistogram(vals, w)
		require.NoError(t, err, "w=%v", w)
		assert.InDelta(t, 1.0, h.Integral(), 1e-9, "w=%v", w)
		for i:=1; i<len(h.Edges); i++ {
			assert.InDelta(t, w, h.Edges[i]-h.Edges[i-1], 1e-9)
		}
	}
}

func TestNewHistogramNoData(t *testing.T) {
	tests := [][]float64{
		nil,
		{math.NaN(), math.NaN()},
		{7, 7, 7},     // one edge
		{0, 3},        // span under one bin width -> a single edge
	}
	for _,vals := range tests {
		_,err := NewHistogram(vals, 5)
		assert.ErrorIs(t, err, ErrNoData, "%v", vals)
	}
}

func TestQuantile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, math.NaN()}
	assert.Equal(t, 1.0, Quantile(0, vals))
	assert.Equal(t, 4.0, Quantile(1, vals))
	assert.Equal(t, 2.5, Median(vals))
	assert.InDelta(t, 1.06, Quantile(0.02, vals), 1e-12)
	assert.InDelta(t, 3.94, Quantile(0.98, vals), 1e-12)
	assert.Equal(t, 2.5, Mean(vals))
	assert.True(t, math.IsNaN(Quantile(0.5, nil)))
}

func TestBuildDelayView(t *testing.T) {
	ds := testDataset()
	v,err := BuildDelayView(ds, Selection{City:kDenver, Airline:kUnited, BinWidth:5})
	require.NoError(t, err)

	all := []float64{}
	for _,r := range ds.Records { all = append(all, r.Minutes) }
	assert.Equal(t, Quantile(0.02, all), v.XMin)
	assert.Equal(t, Quantile(0.98, all), v.XMax)
	assert.Equal(t, "Delays at Denver, CO for United Air Lines Inc.", v.Title)

	dep := v.Histograms[flightwx.DepartureDelay]
	assert.Equal(t, 0.0, dep.Edges[0])
	assert.InDelta(t, 1.0, dep.Integral(), 1e-9)
	assert.True(t, v.Histograms[flightwx.ArrivalTaxi].Empty())

	// The Chicago record's 500 mins stays out of the histograms
	assert.Less(t, dep.Edges[len(dep.Edges)-1], 100.0)
}

func TestBuildDelayViewErrors(t *testing.T) {
	ds := testDataset()
	_,err := BuildDelayView(ds, Selection{City:kDenver, Airline:"Nobody", BinWidth:5})
	assert.ErrorIs(t, err, ErrNoData)

	_,err = BuildDelayView(ds, Selection{City:"Chicago, IL", Airline:kUnited, BinWidth:5})
	assert.ErrorIs(t, err, ErrNoData)

	for _,w := range []int{0, -1, 31} {
		_,err = BuildDelayView(ds, Selection{City:kDenver, Airline:kUnited, BinWidth:w})
		assert.ErrorIs(t, err, ErrBadSelection, "w=%d", w)
	}
}

func TestDailyStats(t *testing.T) {
	stats := DailyStats(testDataset().ForCity(kDenver))

	var jan2dep DailyStat
	for _,s := range stats {
		if s.Date == "2018-01-02" && s.MetricType == flightwx.DepartureDelay { jan2dep = s }
	}
	assert.Equal(t, 40.0, jan2dep.Mean)
	assert.Equal(t, 40.0, jan2dep.Median)
	assert.Equal(t, 3, jan2dep.Count, "NaN not counted")
	assert.Equal(t, 2000, jan2dep.AirportFlightCount)

	assert.Equal(t, "2018-01-01", stats[0].Date)
	assert.Equal(t, flightwx.DepartureDelay, stats[0].MetricType)
	assert.Equal(t, "2018-01-03", stats[len(stats)-1].Date)
}

func TestBuildWeatherView(t *testing.T) {
	ds := testDataset()
	src := testWeather()
	v,err := BuildWeatherView(context.Background(), ds, src, Selection{City:kDenver, WeatherField:"TEMP", BinWidth:5})
	require.NoError(t, err)

	assert.Equal(t, []string{kDenverStation}, src.files)
	assert.Equal(t, kDenverStation, v.Station.StationFile)

	// The 3rd has no weather, so it's gone
	for _,d := range v.Days {
		assert.NotEqual(t, "2018-01-03", d.Date)
	}
	deps := v.DaysFor(flightwx.DepartureDelay)
	require.Len(t, deps, 2)
	assert.Equal(t, "02", deps[1].Day)
	assert.Equal(t, 11.0, deps[1].Value)
	assert.Equal(t, 1, deps[1].Weather.Snow)

	// Worst days are picked from the merged rows; the 3rd's arrival disaster isn't among them
	assert.Equal(t, "2018-01-02", v.WorstDeparture.Date)
	assert.Equal(t, 40.0, v.WorstDeparture.MeanDelay)
	assert.Equal(t, "2018-01-02", v.WorstArrival.Date)
	assert.Equal(t, 2.5, v.WorstArrival.MeanDelay)
	assert.True(t, v.WorstArrival.Empty(), "0 and 5 don't span a bin")

	// 30,40,50 -> edges 30,35,40,45
	assert.Equal(t, []float64{30, 35, 40, 45}, v.WorstDeparture.Edges)

	assert.InDelta(t, 0.25, v.XMin, 1e-12)
	assert.InDelta(t, 49.0, v.XMax, 1e-12)
}

func TestBuildWeatherViewErrors(t *testing.T) {
	ds := testDataset()
	ctx := context.Background()

	_,err := BuildWeatherView(ctx, ds, testWeather(), Selection{City:"Nowhere", WeatherField:"TEMP", BinWidth:5})
	assert.ErrorIs(t, err, ErrNoData)

	_,err = BuildWeatherView(ctx, ds, testWeather(), Selection{City:kDenver, WeatherField:"HUMIDITY", BinWidth:5})
	assert.ErrorIs(t, err, ErrBadSelection)

	_,err = BuildWeatherView(ctx, ds, &fakeSource{}, Selection{City:kDenver, WeatherField:"TEMP", BinWidth:5})
	assert.ErrorIs(t, err, ErrNoData)
}

// A station file that is cut off halfway gives the placeholder, not a hard failure.
func TestBuildWeatherViewTruncatedStationFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for i:=0; i<200; i++ {
		fmt.Fprintf(gz, "725650  03017  201801%02d    %6.1f 24 line %d\n", 1+i%31, float64(i), i)
	}
	require.NoError(t, gz.Close())
	full := buf.Bytes()
	require.NoError(t, os.WriteFile(filepath.Join(dir, kDenverStation), full[:len(full)/2], 0644))

	lib := gsod.NewLibrary(datasource.New(dir, ""), nil, nil)
	sel := Selection{City:kDenver, Airline:kUnited, WeatherField:"TEMP", BinWidth:5}
	_,err := BuildWeatherView(context.Background(), testDataset(), lib, sel)
	assert.ErrorIs(t, err, ErrNoData)

	_,err = os.Stat(filepath.Join(dir, kDenverStation))
	assert.NoError(t, err, "station file still there")
}

func TestDefaultSelection(t *testing.T) {
	ds := testDataset()
	sel := DefaultSelection(ds, "Denver", "United")
	assert.Equal(t, Selection{kDenver, kUnited, "TEMP", 5}, sel)

	sel = DefaultSelection(ds, "Atlantis", "")
	assert.Equal(t, "Chicago, IL", sel.City, "falls back to the first city")
	assert.Equal(t, "American Airlines Inc.", sel.Airline)
}

func TestTablesCSV(t *testing.T) {
	ds := testDataset()
	dv,err := BuildDelayView(ds, Selection{City:kDenver, Airline:kUnited, BinWidth:5})
	require.NoError(t, err)
	wv,err := BuildWeatherView(context.Background(), ds, testWeather(), Selection{City:kDenver, WeatherField:"Snow", BinWidth:5})
	require.NoError(t, err)

	for i,tbl := range []Table{dv.Table(), wv.Table(), wv.WorstDayTable()} {
		var buf bytes.Buffer
		require.NoError(t, tbl.WriteCSV(&buf))

		rows,err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err, "table %d", i)
		require.Equal(t, len(tbl.Rows)+1, len(rows))
		assert.Equal(t, tbl.Headers, rows[0])
		for _,row := range rows[1:] {
			assert.Len(t, row, len(tbl.Headers), fmt.Sprintf("table %d", i))
		}
	}

	assert.Equal(t, "Snow", wv.Table().Headers[8])
}
