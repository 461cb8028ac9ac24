package pipeline

import(
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
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

const kObsLine = "725650 03017  20180101    11.8 24     0.2 24  1029.0 24   832.3 24   10.0 24    4.8 24   11.1  999.9    23.0*    1.0   0.00G 999.9  001000"

// {{{ fixtures

func catalogRow(stn, wban, name, lat, lon string) string {
	return fmt.Sprintf("%-6s %-5s %-29s %-4s %-2s %-5s %7s %8s %7s %8s %8s",
		stn, wban, name, "US", "CO", "KXXX", lat, lon, "+1650.2", "19940718", "20180730")
}

// Writes a month of data to dir. UA flies 50 legs a day each way between DEN and ORD, enough
// to make both airports and the airline significant; AA flies one a day, which is not.
func writeMonth(t *testing.T, dir string) {
	t.Helper()

	var flights bytes.Buffer
	flights.WriteString("Date,CAR,TAIL,FLNum,ORIGIN_ID,ORIGIN,DEST_ID,DEST,DEP_DEL,DEP_TAXI,ARR_TAXI,ARR_DEL,CANCEL\n")
	for d:=1; d<=31; d++ {
		for i:=0; i<50; i++ {
			fmt.Fprintf(&flights, "2018-01-%02d,UA,N1,%d,11292,DEN,13930,ORD,%d,15,8,%d,0.00\n", d, i, i%30, i%20)
			fmt.Fprintf(&flights, "2018-01-%02d,UA,N2,%d,13930,ORD,11292,DEN,%d,20,6,%d,0.00\n", d, 100+i, i%40, i%25)
		}
		fmt.Fprintf(&flights, "2018-01-%02d,AA,N3,1,11292,DEN,13930,ORD,5,10,5,5,0.00\n", d)
	}
	var gzbuf bytes.Buffer
	gz := gzip.NewWriter(&gzbuf)
	_,err := gz.Write(flights.Bytes())
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Flights_onTime_201801.csv.gz"), gzbuf.Bytes(), 0644))

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	write(DefaultAirlinesFile, "Code,Description\nUA,United Air Lines Inc.\nAA,American Airlines Inc.\n")
	write(DefaultAirportsFile, "AIRPORT_ID,DISPLAY_AIRPORT_NAME,DISPLAY_AIRPORT_CITY_NAME_FULL,LATITUDE,LONGITUDE\n"+
		"11292,Denver International,\"Denver, CO\",39.86166667,-104.67305556\n"+
		"13930,Chicago O'Hare International,\"Chicago, IL\",41.97694444,-87.90805556\n")

	catalog := []string{}
	for i:=0; i<gsod.CatalogHeaderLines; i++ { catalog = append(catalog, "") }
	catalog = append(catalog,
		catalogRow("725650", "03017", "DENVER INTERNATIONAL AIRPORT", "+39.833", "-104.658"),
		catalogRow("725300", "94846", "CHICAGO O'HARE INTERNATIONAL", "+41.995", "-87.934"),
		catalogRow("724695", "23036", "AURORA BUCKLEY FIELD ANGB", "+39.717", "-104.750"),
	)
	write(DefaultStationCatalogFile, strings.Join(catalog, "\n")+"\n")
}

// }}}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeMonth(t, dir)

	ds,err := Run(context.Background(), Config{Month:kJan2018, Opener:datasource.New(dir, "")})
	require.NoError(t, err)

	assert.Equal(t, kJan2018, ds.Month)
	assert.Equal(t, []string{"Chicago, IL", "Denver, CO"}, ds.Cities())
	assert.Equal(t, []string{"United Air Lines Inc."}, ds.Airlines())

	// UA's 3100 legs, four records each
	assert.Len(t, ds.Records, 4*3100)

	den,ok := ds.StationForCity("Denver, CO")
	require.True(t, ok)
	assert.Equal(t, "725650-03017-2018.op.gz", den.StationFile)
	assert.Equal(t, "725300-94846-2018.op.gz", ds.StationFileForCity("Chicago, IL"))

	// AA's departures from DEN count towards the airport's traffic, even though AA's own
	// records are gone.
	for _,r := range ds.ForCity("Denver, CO") {
		expected := 1550
		if r.MetricType.IsDeparture() { expected = 1581 }
		assert.Equal(t, expected, r.AirportFlightCount, "%s", r)
		assert.Equal(t, 3100, r.AirlineFlightCount)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	writeMonth(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, DefaultStationCatalogFile)))

	_,err := Run(context.Background(), Config{Month:kJan2018, Opener:datasource.New(dir, "")})
	assert.ErrorIs(t, err, datasource.ErrMissingFile)
	assert.Contains(t, err.Error(), DefaultStationCatalogFile)

	// No flights file for this month
	_,err = Run(context.Background(), Config{Month:flightwx.YearMonth{Year: 2018, Month: time.February}, Opener:datasource.New(dir, "")})
	assert.ErrorIs(t, err, datasource.ErrMissingFile)
}

func TestRunNeedsMonth(t *testing.T) {
	_,err := Run(context.Background(), Config{Opener:datasource.New(t.TempDir(), "")})
	assert.ErrorIs(t, err, flightwx.ErrBadMonth)
}

func TestPrefetchWeather(t *testing.T) {
	dir := t.TempDir()
	writeMonth(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "725650-03017-2018.op"),
		[]byte("header\n"+kObsLine+"\n"), 0644))

	o := datasource.New(dir, "")
	ds,err := Run(context.Background(), Config{Month:kJan2018, Opener:o})
	require.NoError(t, err)

	lib := gsod.NewLibrary(o, nil, nil)
	days,err := PrefetchWeather(context.Background(), lib, ds, 4)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"725650-03017-2018.op.gz": 1,
		"725300-94846-2018.op.gz": 0,
	}, days)
}

func TestWriteMetrics(t *testing.T) {
	dir := t.TempDir()
	writeMonth(t, dir)
	_,err := Run(context.Background(), Config{Month:kJan2018, Opener:datasource.New(dir, "")})
	require.NoError(t, err)

	path := filepath.Join(dir, "flightwx.prom")
	require.NoError(t, WriteMetrics(path))
	b,err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "flightwx_pipeline_joined_records 12400")
	assert.Contains(t, string(b), "flightwx_pipeline_active_stations 3")
}
