package flightwx

import(
	"math"
	"testing"

	"github.com/skypies/geo"
)

// Returns a point roughly km east of the origin, along the equator.
func eastOf(origin geo.Latlong, km float64) geo.Latlong {
	return geo.Latlong{Lat: origin.Lat, Long: origin.Long + km / (EarthRadiusKM * math.Pi / 180.0)}
}

func TestNearestStationPicksMinimum(t *testing.T) {
	airport := geo.Latlong{Lat: 0, Long: 0}
	stations := []WeatherStation{
		{StationID: "A", WBAN: 1, Latlong: eastOf(airport, 50)},
		{StationID: "B", WBAN: 2, Latlong: eastOf(airport, 10)},
		{StationID: "C", WBAN: 3, Latlong: eastOf(airport, 30)},
	}

	i,dist := NearestStation(airport, stations)
	if i != 1 {
		t.Errorf("expected station B, got %d", i)
	}
	if math.Abs(dist-10) > 0.01 {
		t.Errorf("expected 10km, got %f", dist)
	}
}

func TestNearestStationTieGoesToFirst(t *testing.T) {
	airport := geo.Latlong{Lat: 0, Long: 0}
	stations := []WeatherStation{
		{StationID: "far", Latlong: eastOf(airport, 40)},
		{StationID: "first", Latlong: eastOf(airport, 20)},
		{StationID: "second", Latlong: eastOf(airport, 20)},
	}
	if i,_ := NearestStation(airport, stations); i != 1 {
		t.Errorf("expected the first of the tied stations, got %d", i)
	}
}

func TestNearestStationEmpty(t *testing.T) {
	if i,_ := NearestStation(geo.Latlong{Lat: 0, Long: 0}, nil); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}
}

func TestStationFileName(t *testing.T) {
	if fn := StationFileName("725650", 3017, 2018); fn != "725650-03017-2018.op.gz" {
		t.Errorf("got %q", fn)
	}
}

func TestAssignAndBroadcast(t *testing.T) {
	ym := YearMonth{2018, 1}
	den := geo.Latlong{Lat: 39.86, Long: -104.67}
	stations := []WeatherStation{
		{StationID: "724695", WBAN: 23036, Latlong: geo.Latlong{Lat: 39.71, Long: -104.75}},
		{StationID: "725650", WBAN: 3017, Latlong: geo.Latlong{Lat: 39.83, Long: -104.66}},
	}

	airports := []AirportTraffic{}
	for _,mt := range MetricTypes {
		airports = append(airports, AirportTraffic{Traffic: Traffic{"11292", mt, 2000}, City: "Denver, CO", Latlong: den})
	}
	// An airport with only arrival rows gets no assignment
	airports = append(airports, AirportTraffic{Traffic: Traffic{"99999", ArrivalDelay, 2000}, Latlong: den})

	assignments := AssignStations(airports, stations, ym)
	if len(assignments) != 1 {
		t.Fatalf("expected one assignment, got %v", assignments)
	}
	sa := assignments[0]
	if sa.StationID != "725650" || sa.StationFile != "725650-03017-2018.op.gz" {
		t.Errorf("wrong station: %s", sa)
	}
	if sa.RoundedDistKM() != 3 {
		t.Errorf("expected ~3km, got %f", sa.DistKM)
	}

	enriched := AttachAssignments(airports, assignments)
	if len(enriched) != 4 {
		t.Fatalf("expected 4 enriched rows, got %d", len(enriched))
	}
	for _,a := range enriched {
		if a.Station == nil || *a.Station != sa {
			t.Errorf("%s: assignment not broadcast", a.MetricType)
		}
	}
}
