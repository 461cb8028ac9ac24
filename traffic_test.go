package flightwx

import(
	"fmt"
	"math"
	"testing"
)

// Generates n records for the given carrier/airport/metric, spread evenly over the days.
func spreadRecords(n, days int, carrier, airport string, mt MetricType) []DurationRecord {
	out := []DurationRecord{}
	for i:=0; i<n; i++ {
		out = append(out, DurationRecord{
			Date: fmt.Sprintf("2018-01-%02d", 1 + i%days),
			CarrierCode: carrier,
			AirportID: airport,
			Minutes: float64(i%60),
			MetricType: mt,
		})
	}
	return out
}

func TestSignificanceThreshold(t *testing.T) {
	if th := SignificanceThreshold(31); th != 1488 {
		t.Errorf("expected 1488, got %d", th)
	}
}

func TestSignificanceIsStrict(t *testing.T) {
	tests := []struct {
		N        int
		Included bool
	}{
		{1487, false},
		{1488, false}, // exactly 48*31; not enough
		{1489, true},
		{3000, true},
	}

	for _,test := range tests {
		recs := spreadRecords(test.N, 31, "XX", "10001", DepartureDelay)
		if n := DistinctDates(recs); n != 31 {
			t.Fatalf("setup: %d distinct dates", n)
		}
		carriers,airports := SignificantTraffic(recs)
		if got := len(carriers) == 1; got != test.Included {
			t.Errorf("n=%d: carrier included=%v, expected %v", test.N, got, test.Included)
		}
		if got := len(airports) == 1; got != test.Included {
			t.Errorf("n=%d: airport included=%v, expected %v", test.N, got, test.Included)
		}
	}
}

// The day count is taken over the whole table; a carrier that only flies on two days still
// has to beat the 31-day threshold.
func TestSignificanceUsesGlobalDayCount(t *testing.T) {
	recs := spreadRecords(1500, 31, "AA", "10001", DepartureDelay)
	recs = append(recs, spreadRecords(200, 2, "ZZ", "10002", DepartureDelay)...)

	carriers,_ := SignificantTraffic(recs)
	if len(carriers) != 1 || carriers[0].Code != "AA" {
		t.Errorf("expected only AA to survive, got %v", carriers)
	}
}

func TestTrafficGroupsByMetricType(t *testing.T) {
	recs := Reshape([]FlightLeg{
		makeLeg("2018-01-01", "UA", "A", "B", 1, 2, 3, 4),
		makeLeg("2018-01-01", "UA", "B", "A", 1, 2, 3, 4),
		makeLeg("2018-01-02", "DL", "A", "C", 1, 2, 3, 4),
	})

	carriers := CountCarrierTraffic(recs)
	expected := []Traffic{
		{"DL", DepartureDelay, 1}, {"DL", ArrivalDelay, 1}, {"DL", DepartureTaxi, 1}, {"DL", ArrivalTaxi, 1},
		{"UA", DepartureDelay, 2}, {"UA", ArrivalDelay, 2}, {"UA", DepartureTaxi, 2}, {"UA", ArrivalTaxi, 2},
	}
	if len(carriers) != len(expected) {
		t.Fatalf("expected %d rows, got %d: %v", len(expected), len(carriers), carriers)
	}
	for i := range expected {
		if carriers[i] != expected[i] {
			t.Errorf("[%d] expected %s, got %s", i, expected[i], carriers[i])
		}
	}

	airports := CountAirportTraffic(recs)
	counts := map[string]int{}
	for _,a := range airports { counts[a.Code+"/"+string(a.MetricType)] = a.FlightCount }
	if counts["A/DEP_DEL"] != 2 || counts["A/ARR_DEL"] != 1 || counts["C/ARR_TAXI"] != 1 || counts["C/DEP_DEL"] != 0 {
		t.Errorf("unexpected airport counts: %v", counts)
	}
}

// Rows with no minutes (cancelled legs) still count toward significance.
func TestTrafficCountsRowsWithoutMinutes(t *testing.T) {
	recs := spreadRecords(1489, 31, "UA", "10001", DepartureDelay)
	for i := range recs {
		if i%2 == 0 { recs[i].Minutes = math.NaN() }
	}
	carriers,airports := SignificantTraffic(recs)
	if len(carriers) != 1 || carriers[0].FlightCount != 1489 {
		t.Errorf("carriers: %v", carriers)
	}
	if len(airports) != 1 {
		t.Errorf("airports: %v", airports)
	}
}
