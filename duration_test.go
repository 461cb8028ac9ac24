package flightwx

import(
	"fmt"
	"math"
	"testing"
)

func makeLeg(date, car, orig, dest string, depDel, arrDel, depTaxi, arrTaxi float64) FlightLeg {
	return FlightLeg{
		Date: date, Carrier: car,
		OriginID: orig, DestID: dest,
		DepDelay: depDel, ArrDelay: arrDel, DepTaxi: depTaxi, ArrTaxi: arrTaxi,
	}
}

func TestReshapeFourPerLeg(t *testing.T) {
	legs := []FlightLeg{}
	for i:=0; i<25; i++ {
		legs = append(legs, makeLeg(fmt.Sprintf("2018-01-%02d", 1+i%31), []string{"UA","AA","WN"}[i%3],
			"11292", "13930", float64(i), float64(-i), 12, 7))
	}
	legs[3].Cancelled = true
	legs[3].DepDelay, legs[3].ArrDelay = math.NaN(), math.NaN()
	legs[4].Diverted = true

	recs := Reshape(legs)
	if len(recs) != 4*len(legs) {
		t.Fatalf("expected %d records, got %d", 4*len(legs), len(recs))
	}

	for i,l := range legs {
		seen := map[MetricType]int{}
		for _,r := range recs[4*i:4*i+4] {
			if r.Date != l.Date || r.CarrierCode != l.Carrier {
				t.Errorf("leg %d: record %s doesn't carry (%s,%s)", i, r, l.Date, l.Carrier)
			}
			seen[r.MetricType]++
		}
		for _,mt := range MetricTypes {
			if seen[mt] != 1 {
				t.Errorf("leg %d: metric %s seen %d times", i, mt, seen[mt])
			}
		}
	}
}

func TestReshapeAirportPairing(t *testing.T) {
	recs := Reshape([]FlightLeg{ makeLeg("2018-01-05", "UA", "11292", "13930", 15, 22, 18, 9) })

	expected := []DurationRecord{
		{"2018-01-05", "UA", "11292", 15, DepartureDelay},
		{"2018-01-05", "UA", "13930", 22, ArrivalDelay},
		{"2018-01-05", "UA", "11292", 18, DepartureTaxi},
		{"2018-01-05", "UA", "13930",  9, ArrivalTaxi},
	}
	for i,e := range expected {
		if recs[i] != e {
			t.Errorf("[%d] expected %s, got %s", i, e, recs[i])
		}
	}
}

func TestReshapeCancelledPassesThrough(t *testing.T) {
	l := makeLeg("2018-01-05", "UA", "11292", "13930", math.NaN(), math.NaN(), math.NaN(), math.NaN())
	l.Cancelled, l.CancelCode = true, "B"

	recs := Reshape([]FlightLeg{l})
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	for _,r := range recs {
		if r.HasMinutes() {
			t.Errorf("expected no minutes on %s", r)
		}
	}
}

func TestReshapeEmpty(t *testing.T) {
	if recs := Reshape(nil); len(recs) != 0 {
		t.Errorf("expected nothing, got %d", len(recs))
	}
}
