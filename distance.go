package flightwx

import(
	"math"

	"github.com/skypies/geo"
)

const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two points, in KM. It uses a fixed
// earth radius of 6371km; geo.Latlong.DistKM uses a slightly different model, and the
// station assignments must be reproducible against this one.
func HaversineKM(from, to geo.Latlong) float64 {
	p := math.Pi / 180.0
	a := 0.5 - math.Cos((to.Lat-from.Lat)*p)/2 +
		math.Cos(from.Lat*p) * math.Cos(to.Lat*p) * (1-math.Cos((to.Long-from.Long)*p)) / 2

	return 2 * EarthRadiusKM * math.Asin(math.Sqrt(a))
}
