package report

import(
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Histogram is density-normalised: the bars integrate to 1. Edges run from the smallest
// value upwards in steps of the bin width, stopping before the largest value; so values past
// the last edge are not counted. The last bin includes its right edge.
type Histogram struct {
	Edges   []float64 // len(Density)+1
	Density []float64
	N       int // values that landed in a bin
}

func (h Histogram)Empty() bool { return len(h.Density) == 0 }

func (h Histogram)String() string {
	if h.Empty() { return "{empty histogram}" }
	return fmt.Sprintf("{%d bins [%.0f,%.0f), n=%d}", len(h.Density), h.Edges[0],
		h.Edges[len(h.Edges)-1], h.N)
}

// Integral is the sum of density*width; 1.0 for a non-empty histogram.
func (h Histogram)Integral() float64 {
	sum := 0.0
	for i,d := range h.Density {
		sum += d * (h.Edges[i+1] - h.Edges[i])
	}
	return sum
}

// {{{ finite

// The values with NaNs removed, sorted.
func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _,v := range vals {
		if !math.IsNaN(v) { out = append(out, v) }
	}
	sort.Float64s(out)
	return out
}

// }}}
// {{{ arange

func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n < 0 { n = 0 }
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// }}}
// {{{ NewHistogram

// NewHistogram bins the values. NaNs are ignored. Returns ErrNoData if there are fewer than
// two edges (i.e. the values span less than one bin width).
func NewHistogram(vals []float64, binWidth float64) (Histogram, error) {
	x := finite(vals)
	if len(x) == 0 || binWidth <= 0 { return Histogram{}, ErrNoData }

	edges := arange(floats.Min(x), floats.Max(x), binWidth)
	if len(edges) < 2 { return Histogram{}, ErrNoData }
	lo, hi := edges[0], edges[len(edges)-1]

	inRange := make([]float64, 0, len(x))
	for _,v := range x {
		if v >= lo && v <= hi { inRange = append(inRange, v) }
	}

	// stat.Histogram wants the last divider strictly above every value
	dividers := append([]float64{}, edges...)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, inRange, nil)

	h := Histogram{Edges:edges, Density:make([]float64, len(counts)), N:len(inRange)}
	if h.N == 0 { return h, nil }
	for i,c := range counts {
		h.Density[i] = c / (float64(h.N) * (edges[i+1] - edges[i]))
	}
	return h, nil
}

// }}}

// {{{ Quantile, Median, Mean

// Quantile interpolates linearly between the closest ranks (pandas' default; not the same
// as gonum's stat.LinInterp). NaNs are ignored; NaN if there is nothing left.
func Quantile(p float64, vals []float64) float64 {
	x := finite(vals)
	if len(x) == 0 { return math.NaN() }

	pos := p * float64(len(x)-1)
	i := int(math.Floor(pos))
	if i >= len(x)-1 { return x[len(x)-1] }
	frac := pos - float64(i)
	return x[i] + frac*(x[i+1]-x[i])
}

func Median(vals []float64) float64 { return Quantile(0.5, vals) }

// Mean ignores NaNs; NaN if there is nothing left.
func Mean(vals []float64) float64 {
	x := finite(vals)
	if len(x) == 0 { return math.NaN() }
	return stat.Mean(x, nil)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
