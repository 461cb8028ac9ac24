package report

import(
	"fmt"

	"github.com/skypies/flightwx"
)

// {{{ minutesOf

func minutesOf(recs []flightwx.JoinedRecord, mt flightwx.MetricType) []float64 {
	out := []float64{}
	for _,r := range recs {
		if r.MetricType == mt { out = append(out, r.Minutes) }
	}
	return out
}

// }}}

// The DelayView is the top half of the dashboard: delays and taxi times at one city, for one
// airline, across the month.
type DelayView struct {
	Selection
	Title    string

	// Same x-range for all four histograms; the 2% and 98% quantiles of every duration in
	// the dataset, whatever the selection.
	XMin, XMax float64

	Histograms map[flightwx.MetricType]Histogram // may hold empty histograms
}

// {{{ BuildDelayView

func BuildDelayView(ds *flightwx.JoinedDataset, sel Selection) (*DelayView, error) {
	if err := sel.validateBinWidth(); err != nil { return nil, err }

	recs := ds.Where(func(r flightwx.JoinedRecord) bool {
		return r.City == sel.City && r.AirlineName == sel.Airline
	})
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s at %s", ErrNoData, sel.Airline, sel.City)
	}

	all := make([]float64, len(ds.Records))
	for i,r := range ds.Records { all[i] = r.Minutes }

	v := DelayView{
		Selection: sel,
		Title: fmt.Sprintf("Delays at %s for %s", sel.City, sel.Airline),
		XMin: Quantile(0.02, all),
		XMax: Quantile(0.98, all),
		Histograms: map[flightwx.MetricType]Histogram{},
	}

	for _,mt := range flightwx.MetricTypes {
		h,err := NewHistogram(minutesOf(recs, mt), float64(sel.BinWidth))
		if err != nil && err != ErrNoData { return nil, err }
		v.Histograms[mt] = h
	}

	return &v, nil
}

// }}}

// {{{ v.Table

// Table has one row per histogram bin, for every metric.
func (v DelayView)Table() Table {
	t := Table{Headers: []string{"city", "airline", "metric_type", "bin_left", "bin_right", "density"}}
	for _,mt := range flightwx.MetricTypes {
		t.AddHistogram([]string{v.City, v.Airline, string(mt)}, v.Histograms[mt])
	}
	return t
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
