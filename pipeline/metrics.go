package pipeline

import(
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The pipeline is a batch job, so these are written out to a node_exporter textfile at the
// end of a run rather than scraped.
var(
	flightLegsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightwx_pipeline_flight_legs_loaded_total",
		Help: "Flight legs read from the on-time file.",
	})
	durationRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightwx_pipeline_duration_records_total",
		Help: "Duration records produced by the reshaper.",
	})
	significantEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flightwx_pipeline_significant_entities",
		Help: "Airports or airlines above the traffic threshold, after the reference join.",
	}, []string{"kind"})
	rowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightwx_pipeline_rows_skipped_total",
		Help: "Input rows dropped while loading, by reason.",
	}, []string{"reason"})
	activeStations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flightwx_pipeline_active_stations",
		Help: "Weather stations active across the target month.",
	})
	stationDistanceKM = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightwx_pipeline_station_distance_km",
		Help:    "Distance from each significant airport to its assigned station.",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
	joinedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flightwx_pipeline_joined_records",
		Help: "Records in the final joined dataset.",
	})
	weatherDays = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightwx_pipeline_weather_days_total",
		Help: "Daily observations loaded for assigned stations; 'missing' counts stations with none.",
	}, []string{"outcome"})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flightwx_pipeline_run_duration_seconds",
		Help:    "Duration of a full pipeline run.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
	})
	runsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightwx_pipeline_runs_failed_total",
		Help: "Pipeline runs that returned an error.",
	})
)

// WriteMetrics dumps the default registry to a textfile, for node_exporter to pick up.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
