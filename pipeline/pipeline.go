// Package pipeline builds the month's JoinedDataset from the input files. A run is
// synchronous and single-threaded; the dataset it returns is read-only from then on.
package pipeline

import(
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/skypies/flightwx"
	"github.com/skypies/flightwx/bts"
	"github.com/skypies/flightwx/datasource"
	"github.com/skypies/flightwx/gsod"
)

const(
	DefaultAirportsFile = "Airport_locations.csv"
	DefaultAirlinesFile = "Carriers.csv"
	DefaultStationCatalogFile = "isd-history.txt"
)

// The on-time file is looked for under each of these suffixes, in order.
var flightFileSuffixes = []string{".csv.gz", ".csv.zst", ".csv"}

func DefaultFlightsFileStem(ym flightwx.YearMonth) string {
	return "Flights_onTime_" + ym.String()
}

type Config struct {
	Month flightwx.YearMonth

	// Names are resolved by the Opener; blanks get the defaults.
	FlightsFile        string
	AirlinesFile       string
	AirportsFile       string
	StationCatalogFile string

	Opener gsod.Opener
	Logger *slog.Logger
}

// {{{ cfg.withDefaults

func (cfg Config)withDefaults(ctx context.Context) (Config, error) {
	if cfg.Month.IsZero() { return cfg, fmt.Errorf("%w: no month configured", flightwx.ErrBadMonth) }
	if cfg.Logger == nil { cfg.Logger = slog.Default() }
	if cfg.Opener == nil { return cfg, fmt.Errorf("no opener configured") }

	if cfg.AirlinesFile == "" { cfg.AirlinesFile = DefaultAirlinesFile }
	if cfg.AirportsFile == "" { cfg.AirportsFile = DefaultAirportsFile }
	if cfg.StationCatalogFile == "" { cfg.StationCatalogFile = DefaultStationCatalogFile }

	if cfg.FlightsFile == "" {
		stem := DefaultFlightsFileStem(cfg.Month)
		for _,suffix := range flightFileSuffixes {
			if exists,err := cfg.Opener.Exists(ctx, stem+suffix); err != nil {
				return cfg, err
			} else if exists {
				cfg.FlightsFile = stem+suffix
				break
			}
		}
		if cfg.FlightsFile == "" {
			return cfg, fmt.Errorf("%w: %s{%v}", datasource.ErrMissingFile, stem, flightFileSuffixes)
		}
	}

	return cfg,nil
}

// }}}
// {{{ checkInputs

// All inputs are checked before any work is done, so a bad config fails fast.
func checkInputs(ctx context.Context, cfg Config) error {
	for _,name := range []string{cfg.FlightsFile, cfg.AirlinesFile, cfg.AirportsFile, cfg.StationCatalogFile} {
		if exists,err := cfg.Opener.Exists(ctx, name); err != nil {
			return fmt.Errorf("checking %s: %w", name, err)
		} else if !exists {
			return fmt.Errorf("%w: %s", datasource.ErrMissingFile, name)
		}
	}
	return nil
}

// }}}
// {{{ withFile

func withFile(ctx context.Context, o gsod.Opener, name string, f func(io.Reader) error) error {
	rdr,err := o.Open(ctx, name)
	if err != nil { return err }
	defer rdr.Close()
	if err := f(rdr); err != nil { return fmt.Errorf("%s: %w", name, err) }
	return nil
}

// }}}

// {{{ Run

func Run(ctx context.Context, cfg Config) (*flightwx.JoinedDataset, error) {
	tStart := time.Now()
	ds,err := run(ctx, cfg)
	if err != nil {
		runsFailed.Inc()
		return nil,err
	}
	runDuration.Observe(time.Since(tStart).Seconds())
	return ds,nil
}

func run(ctx context.Context, cfg Config) (*flightwx.JoinedDataset, error) {
	cfg,err := cfg.withDefaults(ctx)
	if err != nil { return nil,err }
	if err := checkInputs(ctx, cfg); err != nil { return nil,err }

	lg := cfg.Logger.With("month", cfg.Month.String())
	tStart := time.Now()

	// 1. Flights, reshaped into duration records
	var legs []flightwx.FlightLeg
	err = withFile(ctx, cfg.Opener, cfg.FlightsFile, func(r io.Reader) (err error) {
		legs,err = bts.ReadFlightLegs(r)
		return
	})
	if err != nil { return nil,err }
	flightLegsLoaded.Add(float64(len(legs)))

	recs := flightwx.Reshape(legs)
	legs = nil
	durationRecords.Add(float64(len(recs)))
	nDates := flightwx.DistinctDates(recs)
	lg.Info("flights loaded", "file", cfg.FlightsFile, "records", len(recs), "dates", nDates,
		"elapsed", time.Since(tStart))

	// 2. Significance
	carriers,airports := flightwx.SignificantTraffic(recs)
	lg.Info("significance", "threshold", flightwx.SignificanceThreshold(nDates),
		"carrierRows", len(carriers), "airportRows", len(airports))

	// 3. Reference data
	var airlineRefs []flightwx.AirlineRef
	err = withFile(ctx, cfg.Opener, cfg.AirlinesFile, func(r io.Reader) (err error) {
		airlineRefs,err = bts.ReadAirlines(r)
		return
	})
	if err != nil { return nil,err }

	var airportRefs []flightwx.AirportRef
	err = withFile(ctx, cfg.Opener, cfg.AirportsFile, func(r io.Reader) error {
		refs,nSkipped,err := bts.ReadAirports(r)
		airportRefs = refs
		rowsSkipped.WithLabelValues("airport_no_location").Add(float64(nSkipped))
		return err
	})
	if err != nil { return nil,err }

	airlineRows := flightwx.JoinAirlines(carriers, airlineRefs)
	airportRows := flightwx.JoinAirports(airports, airportRefs)

	// 4. Stations
	stations,stats,err := gsod.LoadStationCatalog(ctx, cfg.Opener, cfg.StationCatalogFile, cfg.Month)
	if err != nil { return nil, fmt.Errorf("%s: %w", cfg.StationCatalogFile, err) }
	activeStations.Set(float64(len(stations)))
	rowsSkipped.WithLabelValues("station_unparsed").Add(float64(stats.Unparsed))
	rowsSkipped.WithLabelValues("station_no_location").Add(float64(stats.NoLocation))
	lg.Info("station catalog loaded", "file", cfg.StationCatalogFile, "active", len(stations),
		"stats", stats.String())

	// 5. Assignment
	assignments := flightwx.AssignStations(airportRows, stations, cfg.Month)
	for _,sa := range assignments {
		stationDistanceKM.Observe(sa.DistKM)
		lg.Debug("station assigned", "airport", sa.AirportID, "station", sa.StationFile,
			"distKM", sa.RoundedDistKM())
	}
	airportRows = flightwx.AttachAssignments(airportRows, assignments)

	// 6. Final merge
	ds := flightwx.Join(cfg.Month, recs, airportRows, airlineRows)
	joinedRecords.Set(float64(len(ds.Records)))
	significantEntities.WithLabelValues("airport").Set(float64(len(assignments)))
	significantEntities.WithLabelValues("airline").Set(float64(len(ds.Airlines())))

	lg.Info("pipeline complete", "records", len(ds.Records), "cities", len(ds.Cities()),
		"airlines", len(ds.Airlines()), "elapsed", time.Since(tStart))

	return ds,nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
