// The flightwx tool builds a month's joined flight/weather dataset, and renders the dashboard
// views from it as text, CSV or PDF; or exports it into BigQuery.
//
//  flightwx -data=/data/bts -month=201801 -cmd=delays -city=Denver -airline=United
//  flightwx -data=gs://my-bucket/bts -month=201801 -cmd=pdf -pdf=out.pdf
//  flightwx -cmd=export -bqproject=my-project -bqdataset=flights
package main

import(
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/skypies/flightwx"
	"github.com/skypies/flightwx/datasource"
	"github.com/skypies/flightwx/export"
	"github.com/skypies/flightwx/fpdf"
	"github.com/skypies/flightwx/gsod"
	"github.com/skypies/flightwx/pipeline"
	"github.com/skypies/flightwx/report"
)

var(
	ctx = context.Background()

	fCmd string
	fDataDir string
	fMonth string
	fCredentials string
	fCity string
	fAirline string
	fField string
	fBinWidth int
	fCSVOut string
	fPDFOut string
	fMetricsFile string
	fRedisURL string
	fRedisTTL time.Duration
	fParallelism int
	fBQProject string
	fBQDataset string
	fBQTable string
	fBQBucket string
	fVerbosity int
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" { return v }
	return fallback
}

func init() {
	flag.StringVar(&fCmd, "cmd", "build", "build, lists, stations, prefetch, delays, weather, worstday, pdf, export")
	flag.StringVar(&fDataDir, "data", getEnv("FLIGHTWX_DATA", "."), "input dir (local, or gs://bucket/prefix)")
	flag.StringVar(&fMonth, "month", getEnv("FLIGHTWX_MONTH", "201801"), "target month, yyyymm")
	flag.StringVar(&fCredentials, "creds", getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""), "service account JSON for GCS/BigQuery")
	flag.StringVar(&fCity, "city", "", "city to report on (substring; default first city)")
	flag.StringVar(&fAirline, "airline", "", "airline to report on (substring; default first airline)")
	flag.StringVar(&fField, "field", report.DefaultWeatherField, "weather field for the weather view")
	flag.IntVar(&fBinWidth, "binwidth", report.DefaultBinWidth, "histogram bin width, minutes [1,30]")
	flag.StringVar(&fCSVOut, "csv", "", "write the view as CSV to this file ('-' for stdout)")
	flag.StringVar(&fPDFOut, "pdf", "flightwx.pdf", "output file for -cmd=pdf")
	flag.StringVar(&fMetricsFile, "metrics", "", "write prometheus metrics to this textfile")
	flag.StringVar(&fRedisURL, "redis", getEnv("REDIS_URL", ""), "cache station observations in redis")
	flag.DurationVar(&fRedisTTL, "redisttl", 24*time.Hour, "TTL for cached station observations")
	flag.IntVar(&fParallelism, "parallelism", 8, "concurrent station loads for -cmd=prefetch")
	flag.StringVar(&fBQProject, "bqproject", getEnv("BQ_PROJECT", ""), "BigQuery project for -cmd=export")
	flag.StringVar(&fBQDataset, "bqdataset", "flightwx", "BigQuery dataset")
	flag.StringVar(&fBQTable, "bqtable", "joined", "BigQuery table")
	flag.StringVar(&fBQBucket, "bqbucket", "", "GCS bucket to stage a load file in (default: streaming inserts)")
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
}

// {{{ newLogger, newLibrary

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if fVerbosity == 1 { level = slog.LevelInfo }
	if fVerbosity > 1 { level = slog.LevelDebug }
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newLibrary(o gsod.Opener, logger *slog.Logger) *gsod.Library {
	var cache gsod.ObservationCache
	if fRedisURL != "" {
		rc,err := gsod.NewRedisCache(fRedisURL, fRedisTTL)
		if err != nil { fatal(err) }
		cache = rc
	}
	return gsod.NewLibrary(o, cache, logger)
}

// }}}
// {{{ atExit, fatal

// Things to do on the way out, whether or not the command worked. Run in reverse order.
var exitFuncs []func()

func atExit(f func()) { exitFuncs = append(exitFuncs, f) }

func runExitFuncs() {
	for i := len(exitFuncs)-1; i >= 0; i-- { exitFuncs[i]() }
	exitFuncs = nil
}

// fatal is log.Fatal, but the exit funcs (metrics textfile, closing the opener) still run.
func fatal(v ...interface{}) {
	runExitFuncs()
	log.Fatal(v...)
}

func writeMetricsAtExit(path string, logger *slog.Logger) {
	atExit(func() {
		if err := pipeline.WriteMetrics(path); err != nil { logger.Error("metrics", "err", err) }
	})
}

// }}}
// {{{ output, writeTable

// output returns where CSV should go; stdout if -csv is blank or '-'.
func output() (io.WriteCloser, error) {
	if fCSVOut == "" || fCSVOut == "-" { return os.Stdout, nil }
	return os.Create(fCSVOut)
}

func writeTable(t report.Table) {
	w,err := output()
	if err != nil { fatal(err) }
	if err := t.WriteCSV(w); err != nil { fatal(err) }
	if w != os.Stdout {
		if err := w.Close(); err != nil { fatal(err) }
	}
}

// noData prints the placeholder for a view that could not be built. Views never end the run;
// anything other than an empty selection is also logged as an error.
func noData(logger *slog.Logger, err error) {
	if !errors.Is(err, report.ErrNoData) {
		logger.Error("view failed", "err", err)
	}
	fmt.Printf("(no data: %v)\n", err)
}

// }}}

// {{{ stationTable

func stationTable(ds *flightwx.JoinedDataset) report.Table {
	t := report.Table{Headers: []string{"airport_id", "station_id", "wban", "station_file", "dist_km"}}
	for _,sa := range ds.Stations() {
		t.Rows = append(t.Rows, []string{sa.AirportID, sa.StationID, fmt.Sprintf("%05d", sa.WBAN),
			sa.StationFile, fmt.Sprintf("%.0f", sa.RoundedDistKM())})
	}
	return t
}

// }}}

func main() {
	flag.Parse()
	logger := newLogger()
	slog.SetDefault(logger)

	ym,err := flightwx.ParseYearMonth(fMonth)
	if err != nil { log.Fatal(err) }

	if fMetricsFile != "" { writeMetricsAtExit(fMetricsFile, logger) }

	opener := datasource.New(fDataDir, fCredentials)
	atExit(func() { opener.Close() })
	defer runExitFuncs()

	ds,err := pipeline.Run(ctx, pipeline.Config{Month:ym, Opener:opener, Logger:logger})
	if err != nil { fatal(err) }

	lib := newLibrary(opener, logger)
	sel := report.DefaultSelection(ds, fCity, fAirline)
	sel.WeatherField = fField
	sel.BinWidth = fBinWidth

	switch fCmd {
	case "build":
		fmt.Printf("%s: %d joined records, %d cities, %d airlines, %d stations\n", ym,
			len(ds.Records), len(ds.Cities()), len(ds.Airlines()), len(ds.Stations()))

	case "lists":
		fmt.Printf("Cities:\n  %s\n", strings.Join(ds.Cities(), "\n  "))
		fmt.Printf("Airlines:\n  %s\n", strings.Join(ds.Airlines(), "\n  "))
		fmt.Printf("Weather fields:\n  %s\n", strings.Join(flightwx.WeatherFields(), " "))

	case "stations":
		writeTable(stationTable(ds))

	case "prefetch":
		counts,err := pipeline.PrefetchWeather(ctx, lib, ds, fParallelism)
		if err != nil { fatal(err) }
		for _,sa := range ds.Stations() {
			fmt.Printf("%s %s: %d days\n", sa.AirportID, sa.StationFile, counts[sa.StationFile])
		}

	case "delays":
		fmt.Printf("# %s\n", sel)
		if v,err := report.BuildDelayView(ds, sel); err != nil {
			noData(logger, err)
		} else {
			writeTable(v.Table())
		}

	case "weather", "worstday":
		fmt.Printf("# %s\n", sel)
		v,err := report.BuildWeatherView(ctx, ds, lib, sel)
		if err != nil {
			noData(logger, err)
		} else if fCmd == "weather" {
			writeTable(v.Table())
		} else {
			fmt.Printf("# worst departure day %s (%.1f), worst arrival day %s (%.1f)\n",
				v.WorstDeparture.Date, v.WorstDeparture.MeanDelay, v.WorstArrival.Date, v.WorstArrival.MeanDelay)
			writeTable(v.WorstDayTable())
		}

	case "pdf":
		dv,err := report.BuildDelayView(ds, sel)
		if err != nil {
			noData(logger, err)
		}
		wv,err := report.BuildWeatherView(ctx, ds, lib, sel)
		if err != nil {
			noData(logger, err)
		}

		f,err := os.Create(fPDFOut)
		if err != nil { fatal(err) }
		if err := fpdf.WriteDashboard(f, dv, wv); err != nil { fatal(err) }
		if err := f.Close(); err != nil { fatal(err) }
		fmt.Printf("wrote %s\n", fPDFOut)

	case "export":
		if fBQProject == "" { fatal("export needs -bqproject (or $BQ_PROJECT)") }
		u := export.Uploader{
			Project: fBQProject,
			Dataset: fBQDataset,
			Table: fBQTable,
			CredentialsFile: fCredentials,
			StagingBucket: fBQBucket,
			Logger: logger,
		}
		runID,err := u.Upload(ctx, ds)
		if err != nil { fatal(err) }
		fmt.Printf("exported %d rows to %s.%s.%s, run_id=%s\n", len(ds.Records), fBQProject,
			fBQDataset, fBQTable, runID)

	default:
		fatal(fmt.Sprintf("unknown -cmd=%q", fCmd))
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
