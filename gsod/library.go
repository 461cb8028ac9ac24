package gsod

import(
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/skypies/flightwx"
)

// ErrUnreadableFile marks a station file that exists but could not be read to the end.
var ErrUnreadableFile = errors.New("unreadable station file")

// Opener is how the library gets at the station files; datasource.Opener is one.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// A Library loads station files on demand. Safe for concurrent use; concurrent lookups of the
// same file share a single load.
type Library struct {
	Opener
	Cache  ObservationCache
	Logger *slog.Logger

	group singleflight.Group
}

func NewLibrary(o Opener, cache ObservationCache, logger *slog.Logger) *Library {
	if cache == nil { cache = NewMemoryCache() }
	if logger == nil { logger = slog.Default() }
	return &Library{Opener:o, Cache:cache, Logger:logger}
}

// {{{ candidateNames

// The catalog names files .op.gz, but a mirror may hold them uncompressed.
func candidateNames(stationFile string) []string {
	switch {
	case strings.HasSuffix(stationFile, ".op.gz"):
		return []string{stationFile, strings.TrimSuffix(stationFile, ".gz")}
	case strings.HasSuffix(stationFile, ".op"):
		return []string{stationFile, stationFile + ".gz"}
	}
	return []string{stationFile}
}

// }}}
// {{{ lib.load

func (lib *Library)load(ctx context.Context, stationFile string, ym flightwx.YearMonth) ([]flightwx.WeatherObservation, error) {
	for _,name := range candidateNames(stationFile) {
		if exists,err := lib.Exists(ctx, name); err != nil {
			return nil, err
		} else if !exists {
			continue
		}

		rdr,err := lib.Open(ctx, name)
		if err != nil { return nil,err }
		defer rdr.Close()

		obs,err := ParseObservations(rdr, ym)
		if err != nil { return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableFile, name, err) }

		lib.Logger.Debug("gsod file loaded", "file", name, "month", ym.String(), "days", len(obs),
			"meanTemp", meanOf(obs, "TEMP"))
		return obs,nil
	}

	lib.Logger.Warn("gsod file not found", "file", stationFile)
	return []flightwx.WeatherObservation{}, nil
}

// }}}
// {{{ lib.LookupOrLoad

// LookupOrLoad returns the month's observations from a station file, from the cache if it
// has them. A missing, empty or corrupt file is not an error; it yields an empty slice. Corrupt
// files are not cached, so a repaired file is picked up next time.
func (lib *Library)LookupOrLoad(ctx context.Context, stationFile string, ym flightwx.YearMonth) ([]flightwx.WeatherObservation, error) {
	key := cacheKey(stationFile, ym)

	if obs,found,err := lib.Cache.Get(ctx, key); err != nil {
		lib.Logger.Warn("gsod cache get failed", "key", key, "err", err)
	} else if found {
		return obs,nil
	}

	v,err,_ := lib.group.Do(key, func() (interface{}, error) {
		// Another caller may have finished a load since we looked
		if obs,found,err := lib.Cache.Get(ctx, key); err == nil && found {
			return obs,nil
		}
		obs,err := lib.load(ctx, stationFile, ym)
		if errors.Is(err, ErrUnreadableFile) {
			lib.Logger.Warn("gsod file unreadable", "file", stationFile, "err", err)
			return []flightwx.WeatherObservation{}, nil
		} else if err != nil {
			return nil,err
		}
		if err := lib.Cache.Put(ctx, key, obs); err != nil {
			lib.Logger.Warn("gsod cache put failed", "key", key, "err", err)
		}
		return obs,nil
	})
	if err != nil { return nil,err }

	return v.([]flightwx.WeatherObservation), nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
