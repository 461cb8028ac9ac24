package pipeline

import(
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/skypies/flightwx"
	"github.com/skypies/flightwx/gsod"
)

// PrefetchWeather loads the observations for every assigned station, a few at a time, so
// that later lookups come from the library's cache. Returns the day count per station file;
// stations with no data show up as zero.
func PrefetchWeather(ctx context.Context, lib *gsod.Library, ds *flightwx.JoinedDataset, parallelism int) (map[string]int, error) {
	files := map[string]bool{}
	for _,sa := range ds.Stations() { files[sa.StationFile] = true }

	if parallelism < 1 { parallelism = 1 }
	g,gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	var mu sync.Mutex
	days := map[string]int{}

	for file,_ := range files {
		file := file
		g.Go(func() error {
			obs,err := lib.LookupOrLoad(gctx, file, ds.Month)
			if err != nil { return err }

			mu.Lock()
			days[file] = len(obs)
			mu.Unlock()

			if len(obs) == 0 {
				weatherDays.WithLabelValues("missing").Inc()
			} else {
				weatherDays.WithLabelValues("loaded").Add(float64(len(obs)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil { return nil,err }

	return days,nil
}
