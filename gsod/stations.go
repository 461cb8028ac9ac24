package gsod

import(
	"bufio"
	"context"
	"fmt"
	"io"
	"math"

	"github.com/skypies/geo"
	"github.com/skypies/flightwx"
)

// {{{ notes

/* The NOAA ISD station history, isd-history.txt. 22 lines of preamble, then:

USAF   WBAN  STATION NAME                  CTRY ST CALL  LAT     LON      ELEV(M) BEGIN    END

725650 03017 DENVER INTERNATIONAL AIRPORT  US   CO KDEN  +39.833 -104.658 +1650.2 19940718 20180730
725660 99999 AKRON WASHINGTON CO AP        US   CO KAKO  +40.175 -103.222 +1421.0 19730101 20180730

 */

// }}}

const CatalogHeaderLines = 22

var(
	catSTN   = span{0,6}
	catWBAN  = span{7,12}
	catName  = span{13,42}
	catCtry  = span{43,47}
	catState = span{48,50}
	catCall  = span{51,56}
	catLat   = span{57,64}
	catLon   = span{65,73}
	catElev  = span{74,81}
	catBegin = span{82,90}
	catEnd   = span{91,99}
)

// CatalogStats counts the rows that didn't make it.
type CatalogStats struct {
	Rows       int
	Unparsed   int // bad WBAN or dates
	NoLocation int
	Inactive   int
}

func (cs CatalogStats)String() string {
	return fmt.Sprintf("%d rows (%d unparsed, %d without location, %d inactive)", cs.Rows,
		cs.Unparsed, cs.NoLocation, cs.Inactive)
}

// {{{ ParseStationCatalog

// ParseStationCatalog returns the stations that were active across the whole month (their
// history started before day 01, and ends after day 31), and which have a location.
// Catalog order is preserved; NearestStation relies on it to break ties.
func ParseStationCatalog(r io.Reader, ym flightwx.YearMonth) ([]flightwx.WeatherStation, CatalogStats, error) {
	out := []flightwx.WeatherStation{}
	stats := CatalogStats{}
	firstDay, lastDay := ym.FirstDayKey(), ym.LastDayKey()

	scanner := bufio.NewScanner(r)
	for i:=0; scanner.Scan(); i++ {
		if i < CatalogHeaderLines { continue }
		line := scanner.Text()
		if len(line) == 0 { continue }
		stats.Rows++

		wban,ok1 := catWBAN.int(line)
		begin,ok2 := catBegin.int(line)
		end,ok3 := catEnd.int(line)
		if !ok1 || !ok2 || !ok3 || catSTN.from(line) == "" {
			stats.Unparsed++
			continue
		}
		if !(begin < firstDay && end > lastDay) {
			stats.Inactive++
			continue
		}

		lat,long := catLat.float(line), catLon.float(line)
		if math.IsNaN(lat) || math.IsNaN(long) {
			stats.NoLocation++
			continue
		}

		out = append(out, flightwx.WeatherStation{
			StationID: catSTN.from(line),
			WBAN: wban,
			Name: catName.from(line),
			Country: catCtry.from(line),
			State: catState.from(line),
			CallSign: catCall.from(line),
			Latlong: geo.Latlong{Lat:lat, Long:long},
			ElevationM: catElev.float(line),
			ActiveFrom: begin,
			ActiveTo: end,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("station catalog: %w", err)
	}
	return out, stats, nil
}

// }}}
// {{{ LoadStationCatalog

func LoadStationCatalog(ctx context.Context, o Opener, name string, ym flightwx.YearMonth) ([]flightwx.WeatherStation, CatalogStats, error) {
	rdr,err := o.Open(ctx, name)
	if err != nil { return nil, CatalogStats{}, err }
	defer rdr.Close()
	return ParseStationCatalog(rdr, ym)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
