// Package gsod reads NOAA's Global Summary Of the Day: the ISD station catalog, and the
// per-station yearly files of daily observations.
package gsod

import(
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/skypies/flightwx"
)

// {{{ notes

/* One file per station per year, e.g. 725650-03017-2018.op.gz. A header line, then one
line per day:

STN--- WBAN   YEARMODA    TEMP       DEWP      SLP        STP       VISIB      WDSP     MXSPD   GUST    MAX     MIN   PRCP   SNDP   FRSHTT
725650 03017  20180101    11.8 24     0.2 24  1029.0 24   832.3 24   10.0 24    4.8 24   11.1  999.9    23.0*    1.0   0.00G 999.9  001000

The count columns after each mean, and the flags after MAX/MIN/PRCP, are not kept.

 */

// }}}

var(
	obsYearMoDa = span{14,22}
	obsTemp     = span{24,30}
	obsDewp     = span{35,41}
	obsSLP      = span{46,52}
	obsSTP      = span{57,63}
	obsVisib    = span{68,73}
	obsWdsp     = span{78,83}
	obsMxspd    = span{88,93}
	obsGust     = span{95,100}
	obsMax      = span{102,108}
	obsMin      = span{110,116}
	obsPrcp     = span{118,123}
	obsSndp     = span{125,130}
	obsFRSHTT   = span{132,138}
)

// Missing values in GSOD are runs of nines; each column has its own.
const(
	missingTemp     = 9999.9
	missingPressure = 9999.9
	missingSpeed    = 999.9
	missingPrcp     = 99.99
	missingSndp     = 999.9
)

// What the missing values become. These are not NaNs, so downstream means will include them.
const(
	NoTemp     = -50.0
	NoPressure = 0.0
	NoSpeed    = -1.0
	NoPrcp     = 0.0
	NoSndp     = 0.0
)

func replace(v, missing, with float64) float64 {
	if v == missing { return with }
	return v
}

// {{{ DecodeFRSHTT

// DecodeFRSHTT unpacks the six event digits, zero-padding on the left (as the files are not
// always consistent). Any non-'1' digit is a zero.
func DecodeFRSHTT(s string) [6]int {
	flags := [6]int{}
	for len(s) < 6 { s = "0" + s }
	for i:=0; i<6; i++ {
		if s[len(s)-6+i] == '1' { flags[i] = 1 }
	}
	return flags
}

// }}}
// {{{ parseObservation

func parseObservation(line string) (flightwx.WeatherObservation, bool) {
	ymd := obsYearMoDa.from(line)
	if len(ymd) != 8 { return flightwx.WeatherObservation{}, false }

	f := DecodeFRSHTT(obsFRSHTT.from(line))

	return flightwx.WeatherObservation{
		Date:             ymd[0:4] + "-" + ymd[4:6] + "-" + ymd[6:8],
		Temp:             replace(obsTemp.float(line),  missingTemp, NoTemp),
		DewPoint:         replace(obsDewp.float(line),  missingTemp, NoTemp),
		MaxTemp:          replace(obsMax.float(line),   missingTemp, NoTemp),
		MinTemp:          replace(obsMin.float(line),   missingTemp, NoTemp),
		SeaLevelPressure: replace(obsSLP.float(line),   missingPressure, NoPressure),
		StationPressure:  replace(obsSTP.float(line),   missingPressure, NoPressure),
		Visibility:       replace(obsVisib.float(line), missingSpeed, NoSpeed),
		WindSpeed:        replace(obsWdsp.float(line),  missingSpeed, NoSpeed),
		MaxWindSpeed:     replace(obsMxspd.float(line), missingSpeed, NoSpeed),
		Gust:             replace(obsGust.float(line),  missingSpeed, NoSpeed),
		Precipitation:    replace(obsPrcp.float(line),  missingPrcp, NoPrcp),
		SnowDepth:        replace(obsSndp.float(line),  missingSndp, NoSndp),
		Fog: f[0], Rain: f[1], Snow: f[2], Hail: f[3], Thunder: f[4], Tornado: f[5],
	}, true
}

// }}}
// {{{ ParseObservations

// ParseObservations returns the days within the month, in file order. An empty reader gives
// an empty slice.
func ParseObservations(r io.Reader, ym flightwx.YearMonth) ([]flightwx.WeatherObservation, error) {
	out := []flightwx.WeatherObservation{}

	scanner := bufio.NewScanner(r)
	for i:=0; scanner.Scan(); i++ {
		if i == 0 { continue } // header
		line := scanner.Text()
		if !ym.ContainsDateKey(obsYearMoDa.from(line)) { continue }

		if wo,ok := parseObservation(line); ok {
			out = append(out, wo)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("observations: %w", err)
	}
	return out, nil
}

// }}}

// Mean of a field over some observations, ignoring NaNs. Used for logging.
func meanOf(obs []flightwx.WeatherObservation, field string) float64 {
	sum, n := 0.0, 0
	for _,o := range obs {
		if v,ok := o.Field(field); ok && !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 { return math.NaN() }
	return sum / float64(n)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
