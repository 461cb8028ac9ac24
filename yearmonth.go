package flightwx

import(
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrBadMonth = errors.New("bad year-month")

// A YearMonth is the one month of data the pipeline is built for. It is threaded through
// the loaders, the significance threshold and the station filenames.
type YearMonth struct {
	Year  int
	Month time.Month
}

// {{{ ParseYearMonth

// Accepts "201801", "2018-01" or "2018/01".
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.NewReplacer("-", "", "/", "").Replace(strings.TrimSpace(s))
	if len(s) != 6 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrBadMonth, s)
	}
	y,err := strconv.Atoi(s[0:4])
	if err != nil { return YearMonth{}, fmt.Errorf("%w: %q", ErrBadMonth, s) }
	m,err := strconv.Atoi(s[4:6])
	if err != nil || m < 1 || m > 12 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrBadMonth, s)
	}
	return YearMonth{Year:y, Month:time.Month(m)}, nil
}

// }}}

func (ym YearMonth)String() string { return fmt.Sprintf("%04d%02d", ym.Year, int(ym.Month)) }
func (ym YearMonth)IsZero() bool { return ym.Year == 0 }

// yyyymm as an integer, e.g. 201801
func (ym YearMonth)Key() int { return ym.Year*100 + int(ym.Month) }

// The station catalog filter compares against day 01 and day 31 of the month, whatever
// the month's real length.
func (ym YearMonth)FirstDayKey() int { return ym.Key()*100 + 1 }
func (ym YearMonth)LastDayKey() int { return ym.Key()*100 + 31 }

func (ym YearMonth)DaysIn() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ContainsDateKey is for YYYYMMDD strings, as found in the GSOD files.
func (ym YearMonth)ContainsDateKey(yyyymmdd string) bool {
	return len(yyyymmdd) == 8 && strings.HasPrefix(yyyymmdd, ym.String())
}

// ContainsDate is for YYYY-MM-DD strings, as found in the flight table.
func (ym YearMonth)ContainsDate(date string) bool {
	return strings.HasPrefix(date, fmt.Sprintf("%04d-%02d-", ym.Year, int(ym.Month)))
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
