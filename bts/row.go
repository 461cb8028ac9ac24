package bts

import(
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// {{{ notes

/* BTS data comes as CSV with a header row.

The column names depend on who made the extract; the raw TranStats download uses the long
names (FL_DATE, OP_UNIQUE_CARRIER, ORIGIN_AIRPORT_ID, ...), the condensed monthly files use
short ones (Date, CAR, ORIGIN_ID, ...). So we turn each row into a map from header name to
value, after rewriting the header names into the short forms via an alias table.

Monthly on-time file, short names:

[0]Date, [1]CAR, [2]TAIL, [3]FLNum, [4]ORIGIN_ID, [5]ORIGIN, [6]DEST_ID, [7]DEST,
  [8]DEP_SCH, [9]DEP_ACT, [10]DEP_DEL, [11]DEP_TAXI, [12]DEP_OFF,
  [13]ARR_ON, [14]ARR_TAXI, [15]ARR_SCH, [16]ARR_ACT, [17]ARR_DEL,
  [18]CANCEL, [19]CANCEL_CODE, [20]DIV, [21]FLY_SCH, [22]FLY_ACT, [23]FLY_AIR, [24]FLY_DIST,
  [25]DEL_CAR, [26]DEL_WET, [27]DEL_NAS, [28]DEL_SEC, [29]DEL_AIR

E.g.:

2018-01-01,UA,N24211,1105,11292,DEN,13930,ORD,0600,0613,13.00,18.00,0631,
  0933,9.00,0945,0942,-3.00,0.00,,0.00,165.00,149.00,122.00,888.00,,,,,

 */

// }}}

type RowReader struct {
	csvreader *csv.Reader
	headers   []string
	rowNum    int
}

// NewRowReader reads the header row, and renames any header found in aliases.
func NewRowReader(ioreader io.Reader, aliases map[string]string) (*RowReader, error) {
	rdr := RowReader{
		csvreader: csv.NewReader(ioreader),
	}
	rdr.csvreader.FieldsPerRecord = -1 // we check this ourselves, to report it nicely
	rdr.csvreader.TrimLeadingSpace = true

	headers,err := rdr.csvreader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row")
	} else if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	for i,h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if canon,exists := aliases[h]; exists { h = canon }
		headers[i] = h
	}
	rdr.headers = headers
	return &rdr, nil
}

func (r *RowReader)Headers() []string { return r.headers }

// MissingColumns returns the names (post-aliasing) that are not in the header.
func (r *RowReader)MissingColumns(names ...string) []string {
	have := map[string]bool{}
	for _,h := range r.headers { have[h] = true }
	missing := []string{}
	for _,n := range names {
		if !have[n] { missing = append(missing, n) }
	}
	return missing
}

// {{{ rdr.Read()

func (r *RowReader)Read() (Row,error) {
	m := map[string]string{}

	vals,err := r.csvreader.Read()
	r.rowNum++
	if err != nil {
		return m,err
	} else if len(r.headers) != len(vals) {
		return m, fmt.Errorf("row %d: header/val mismatch (%d/%d)", r.rowNum, len(r.headers), len(vals))
	}

	for i,_ := range vals {
		m[r.headers[i]] = strings.TrimSpace(vals[i])
	}

	return m,nil
}

// }}}

type Row map[string]string

// {{{ row.Float, row.Bool

// Blank (or junk) values are NaN.
func (r Row)Float(k string) float64 {
	v,err := strconv.ParseFloat(r[k], 64)
	if err != nil { return math.NaN() }
	return v
}

// BTS flags are floats; "1.00" is true.
func (r Row)Bool(k string) bool {
	v := r.Float(k)
	return !math.IsNaN(v) && v != 0
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
