package report

import(
	"encoding/csv"
	"io"
	"strconv"
)

// A Table is a view flattened into rows, for CSV output.
type Table struct {
	Headers []string
	Rows    [][]string
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// AddHistogram appends one row per bin, each prefixed with the given values.
func (t *Table)AddHistogram(prefix []string, h Histogram) {
	for i,d := range h.Density {
		row := append(append([]string{}, prefix...), fmtFloat(h.Edges[i]), fmtFloat(h.Edges[i+1]),
			fmtFloat(d))
		t.Rows = append(t.Rows, row)
	}
}

func (t Table)WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(t.Headers); err != nil { return err }
	for _,row := range t.Rows {
		if err := csvWriter.Write(row); err != nil { return err }
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
