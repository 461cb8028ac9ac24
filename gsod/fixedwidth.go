package gsod

import(
	"math"
	"strconv"
	"strings"
)

// A span is a [start,end) byte range within a fixed-width line.
type span struct{ start, end int }

// Clipped to the line; short lines give empty strings, not panics.
func (s span)from(line string) string {
	if s.start >= len(line) { return "" }
	end := s.end
	if end > len(line) { end = len(line) }
	return strings.TrimSpace(line[s.start:end])
}

// The GSOD files append single-char flags (e.g. "23.0*", "0.00G") to some values.
func (s span)float(line string) float64 {
	str := strings.TrimRight(s.from(line), "*ABCDEFGHI")
	v,err := strconv.ParseFloat(str, 64)
	if err != nil { return math.NaN() }
	return v
}

func (s span)int(line string) (int, bool) {
	v,err := strconv.Atoi(s.from(line))
	return v, err == nil
}
