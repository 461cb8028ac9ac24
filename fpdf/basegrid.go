package fpdf

import(
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// Describes a chart area we're going to plot over, and the location of its top-left corner
// in PDF space.
type BaseGrid struct {
	*gofpdf.Fpdf        // Embed the thing we're writing to

	// The portion of PDF page space the grid covers (labels go outside of this)
	OffsetU     float64 // where the top-left corner should be, in PDF coords
	OffsetV     float64
	W,H         float64 // width and height of the grid, in PDF units (mm)

	// The range of values that should be scaled onto the grid; origin is bottom-left
	MinX,MinY,MaxX,MaxY float64
	Clip                bool    // whether to drop shapes that poke outside the grid

	// How to draw gridlines
	XGridlineEvery, YGridlineEvery float64 // From Min[XY] to Max[XY]; zero==none
	XTickFmt,       YTickFmt       string  // Will be passed a float64 via fmt.Sprintf; blank==none
	YTickOtherSide                 bool    // put the Y labels on the right

	LineColor []int // rgb, each [0,255]; for axis labels
}

// {{{ bg.U, V, UV

// the bools are whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)U(x float64) (float64, bool) {
	xRatio := (x - bg.MinX) / (bg.MaxX - bg.MinX)
	u := bg.OffsetU + (xRatio * bg.W)
	return u, xRatio<0 || xRatio>1
}

func (bg BaseGrid)V(y float64) (float64, bool) {
	yRatio := (y - bg.MinY) / (bg.MaxY - bg.MinY)
	v := bg.OffsetV + (bg.H - (yRatio * bg.H)) // In PDF, the Y scale goes down the page
	return v, yRatio<0 || yRatio>1
}

func (bg BaseGrid)UV(x,y float64) (float64, float64, bool) {
	u,oobU := bg.U(x)
	v,oobV := bg.V(y)
	return u, v, (oobU || oobV)
}

// Valid is false if the ranges can't be mapped onto the page.
func (bg BaseGrid)Valid() bool {
	for _,f := range []float64{bg.MinX, bg.MaxX, bg.MinY, bg.MaxY} {
		if math.IsNaN(f) || math.IsInf(f, 0) { return false }
	}
	return bg.MaxX > bg.MinX && bg.MaxY > bg.MinY
}

// }}}
// {{{ bg.MoveBy

func (bg BaseGrid)MoveBy(x,y float64) {
	currX,currY := bg.GetXY()
	bg.Fpdf.MoveTo(currX+x, currY+y)
}

// }}}
// {{{ bg.MaybeSetTextColor

func (bg BaseGrid)MaybeSetTextColor() {
	if len(bg.LineColor) == 3 {
		bg.SetTextColor(bg.LineColor[0], bg.LineColor[1], bg.LineColor[2])
	} else {
		bg.SetTextColor(0,0,0)
	}
}

// }}}

// {{{ bg.MoveTo, LineTo, Line, Bar, Dot

// We submit coords in gridspace (e.g. x,y), and the grid transforms them into PDFspace.
func (bg BaseGrid)MoveTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.MoveTo(u,v)
	return oob
}

func (bg BaseGrid)LineTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.LineTo(u,v)
	return oob
}

// Only draws the line if both points are inside bounds (when clipping)
func (bg BaseGrid)Line(x1,y1,x2,y2 float64) {
	u1,v1,oob1 := bg.UV(x1,y1)
	u2,v2,oob2 := bg.UV(x2,y2)
	if bg.Clip && (oob1 || oob2) { return }
	bg.Fpdf.Line(u1,v1,u2,v2)
}

// Bar fills the box from (x1,MinY) to (x2,y), trimmed to the grid's x-range.
func (bg BaseGrid)Bar(x1,x2,y float64) {
	x1 = math.Max(x1, bg.MinX)
	x2 = math.Min(x2, bg.MaxX)
	if x2 <= x1 || y <= bg.MinY { return }
	y = math.Min(y, bg.MaxY)

	u1,_ := bg.U(x1)
	u2,_ := bg.U(x2)
	vTop,_ := bg.V(y)
	vBase,_ := bg.V(bg.MinY)
	bg.Rect(u1, vTop, u2-u1, vBase-vTop, "FD")
}

func (bg BaseGrid)Dot(x,y,r float64) {
	u,v,oob := bg.UV(x,y)
	if bg.Clip && oob { return }
	bg.Circle(u, v, r, "F")
}

// }}}

// {{{ bg.DrawFrame

func (bg BaseGrid)DrawFrame() {
	bg.SetDrawColor(0x0, 0x00, 0x00)
	bg.SetLineWidth(0.3)
	bg.Rect(bg.OffsetU, bg.OffsetV, bg.W, bg.H, "D")
}

// }}}
// {{{ bg.DrawGridlines

func (bg BaseGrid)DrawGridlines() {
	bg.SetFont("Arial", "", 7)
	bg.SetLineWidth(0.05)

	if bg.XGridlineEvery > 0 {
		for x := bg.MinX; x <= bg.MaxX; x += bg.XGridlineEvery {
			bg.SetDrawColor(0xe0, 0xe0, 0xe0)
			bg.Line(x, bg.MinY, x, bg.MaxY)
			if bg.XTickFmt != "" {
				bg.MoveTo(x,bg.MinY)
				bg.MoveBy(-4, 1)  // Offset in MM
				bg.MaybeSetTextColor()
				bg.CellFormat(8, 4, fmt.Sprintf(bg.XTickFmt, x), "", 0, "C", false, 0, "")
			}
		}
	}

	if bg.YGridlineEvery > 0 {
		for y := bg.MinY; y <= bg.MaxY; y += bg.YGridlineEvery {
			bg.SetDrawColor(0xe0, 0xe0, 0xe0)
			bg.Line(bg.MinX, y, bg.MaxX, y)
			if bg.YTickFmt == "" { continue }

			align := "R"
			if bg.YTickOtherSide {
				bg.MoveTo(bg.MaxX, y)
				bg.MoveBy(0.5, -2)
				align = "L"
			} else {
				bg.MoveTo(bg.MinX, y)
				bg.MoveBy(-15.5, -2)
			}
			bg.MaybeSetTextColor()
			bg.CellFormat(15, 4, fmt.Sprintf(bg.YTickFmt, y), "", 0, align, false, 0, "")
		}
	}
	bg.SetTextColor(0,0,0)
}

// }}}
// {{{ niceStep

// niceStep picks a 1/2/5 x 10^n gridline spacing that gives at most n lines over the span.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n <= 0 || math.IsNaN(span) || math.IsInf(span,0) { return 0 }
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _,m := range []float64{1, 2, 5, 10} {
		if m*mag >= raw { return m*mag }
	}
	return 10*mag
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
