// Package fpdf renders the delay and weather views of the dashboard as a PDF.
package fpdf

import(
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/skypies/flightwx"
	"github.com/skypies/flightwx/report"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

// {{{ var()

// Landscape letter is 279.4 x 215.9 mm
var(
	PageMarginU = 15.0
	PageMarginV = 20.0
	PanelWidth  = 115.0
	PanelHeight = 65.0
	PanelGapU   = 25.0
	PanelGapV   = 25.0

	MaxGridlines = 8

	MetricColors = map[flightwx.MetricType][]int{
		flightwx.DepartureDelay: {0x1f, 0x77, 0xb4},
		flightwx.ArrivalDelay:   {0xff, 0x7f, 0x0e},
		flightwx.DepartureTaxi:  {0x2c, 0xa0, 0x2c},
		flightwx.ArrivalTaxi:    {0xd6, 0x27, 0x28},
	}
	WeatherColor = []int{0x70, 0x70, 0x70}
)

// }}}

// {{{ panelAt

// The dashboard pages are a 2x2 grid of panels, starting top-left.
func panelAt(pdf *gofpdf.Fpdf, col, row int) BaseGrid {
	return BaseGrid{
		Fpdf: pdf,
		OffsetU: PageMarginU + 15.0 + float64(col)*(PanelWidth+PanelGapU),
		OffsetV: PageMarginV + 10.0 + float64(row)*(PanelHeight+PanelGapV),
		W: PanelWidth,
		H: PanelHeight,
	}
}

// }}}
// {{{ DrawTitle, DrawCaption, DrawPlaceholder

func DrawTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0,0,0)
	pdf.MoveTo(PageMarginU, PageMarginV-10)
	pdf.Cell(200, 8, title)
}

func DrawCaption(bg BaseGrid, caption string) {
	bg.SetFont("Arial", "", 9)
	bg.SetTextColor(0,0,0)
	bg.Fpdf.MoveTo(bg.OffsetU, bg.OffsetV-6)
	bg.Cell(bg.W, 5, caption)
}

// DrawPlaceholder fills a panel that has nothing to show.
func DrawPlaceholder(bg BaseGrid, msg string) {
	bg.DrawFrame()
	bg.SetFont("Arial", "I", 9)
	bg.SetTextColor(0x90,0x90,0x90)
	bg.Fpdf.MoveTo(bg.OffsetU, bg.OffsetV + bg.H/2 - 2)
	bg.CellFormat(bg.W, 4, msg, "", 0, "C", false, 0, "")
	bg.SetTextColor(0,0,0)
}

// }}}

// {{{ DrawHistogram

// DrawHistogram draws the density bars over the x-range [xmin,xmax]. If the range is unusable,
// the histogram's own edges are used.
func DrawHistogram(bg BaseGrid, h report.Histogram, xmin, xmax float64, rgb []int) {
	if h.Empty() {
		DrawPlaceholder(bg, "no data")
		return
	}

	bg.MinX, bg.MaxX = xmin, xmax
	if math.IsNaN(xmin) || math.IsNaN(xmax) || xmax <= xmin {
		bg.MinX, bg.MaxX = h.Edges[0], h.Edges[len(h.Edges)-1]
	}
	maxDensity := 0.0
	for _,d := range h.Density { maxDensity = math.Max(maxDensity, d) }
	bg.MinY, bg.MaxY = 0, maxDensity*1.1
	if !bg.Valid() {
		DrawPlaceholder(bg, "no data")
		return
	}

	bg.XGridlineEvery = niceStep(bg.MaxX-bg.MinX, MaxGridlines)
	bg.YGridlineEvery = niceStep(bg.MaxY-bg.MinY, 4)
	bg.XTickFmt, bg.YTickFmt = "%.0f", "%.3f"
	bg.DrawGridlines()

	bg.SetFillColor(rgb[0], rgb[1], rgb[2])
	bg.SetDrawColor(0xff, 0xff, 0xff)
	bg.SetLineWidth(0.1)
	for i,d := range h.Density {
		bg.Bar(h.Edges[i], h.Edges[i+1], d)
	}
	bg.DrawFrame()
}

// }}}
// {{{ DrawDelayView

func DrawDelayView(pdf *gofpdf.Fpdf, v *report.DelayView) {
	pdf.AddPage()
	DrawTitle(pdf, v.Title)

	for i,mt := range flightwx.MetricTypes {
		bg := panelAt(pdf, i%2, i/2)
		DrawCaption(bg, fmt.Sprintf("%s (minutes, %d min bins)", mt.Description(), v.BinWidth))
		DrawHistogram(bg, v.Histograms[mt], v.XMin, v.XMax, MetricColors[mt])
	}
}

// }}}
// {{{ DrawDailyMeans

// DrawDailyMeans plots the mean delay per day for departures and arrivals, with the weather
// field as a line against its own axis on the right.
func DrawDailyMeans(bg BaseGrid, v *report.WeatherView) {
	dep := v.DaysFor(flightwx.DepartureDelay)
	arr := v.DaysFor(flightwx.ArrivalDelay)

	bg.MinX, bg.MaxX = 0, 32
	bg.MinY, bg.MaxY = math.Inf(1), math.Inf(-1)
	for _,d := range append(append([]report.WeatherDay{}, dep...), arr...) {
		if math.IsNaN(d.Mean) { continue }
		bg.MinY, bg.MaxY = math.Min(bg.MinY, d.Mean), math.Max(bg.MaxY, d.Mean)
	}
	if bg.MaxY <= bg.MinY { bg.MaxY = bg.MinY + 1 }
	if !bg.Valid() {
		DrawPlaceholder(bg, "no data")
		return
	}
	bg.XGridlineEvery, bg.XTickFmt = 5, "%.0f"
	bg.YGridlineEvery, bg.YTickFmt = niceStep(bg.MaxY-bg.MinY, 5), "%.0f"
	bg.DrawGridlines()

	for _,series := range []struct{
		MT   flightwx.MetricType
		Days []report.WeatherDay
	}{{flightwx.DepartureDelay, dep}, {flightwx.ArrivalDelay, arr}} {
		rgb := MetricColors[series.MT]
		bg.SetFillColor(rgb[0], rgb[1], rgb[2])
		for _,d := range series.Days {
			if day,err := strconv.Atoi(d.Day); err == nil && !math.IsNaN(d.Mean) {
				bg.Dot(float64(day), d.Mean, 0.8)
			}
		}
	}

	// Weather on the same box, its own y-range, labelled on the right
	wx := bg
	wx.MinY, wx.MaxY = math.Inf(1), math.Inf(-1)
	for _,d := range dep {
		wx.MinY, wx.MaxY = math.Min(wx.MinY, d.Value), math.Max(wx.MaxY, d.Value)
	}
	if wx.MaxY <= wx.MinY { wx.MaxY = wx.MinY + 1 }
	if wx.Valid() {
		wx.XGridlineEvery, wx.XTickFmt = 0, ""
		wx.YGridlineEvery, wx.YTickFmt = niceStep(wx.MaxY-wx.MinY, 5), "%.1f"
		wx.YTickOtherSide = true
		wx.LineColor = WeatherColor
		wx.DrawGridlines()

		wx.SetDrawColor(WeatherColor[0], WeatherColor[1], WeatherColor[2])
		wx.SetLineWidth(0.4)
		started := false
		for _,d := range dep {
			day,err := strconv.Atoi(d.Day)
			if err != nil { continue }
			if !started {
				wx.MoveTo(float64(day), d.Value)
				started = true
			} else {
				wx.LineTo(float64(day), d.Value)
			}
		}
		if started { wx.DrawPath("D") }
	}

	bg.DrawFrame()
}

// }}}
// {{{ DrawWeatherView

func DrawWeatherView(pdf *gofpdf.Fpdf, v *report.WeatherView) {
	pdf.AddPage()
	DrawTitle(pdf, fmt.Sprintf("Delays and weather at %s (station %s, %.0f km)",
		v.City, v.Station.StationID, v.Station.RoundedDistKM()))

	top := panelAt(pdf, 0, 0)
	top.W = 2*PanelWidth + PanelGapU
	DrawCaption(top, fmt.Sprintf("Mean daily delay: departures (blue), arrivals (orange); %s (grey, right axis)",
		v.WeatherField))
	DrawDailyMeans(top, v)

	for i,wd := range []report.WorstDay{v.WorstDeparture, v.WorstArrival} {
		bg := panelAt(pdf, i, 1)
		if wd.Date == "" {
			DrawCaption(bg, fmt.Sprintf("Worst day, %s", wd.MetricType.Description()))
			DrawPlaceholder(bg, "no data")
			continue
		}
		DrawCaption(bg, fmt.Sprintf("Worst day, %s: %s (mean %.1f min)", wd.MetricType.Description(),
			wd.Date, wd.MeanDelay))
		DrawHistogram(bg, wd.Histogram, v.XMin, v.XMax, MetricColors[wd.MetricType])
	}
}

// }}}

// {{{ NewDashboardPdf

func NewDashboardPdf() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// }}}
// {{{ WriteDashboard

// WriteDashboard renders whichever views are non-nil, one page each. With neither, the single
// page says so.
func WriteDashboard(output io.Writer, dv *report.DelayView, wv *report.WeatherView) error {
	pdf := NewDashboardPdf()

	if dv != nil { DrawDelayView(pdf, dv) }
	if wv != nil { DrawWeatherView(pdf, wv) }
	if dv == nil && wv == nil {
		pdf.AddPage()
		DrawTitle(pdf, "No data for this selection")
	}

	if err := pdf.Error(); err != nil { return fmt.Errorf("fpdf: %w", err) }
	return pdf.Output(output)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
