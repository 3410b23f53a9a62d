package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/spacesedan/sentireport/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const CHART_FILE_NAME = "sentiment_distribution.png"

// viridis samples, one per category in report order.
var categoryColors = map[models.Category]color.RGBA{
	models.Positive: {R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	models.Neutral:  {R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	models.Negative: {R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

type ChartOptions struct {
	Width  vg.Length
	Height vg.Length
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// RenderChart draws the per-category counts as a PNG bar chart.
func RenderChart(counts map[models.Category]int, opts ChartOptions) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("[Report] invalid chart size %vx%v", opts.Width, opts.Height)
	}

	p := plot.New()
	p.Title.Text = "Sentiment Distribution"
	p.X.Label.Text = "Sentiment"
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	categories := models.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()

		bar, err := plotter.NewBarChart(plotter.Values{float64(counts[c])}, vg.Points(60))
		if err != nil {
			return nil, fmt.Errorf("[Report] failed to build bar for %s: %w", c, err)
		}
		bar.XMin = float64(i)
		bar.Color = categoryColors[c]
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	p.NominalX(names...)

	w, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("[Report] failed to render chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("[Report] failed to encode chart: %w", err)
	}

	return buf.Bytes(), nil
}
