package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// Curve is a named per-episode series of a training run
type Curve struct {
	Name string
	Data []float64

	// Window is the width of the moving average also plotted, 0 or 1
	// plots the raw data only
	Window int
}

// MovingAverage returns the mean of each window of data ending at each
// index. Windows at the start of data are truncated.
func MovingAverage(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	avg := make([]float64, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		avg[i] = stat.Mean(data[start:i+1], nil)
	}
	return avg
}

// lineChart returns a line chart of a curve against the episode number
func lineChart(c Curve) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: c.Name,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.Name}),
	)

	episodes := make([]string, len(c.Data))
	for i := range episodes {
		episodes[i] = fmt.Sprintf("%d", i)
	}
	line = line.SetXAxis(episodes)
	line.AddSeries(c.Name, lineData(c.Data))

	if c.Window > 1 {
		name := fmt.Sprintf("%v (%d episode average)", c.Name, c.Window)
		line.AddSeries(name, lineData(MovingAverage(c.Data, c.Window)))
	}
	return line
}

func lineData(data []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(data))
	for _, v := range data {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

// WriteCurves renders one line chart per curve to an HTML page on w
func WriteCurves(w io.Writer, curves ...Curve) error {
	page := components.NewPage()
	page.PageTitle = "gridqn"
	for _, c := range curves {
		page.AddCharts(lineChart(c))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("writecurves: %w", err)
	}
	return nil
}

// SaveCurves renders one line chart per curve to an HTML page at
// filename
func SaveCurves(filename string, curves ...Curve) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("savecurves: %w", err)
	}

	if err := WriteCurves(f, curves...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("savecurves: %w", err)
	}
	return nil
}
