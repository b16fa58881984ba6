package insights

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderFitnessChart writes an interactive line chart of best fitness per
// generation for both optimizers to an HTML file.
func RenderFitnessChart(championID int, gaHistory, deHistory []float64, outputPath string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "500px",
			Theme:  "light",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Champion %d build optimization", championID),
			Subtitle: "Best fitness per generation",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	generations := len(gaHistory)
	if len(deHistory) > generations {
		generations = len(deHistory)
	}
	xLabels := make([]string, generations)
	for i := range xLabels {
		xLabels[i] = fmt.Sprint(i + 1)
	}

	line.SetXAxis(xLabels).
		AddSeries("Genetic Algorithm", lineData(gaHistory)).
		AddSeries("Differential Evolution", lineData(deHistory)).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(true),
			}),
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func lineData(history []float64) []opts.LineData {
	data := make([]opts.LineData, len(history))
	for i, v := range history {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
