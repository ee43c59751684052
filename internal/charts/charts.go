// Package charts renders plan schedules as interactive HTML charts.
package charts

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	YAxisLabel string   // Y-axis label
	XAxisLabel string   // X-axis label
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Series colors, cycled
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:      "Upgrade schedule",
		YAxisLabel: "Days",
		XAxisLabel: "Card",
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666"},
	}
}

// SeriesData is one named series of values, aligned with the chart labels.
type SeriesData struct {
	Name   string
	Values []float64
}

// Series names used by the schedule chart.
const (
	SeriesDaysRemaining = "Days remaining"
	SeriesDaysInOrder   = "Days in order"
)

// ScheduleSeries extracts the labels and series for the schedule chart.
// Legendary cards have no request schedule and are left out.
func ScheduleSeries(plan *planner.Plan) ([]string, []SeriesData) {
	var labels []string
	remaining := SeriesData{Name: SeriesDaysRemaining}
	inOrder := SeriesData{Name: SeriesDaysInOrder}

	for _, card := range plan.Cards {
		if card.Rarity() == game.Legendary {
			continue
		}
		est, ok := card.Computed()
		if !ok {
			continue
		}

		labels = append(labels, card.Name())
		remaining.Values = append(remaining.Values, round3(est.DaysRemaining))

		days := 0.0
		if est.DaysInOrder != nil {
			days = round3(*est.DaysInOrder)
		}
		inOrder.Values = append(inOrder.Values, days)
	}

	return labels, []SeriesData{remaining, inOrder}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// RenderSchedule writes the schedule chart for plan to outputPath.
func RenderSchedule(plan *planner.Plan, config ChartConfig, outputPath string) (err error) {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create chart directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return RenderScheduleTo(f, plan, config)
}

// RenderScheduleTo writes the schedule chart for plan to w.
func RenderScheduleTo(w io.Writer, plan *planner.Plan, config ChartConfig) error {
	labels, series := ScheduleSeries(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no scheduled cards to chart")
	}
	if config.Subtitle == "" {
		config.Subtitle = fmt.Sprintf("%s, generated %s", plan.Arena, plan.GeneratedAt.Format("2006-01-02"))
	}
	return RenderBarChart(w, labels, series, config)
}

// RenderBarChart writes a grouped bar chart with one bar group per label.
func RenderBarChart(w io.Writer, labels []string, series []SeriesData, config ChartConfig) error {
	if len(series) == 0 {
		return fmt.Errorf("no data series provided")
	}

	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: config.XAxisLabel,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: config.YAxisLabel,
		}),
	)

	bar.SetXAxis(labels)

	for i, s := range series {
		if len(s.Values) != len(labels) {
			return fmt.Errorf("series %q has %d values for %d labels", s.Name, len(s.Values), len(labels))
		}

		data := make([]opts.BarData, len(s.Values))
		for j, v := range s.Values {
			data[j] = opts.BarData{Value: v}
		}

		var seriesOpts []charts.SeriesOpts
		seriesOpts = append(seriesOpts, charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}))
		if len(config.Colors) > 0 {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{
				Color: config.Colors[i%len(config.Colors)],
			}))
		}

		bar.AddSeries(s.Name, data, seriesOpts...)
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
