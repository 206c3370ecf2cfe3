package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/qsimbench/qbench/types"
)

// PlotRenderer draws both engines' median durations against circuit qubit
// count as two labeled line series and saves the image. The output format
// follows the path extension; .png is the default the CLI uses.
type PlotRenderer struct {
	Path  string
	Title string
}

// NewPlotRenderer creates a renderer targeting the given image path.
func NewPlotRenderer(path, title string) *PlotRenderer {
	return &PlotRenderer{Path: path, Title: title}
}

// Render draws and saves the comparison plot.
func (pr *PlotRenderer) Render(rs *types.ResultSet) error {
	if rs.Size() == 0 {
		return fmt.Errorf("no records to plot")
	}

	sorted := SortByQubitCount(rs.Records)
	candidate := make(plotter.XYs, len(sorted))
	reference := make(plotter.XYs, len(sorted))
	for i, rec := range sorted {
		x := float64(rec.QubitCount)
		candidate[i] = plotter.XY{X: x, Y: rec.CandidateDuration.Seconds()}
		reference[i] = plotter.XY{X: x, Y: rec.ReferenceDuration.Seconds()}
	}

	p := plot.New()
	p.Title.Text = pr.Title
	p.X.Label.Text = "Qubit count"
	p.Y.Label.Text = "Median duration (s)"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "candidate", candidate, "reference", reference); err != nil {
		return fmt.Errorf("failed to add plot series: %w", err)
	}

	if dir := filepath.Dir(pr.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, pr.Path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
