package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/dataprep"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/features"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/model"
)

// ExplainedVariance draws the explained variance ratio of each fitted
// principal component as a terminal chart.
func ExplainedVariance(w io.Writer, pca *model.PCA) error {
	if pca == nil || len(pca.ExplainedRatio) == 0 {
		return model.ErrNotFitted
	}
	total := 0.0
	for _, r := range pca.ExplainedRatio {
		total += r
	}
	graph := asciigraph.Plot(pca.ExplainedRatio,
		asciigraph.Height(8),
		asciigraph.Caption(fmt.Sprintf("explained variance ratio per component (%d kept, %.1f%% total)", pca.K, 100*total)),
	)
	_, err := fmt.Fprintln(w, graph)
	return err
}

// PlotInteractions saves a scatter of the to-POI ratio against the
// from-POI ratio, POIs in red and everyone else in blue. Records without
// both ratios are skipped.
func PlotInteractions(ds data.Dataset, filename string) error {
	var pois, others plotter.XYs
	for _, key := range ds.Keys() {
		rec := ds[key]
		to, okTo := rec.Float(dataprep.FieldToRatio)
		from, okFrom := rec.Float(dataprep.FieldFromRatio)
		if !okTo || !okFrom {
			continue
		}
		pt := plotter.XY{X: to, Y: from}
		if label, _ := rec.Float(features.LabelFeature); label == 1 {
			pois = append(pois, pt)
		} else {
			others = append(others, pt)
		}
	}
	if len(pois)+len(others) == 0 {
		return errors.New("report: no interaction ratios to plot")
	}

	p := plot.New()
	p.Title.Text = "POI email interactions"
	p.X.Label.Text = "share of sent mail to POIs"
	p.Y.Label.Text = "share of received mail from POIs"

	for _, series := range []struct {
		name  string
		pts   plotter.XYs
		color color.RGBA
		shape draw.GlyphDrawer
	}{
		{"non-POI", others, color.RGBA{B: 255, A: 255, R: 50, G: 50}, draw.CircleGlyph{}},
		{"POI", pois, color.RGBA{R: 255, A: 255}, draw.CrossGlyph{}},
	} {
		if len(series.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(series.pts)
		if err != nil {
			return fmt.Errorf("report: %s scatter: %w", series.name, err)
		}
		s.Color = series.color
		s.Shape = series.shape
		s.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(series.name, s)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, filename); err != nil {
		return fmt.Errorf("report: save plot: %w", err)
	}
	return nil
}
