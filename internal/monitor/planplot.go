// Package monitor renders debugging views of a parsed map: a gonum/plot
// plan-view image and a go-echarts HTML preview. Neither is part of the
// mesh pipeline; both exist to eyeball geometry without a full renderer.
package monitor

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/mapmesh/internal/odr"
)

// planViewPalette cycles across roads so adjacent roads stay tellable.
var planViewPalette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

// SamplePlanView samples a road's reference line at the given step and
// returns the planar points, always including the road end.
func SamplePlanView(road *odr.Road, step float64) plotter.XYs {
	if len(road.PlanView) == 0 || road.Length <= 0 {
		return nil
	}
	if step <= 0 {
		step = 1.0
	}

	n := int(math.Ceil(road.Length/step)) + 1
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		s := math.Min(float64(i)*step, road.Length)
		pose := road.EvalReferenceLine(s)
		pts = append(pts, plotter.XY{X: pose.X, Y: pose.Y})
	}
	return pts
}

// PlanViewPlot builds a plan-view plot of every road's reference line.
func PlanViewPlot(m *odr.Map, step float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("plan view (%d roads)", len(m.Roads))
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	for i := range m.Roads {
		pts := SamplePlanView(&m.Roads[i], step)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("road %q: %w", m.Roads[i].ID, err)
		}
		line.Color = planViewPalette[i%len(planViewPalette)]
		p.Add(line)
		p.Legend.Add(m.Roads[i].ID, line)
	}

	return p, nil
}

// SavePlanView renders the plan-view plot to a file; the format follows the
// path extension (.png, .svg, .pdf).
func SavePlanView(m *odr.Map, step float64, width, height vg.Length, path string) error {
	p, err := PlanViewPlot(m, step)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save plan view %q: %w", path, err)
	}
	return nil
}
