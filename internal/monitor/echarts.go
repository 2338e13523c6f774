package monitor

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/mapmesh/internal/odr"
)

// NetworkHTML writes an interactive scatter preview of the road network to
// w. Reference lines are sampled per road and, when the map holds more than
// maxPoints samples, thinned by one common stride chosen from maxPoints.
// Each road keeps its first sample, so the total can exceed maxPoints by up
// to one point per road.
func NetworkHTML(m *odr.Map, step float64, maxPoints int, w io.Writer) error {
	if maxPoints <= 0 {
		maxPoints = 8000
	}

	type roadSeries struct {
		id   string
		data []opts.ScatterData
	}

	total := 0
	series := make([]roadSeries, 0, len(m.Roads))
	for i := range m.Roads {
		pts := SamplePlanView(&m.Roads[i], step)
		data := make([]opts.ScatterData, 0, len(pts))
		for _, pt := range pts {
			data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y}})
		}
		total += len(data)
		series = append(series, roadSeries{id: m.Roads[i].ID, data: data})
	}

	// Downsample by stride to keep the payload reasonable.
	if total > maxPoints {
		stride := int(math.Ceil(float64(total) / float64(maxPoints)))
		for i := range series {
			kept := make([]opts.ScatterData, 0, len(series[i].data)/stride+1)
			for j := 0; j < len(series[i].data); j += stride {
				kept = append(kept, series[i].data[j])
			}
			series[i].data = kept
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "road network",
			Subtitle: fmt.Sprintf("%d roads, %d junctions", len(m.Roads), len(m.Junctions)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (m)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	for _, s := range series {
		scatter.AddSeries(s.id, s.data)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render network preview: %w", err)
	}
	return nil
}
