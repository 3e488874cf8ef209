package types

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// DataSet produced by an Analyzer from the traces of one experiment.
type DataSet interface{}

// Analyzer reduces the traces of one experiment to a DataSet.
type Analyzer func(name string, traces []*Trace) DataSet

// Comparator consumes the per-experiment datasets of a comparison run.
type Comparator func(names []string, datasets []DataSet)

// SuccessRate maps each rollout to the fraction of environments that
// reached a successful placement during it.
func SuccessRate() Analyzer {
	return func(name string, traces []*Trace) DataSet {
		rates := make([]float64, 0, len(traces))
		for _, trace := range traces {
			rates = append(rates, trace.SuccessRate())
		}
		return rates
	}
}

// MeanReward maps each rollout to its mean per-step per-environment reward.
func MeanReward() Analyzer {
	return func(name string, traces []*Trace) DataSet {
		means := make([]float64, 0, len(traces))
		for _, trace := range traces {
			flat := make([]float64, 0)
			for i := 0; i < trace.Len(); i++ {
				rewards, _, _ := trace.Get(i)
				flat = append(flat, rewards...)
			}
			means = append(means, stat.Mean(flat, nil))
		}
		return means
	}
}

// CurvePlotter draws one line per experiment over the per-rollout values of
// the analyzer and saves the comparison to plotPath.
func CurvePlotter(plotPath, yLabel, fileName string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(names []string, datasets []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Rollout"
		p.Y.Label.Text = yLabel
		for i := 0; i < len(names); i++ {
			values := datasets[i].([]float64)
			points := make(plotter.XYs, len(values))
			for j, v := range values {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			fmt.Printf("Final %s: %.3f for benchmark: %s\n", yLabel, values[len(values)-1], names[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, fileName))
	}
}

// CurvePlotterIndexed names the output file after the run index, for
// multi-run comparisons.
func CurvePlotterIndexed(plotPath, yLabel string, run int) Comparator {
	return CurvePlotter(plotPath, yLabel, strconv.Itoa(run)+"_"+yLabel+".png")
}
