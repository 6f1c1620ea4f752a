// Package chart renders diagnostic plots from a thompson.Result.
// It is a read-only consumer of the result bundle; the simulator has no
// dependency on this package.
//
// Package chart は thompson.Result から診断用のプロットを描画します。
package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sw965/mab/thompson"
)

const (
	width  = 9 * vg.Inch
	height = 7 * vg.Inch
)

var (
	firebrick = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	steelblue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

func validate(result *thompson.Result) error {
	n := len(result.Choices)
	if len(result.Rewards) != n || len(result.CumulativeRegret) != n || len(result.StaticCumulativeRegret) != n {
		return fmt.Errorf("Resultのトライアル系列の長さが一致しないため、描画できません。")
	}

	nArms := len(result.TrueProbs)
	if nArms == 0 || len(result.Alphas) != nArms || len(result.Betas) != nArms {
		return fmt.Errorf("Resultの腕ごとの系列の長さが一致しないため、描画できません。")
	}
	return nil
}

// SaveCumulativeRegret writes a line chart comparing the adaptive policy's
// cumulative regret against the static baseline's.
func SaveCumulativeRegret(result *thompson.Result, path string) error {
	if err := validate(result); err != nil {
		return err
	}

	nTrials := len(result.CumulativeRegret)
	tsXYs := make(plotter.XYs, nTrials)
	staticXYs := make(plotter.XYs, nTrials)
	for t := 0; t < nTrials; t++ {
		tsXYs[t] = plotter.XY{X: float64(t), Y: result.CumulativeRegret[t]}
		staticXYs[t] = plotter.XY{X: float64(t), Y: result.StaticCumulativeRegret[t]}
	}

	tsLine, err := plotter.NewLine(tsXYs)
	if err != nil {
		return err
	}
	tsLine.Color = firebrick

	staticLine, err := plotter.NewLine(staticXYs)
	if err != nil {
		return err
	}
	staticLine.Color = steelblue

	p := plot.New()
	p.Title.Text = "Cumulative Regret: Thompson Sampling vs. Static A/B Test"
	p.X.Label.Text = "Trial Number"
	p.Y.Label.Text = "Cumulative Regret"
	p.Add(tsLine, staticLine)
	p.Legend.Add("TSRegret", tsLine)
	p.Legend.Add("StaticRegret", staticLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(width, height, path)
}

// SaveSelectionProportions writes a bar chart of the proportion of trials in
// which each arm was selected.
func SaveSelectionProportions(result *thompson.Result, path string) error {
	if err := validate(result); err != nil {
		return err
	}

	props := result.SelectionProportions()
	nArms := len(props)

	p := plot.New()
	p.Title.Text = "Arm Selection Proportions"
	p.X.Label.Text = "Arm"
	p.Y.Label.Text = "Proportion of Times Selected"

	labels := make([]string, nArms)
	for i := 0; i < nArms; i++ {
		// 腕ごとに1本ずつBarChartを重ねて、腕ごとの色を付ける。
		vals := make(plotter.Values, nArms)
		vals[i] = props[i]

		bars, err := plotter.NewBarChart(vals, vg.Points(40))
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0

		p.Add(bars)
		labels[i] = strconv.Itoa(i)
	}
	p.NominalX(labels...)
	p.Y.Min = 0

	return p.Save(width, height, path)
}

// SavePosteriorDistributions writes each arm's final Beta posterior density
// over (0, 1), with a dashed vertical marker at the arm's true probability.
func SavePosteriorDistributions(result *thompson.Result, path string) error {
	if err := validate(result); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Final Posterior Distributions of Arm Probabilities"
	p.X.Label.Text = "Success Probability (theta)"
	p.Y.Label.Text = "Density"
	p.X.Min = 0.0
	p.X.Max = 1.0

	const gridSize = 1000
	maxDensity := 0.0

	for i := range result.TrueProbs {
		dist := distuv.Beta{Alpha: result.Alphas[i], Beta: result.Betas[i]}

		// 区間の内点のみで評価する。端点ではalpha=1のとき密度が定義されない。
		xys := make(plotter.XYs, gridSize)
		for j := 0; j < gridSize; j++ {
			x := (float64(j) + 0.5) / float64(gridSize)
			d := dist.Prob(x)
			xys[j] = plotter.XY{X: x, Y: d}
			if d > maxDensity {
				maxDensity = d
			}
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add("Arm "+strconv.Itoa(i), line)
	}

	for i, trueProb := range result.TrueProbs {
		vline, err := plotter.NewLine(plotter.XYs{
			{X: trueProb, Y: 0.0},
			{X: trueProb, Y: maxDensity},
		})
		if err != nil {
			return err
		}
		vline.Color = plotutil.Color(i)
		vline.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(vline)
	}

	return p.Save(width, height, path)
}
