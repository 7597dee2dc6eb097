package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// writeHistogram saves a normalized histogram of the chain to a PNG
// file.
func writeHistogram(chain []float64, fn string) error {
	p := plot.New()
	p.Title.Text = "sample histogram"
	p.X.Label.Text = "theta"

	h, err := plotter.NewHist(plotter.Values(chain), 50)
	if err != nil {
		return err
	}
	h.Normalize(1)
	p.Add(h)

	return p.Save(6*vg.Inch, 4*vg.Inch, fn)
}

// writeTrace saves the chain trace to a PNG file; iteration numbers
// start after the burn-in.
func writeTrace(chain []float64, burnIn int, fn string) error {
	p := plot.New()
	p.Title.Text = "chain trace"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "theta"

	pts := make(plotter.XYs, len(chain))
	for i, v := range chain {
		pts[i].X = float64(burnIn + i)
		pts[i].Y = v
	}

	if err := plotutil.AddLinePoints(p, "theta", pts); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, fn)
}
