// Command lossplot renders the loss, gradient and Hessian of gbloss objectives
// over a range of predictions, one PNG per objective.
//
// Usage:
//
//	lossplot -objective focal -alpha 0.25 -gamma 2 -label 1 -out plots
//	lossplot -objective all -out plots
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/gbloss/objective"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var allObjectives = []string{"weighted_cross_entropy", "focal", "log_cosh", "squared_log_error", "squared_percentage_error"}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "lossplot:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lossplot", flag.ContinueOnError)
	fs.SetOutput(stdout)

	name := fs.String("objective", "all", "objective name, or \"all\"")
	alpha := fs.Float64("alpha", objective.DefaultFocalAlpha, "alpha for weighted_cross_entropy and focal")
	gamma := fs.Float64("gamma", objective.DefaultFocalGamma, "gamma for focal")
	label := fs.Float64("label", 1, "label the curves are drawn for")
	lo := fs.Float64("min", 0, "smallest prediction (default depends on the objective)")
	hi := fs.Float64("max", 0, "largest prediction (default depends on the objective)")
	points := fs.Int("points", 241, "number of samples per curve")
	out := fs.String("out", ".", "output directory")
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *points < 2 {
		return errors.NewValidationError("points", "at least 2 samples are required", *points)
	}
	if set["min"] != set["max"] {
		return errors.New("-min and -max must be given together")
	}
	if set["min"] && !(*lo < *hi) {
		return errors.NewValidationError("min", "must be smaller than -max", *lo)
	}

	if err := errors.SafeExecute("SetupLogger", func() error {
		log.SetupLogger(*level)
		return nil
	}); err != nil {
		return err
	}
	logger := log.GetLoggerWithName("lossplot")

	names := []string{*name}
	if *name == "all" {
		names = allObjectives
	}

	params := map[string]interface{}{}
	if set["alpha"] {
		params["alpha"] = *alpha
	}
	if set["gamma"] {
		params["gamma"] = *gamma
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", *out)
	}

	for _, n := range names {
		o, err := objective.Create(n, params)
		if err != nil {
			return err
		}

		from, to := defaultRange(o, *label)
		if set["min"] {
			from, to = *lo, *hi
		}
		xs := floats.Span(make([]float64, *points), from, to)

		path := filepath.Join(*out, o.Name()+".png")
		if err := render(o, *label, xs, path); err != nil {
			return err
		}
		logger.Info("plot saved", log.ObjectiveNameKey, o.Name(), "path", path)
		fmt.Fprintln(stdout, path)
	}
	return nil
}

// defaultRange picks a prediction range that shows the interesting part of o's curves.
func defaultRange(o objective.Objective, label float64) (float64, float64) {
	switch o.(type) {
	case *objective.SquaredLogError:
		return -0.9, label + 4
	case *objective.LogCosh, *objective.SquaredPercentageError:
		return label - 4, label + 4
	default:
		return -6, 6
	}
}

// curves samples loss, gradient and Hessian of o at every x for a fixed label.
func curves(o objective.Objective, label float64, xs []float64) (loss, grad, hess plotter.XYs) {
	loss = make(plotter.XYs, len(xs))
	grad = make(plotter.XYs, len(xs))
	hess = make(plotter.XYs, len(xs))
	for i, x := range xs {
		loss[i] = plotter.XY{X: x, Y: o.Loss(x, label)}
		grad[i] = plotter.XY{X: x, Y: o.Gradient(x, label)}
		hess[i] = plotter.XY{X: x, Y: o.Hessian(x, label)}
	}
	return loss, grad, hess
}

func render(o objective.Objective, label float64, xs []float64, path string) error {
	loss, grad, hess := curves(o, label, xs)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (label = %g)", o.Name(), label)
	p.X.Label.Text = "prediction"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLines(p, "loss", loss, "gradient", grad, "hessian", hess); err != nil {
		return errors.Wrapf(err, "plotting %s", o.Name())
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}
