// Package gbloss provides custom training objectives and evaluation metrics
// for gradient-boosting frameworks such as LightGBM and XGBoost.
//
// Objectives return closed-form per-sample gradients and Hessians with respect
// to the raw model output. Metrics return a scalar score per boosting round,
// shaped for the host that calls them.
//
// # Features
//
//   - Classification losses: weighted cross-entropy and alpha-weighted focal loss
//   - Regression losses: log-cosh, squared log error, squared percentage error
//   - Metrics mirroring every loss, plus F1 and quadratic weighted kappa
//   - Numerically stable sigmoid with probabilities kept inside [1e-15, 1-1e-15]
//   - One flag switching result shapes between LightGBM and XGBoost
//   - Structured logging (zerolog) and stack-carrying errors (cockroachdb/errors)
//
// # Installation
//
//	go get github.com/YuminosukeSato/gbloss
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gbloss/core/host"
//	    "github.com/YuminosukeSato/gbloss/metrics"
//	    "github.com/YuminosukeSato/gbloss/objective"
//	)
//
//	func main() {
//	    focal, err := objective.NewFocal(0.25, 2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    labels := host.Labels{0, 1, 1, 0}
//	    margins := []float64{-1.2, 0.3, 2.5, 0.1}
//
//	    grad, hess, err := focal.GradHess(margins, labels)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(grad, hess)
//
//	    m, err := metrics.NewFocalMetric(0.25, 2, metrics.WithXGBoost(true))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    name, score, err := metrics.TwoTuple(m)(margins, labels)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(name, score) // Focal_alpha0.25_gamma2.0 ...
//	}
//
// # Packages
//
//   - objective: loss functions and the objective registry
//   - metrics: scoring functions, host-facing metrics, the metric registry and Monitor
//   - core/stability: clamped sigmoid, probability clipping, prediction spaces
//   - core/host: label sources and host conventions
//   - core/parallel: chunked parallel execution over prediction vectors
//   - core/params: loosely-typed host parameter maps
//   - pkg/errors: error types and warnings
//   - pkg/log: structured logging
//
// # Conventions
//
// LightGBM evaluation callbacks return (name, score, higherIsBetter); XGBoost
// callbacks return (name, score) and take the direction from the maximize
// argument of xgboost.train. Select the shape with WithXGBoost or
// WithConvention when constructing a metric.
//
// # License
//
// gbloss is released under the MIT License.
package gbloss
