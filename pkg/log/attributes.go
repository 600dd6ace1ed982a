// Package log defines standard attribute keys for objective and metric logging.
//
// The keys follow a hierarchical naming convention (e.g. "objective.name",
// "hyperparams.alpha") so that records emitted by differently-parametrized
// instances of the same loss family can be filtered apart.

package log

// Component and operation context.
const (
	// ComponentKey identifies the package emitting the record: "objective" or "metrics".
	ComponentKey = "gb.component"

	// OperationKey specifies the operation being performed.
	// Standard values: OperationConstruct, OperationGradHess, OperationEval.
	OperationKey = "gb.operation"

	// ObjectiveNameKey identifies a loss, e.g. "WeightedCrossEntropy", "Focal".
	ObjectiveNameKey = "objective.name"

	// MetricNameKey identifies a metric by its reported name, e.g. "Focal_alpha1.0_gamma2.0".
	MetricNameKey = "metric.name"

	// ConventionKey records the host output convention ("lightgbm" or "xgboost").
	ConventionKey = "host.convention"

	// SpaceKey records whether predictions are margins or probabilities.
	SpaceKey = "preds.space"
)

// Hyperparameters.
const (
	AlphaKey    = "hyperparams.alpha"
	GammaKey    = "hyperparams.gamma"
	AverageKey  = "hyperparams.average"
	NumClassKey = "hyperparams.num_class"
)

// Data shape and results.
const (
	// SamplesKey indicates the number of samples in a prediction vector.
	SamplesKey = "data.samples"

	// ClassesKey indicates the number of classes seen by a multiclass metric.
	ClassesKey = "data.classes"

	// ScoreKey records a metric score.
	ScoreKey = "metrics.score"

	// HigherIsBetterKey records the optimization direction of a metric.
	HigherIsBetterKey = "metrics.higher_is_better"

	// IterationKey records the boosting round supplied by the host, when known.
	IterationKey = "training.iteration"
	// BestIterationKey records the best boosting round seen by a monitor.
	BestIterationKey = "training.best_iteration"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "DimensionError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information extracted from cockroachdb/errors.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationConstruct = "construct"
	OperationGradHess  = "grad_hess"
	OperationEval      = "eval"

	ComponentObjective = "objective"
	ComponentMetrics   = "metrics"
)
