/*
 *     Copyright 2026 The Iris Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	logger "github.com/iris-ml/iris/internal/dflog"
)

const (
	// DefaultC is default inverse of regularization strength.
	DefaultC = 1.0

	// DefaultMaxIterations is default cap of optimizer major iterations.
	DefaultMaxIterations = 200

	// DefaultGradientThreshold is default gradient infinity norm which stops the optimizer.
	DefaultGradientThreshold = 1e-4
)

// LogisticRegressionOptions contains solver configuration.
type LogisticRegressionOptions struct {
	// C is inverse of regularization strength, must be positive.
	C float64

	// MaxIterations caps the optimizer major iterations.
	MaxIterations int

	// GradientThreshold stops the optimizer when the gradient norm falls below it.
	GradientThreshold float64

	// Recorder observes the optimizer progress.
	Recorder optimize.Recorder
}

// LogisticRegressionOption is a functional option for configuring the solver.
type LogisticRegressionOption func(*LogisticRegressionOptions)

// WithC sets inverse of regularization strength.
func WithC(c float64) LogisticRegressionOption {
	return func(o *LogisticRegressionOptions) {
		o.C = c
	}
}

// WithMaxIterations sets the cap of optimizer major iterations.
func WithMaxIterations(n int) LogisticRegressionOption {
	return func(o *LogisticRegressionOptions) {
		o.MaxIterations = n
	}
}

// WithGradientThreshold sets the gradient threshold.
func WithGradientThreshold(threshold float64) LogisticRegressionOption {
	return func(o *LogisticRegressionOptions) {
		o.GradientThreshold = threshold
	}
}

// WithRecorder sets the recorder of optimizer progress.
func WithRecorder(recorder optimize.Recorder) LogisticRegressionOption {
	return func(o *LogisticRegressionOptions) {
		o.Recorder = recorder
	}
}

// LogisticRegression is a multinomial logistic regression classifier.
// A fitted model is never mutated by Predict and is safe for concurrent use.
type LogisticRegression struct {
	options LogisticRegressionOptions
	labels  []string
	fitted  bool

	// coefficients is classes x features.
	coefficients *mat.Dense
	intercepts   []float64

	loss       float64
	iterations int
}

// NewLogisticRegression returns an unfitted model over the class labels.
func NewLogisticRegression(labels []string, options ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		options: LogisticRegressionOptions{
			C:                 DefaultC,
			MaxIterations:     DefaultMaxIterations,
			GradientThreshold: DefaultGradientThreshold,
		},
		labels: append([]string(nil), labels...),
	}

	for _, opt := range options {
		opt(&lr.options)
	}

	return lr
}

// Fit trains parameters of model by minimizing the L2 penalized softmax cross entropy,
// y holds class codes of rows in x.
func (lr *LogisticRegression) Fit(x mat.Matrix, y []int) error {
	n, p := x.Dims()
	k := len(lr.labels)
	if n == 0 || p == 0 {
		return errors.New("training set is empty")
	}

	if n != len(y) {
		return fmt.Errorf("training set has %d rows but %d class codes", n, len(y))
	}

	if k < 2 {
		return errors.New("at least 2 classes are required")
	}

	if lr.options.C <= 0 {
		return errors.New("inverse of regularization strength must be positive")
	}

	if lr.options.MaxIterations <= 0 {
		return errors.New("max iterations must be positive")
	}

	for i, code := range y {
		if code < 0 || code >= k {
			return fmt.Errorf("row %d has class code %d out of [0, %d)", i, code, k)
		}
	}

	obj := &objective{
		x:       mat.DenseCopyOf(x),
		y:       y,
		classes: k,
		alpha:   1 / (lr.options.C * float64(n)),
	}

	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			return obj.evaluate(theta, nil)
		},
		Grad: func(grad, theta []float64) {
			obj.evaluate(theta, grad)
		},
	}

	settings := &optimize.Settings{
		GradientThreshold: lr.options.GradientThreshold,
		MajorIterations:   lr.options.MaxIterations,
		Recorder:          lr.options.Recorder,
	}

	result, err := optimize.Minimize(problem, make([]float64, k*(p+1)), settings, &optimize.LBFGS{})
	if result == nil {
		return fmt.Errorf("minimize: %w", err)
	}

	if err != nil {
		// Line search may stall close to the optimum, the last location is still usable.
		logger.Warnf("optimizer stopped with status %s: %v", result.Status, err)
	}

	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return errors.New("model loss is not finite")
	}

	theta := result.X
	lr.coefficients = mat.NewDense(k, p, append([]float64(nil), theta[:k*p]...))
	lr.intercepts = append([]float64(nil), theta[k*p:]...)
	lr.loss = result.F
	lr.iterations = result.MajorIterations
	lr.fitted = true
	logger.Infof("logistic regression fitted with status %s, loss %.6f, iterations %d", result.Status, lr.loss, lr.iterations)
	return nil
}

// Predict returns the class code with the largest decision value of every row in x.
func (lr *LogisticRegression) Predict(x mat.Matrix) ([]int, error) {
	if !lr.fitted {
		return nil, ErrNotFitted
	}

	n, p := x.Dims()
	k, features := lr.coefficients.Dims()
	if p != features {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureMismatch, p, features)
	}

	if n == 0 {
		return []int{}, nil
	}

	var z mat.Dense
	z.Mul(x, lr.coefficients.T())

	codes := make([]int, n)
	row := make([]float64, k)
	for i := 0; i < n; i++ {
		mat.Row(row, i, &z)
		floats.Add(row, lr.intercepts)
		codes[i] = floats.MaxIdx(row)
	}

	return codes, nil
}

// Labels returns the class labels ordered by class code.
func (lr *LogisticRegression) Labels() []string {
	return append([]string(nil), lr.labels...)
}

// Fitted reports whether the model has parameters.
func (lr *LogisticRegression) Fitted() bool {
	return lr.fitted
}

// Loss returns the objective value at the fitted parameters.
func (lr *LogisticRegression) Loss() float64 {
	return lr.loss
}

// Iterations returns the optimizer major iterations of the fit.
func (lr *LogisticRegression) Iterations() int {
	return lr.iterations
}

// Coefficients returns a copy of the classes x features coefficient matrix.
func (lr *LogisticRegression) Coefficients() *mat.Dense {
	if lr.coefficients == nil {
		return nil
	}

	return mat.DenseCopyOf(lr.coefficients)
}

// Intercepts returns a copy of the intercept of every class.
func (lr *LogisticRegression) Intercepts() []float64 {
	return append([]float64(nil), lr.intercepts...)
}

// objective is the mean softmax cross entropy plus alpha/2 * ||W||^2,
// theta holds W row-major followed by intercepts.
type objective struct {
	x       *mat.Dense
	y       []int
	classes int
	alpha   float64
}

// evaluate returns the objective at theta and writes the gradient into grad when it is not nil.
func (o *objective) evaluate(theta, grad []float64) float64 {
	n, p := o.x.Dims()
	k := o.classes
	weights := theta[:k*p]
	intercepts := theta[k*p:]

	var z mat.Dense
	z.Mul(o.x, mat.NewDense(k, p, weights).T())

	residuals := mat.NewDense(n, k, nil)
	row := make([]float64, k)
	var loss float64
	for i := 0; i < n; i++ {
		mat.Row(row, i, &z)
		floats.Add(row, intercepts)

		lse := floats.LogSumExp(row)
		loss += lse - row[o.y[i]]
		for c := 0; c < k; c++ {
			residuals.Set(i, c, math.Exp(row[c]-lse))
		}
		residuals.Set(i, o.y[i], residuals.At(i, o.y[i])-1)
	}
	loss = loss/float64(n) + 0.5*o.alpha*floats.Dot(weights, weights)

	if grad != nil {
		gw := mat.NewDense(k, p, grad[:k*p])
		gw.Mul(residuals.T(), o.x)
		gw.Scale(1/float64(n), gw)
		floats.AddScaled(grad[:k*p], o.alpha, weights)

		for c := 0; c < k; c++ {
			grad[k*p+c] = mat.Sum(residuals.ColView(c)) / float64(n)
		}
	}

	return loss
}
