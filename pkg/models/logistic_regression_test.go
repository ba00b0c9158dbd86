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
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/iris-ml/iris/pkg/dataset"
	"github.com/iris-ml/iris/pkg/species"
)

var (
	mockQueries = mat.NewDense(6, 4, []float64{
		5.0, 3.4, 1.5, 0.2,
		6.0, 2.9, 4.5, 1.5,
		6.9, 3.1, 5.4, 2.1,
		5.9, 3.0, 4.2, 1.5,
		6.5, 3.0, 5.2, 2.0,
		0, 0, 0, 0,
	})
	mockQueryCodes = []int{0, 1, 2, 1, 2, 0}
)

func fitIris(t *testing.T, options ...LogisticRegressionOption) (*LogisticRegression, *mat.Dense, []int) {
	ds, err := dataset.Load(species.Default())
	if err != nil {
		t.Fatal(err)
	}

	x, y := ds.Matrix()
	lr := NewLogisticRegression(species.Default().Labels(), options...)
	if err := lr.Fit(x, y); err != nil {
		t.Fatal(err)
	}

	return lr, x, y
}

func TestLogisticRegression_Fit(t *testing.T) {
	assert := assert.New(t)
	lr, x, y := fitIris(t)
	assert.True(lr.Fitted())
	assert.Greater(lr.Iterations(), 0)
	assert.LessOrEqual(lr.Iterations(), DefaultMaxIterations)
	assert.InDelta(0.205, lr.Loss(), 0.01)

	codes, err := lr.Predict(x)
	assert.NoError(err)

	var correct int
	for i, code := range codes {
		if code == y[i] {
			correct++
		}
	}
	assert.GreaterOrEqual(float64(correct)/float64(len(y)), 0.95)

	codes, err = lr.Predict(mockQueries)
	assert.NoError(err)
	assert.Equal(mockQueryCodes, codes)

	k, p := lr.Coefficients().Dims()
	assert.Equal(3, k)
	assert.Equal(4, p)
	assert.Len(lr.Intercepts(), 3)
}

func TestLogisticRegression_Deterministic(t *testing.T) {
	assert := assert.New(t)
	first, _, _ := fitIris(t)
	second, _, _ := fitIris(t)

	assert.True(mat.Equal(first.Coefficients(), second.Coefficients()))
	assert.Equal(first.Intercepts(), second.Intercepts())

	firstCodes, err := first.Predict(mockQueries)
	assert.NoError(err)
	secondCodes, err := second.Predict(mockQueries)
	assert.NoError(err)
	assert.Equal(firstCodes, secondCodes)
}

func TestLogisticRegression_FitValidation(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		options []LogisticRegressionOption
		x       *mat.Dense
		y       []int
		expect  func(t *testing.T, lr *LogisticRegression, err error)
	}{
		{
			name:   "rows and codes mismatch",
			labels: []string{"a", "b"},
			x:      mat.NewDense(2, 1, []float64{0, 1}),
			y:      []int{0},
			expect: func(t *testing.T, lr *LogisticRegression, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training set has 2 rows but 1 class codes")
				assert.False(lr.Fitted())
			},
		},
		{
			name:   "single class",
			labels: []string{"a"},
			x:      mat.NewDense(2, 1, []float64{0, 1}),
			y:      []int{0, 0},
			expect: func(t *testing.T, lr *LogisticRegression, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "at least 2 classes are required")
			},
		},
		{
			name:    "non-positive c",
			labels:  []string{"a", "b"},
			options: []LogisticRegressionOption{WithC(0)},
			x:       mat.NewDense(2, 1, []float64{0, 1}),
			y:       []int{0, 1},
			expect: func(t *testing.T, lr *LogisticRegression, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "inverse of regularization strength must be positive")
			},
		},
		{
			name:    "non-positive max iterations",
			labels:  []string{"a", "b"},
			options: []LogisticRegressionOption{WithMaxIterations(0)},
			x:       mat.NewDense(2, 1, []float64{0, 1}),
			y:       []int{0, 1},
			expect: func(t *testing.T, lr *LogisticRegression, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "max iterations must be positive")
			},
		},
		{
			name:   "class code out of range",
			labels: []string{"a", "b"},
			x:      mat.NewDense(2, 1, []float64{0, 1}),
			y:      []int{0, 2},
			expect: func(t *testing.T, lr *LogisticRegression, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "row 1 has class code 2 out of [0, 2)")
			},
		},
		{
			name:   "separable classes",
			labels: []string{"a", "b"},
			x:      mat.NewDense(4, 1, []float64{-2, -1, 1, 2}),
			y:      []int{0, 0, 1, 1},
			expect: func(t *testing.T, lr *LogisticRegression, err error) {
				assert := assert.New(t)
				assert.NoError(err)

				codes, err := lr.Predict(mat.NewDense(2, 1, []float64{-3, 3}))
				assert.NoError(err)
				assert.Equal([]int{0, 1}, codes)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lr := NewLogisticRegression(tc.labels, tc.options...)
			tc.expect(t, lr, lr.Fit(tc.x, tc.y))
		})
	}
}

func TestLogisticRegression_Predict(t *testing.T) {
	fitted, _, _ := fitIris(t)

	tests := []struct {
		name   string
		lr     *LogisticRegression
		x      *mat.Dense
		expect func(t *testing.T, codes []int, err error)
	}{
		{
			name: "not fitted",
			lr:   NewLogisticRegression(species.Default().Labels()),
			x:    mat.NewDense(1, 4, nil),
			expect: func(t *testing.T, codes []int, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, ErrNotFitted)
				assert.Nil(codes)
			},
		},
		{
			name: "feature mismatch",
			lr:   fitted,
			x:    mat.NewDense(1, 3, nil),
			expect: func(t *testing.T, codes []int, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, ErrFeatureMismatch)
				assert.EqualError(err, "feature count mismatch: got 3, want 4")
			},
		},
		{
			name: "predict rows",
			lr:   fitted,
			x:    mockQueries,
			expect: func(t *testing.T, codes []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(mockQueryCodes, codes)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			codes, err := tc.lr.Predict(tc.x)
			tc.expect(t, codes, err)
		})
	}
}

func TestLogisticRegression_Accessors(t *testing.T) {
	assert := assert.New(t)
	labels := species.Default().Labels()
	lr := NewLogisticRegression(labels)
	assert.False(lr.Fitted())
	assert.Nil(lr.Coefficients())

	labels[0] = "foo"
	assert.Equal(species.Setosa, lr.Labels()[0])

	fitted, _, _ := fitIris(t)
	coefficients := fitted.Coefficients()
	coefficients.Set(0, 0, 100)
	assert.NotEqual(100.0, fitted.Coefficients().At(0, 0))
}
