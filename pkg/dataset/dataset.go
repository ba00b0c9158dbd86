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

package dataset

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/mat"

	"github.com/iris-ml/iris/pkg/species"
)

const (
	// SepalLength is the name of sepal length feature.
	SepalLength = "sepal_length"

	// SepalWidth is the name of sepal width feature.
	SepalWidth = "sepal_width"

	// PetalLength is the name of petal length feature.
	PetalLength = "petal_length"

	// PetalWidth is the name of petal width feature.
	PetalWidth = "petal_width"

	// ClassAttributeName is the name of class attribute.
	ClassAttributeName = "species"
)

// FeatureNames are the feature names ordered as the columns of the feature matrix.
var FeatureNames = []string{SepalLength, SepalWidth, PetalLength, PetalWidth}

//go:embed iris.csv
var irisCSV []byte

// Observation contains one measured iris specimen.
type Observation struct {
	// SepalLength is sepal length in cm.
	SepalLength float64 `csv:"sepal_length"`

	// SepalWidth is sepal width in cm.
	SepalWidth float64 `csv:"sepal_width"`

	// PetalLength is petal length in cm.
	PetalLength float64 `csv:"petal_length"`

	// PetalWidth is petal width in cm.
	PetalWidth float64 `csv:"petal_width"`

	// Species is label.
	Species string `csv:"species"`
}

// Features returns the feature vector ordered as FeatureNames.
func (o Observation) Features() []float64 {
	return []float64{o.SepalLength, o.SepalWidth, o.PetalLength, o.PetalWidth}
}

// Dataset is a labeled set of observations.
type Dataset struct {
	Observations []Observation
	table        *species.Table
}

// Load returns the embedded iris dataset labeled with the given table.
func Load(table *species.Table) (*Dataset, error) {
	return Parse(irisCSV, table)
}

// Parse decodes csv with header into a dataset, every species must exist in table.
func Parse(data []byte, table *species.Table) (*Dataset, error) {
	var observations []Observation
	if err := gocsv.UnmarshalBytes(data, &observations); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}

	if len(observations) == 0 {
		return nil, errors.New("dataset is empty")
	}

	for i, o := range observations {
		if _, err := table.Code(o.Species); err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
	}

	return &Dataset{
		Observations: observations,
		table:        table,
	}, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.Observations)
}

// Matrix returns the n x 4 feature matrix and the class codes of observations.
func (d *Dataset) Matrix() (*mat.Dense, []int) {
	x := mat.NewDense(len(d.Observations), len(FeatureNames), nil)
	y := make([]int, len(d.Observations))
	for i, o := range d.Observations {
		x.SetRow(i, o.Features())

		// Species is checked by Parse.
		code, _ := d.table.Code(o.Species) // nolint: errcheck
		y[i] = code
	}

	return x, y
}

// Instances converts observations to golearn instances whose class attribute is species.
// Categorical values of species are registered in table order.
func (d *Dataset) Instances() (*base.DenseInstances, error) {
	instances := base.NewDenseInstances()

	specs := make([]base.AttributeSpec, len(FeatureNames))
	for i, name := range FeatureNames {
		specs[i] = instances.AddAttribute(base.NewFloatAttribute(name))
	}

	class := base.NewCategoricalAttribute()
	class.SetName(ClassAttributeName)
	for _, label := range d.table.Labels() {
		class.GetSysValFromString(label)
	}

	classSpec := instances.AddAttribute(class)
	if err := instances.AddClassAttribute(class); err != nil {
		return nil, err
	}

	if err := instances.Extend(len(d.Observations)); err != nil {
		return nil, err
	}

	for row, o := range d.Observations {
		for i, v := range o.Features() {
			instances.Set(specs[i], row, base.PackFloatToBytes(v))
		}

		instances.Set(classSpec, row, class.GetSysValFromString(o.Species))
	}

	return instances, nil
}

// Summary contains statistics of one feature.
type Summary struct {
	Feature           string
	Min               float64
	Max               float64
	Mean              float64
	StandardDeviation float64
}

// Describe returns statistics of every feature ordered as FeatureNames.
func (d *Dataset) Describe() ([]Summary, error) {
	columns := make([]stats.Float64Data, len(FeatureNames))
	for _, o := range d.Observations {
		for i, v := range o.Features() {
			columns[i] = append(columns[i], v)
		}
	}

	summaries := make([]Summary, len(FeatureNames))
	for i, column := range columns {
		min, err := column.Min()
		if err != nil {
			return nil, err
		}

		max, err := column.Max()
		if err != nil {
			return nil, err
		}

		mean, err := column.Mean()
		if err != nil {
			return nil, err
		}

		stdev, err := column.StandardDeviation()
		if err != nil {
			return nil, err
		}

		summaries[i] = Summary{
			Feature:           FeatureNames[i],
			Min:               min,
			Max:               max,
			Mean:              mean,
			StandardDeviation: stdev,
		}
	}

	return summaries, nil
}
