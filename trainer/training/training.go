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
//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

package training

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/dataset"
	"github.com/iris-ml/iris/pkg/models"
	"github.com/iris-ml/iris/pkg/species"
	"github.com/iris-ml/iris/trainer/config"
)

// Result is the outcome of a training.
type Result struct {
	// Model is the fitted classifier.
	Model *models.LogisticRegression

	// Accuracy is the accuracy on the training set.
	Accuracy float64

	// Summary is the per class precision, recall and f1 report.
	Summary string

	// Features are statistics of the dataset features.
	Features []dataset.Summary
}

// Training is the interface used for training models.
type Training interface {
	// Train fits a model on the dataset and evaluates it on the same dataset.
	Train() (*Result, error)
}

// training implements Training.
type training struct {
	config   *config.TrainingConfig
	table    *species.Table
	progress io.Writer
}

// Option is a functional option for configuring the training.
type Option func(t *training)

// WithProgress renders optimizer iterations on a progress bar written to w.
func WithProgress(w io.Writer) Option {
	return func(t *training) {
		t.progress = w
	}
}

// New returns a new Training.
func New(cfg *config.TrainingConfig, table *species.Table, options ...Option) Training {
	t := &training{
		config: cfg,
		table:  table,
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Train fits a model on the dataset and evaluates it on the same dataset.
func (t *training) Train() (*Result, error) {
	ds, err := dataset.Load(t.table)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Infof("loaded dataset with %d observations", ds.Len())

	summaries, err := ds.Describe()
	if err != nil {
		return nil, fmt.Errorf("describe dataset: %w", err)
	}

	for _, s := range summaries {
		logger.With("feature", s.Feature).Infof("min %.2f max %.2f mean %.4f std %.4f", s.Min, s.Max, s.Mean, s.StandardDeviation)
	}

	x, y := ds.Matrix()
	recorder := models.NewIterationRecorder(t.config.MaxIterations, t.progress)
	lr := models.NewLogisticRegression(
		t.table.Labels(),
		models.WithC(t.config.C),
		models.WithMaxIterations(t.config.MaxIterations),
		models.WithGradientThreshold(t.config.GradientThreshold),
		models.WithRecorder(recorder),
	)

	if err := lr.Fit(x, y); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	if err := recorder.Finish(); err != nil {
		logger.Warnf("finish progress: %s", err.Error())
	}

	if math.IsNaN(lr.Loss()) {
		return nil, errors.New("model loss is NaN")
	}

	predictions, err := lr.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("predict training set: %w", err)
	}

	accuracy, summary, err := t.evaluate(ds, predictions)
	if err != nil {
		return nil, fmt.Errorf("evaluate model: %w", err)
	}
	logger.Infof("training accuracy %.4f after %d iterations", accuracy, lr.Iterations())
	logger.Debugf("evaluation summary:\n%s", summary)

	return &Result{
		Model:    lr,
		Accuracy: accuracy,
		Summary:  summary,
		Features: summaries,
	}, nil
}

// evaluate compares predicted codes with the dataset labels through a confusion matrix.
func (t *training) evaluate(ds *dataset.Dataset, predictions []int) (float64, string, error) {
	instances, err := ds.Instances()
	if err != nil {
		return 0, "", err
	}

	_, rows := instances.Size()
	if rows != len(predictions) {
		return 0, "", fmt.Errorf("got %d predictions for %d instances", len(predictions), rows)
	}

	predicted := base.GeneratePredictionVector(instances)
	for row, code := range predictions {
		label, err := t.table.Lookup(code)
		if err != nil {
			return 0, "", err
		}

		base.SetClass(predicted, row, label)
	}

	confusionMatrix, err := evaluation.GetConfusionMatrix(instances, predicted)
	if err != nil {
		return 0, "", err
	}

	accuracy := evaluation.GetAccuracy(confusionMatrix)
	if math.IsNaN(accuracy) {
		return 0, "", errors.New("accuracy is NaN")
	}

	return accuracy, evaluation.GetSummary(confusionMatrix), nil
}
