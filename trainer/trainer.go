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
package trainer

import (
	"context"
	"fmt"
	"io"
	"os"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/models"
	"github.com/iris-ml/iris/pkg/species"
	"github.com/iris-ml/iris/trainer/config"
	"github.com/iris-ml/iris/trainer/training"
)

type Trainer struct {
	// Trainer configuration.
	config *config.Config

	// Training interface.
	training training.Training

	// Output of the completion message.
	out io.Writer
}

// Option is a functional option for configuring the trainer.
type Option func(t *Trainer)

// WithTraining sets the training.
func WithTraining(tr training.Training) Option {
	return func(t *Trainer) {
		t.training = tr
	}
}

// WithOutput sets the writer of the completion message.
func WithOutput(w io.Writer) Option {
	return func(t *Trainer) {
		t.out = w
	}
}

// New returns a trainer over the default species table.
func New(cfg *config.Config, options ...Option) *Trainer {
	t := &Trainer{
		config: cfg,
		out:    os.Stdout,
	}

	for _, opt := range options {
		opt(t)
	}

	if t.training == nil {
		var trainingOptions []training.Option
		if cfg.Training.Progress {
			trainingOptions = append(trainingOptions, training.WithProgress(os.Stderr))
		}

		t.training = training.New(&cfg.Training, species.Default(), trainingOptions...)
	}

	return t
}

// Run trains a model and saves it to the model path.
func (t *Trainer) Run(ctx context.Context) error {
	result, err := t.training.Train()
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("training interrupted: %w", err)
	}

	if err := models.Save(t.config.Model.Path, result.Model); err != nil {
		return fmt.Errorf("save model to %s: %w", t.config.Model.Path, err)
	}

	logger.WithModel(t.config.Model.Path).Infof("model saved with accuracy %.4f", result.Accuracy)
	fmt.Fprintf(t.out, "Model trained and saved to %s\n", t.config.Model.Path)
	return nil
}
