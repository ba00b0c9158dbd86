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
	"io"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/optimize"

	logger "github.com/iris-ml/iris/internal/dflog"
)

// IterationRecorder logs every optimizer major iteration and optionally
// renders them on a progress bar.
type IterationRecorder struct {
	max int
	w   io.Writer
	bar *progressbar.ProgressBar

	// Iterations is the number of recorded major iterations.
	Iterations int
}

// NewIterationRecorder returns a recorder, a nil writer disables the progress bar.
func NewIterationRecorder(maxIterations int, w io.Writer) *IterationRecorder {
	return &IterationRecorder{max: maxIterations, w: w}
}

// Init implements optimize.Recorder.
func (r *IterationRecorder) Init() error {
	r.Iterations = 0
	if r.w != nil {
		r.bar = progressbar.NewOptions(r.max,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionSetDescription("training"),
			progressbar.OptionShowCount(),
		)
	}

	return nil
}

// Record implements optimize.Recorder.
func (r *IterationRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}

	r.Iterations++
	logger.Debugf("iteration %d loss %.8f", stats.MajorIterations, loc.F)
	if r.bar != nil {
		return r.bar.Add(1)
	}

	return nil
}

// Finish completes the progress bar.
func (r *IterationRecorder) Finish() error {
	if r.bar == nil {
		return nil
	}

	return r.bar.Finish()
}
