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
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gonum.org/v1/gonum/mat"
)

const (
	// LockFileExt is extension of the lock file guarding an artifact.
	LockFileExt = ".lock"

	artifactFileMode = 0644
	artifactDirMode  = 0755
)

// artifact is the gob payload of a fitted logistic regression.
type artifact struct {
	Labels       []string
	Features     int
	Coefficients []float64
	Intercepts   []float64
	Loss         float64
	Iterations   int
}

// Encode writes the fitted model to w.
func Encode(w io.Writer, lr *LogisticRegression) error {
	if !lr.fitted {
		return ErrNotFitted
	}

	_, features := lr.coefficients.Dims()
	a := artifact{
		Labels:       lr.Labels(),
		Features:     features,
		Coefficients: mat.DenseCopyOf(lr.coefficients).RawMatrix().Data,
		Intercepts:   lr.Intercepts(),
		Loss:         lr.loss,
		Iterations:   lr.iterations,
	}

	return gob.NewEncoder(w).Encode(&a)
}

// Decode reads a fitted model from r.
func Decode(r io.Reader) (*LogisticRegression, error) {
	var a artifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}

	k := len(a.Labels)
	if k < 2 || a.Features <= 0 || len(a.Coefficients) != k*a.Features || len(a.Intercepts) != k {
		return nil, fmt.Errorf("%w: %d labels, %d features, %d coefficients, %d intercepts",
			ErrCorruptArtifact, k, a.Features, len(a.Coefficients), len(a.Intercepts))
	}

	for _, params := range [][]float64{a.Coefficients, a.Intercepts} {
		for _, v := range params {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: parameter %v is not finite", ErrCorruptArtifact, v)
			}
		}
	}

	lr := NewLogisticRegression(a.Labels)
	lr.coefficients = mat.NewDense(k, a.Features, a.Coefficients)
	lr.intercepts = a.Intercepts
	lr.loss = a.Loss
	lr.iterations = a.Iterations
	lr.fitted = true
	return lr, nil
}

// Save writes the fitted model to path atomically. Concurrent writers of
// the same path are serialized by a lock file next to it.
func Save(path string, lr *LogisticRegression) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, artifactDirMode); err != nil {
		return err
	}

	lock := flock.New(path + LockFileExt)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	defer lock.Unlock() // nolint: errcheck

	file, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := file.Name()

	if err := Encode(file, lr); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Chmod(tmp, artifactFileMode); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

// Load reads a fitted model from path.
func Load(path string) (*LogisticRegression, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file)
}
