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

//go:generate mockgen -destination mocks/models_mock.go -source models.go -package mocks

package models

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotFitted is returned when predicting with a model which is not fitted.
	ErrNotFitted = errors.New("model is not fitted")

	// ErrFeatureMismatch is returned when the input columns differ from the fitted features.
	ErrFeatureMismatch = errors.New("feature count mismatch")

	// ErrCorruptArtifact is returned when an artifact can not be decoded into a model.
	ErrCorruptArtifact = errors.New("corrupt model artifact")
)

// Classifier is the interface used for predicting class codes.
type Classifier interface {
	// Predict returns the class code of every row in x.
	Predict(x mat.Matrix) ([]int, error)

	// Labels returns the class labels ordered by class code.
	Labels() []string
}
