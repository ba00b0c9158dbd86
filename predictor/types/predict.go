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
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Measurement is a length in cm. It decodes from a json number or a string
// holding a json number, non-finite values are rejected.
type Measurement float64

// UnmarshalJSON implements json.Unmarshaler.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		// Strings are decoded with json number grammar, so hex, NaN and Inf never parse.
		number := bytes.TrimSpace([]byte(s))
		var v float64
		if bytes.Equal(number, []byte("null")) {
			return fmt.Errorf("value %q is not a valid number", s)
		}

		if err := json.Unmarshal(number, &v); err != nil {
			return fmt.Errorf("value %q is not a valid number", s)
		}

		return m.set(v, data)
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("value %s is not a valid number", data)
	}

	return m.set(v, data)
}

func (m *Measurement) set(v float64, data []byte) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("value %s is not a finite number", data)
	}

	*m = Measurement(v)
	return nil
}

type PredictRequest struct {
	SepalLength *Measurement `json:"sepal_length" binding:"required"`
	SepalWidth  *Measurement `json:"sepal_width" binding:"required"`
	PetalLength *Measurement `json:"petal_length" binding:"required"`
	PetalWidth  *Measurement `json:"petal_width" binding:"required"`
}

// Features returns a 1 x 4 matrix ordered as the dataset features.
func (r *PredictRequest) Features() *mat.Dense {
	return mat.NewDense(1, 4, []float64{
		float64(*r.SepalLength),
		float64(*r.SepalWidth),
		float64(*r.PetalLength),
		float64(*r.PetalWidth),
	})
}

type PredictResponse struct {
	PredictionCode   int    `json:"prediction_code"`
	PredictedSpecies string `json:"predicted_species"`
}

type RootResponse struct {
	Message string `json:"message"`
}
