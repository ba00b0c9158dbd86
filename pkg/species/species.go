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

package species

import (
	"errors"
	"fmt"
)

const (
	// Setosa is the label of class code 0.
	Setosa = "setosa"

	// Versicolor is the label of class code 1.
	Versicolor = "versicolor"

	// Virginica is the label of class code 2.
	Virginica = "virginica"
)

var (
	// ErrUnknownCode is returned when a class code has no label in the table.
	ErrUnknownCode = errors.New("unknown class code")

	// ErrUnknownLabel is returned when a label is not present in the table.
	ErrUnknownLabel = errors.New("unknown class label")
)

// Table maps class codes to species labels. A Table is immutable after construction
// and safe for concurrent use.
type Table struct {
	labels []string
}

// Default returns the iris label table.
func Default() *Table {
	return &Table{labels: []string{Setosa, Versicolor, Virginica}}
}

// Lookup returns the label of the class code.
func (t *Table) Lookup(code int) (string, error) {
	if code < 0 || code >= len(t.labels) {
		return "", fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}

	return t.labels[code], nil
}

// Code returns the class code of the label.
func (t *Table) Code(label string) (int, error) {
	for code, l := range t.labels {
		if l == label {
			return code, nil
		}
	}

	return -1, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}

// Labels returns a copy of the labels ordered by class code.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.labels))
	copy(labels, t.labels)
	return labels
}

// Equal reports whether labels match the table in count and order.
func (t *Table) Equal(labels []string) bool {
	if len(labels) != len(t.labels) {
		return false
	}

	for i, label := range labels {
		if t.labels[i] != label {
			return false
		}
	}

	return true
}
