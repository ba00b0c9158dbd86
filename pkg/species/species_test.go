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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Lookup(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		expect func(t *testing.T, label string, err error)
	}{
		{
			name: "setosa",
			code: 0,
			expect: func(t *testing.T, label string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(Setosa, label)
			},
		},
		{
			name: "versicolor",
			code: 1,
			expect: func(t *testing.T, label string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(Versicolor, label)
			},
		},
		{
			name: "virginica",
			code: 2,
			expect: func(t *testing.T, label string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(Virginica, label)
			},
		},
		{
			name: "code out of range",
			code: 3,
			expect: func(t *testing.T, label string, err error) {
				assert := assert.New(t)
				assert.True(errors.Is(err, ErrUnknownCode))
				assert.Empty(label)
			},
		},
		{
			name: "negative code",
			code: -1,
			expect: func(t *testing.T, label string, err error) {
				assert := assert.New(t)
				assert.True(errors.Is(err, ErrUnknownCode))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			label, err := Default().Lookup(tc.code)
			tc.expect(t, label, err)
		})
	}
}

func TestTable_Code(t *testing.T) {
	assert := assert.New(t)
	table := Default()

	code, err := table.Code(Virginica)
	assert.NoError(err)
	assert.Equal(2, code)

	_, err = table.Code("rosa")
	assert.True(errors.Is(err, ErrUnknownLabel))
}

func TestTable_Immutable(t *testing.T) {
	assert := assert.New(t)
	table := Default()

	copied := table.Labels()
	copied[0] = "rosa"

	assert.True(table.Equal([]string{Setosa, Versicolor, Virginica}))
	assert.False(table.Equal([]string{Setosa, Versicolor}))
	assert.False(table.Equal([]string{Virginica, Versicolor, Setosa}))

	label, err := table.Lookup(0)
	assert.NoError(err)
	assert.Equal(Setosa, label)
}
