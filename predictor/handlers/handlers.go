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
package handlers

import (
	"github.com/iris-ml/iris/pkg/models"
	"github.com/iris-ml/iris/pkg/species"
)

// Handlers serve predictions with an immutable classifier and label table.
type Handlers struct {
	classifier models.Classifier
	table      *species.Table
}

func New(classifier models.Classifier, table *species.Table) *Handlers {
	return &Handlers{classifier: classifier, table: table}
}
