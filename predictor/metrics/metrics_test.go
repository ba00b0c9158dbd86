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
package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iris-ml/iris/predictor/config"
)

func TestMetrics_New(t *testing.T) {
	assert := assert.New(t)
	svr := New(&config.MetricsConfig{Enable: true, Addr: ":8001"})
	assert.Equal(":8001", svr.Addr)

	PredictionCount.WithLabelValues("setosa").Inc()
	PredictionFailureCount.Inc()

	w := httptest.NewRecorder()
	svr.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(strings.Contains(body, `iris_predictor_prediction_total{species="setosa"}`))
	assert.True(strings.Contains(body, "iris_predictor_prediction_failure_total"))
	assert.True(strings.Contains(body, "iris_predictor_version"))
}
