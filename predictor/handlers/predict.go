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
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/predictor/metrics"
	"github.com/iris-ml/iris/predictor/types"
)

// Predict classifies one flower from its four measurements.
func (h *Handlers) Predict(ctx *gin.Context) {
	log := logger.WithRequestID(ctx.GetString(types.RequestIDContextKey))

	var json types.PredictRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		var verrs validator.ValidationErrors
		if logger.IsDebug() && errors.As(err, &verrs) {
			for _, fe := range verrs {
				log.Debugf("field %s failed on %s", fe.Field(), fe.Tag())
			}
		}

		metrics.PredictionFailureCount.Inc()
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	codes, err := h.classifier.Predict(json.Features())
	if err != nil {
		metrics.PredictionFailureCount.Inc()
		ctx.Error(err) // nolint: errcheck
		return
	}

	if len(codes) != 1 {
		metrics.PredictionFailureCount.Inc()
		ctx.Error(fmt.Errorf("got %d predictions for 1 row", len(codes))) // nolint: errcheck
		return
	}

	label, err := h.table.Lookup(codes[0])
	if err != nil {
		metrics.PredictionFailureCount.Inc()
		ctx.Error(err) // nolint: errcheck
		return
	}

	metrics.PredictionCount.WithLabelValues(label).Inc()
	log.Debugf("predicted %s with code %d", label, codes[0])
	ctx.JSON(http.StatusOK, types.PredictResponse{
		PredictionCode:   codes[0],
		PredictedSpecies: label,
	})
}
