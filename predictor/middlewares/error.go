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
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/models"
	"github.com/iris-ml/iris/pkg/species"
	"github.com/iris-ml/iris/predictor/types"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"errors,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		log := logger.WithRequestID(c.GetString(types.RequestIDContextKey))

		// Gin error handler
		if err.Type == gin.ErrorTypeBind {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		// Model error handler
		switch {
		case errors.Is(err.Err, species.ErrUnknownCode):
			log.Errorf("model returned a code out of label table: %s", err.Error())
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: http.StatusText(http.StatusInternalServerError),
				Error:   "prediction code has no species label",
			})
			return
		case errors.Is(err.Err, models.ErrFeatureMismatch), errors.Is(err.Err, models.ErrNotFitted):
			log.Errorf("model can not predict: %s", err.Error())
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: http.StatusText(http.StatusInternalServerError),
			})
			return
		}

		// Unknown error
		log.Errorf("unknown error: %s", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
