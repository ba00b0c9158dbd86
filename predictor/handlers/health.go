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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iris-ml/iris/predictor/types"
)

// GetRoot reports the service is running.
func (h *Handlers) GetRoot(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.RootResponse{Message: types.WelcomeMessage})
}

// GetHealth reports liveness.
func (h *Handlers) GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, "OK")
}
