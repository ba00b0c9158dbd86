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
package router

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/predictor/config"
	"github.com/iris-ml/iris/predictor/handlers"
	"github.com/iris-ml/iris/predictor/middlewares"
)

const (
	PrometheusSubsystemName = "iris_predictor_http"
)

func Init(cfg *config.Config, h *handlers.Handlers) *gin.Engine {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes query string.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.Request.URL.Path
	}
	p.Use(r)

	// Middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	if cfg.Server.EnableCORS {
		r.Use(middlewares.CORS())
	}

	// Router
	r.GET("/", h.GetRoot)
	r.POST("/predict", h.Predict)

	// Health Check.
	r.GET("/healthy", h.GetHealth)

	return r
}
