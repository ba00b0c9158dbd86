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
package predictor

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/models"
	"github.com/iris-ml/iris/pkg/species"
	"github.com/iris-ml/iris/predictor/config"
	"github.com/iris-ml/iris/predictor/handlers"
	"github.com/iris-ml/iris/predictor/metrics"
	"github.com/iris-ml/iris/predictor/router"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Classifier loaded from the model artifact.
	classifier models.Classifier

	// REST server.
	restServer *http.Server

	// Metrics server.
	metricsServer *http.Server
}

// New loads the model artifact and builds the servers. The model labels must
// match the species table in count and order.
func New(cfg *config.Config) (*Server, error) {
	s := &Server{config: cfg}

	// Initialize classifier.
	lr, err := models.Load(cfg.Model.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", cfg.Model.Path)
	}

	table := species.Default()
	if !table.Equal(lr.Labels()) {
		return nil, errors.Errorf("model labels %v do not match species table %v", lr.Labels(), table.Labels())
	}
	s.classifier = lr
	logger.WithModel(cfg.Model.Path).Infof("model loaded with %d classes after %d iterations", len(lr.Labels()), lr.Iterations())

	// Initialize REST server.
	r := router.Init(cfg, handlers.New(s.classifier, table))
	s.restServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.ListenIP.String(), strconv.Itoa(cfg.Server.Port)),
		Handler: r,
	}

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// Serve blocks until both servers are closed.
func (s *Server) Serve() error {
	g := errgroup.Group{}

	// Started metrics server.
	if s.metricsServer != nil {
		g.Go(func() error {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil {
				if err == http.ErrServerClosed {
					return nil
				}

				return errors.Wrap(err, "metrics server closed unexpect")
			}

			return nil
		})
	}

	// Started REST server.
	g.Go(func() error {
		logger.Infof("started rest server at %s", s.restServer.Addr)
		if err := s.restServer.ListenAndServe(); err != nil {
			if err == http.ErrServerClosed {
				return nil
			}

			return errors.Wrap(err, "rest server closed unexpect")
		}

		return nil
	})

	return g.Wait()
}

// Stop gracefully shuts down the servers within the shutdown timeout.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		} else {
			logger.Info("metrics server closed under request")
		}
	}

	// Stop REST server.
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %s", err.Error())
	} else {
		logger.Info("rest server closed under request")
	}
}
