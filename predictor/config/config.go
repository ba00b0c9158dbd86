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
package config

import (
	"errors"
	"net"
	"path/filepath"
	"time"

	"github.com/iris-ml/iris/cmd/dependency/base"
	"github.com/iris-ml/iris/pkg/dfpath"
	"github.com/iris-ml/iris/pkg/types"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ServerConfig struct {
	// ListenIP is listen ip, like: 0.0.0.0, 192.168.0.1.
	ListenIP net.IP `yaml:"listenIP" mapstructure:"listenIP"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// EnableCORS allows cross origin requests from any origin.
	EnableCORS bool `yaml:"enableCORS" mapstructure:"enableCORS"`

	// ShutdownTimeout is timeout of graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Server storage data directory, it defaults to the directory of model path.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`
}

type ModelConfig struct {
	// Path is path of the model artifact.
	Path string `yaml:"path" mapstructure:"path"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Options: base.Options{
			PProfPort: -1,
		},
		Server: ServerConfig{
			Port:            DefaultServerPort,
			ShutdownTimeout: DefaultServerShutdownTimeout,
			LogMaxSize:      DefaultLogRotateMaxSize,
			LogMaxAge:       DefaultLogRotateMaxAge,
			LogMaxBackups:   DefaultLogRotateMaxBackups,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.ListenIP == nil {
		return errors.New("server requires parameter listenIP")
	}

	if cfg.Server.Port <= 0 {
		return errors.New("server requires parameter port")
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return errors.New("server requires parameter shutdownTimeout")
	}

	if cfg.Server.DataDir == "" {
		return errors.New("server requires parameter dataDir")
	}

	if cfg.Model.Path == "" {
		return errors.New("model requires parameter path")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics requires parameter addr")
		}
	}

	return nil
}

func (cfg *Config) Convert() error {
	if cfg.Server.ListenIP == nil {
		cfg.Server.ListenIP = net.IPv4zero
	}

	if cfg.Server.DataDir == "" {
		if cfg.Model.Path != "" {
			cfg.Server.DataDir = filepath.Dir(cfg.Model.Path)
		} else {
			cfg.Server.DataDir = dfpath.DefaultDataDir
		}
	}

	if cfg.Model.Path == "" {
		cfg.Model.Path = filepath.Join(cfg.Server.DataDir, types.DefaultModelFileName)
	}

	return nil
}
