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
	"math"
	"path/filepath"

	"github.com/iris-ml/iris/cmd/dependency/base"
	"github.com/iris-ml/iris/pkg/dfpath"
	"github.com/iris-ml/iris/pkg/types"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Training configuration.
	Training TrainingConfig `yaml:"training" mapstructure:"training"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`
}

type ServerConfig struct {
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

type TrainingConfig struct {
	// C is inverse of regularization strength.
	C float64 `yaml:"c" mapstructure:"c"`

	// MaxIterations caps optimizer iterations.
	MaxIterations int `yaml:"maxIterations" mapstructure:"maxIterations"`

	// GradientThreshold stops optimizer when gradient norm falls below it.
	GradientThreshold float64 `yaml:"gradientThreshold" mapstructure:"gradientThreshold"`

	// Progress renders a progress bar of optimizer iterations on stderr.
	Progress bool `yaml:"progress" mapstructure:"progress"`
}

type ModelConfig struct {
	// Path is output path of the model artifact.
	Path string `yaml:"path" mapstructure:"path"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Options: base.Options{
			PProfPort: -1,
		},
		Server: ServerConfig{
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Training: TrainingConfig{
			C:                 DefaultTrainingC,
			MaxIterations:     DefaultTrainingMaxIterations,
			GradientThreshold: DefaultTrainingGradientThreshold,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Training.C <= 0 || math.IsInf(cfg.Training.C, 0) || math.IsNaN(cfg.Training.C) {
		return errors.New("training requires parameter c")
	}

	if cfg.Training.MaxIterations <= 0 {
		return errors.New("training requires parameter maxIterations")
	}

	if cfg.Training.GradientThreshold < 0 || math.IsNaN(cfg.Training.GradientThreshold) {
		return errors.New("training requires parameter gradientThreshold")
	}

	if cfg.Server.DataDir == "" {
		return errors.New("server requires parameter dataDir")
	}

	if cfg.Model.Path == "" {
		return errors.New("model requires parameter path")
	}

	return nil
}

func (cfg *Config) Convert() error {
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
