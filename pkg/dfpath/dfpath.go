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
package dfpath

import (
	"io/fs"
	"os"

	"github.com/hashicorp/go-multierror"
)

var (
	DefaultWorkHome     = "."
	DefaultWorkHomeMode = os.FileMode(0755)
	DefaultConfigDir    = "/etc/iris"
	DefaultLogDir       = "log"
	DefaultDataDir      = "app"
	DefaultDataDirMode  = os.FileMode(0755)
)

// Dfpath is the interface used for init project path.
type Dfpath interface {
	WorkHome() string
	WorkHomeMode() fs.FileMode
	LogDir() string
	DataDir() string
	DataDirMode() fs.FileMode
}

// dfpath provides init project path function.
type dfpath struct {
	workHome     string
	workHomeMode fs.FileMode
	logDir       string
	dataDir      string
	dataDirMode  fs.FileMode
}

// Option is a functional option for configuring the dfpath.
type Option func(d *dfpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *dfpath) {
		d.workHome = dir
	}
}

// WithWorkHomeMode sets the workHome directory mode
func WithWorkHomeMode(mode fs.FileMode) Option {
	return func(d *dfpath) {
		d.workHomeMode = mode
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *dfpath) {
		d.logDir = dir
	}
}

// WithDataDir set the directory of model artifacts.
func WithDataDir(dir string) Option {
	return func(d *dfpath) {
		d.dataDir = dir
	}
}

// WithDataDirMode sets the dataDir mode
func WithDataDirMode(mode fs.FileMode) Option {
	return func(d *dfpath) {
		d.dataDirMode = mode
	}
}

// New returns a new dfpath interface and creates its directories.
func New(options ...Option) (Dfpath, error) {
	d := &dfpath{
		workHome:     DefaultWorkHome,
		workHomeMode: DefaultWorkHomeMode,
		logDir:       DefaultLogDir,
		dataDir:      DefaultDataDir,
		dataDirMode:  DefaultDataDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	var errs *multierror.Error

	// Create workhome directory.
	if err := os.MkdirAll(d.workHome, d.workHomeMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create log directory.
	if err := os.MkdirAll(d.logDir, fs.FileMode(0755)); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create data directory.
	if err := os.MkdirAll(d.dataDir, d.dataDirMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *dfpath) WorkHome() string {
	return d.workHome
}

func (d *dfpath) WorkHomeMode() fs.FileMode {
	return d.workHomeMode
}

func (d *dfpath) LogDir() string {
	return d.logDir
}

func (d *dfpath) DataDir() string {
	return d.dataDir
}

func (d *dfpath) DataDirMode() fs.FileMode {
	return d.dataDirMode
}
