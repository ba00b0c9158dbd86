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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iris-ml/iris/cmd/dependency"
	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/dfpath"
	"github.com/iris-ml/iris/pkg/types"
	"github.com/iris-ml/iris/predictor"
	"github.com/iris-ml/iris/predictor/config"
	"github.com/iris-ml/iris/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   types.PredictorName,
	Short: "the predictor of iris species classifier",
	Long: `Predictor is a long-running process which loads the trained model artifact once
and serves species predictions from flower measurements over http.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Convert config.
		if err := cfg.Convert(); err != nil {
			return err
		}

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Initialize dfpath.
		d, err := initDfpath(&cfg.Server)
		if err != nil {
			return err
		}
		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Server.LogMaxSize,
			MaxAge:     cfg.Server.LogMaxAge,
			MaxBackups: cfg.Server.LogMaxBackups}

		// Initialize logger.
		if err := logger.InitPredictor(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init predictor logger: %w", err)
		}

		return runPredictor()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default predictor config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	flags := rootCmd.Flags()
	flags.Int("port", cfg.Server.Port, "listen port of the rest server")
	flags.String("model-path", cfg.Model.Path, "path of the model artifact, default is model.gob under the data directory")
	dependency.BindFlags(rootCmd, map[string]string{
		"server.port": "port",
		"model.path":  "model-path",
	})
}

func initDfpath(cfg *config.ServerConfig) (dfpath.Dfpath, error) {
	options := []dfpath.Option{dfpath.WithDataDir(cfg.DataDir)}
	if cfg.LogDir != "" {
		options = append(options, dfpath.WithLogDir(cfg.LogDir))
	}

	return dfpath.New(options...)
}

func runPredictor() error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.PProfPort)
	defer ff()

	svr, err := predictor.New(cfg)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}
