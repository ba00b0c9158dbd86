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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iris-ml/iris/cmd/dependency"
	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/dfpath"
	"github.com/iris-ml/iris/pkg/types"
	"github.com/iris-ml/iris/trainer"
	"github.com/iris-ml/iris/trainer/config"
	"github.com/iris-ml/iris/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   types.TrainerName,
	Short: "the trainer of iris species classifier",
	Long: `Trainer is a run-once process which fits a multinomial logistic regression on the iris dataset,
evaluates it on the training set and writes the fitted model artifact for the predictor.`,
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

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

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
		if err := logger.InitTrainer(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init trainer logger: %w", err)
		}

		return runTrainer(ctx, cancel)
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
	// Initialize default trainer config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	flags := rootCmd.Flags()
	flags.String("model-path", cfg.Model.Path, "output path of the model artifact, default is model.gob under the data directory")
	flags.Bool("progress", cfg.Training.Progress, "render optimizer iterations on a progress bar")
	dependency.BindFlags(rootCmd, map[string]string{
		"model.path":        "model-path",
		"training.progress": "progress",
	})
}

func initDfpath(cfg *config.ServerConfig) (dfpath.Dfpath, error) {
	options := []dfpath.Option{dfpath.WithDataDir(cfg.DataDir)}
	if cfg.LogDir != "" {
		options = append(options, dfpath.WithLogDir(cfg.LogDir))
	}

	return dfpath.New(options...)
}

func runTrainer(ctx context.Context, cancel context.CancelFunc) error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.PProfPort)
	defer ff()

	dependency.SetupQuitSignalHandler(cancel)
	return trainer.New(cfg).Run(ctx)
}
