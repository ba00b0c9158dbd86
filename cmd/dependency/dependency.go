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
package dependency

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mitchellh/mapstructure"
	"github.com/phayes/freeport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	logger "github.com/iris-ml/iris/internal/dflog"
	"github.com/iris-ml/iris/pkg/dfpath"
)

// InitCommandAndConfig initializes flags binding and common sub cmds.
// config is a pointer to configuration struct.
func InitCommandAndConfig(cmd *cobra.Command, useConfigFile bool, config any) {
	rootName := cmd.Root().Name()

	// Add common cmds only on root cmd.
	if !cmd.HasParent() {
		cmd.AddCommand(VersionCmd)
	}

	flags := cmd.PersistentFlags()
	flags.Bool("console", false, "whether logger output records to the stdout")
	flags.Bool("verbose", false, "whether logger use debug level")
	flags.Int("pprof-port", -1, "listen port for pprof and statsview, 0 represents random port")
	if useConfigFile {
		flags.String("config", "", fmt.Sprintf("the path of configuration file with yaml extension name, default is %s, it can also be set by env var: %s",
			filepath.Join(dfpath.DefaultConfigDir, rootName+".yaml"), strings.ToUpper(rootName+"_config")))
	}

	// Bind common flags.
	for key, flag := range map[string]string{
		"console":   "console",
		"verbose":   "verbose",
		"pprofPort": "pprof-port",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Errorf("bind flag %s to viper: %w", flag, err))
		}
	}

	// Config for binding env.
	viper.SetEnvPrefix(rootName)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if useConfigFile {
		if err := viper.BindPFlag("config", flags.Lookup("config")); err != nil {
			panic(fmt.Errorf("bind flag config to viper: %w", err))
		}

		cmd.AddCommand(newConfigCommand(config))
	}

	// Initialize cobra.Command.
	cobra.OnInitialize(func() {
		if err := InitConfig(useConfigFile, rootName, config); err != nil {
			logger.Fatalf("init config: %s", err.Error())
		}
	})
}

// BindFlags binds flags of cmd to config keys of viper.
func BindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Errorf("bind flag %s to viper: %w", flag, err))
		}
	}
}

// InitConfig reads config file once when it is enabled and decodes viper settings into config.
func InitConfig(useConfigFile bool, name string, config any) error {
	if useConfigFile {
		cfgFile := viper.GetString("config")
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(dfpath.DefaultConfigDir)
			viper.SetConfigName(name)
			viper.SetConfigType("yaml")
		}

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) || cfgFile != "" {
				return fmt.Errorf("viper read config: %w", err)
			}
		}
	}

	if err := viper.Unmarshal(config, initDecoderConfig); err != nil {
		return fmt.Errorf("unmarshal config to struct: %w", err)
	}

	return nil
}

func initDecoderConfig(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		decodeWithYAML(
			reflect.TypeOf(time.Second),
			reflect.TypeOf(net.IP{}),
		),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// decodeWithYAML returns a mapstructure.DecodeHookFunc to decode the given
// types by unmarshalling from yaml text.
func decodeWithYAML(types ...reflect.Type) mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data any) (any, error) {
		for _, typ := range types {
			if t == typ {
				b, err := yaml.Marshal(data)
				if err != nil {
					return nil, err
				}

				v := reflect.New(t)
				if err := yaml.Unmarshal(b, v.Interface()); err != nil {
					return nil, err
				}

				return v.Elem().Interface(), nil
			}
		}

		return data, nil
	}
}

// SetupQuitSignalHandler calls handler once on SIGINT or SIGTERM.
func SetupQuitSignalHandler(handler func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		logger.Warnf("receive %s signal", sig)
		handler()
	}()
}

// InitMonitor starts pprof and statsview on localhost, the returned func stops them.
func InitMonitor(pprofPort int) func() {
	if pprofPort < 0 {
		return func() {}
	}

	if pprofPort == 0 {
		port, err := freeport.GetFreePort()
		if err != nil {
			logger.Warnf("get free port for pprof: %s", err.Error())
			return func() {}
		}
		pprofPort = port
	}

	debugAddr := fmt.Sprintf("localhost:%d", pprofPort)
	viewer.SetConfiguration(viewer.WithAddr(debugAddr))
	vm := statsview.New()

	go func() {
		logger.With("pprof", fmt.Sprintf("http://%s/debug/pprof", debugAddr),
			"statsview", fmt.Sprintf("http://%s/debug/statsview", debugAddr)).
			Infof("enable pprof at %s", debugAddr)

		if err := vm.Start(); err != nil {
			logger.Warnf("serve pprof error: %s", err.Error())
		}
	}()

	return func() {
		vm.Stop()
	}
}
