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
	"net"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
)

type mockConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	ListenIP net.IP        `yaml:"listenIP"`
	Hosts    []string      `yaml:"hosts"`
	Port     int           `yaml:"port"`
}

func TestDependency_DecodeWithYAML(t *testing.T) {
	tests := []struct {
		name   string
		input  map[string]any
		expect func(t *testing.T, cfg *mockConfig, err error)
	}{
		{
			name: "decode duration, ip and slice",
			input: map[string]any{
				"timeout":  "30s",
				"listenIP": "127.0.0.1",
				"hosts":    "foo,bar",
				"port":     8000,
			},
			expect: func(t *testing.T, cfg *mockConfig, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(30*time.Second, cfg.Timeout)
				assert.True(cfg.ListenIP.Equal(net.ParseIP("127.0.0.1")))
				assert.Equal([]string{"foo", "bar"}, cfg.Hosts)
				assert.Equal(8000, cfg.Port)
			},
		},
		{
			name: "invalid duration",
			input: map[string]any{
				"timeout": "foo",
			},
			expect: func(t *testing.T, cfg *mockConfig, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &mockConfig{}
			dc := &mapstructure.DecoderConfig{Result: cfg}
			initDecoderConfig(dc)

			decoder, err := mapstructure.NewDecoder(dc)
			if err != nil {
				t.Fatal(err)
			}

			tc.expect(t, cfg, decoder.Decode(tc.input))
		})
	}
}

func TestDependency_InitMonitorDisabled(t *testing.T) {
	stop := InitMonitor(-1)
	assert.NotNil(t, stop)
	stop()
}
