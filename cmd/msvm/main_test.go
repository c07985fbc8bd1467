// This file is part of marksweep - https://github.com/db47h/marksweep
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/marksweep/config"
	"github.com/db47h/marksweep/metrics"
	"github.com/db47h/marksweep/vm"
)

func TestScenarios(t *testing.T) {
	for _, c := range []*config.Config{
		config.Default(),
		{StackSize: 8, Threshold: 1},
		{StackSize: 8, Threshold: 3, HeapLimit: 16},
	} {
		rec, err := metrics.NewRecorder(prometheus.NewRegistry())
		require.NoError(t, err)
		var b bytes.Buffer
		w := bufio.NewWriter(&b)
		for _, name := range scenarioNames() {
			assert.NoError(t, runScenario(name, c, rec, w), "%s with %+v", name, c)
		}
	}
}

func TestRunScenario_unknown(t *testing.T) {
	rec, err := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)
	var b bytes.Buffer
	assert.Error(t, runScenario("nope", config.Default(), rec, bufio.NewWriter(&b)))
}

func TestRunScenario_overflow(t *testing.T) {
	rec, err := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)
	var b bytes.Buffer
	err = runScenario("nested", &config.Config{StackSize: 2, Threshold: 10}, rec, bufio.NewWriter(&b))
	assert.Error(t, err)
}

func TestRunScenario_heapLimit(t *testing.T) {
	rec, err := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)
	var b bytes.Buffer
	c := &config.Config{StackSize: vm.DefaultStackSize, Threshold: vm.DefaultThreshold, HeapLimit: 5}
	assert.NoError(t, runScenario("stress", c, rec, bufio.NewWriter(&b)))
}

func TestSettings(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "vm.yaml")
	require.NoError(t, os.WriteFile(name, []byte("stackSize: 12\nthreshold: 3\n"), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", name, "--threshold", "5"}))
	defer func() { configFile = "" }()

	c, err := settings(fs)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{StackSize: 12, Threshold: 5}, c)

	require.NoError(t, fs.Parse([]string{"--stack-size", "0"}))
	_, err = settings(fs)
	assert.Error(t, err)
}
