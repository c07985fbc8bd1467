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

// Package config loads VM settings from YAML files.
//
// A configuration file looks like:
//
//	stackSize: 256
//	threshold: 10
//	heapLimit: 0
//
// Missing keys keep their default value.
package config

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/db47h/marksweep/vm"
)

// Config holds the settings of a VM instance.
type Config struct {
	StackSize int `json:"stackSize"`
	Threshold int `json:"threshold"`
	HeapLimit int `json:"heapLimit,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		StackSize: vm.DefaultStackSize,
		Threshold: vm.DefaultThreshold,
	}
}

// Parse decodes YAML data over the default configuration and validates the
// result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses the configuration file fileName.
func Load(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return c, nil
}

// Validate checks that all settings are in range.
func (c *Config) Validate() error {
	if c.StackSize <= 0 {
		return errors.Errorf("stackSize must be positive, got %d", c.StackSize)
	}
	if c.Threshold <= 0 {
		return errors.Errorf("threshold must be positive, got %d", c.Threshold)
	}
	if c.HeapLimit < 0 {
		return errors.Errorf("heapLimit must not be negative, got %d", c.HeapLimit)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Options converts the configuration to VM options.
func (c *Config) Options() []vm.Option {
	return []vm.Option{
		vm.StackSize(c.StackSize),
		vm.Threshold(c.Threshold),
		vm.HeapLimit(c.HeapLimit),
	}
}
