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
	goflag "flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/db47h/marksweep/config"
	"github.com/db47h/marksweep/metrics"
	"github.com/db47h/marksweep/vm"
)

var (
	configFile string
	stackSize  int
	threshold  int
	heapLimit  int
	names      []string
	dump       bool
	dumpStats  bool
	debug      bool
)

func addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configFile, "config", "", "load VM settings from YAML `file`")
	fs.IntVar(&stackSize, "stack-size", vm.DefaultStackSize, "execution stack capacity")
	fs.IntVar(&threshold, "threshold", vm.DefaultThreshold, "object count that triggers the first collection")
	fs.IntVar(&heapLimit, "heap-limit", 0, "maximum number of live objects (0 for no limit)")
	fs.StringSliceVar(&names, "scenario", nil, "scenario to run (can be specified multiple times, default all)")
	fs.BoolVar(&dump, "dump", false, "dump the stack and heap after each scenario")
	fs.BoolVar(&dumpStats, "metrics", false, "print collector metrics upon exit")
	fs.BoolVar(&debug, "debug", false, "print errors with stack traces")
}

// settings merges the configuration file with flags set on the command line.
func settings(fs *pflag.FlagSet) (*config.Config, error) {
	c := config.Default()
	if configFile != "" {
		var err error
		if c, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if fs.Changed("stack-size") {
		c.StackSize = stackSize
	}
	if fs.Changed("threshold") {
		c.Threshold = threshold
	}
	if fs.Changed("heap-limit") {
		c.HeapLimit = heapLimit
	}
	return c, c.Validate()
}

func runScenario(name string, c *config.Config, rec *metrics.Recorder, w *bufio.Writer) (err error) {
	s, ok := scenarios[name]
	if !ok {
		return errors.Errorf("unknown scenario %q", name)
	}
	glog.Infof("scenario %s: %s", name, s.desc)
	opts := append(c.Options(),
		rec.Option(),
		vm.OnCollect(func(st vm.Stats) {
			var b strings.Builder
			vm.DumpStats(&b, st)
			glog.Infof("%s: %s", name, strings.TrimSuffix(b.String(), "\n"))
		}))
	i, err := vm.New(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if e := i.Close(); err == nil {
			err = e
		}
	}()
	if err = s.run(i); err != nil {
		return errors.Wrap(err, name)
	}
	if dump {
		fmt.Fprintf(w, "%s:\n", name)
		if err = i.Dump(w); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	addFlags(pflag.CommandLine)
	pflag.Parse()
	// glog complains if the go flags were never parsed
	goflag.CommandLine.Parse(nil)
	defer glog.Flush()

	c, err := settings(pflag.CommandLine)
	if err != nil {
		glog.Exitf("%v", err)
	}
	if len(names) == 0 {
		names = scenarioNames()
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		glog.Exitf("%v", err)
	}

	stdout := bufio.NewWriter(os.Stdout)
	failed := 0
	for _, name := range names {
		if err := runScenario(name, c, rec, stdout); err != nil {
			failed++
			if debug {
				glog.Errorf("%+v", err)
			} else {
				glog.Errorf("%v", err)
			}
			fmt.Fprintf(stdout, "FAIL %s\n", name)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s\n", name)
	}
	if dumpStats {
		if err := metrics.WriteText(stdout, reg); err != nil {
			glog.Errorf("%v", err)
		}
	}
	stdout.Flush()
	if failed > 0 {
		glog.Flush()
		os.Exit(1)
	}
}
