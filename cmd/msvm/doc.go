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

// The msvm command line tool is a showcase for the package
// github.com/db47h/marksweep/vm. It runs a set of scenarios against fresh VM
// instances and checks the number of objects surviving each collection.
//
// Usage:
//
//	--config file
//		  load VM settings from YAML file
//	--debug
//		  print errors with stack traces
//	--dump
//		  dump the stack and heap after each scenario
//	--heap-limit int
//		  maximum number of live objects (0 for no limit)
//	--metrics
//		  print collector metrics upon exit
//	--scenario strings
//		  scenario to run (can be specified multiple times, default all)
//	--stack-size int
//		  execution stack capacity (default 256)
//	--threshold int
//		  object count that triggers the first collection (default 10)
//
// The glog flags (-v, -logtostderr, -log_dir, ...) are accepted as well. Each
// collection is logged at the Info level, use --logtostderr to see them.
//
// --config: settings are read from the file first, then overridden by any of
// --stack-size, --threshold and --heap-limit given on the command line:
//
//	stackSize: 64
//	threshold: 4
//
// --scenario: one of auto, collect, cycle, nested, preserve and stress.
//
// --metrics: the Prometheus metrics of all collections, in text exposition
// format.
//
// The exit status is 1 if any scenario fails.
package main
