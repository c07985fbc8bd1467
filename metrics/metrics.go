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

// Package metrics exports collection statistics of a VM as Prometheus metrics.
package metrics

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/db47h/marksweep/vm"
)

// Namespace prefixes every metric name.
const Namespace = "marksweep"

// Recorder accumulates vm.Stats into Prometheus collectors.
type Recorder struct {
	collections prometheus.Counter
	collected   prometheus.Counter
	objects     prometheus.Gauge
	threshold   prometheus.Gauge
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		collections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "collections_total",
			Help:      "Number of completed collection cycles.",
		}),
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "objects_collected_total",
			Help:      "Number of objects freed by the collector.",
		}),
		objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_objects",
			Help:      "Objects left in the heap after the last collection.",
		}),
		threshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_threshold",
			Help:      "Object count that triggers the next collection.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "collection_duration_seconds",
			Help:      "Time spent marking and sweeping.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{r.collections, r.collected, r.objects, r.threshold, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return r, nil
}

// Observe records a collection cycle. It has the signature of a
// vm.CollectHandler.
func (r *Recorder) Observe(s vm.Stats) {
	r.collections.Inc()
	r.collected.Add(float64(s.Collected))
	r.objects.Set(float64(s.Remaining))
	r.threshold.Set(float64(s.Threshold))
	r.duration.Observe(s.Duration.Seconds())
}

// Option returns a vm.Option that feeds every collection of the VM to r.
func (r *Recorder) Option() vm.Option {
	return vm.OnCollect(r.Observe)
}

// WriteText writes all metrics gathered by g to w in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "write %s", mf.GetName())
		}
	}
	return nil
}
