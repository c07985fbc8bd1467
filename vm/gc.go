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

package vm

import (
	"time"

	"github.com/golang/glog"
)

// Stats describes a single collection cycle.
type Stats struct {
	Cycle     uint64        // 1-based cycle number
	Roots     int           // stack depth when the cycle started
	Before    int           // registered objects before the cycle
	Collected int           // objects freed by the cycle
	Remaining int           // objects surviving the cycle
	Threshold int           // object count that will trigger the next cycle
	Duration  time.Duration // time spent marking and sweeping
}

// CollectHandler is the function prototype for collection event handlers.
// Handlers run synchronously at the end of each cycle and must not call back
// into the Instance.
type CollectHandler func(s Stats)

// mark flags every object reachable from roots. Objects are marked when pushed
// on the work list, so each one is pushed at most once and the work list never
// grows past the number of live objects.
func (h *heap) mark(roots []Ref, work []uint32) []uint32 {
	work = work[:0]
	push := func(r Ref) {
		// Refs held by the stack and by pairs are never stale: only sweep frees
		// objects, and it only frees what mark could not reach.
		s := &h.slots[r.slot-1]
		if s.marked {
			return
		}
		s.marked = true
		if s.obj.Kind == KindPair {
			work = append(work, r.slot-1)
		}
	}
	for _, r := range roots {
		push(r)
	}
	for len(work) > 0 {
		idx := work[len(work)-1]
		work = work[:len(work)-1]
		obj := &h.slots[idx].obj
		if !obj.Head.IsNil() {
			push(obj.Head)
		}
		if !obj.Tail.IsNil() {
			push(obj.Tail)
		}
	}
	return work
}

// sweep frees every unmarked object and clears the mark of the survivors. It
// returns the number of freed objects.
func (h *heap) sweep() int {
	freed := 0
	link := &h.first
	for *link != 0 {
		idx := *link - 1
		s := &h.slots[idx]
		if !s.marked {
			*link = s.next
			h.release(idx)
			freed++
		} else {
			s.marked = false
			link = &s.next
		}
	}
	return freed
}

// collect runs a full mark and sweep cycle with the current stack as roots
// and updates the collection threshold.
func (i *Instance) collect() Stats {
	start := time.Now()
	i.busy = true
	defer func() { i.busy = false }()
	roots := i.stack.roots()
	before := i.heap.count

	i.work = i.heap.mark(roots, i.work)
	freed := i.heap.sweep()

	if i.heap.count == 0 {
		i.threshold = i.initThreshold
	} else {
		i.threshold = i.heap.count * 2
	}
	i.cycles++
	st := Stats{
		Cycle:     i.cycles,
		Roots:     len(roots),
		Before:    before,
		Collected: freed,
		Remaining: i.heap.count,
		Threshold: i.threshold,
		Duration:  time.Since(start),
	}
	i.last = st
	glog.V(2).Infof("gc #%d: collected %d, remaining %d, next at %d (%v)", st.Cycle, st.Collected, st.Remaining, st.Threshold, st.Duration)
	for _, h := range i.onCollect {
		h(st)
	}
	return st
}
