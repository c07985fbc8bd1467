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

// slot is an arena cell. A slot is either registered (live is true, linked in
// the registry through next) or on the free list.
type slot struct {
	obj    Object
	gen    uint32
	next   uint32 // slot index + 1 of the next registered object, 0 at the end
	live   bool
	marked bool
}

// heap is the registry of all allocated objects. It owns the storage of every
// object; Refs held by the stack or by pairs do not.
type heap struct {
	slots []slot
	free  []uint32 // indices of released slots
	first uint32   // slot index + 1 of the most recently allocated object
	count int
}

// register stores obj in a fresh slot and links it at the head of the
// registry.
func (h *heap) register(obj Object) Ref {
	var idx uint32
	if n := len(h.free); n > 0 {
		idx = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		h.slots = append(h.slots, slot{})
		idx = uint32(len(h.slots) - 1)
	}
	s := &h.slots[idx]
	s.obj = obj
	s.live = true
	s.marked = false
	s.next = h.first
	h.first = idx + 1
	h.count++
	return Ref{slot: idx + 1, gen: s.gen}
}

// release frees a slot that has already been unlinked from the registry.
// Bumping the generation invalidates every outstanding Ref to it.
func (h *heap) release(idx uint32) {
	s := &h.slots[idx]
	s.obj = Object{}
	s.live = false
	s.marked = false
	s.next = 0
	s.gen++
	h.free = append(h.free, idx)
	h.count--
}

// lookup returns the slot referenced by r, or nil if r is Nil or stale.
func (h *heap) lookup(r Ref) *slot {
	if r.slot == 0 || int(r.slot) > len(h.slots) {
		return nil
	}
	s := &h.slots[r.slot-1]
	if !s.live || s.gen != r.gen {
		return nil
	}
	return s
}

// ref returns the current Ref for slot index idx.
func (h *heap) ref(idx uint32) Ref {
	return Ref{slot: idx + 1, gen: h.slots[idx].gen}
}

// each walks the registry from the most recently allocated object.
func (h *heap) each(fn func(Ref, Object) bool) {
	for n := h.first; n != 0; n = h.slots[n-1].next {
		if !fn(h.ref(n-1), h.slots[n-1].obj) {
			return
		}
	}
}
