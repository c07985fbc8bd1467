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
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// DefaultStackSize is the default capacity of the execution stack.
	DefaultStackSize = 256
	// DefaultThreshold is the default number of objects that triggers the
	// first collection. The threshold falls back to it whenever a
	// collection leaves no survivors.
	DefaultThreshold = 10
)

// Errors returned by Instance methods. They are wrapped with some context, use
// errors.Is to test for them.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrOutOfMemory    = errors.New("out of memory")
	ErrInvalidRef     = errors.New("invalid object reference")
	ErrKind           = errors.New("wrong object kind")
	ErrClosed         = errors.New("vm closed")
	ErrBusy           = errors.New("collection in progress")
)

// Instance is a VM heap together with its execution stack. An Instance is not
// safe for concurrent use.
type Instance struct {
	stack         stack
	heap          heap
	threshold     int
	initThreshold int
	limit         int
	work          []uint32
	cycles        uint64
	last          Stats
	onCollect     []CollectHandler
	busy          bool
	closed        bool
}

// Option interface
type Option func(*Instance) error

// StackSize sets the execution stack capacity. It will not erase the stack,
// but fails if the current depth does not fit. The default is 256 slots.
func StackSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid stack size %d", size)
		}
		return i.stack.resize(size)
	}
}

// Threshold sets the object count that triggers the first automatic
// collection. It is also the threshold used after a collection that left no
// live objects. The default is 10.
func Threshold(n int) Option {
	return func(i *Instance) error {
		if n <= 0 {
			return errors.Errorf("invalid collection threshold %d", n)
		}
		i.initThreshold = n
		if i.cycles == 0 || i.heap.count == 0 {
			i.threshold = n
		}
		return nil
	}
}

// HeapLimit caps the number of objects the heap can hold. Reaching the limit
// forces a collection regardless of the threshold; allocations that would
// still exceed it fail with ErrOutOfMemory. A limit of 0, the default, means
// no limit.
func HeapLimit(n int) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("invalid heap limit %d", n)
		}
		i.limit = n
		return nil
	}
}

// OnCollect adds a handler called at the end of every collection cycle.
func OnCollect(h CollectHandler) Option {
	return func(i *Instance) error {
		if h != nil {
			i.onCollect = append(i.onCollect, h)
		}
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	if err := i.check(); err != nil {
		return err
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance with an empty stack and heap.
//
// Options will be set by calling SetOptions.
func New(opts ...Option) (*Instance, error) {
	i := &Instance{
		stack:         newStack(DefaultStackSize),
		threshold:     DefaultThreshold,
		initThreshold: DefaultThreshold,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Instance) check() error {
	if i.closed {
		return ErrClosed
	}
	if i.busy {
		return ErrBusy
	}
	return nil
}

// alloc registers obj, collecting first if the heap has reached the
// threshold or the heap limit. The new object is not yet visible to the
// collector.
func (i *Instance) alloc(obj Object) (Ref, error) {
	collected := false
	if i.heap.count >= i.threshold {
		glog.V(3).Infof("threshold %d reached, collecting before %v allocation", i.threshold, obj.Kind)
		i.collect()
		collected = true
	}
	if i.limit > 0 && i.heap.count >= i.limit {
		if !collected {
			glog.V(3).Infof("heap limit %d reached, collecting before %v allocation", i.limit, obj.Kind)
			i.collect()
		}
		if i.heap.count >= i.limit {
			return Nil, errors.Wrapf(ErrOutOfMemory, "allocate %v: %d objects live, limit %d", obj.Kind, i.heap.count, i.limit)
		}
	}
	return i.heap.register(obj), nil
}

// PushInt allocates an integer object and pushes it on the stack.
func (i *Instance) PushInt(v int32) (Ref, error) {
	if err := i.check(); err != nil {
		return Nil, err
	}
	if i.stack.sp >= len(i.stack.data) {
		return Nil, errors.Wrapf(ErrStackOverflow, "push int %d: depth %d", v, i.stack.sp)
	}
	r, err := i.alloc(Object{Kind: KindInt, Value: v})
	if err != nil {
		return Nil, err
	}
	i.stack.push(r)
	return r, nil
}

// PushPair allocates a pair, pops its tail then its head from the stack, and
// pushes the pair. That is, the value pushed last becomes the tail. The
// operands stay on the stack, and are therefore protected, during any
// collection triggered by the allocation.
func (i *Instance) PushPair() (Ref, error) {
	if err := i.check(); err != nil {
		return Nil, err
	}
	if i.stack.sp < 2 {
		return Nil, errors.Wrapf(ErrStackUnderflow, "push pair: depth %d", i.stack.sp)
	}
	r, err := i.alloc(Object{Kind: KindPair})
	if err != nil {
		return Nil, err
	}
	tail, _ := i.stack.pop()
	head, _ := i.stack.pop()
	obj := &i.heap.slots[r.slot-1].obj
	obj.Head, obj.Tail = head, tail
	i.stack.push(r)
	return r, nil
}

// Push pushes an existing object on the stack.
func (i *Instance) Push(r Ref) error {
	if err := i.check(); err != nil {
		return err
	}
	if i.heap.lookup(r) == nil {
		return errors.Wrapf(ErrInvalidRef, "push %v", r)
	}
	return i.stack.push(r)
}

// Pop removes the object on top of the stack and returns a reference to it.
// The object becomes garbage unless still reachable from the stack; the
// returned Ref stops resolving once the object is collected.
func (i *Instance) Pop() (Ref, error) {
	if err := i.check(); err != nil {
		return Nil, err
	}
	return i.stack.pop()
}

// Peek returns the object on top of the stack without removing it.
func (i *Instance) Peek() (Ref, error) {
	if err := i.check(); err != nil {
		return Nil, err
	}
	if i.stack.sp == 0 {
		return Nil, errors.Wrap(ErrStackUnderflow, "peek")
	}
	return i.stack.data[i.stack.sp-1], nil
}

// Depth returns the stack depth.
func (i *Instance) Depth() int {
	return i.stack.sp
}

// Data returns a copy of the stack, bottom first.
func (i *Instance) Data() []Ref {
	return append([]Ref(nil), i.stack.roots()...)
}

// Collect runs a full collection cycle using the stack as the root set.
func (i *Instance) Collect() (Stats, error) {
	if err := i.check(); err != nil {
		return Stats{}, err
	}
	return i.collect(), nil
}

// ObjectCount returns the number of objects currently allocated.
func (i *Instance) ObjectCount() int {
	return i.heap.count
}

// Threshold returns the object count that triggers the next automatic
// collection.
func (i *Instance) Threshold() int {
	return i.threshold
}

// Cycles returns the number of collection cycles run so far.
func (i *Instance) Cycles() uint64 {
	return i.cycles
}

// LastStats returns the statistics of the most recent collection, and false
// if no collection has run yet.
func (i *Instance) LastStats() (Stats, bool) {
	return i.last, i.cycles > 0
}

// Close releases all remaining objects: it clears the stack and forces a final
// collection. The instance cannot be used afterwards.
func (i *Instance) Close() error {
	if err := i.check(); err != nil {
		return err
	}
	i.stack.reset()
	i.collect()
	i.closed = true
	i.heap = heap{}
	i.work = nil
	return nil
}
