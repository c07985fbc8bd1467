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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(h *heap) []Ref {
	var refs []Ref
	h.each(func(r Ref, _ Object) bool {
		refs = append(refs, r)
		return true
	})
	return refs
}

func TestHeap_registerOrder(t *testing.T) {
	var h heap
	a := h.register(Object{Kind: KindInt, Value: 1})
	b := h.register(Object{Kind: KindInt, Value: 2})
	c := h.register(Object{Kind: KindPair, Head: a, Tail: b})

	assert.Equal(t, 3, h.count)
	assert.Equal(t, []Ref{c, b, a}, registry(&h), "most recent first")
}

func TestHeap_sweep(t *testing.T) {
	var h heap
	a := h.register(Object{Kind: KindInt, Value: 1})
	b := h.register(Object{Kind: KindInt, Value: 2})
	c := h.register(Object{Kind: KindInt, Value: 3})
	d := h.register(Object{Kind: KindInt, Value: 4})

	// keep the first and last of the list, drop the middle and the tail
	h.lookup(d).marked = true
	h.lookup(b).marked = true
	assert.Equal(t, 2, h.sweep())
	assert.Equal(t, []Ref{d, b}, registry(&h))
	assert.Nil(t, h.lookup(a))
	assert.Nil(t, h.lookup(c))
	for _, r := range registry(&h) {
		assert.False(t, h.lookup(r).marked)
	}

	assert.Equal(t, 2, h.sweep())
	assert.Equal(t, 0, h.count)
	assert.Zero(t, h.first)
	assert.Len(t, h.free, 4)
}

func TestHeap_reuse(t *testing.T) {
	var h heap
	a := h.register(Object{Kind: KindInt, Value: 1})
	h.sweep()
	b := h.register(Object{Kind: KindInt, Value: 2})

	assert.Equal(t, a.slot, b.slot)
	assert.NotEqual(t, a.gen, b.gen)
	assert.Nil(t, h.lookup(a))
	require.NotNil(t, h.lookup(b))
	assert.Equal(t, int32(2), h.lookup(b).obj.Value)
	assert.Nil(t, h.lookup(Nil))
	assert.Nil(t, h.lookup(Ref{slot: 42}))
}

func TestHeap_markCycle(t *testing.T) {
	var h heap
	p := h.register(Object{Kind: KindPair})
	q := h.register(Object{Kind: KindPair, Head: p, Tail: p})
	h.lookup(p).obj.Head = q
	h.lookup(p).obj.Tail = p
	garbage := h.register(Object{Kind: KindInt})

	work := h.mark([]Ref{q, q}, nil)
	assert.Empty(t, work)
	assert.True(t, h.lookup(p).marked)
	assert.True(t, h.lookup(q).marked)
	assert.False(t, h.lookup(garbage).marked)
	assert.Equal(t, 1, h.sweep())
}

func TestStack(t *testing.T) {
	s := newStack(2)
	var h heap
	a := h.register(Object{Kind: KindInt, Value: 1})

	require.NoError(t, s.push(a))
	require.NoError(t, s.push(a))
	err := s.push(a)
	assert.True(t, errors.Is(err, ErrStackOverflow), "%+v", err)
	assert.Equal(t, []Ref{a, a}, s.roots())

	require.NoError(t, s.resize(4))
	require.NoError(t, s.push(a))
	assert.Len(t, s.roots(), 3)

	s.reset()
	assert.Empty(t, s.roots())
	_, err = s.pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow), "%+v", err)
}
