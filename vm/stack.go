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

import "github.com/pkg/errors"

// stack is the bounded execution stack. Its contents are the root set of
// every collection.
type stack struct {
	data []Ref
	sp   int
}

func newStack(size int) stack {
	return stack{data: make([]Ref, size)}
}

func (s *stack) push(r Ref) error {
	if s.sp >= len(s.data) {
		return errors.Wrapf(ErrStackOverflow, "push %v: depth %d", r, s.sp)
	}
	s.data[s.sp] = r
	s.sp++
	return nil
}

func (s *stack) pop() (Ref, error) {
	if s.sp == 0 {
		return Nil, errors.Wrap(ErrStackUnderflow, "pop")
	}
	s.sp--
	r := s.data[s.sp]
	s.data[s.sp] = Nil
	return r, nil
}

// roots returns the live part of the stack, bottom first.
func (s *stack) roots() []Ref {
	return s.data[:s.sp]
}

func (s *stack) reset() {
	for i := range s.data[:s.sp] {
		s.data[i] = Nil
	}
	s.sp = 0
}

// resize changes the stack capacity. It fails if the new capacity cannot hold
// the current contents.
func (s *stack) resize(size int) error {
	if size < s.sp {
		return errors.Errorf("stack size %d too small for depth %d", size, s.sp)
	}
	t := make([]Ref, size)
	copy(t, s.data[:s.sp])
	s.data = t
	return nil
}
