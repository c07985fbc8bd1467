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

func (i *Instance) resolve(r Ref) (*slot, error) {
	if err := i.check(); err != nil {
		return nil, err
	}
	s := i.heap.lookup(r)
	if s == nil {
		return nil, errors.Wrapf(ErrInvalidRef, "resolve %v", r)
	}
	return s, nil
}

// Object returns a copy of the object referenced by r.
func (i *Instance) Object(r Ref) (Object, error) {
	s, err := i.resolve(r)
	if err != nil {
		return Object{}, err
	}
	return s.obj, nil
}

// Int returns the value of the integer object referenced by r.
func (i *Instance) Int(r Ref) (int32, error) {
	s, err := i.resolve(r)
	if err != nil {
		return 0, err
	}
	if s.obj.Kind != KindInt {
		return 0, errors.Wrapf(ErrKind, "%v is a %v", r, s.obj.Kind)
	}
	return s.obj.Value, nil
}

// Pair returns the head and tail of the pair object referenced by r.
func (i *Instance) Pair(r Ref) (head, tail Ref, err error) {
	s, err := i.resolve(r)
	if err != nil {
		return Nil, Nil, err
	}
	if s.obj.Kind != KindPair {
		return Nil, Nil, errors.Wrapf(ErrKind, "%v is a %v", r, s.obj.Kind)
	}
	return s.obj.Head, s.obj.Tail, nil
}

func (i *Instance) setField(pair, v Ref, tail bool) error {
	s, err := i.resolve(pair)
	if err != nil {
		return err
	}
	if s.obj.Kind != KindPair {
		return errors.Wrapf(ErrKind, "%v is a %v", pair, s.obj.Kind)
	}
	if i.heap.lookup(v) == nil {
		return errors.Wrapf(ErrInvalidRef, "store %v in %v", v, pair)
	}
	if tail {
		s.obj.Tail = v
	} else {
		s.obj.Head = v
	}
	return nil
}

// SetHead replaces the head of a pair. Together with SetTail, this is the only
// way to build cyclic structures.
func (i *Instance) SetHead(pair, v Ref) error {
	return i.setField(pair, v, false)
}

// SetTail replaces the tail of a pair.
func (i *Instance) SetTail(pair, v Ref) error {
	return i.setField(pair, v, true)
}

// Objects calls fn for every allocated object, most recently allocated first,
// until fn returns false. fn must not modify the instance.
func (i *Instance) Objects(fn func(Ref, Object) bool) {
	i.heap.each(fn)
}
