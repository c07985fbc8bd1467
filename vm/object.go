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

import "strconv"

// Kind identifies the variant of a heap object.
type Kind uint8

// Object kinds.
const (
	KindInt Kind = iota
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindPair:
		return "pair"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Ref is a handle to an object owned by an Instance heap. It combines a slot
// index with the generation of the slot at allocation time, so that a Ref to a
// freed object never resolves, even after its slot has been reused.
//
// The zero Ref is Nil.
type Ref struct {
	slot uint32 // slot index + 1
	gen  uint32
}

// Nil is the Ref that never refers to an object.
var Nil Ref

// IsNil returns true if r is Nil.
func (r Ref) IsNil() bool { return r.slot == 0 }

func (r Ref) String() string {
	if r.slot == 0 {
		return "nil"
	}
	return "#" + strconv.FormatUint(uint64(r.slot-1), 10) + "." + strconv.FormatUint(uint64(r.gen), 10)
}

// Object is a copy of the contents of a heap object. For KindInt objects,
// Value is set and Head/Tail are Nil. For KindPair objects, Head and Tail are
// set and Value is 0.
type Object struct {
	Kind  Kind
	Value int32
	Head  Ref
	Tail  Ref
}

func (o Object) String() string {
	if o.Kind == KindPair {
		return "(" + o.Head.String() + " . " + o.Tail.String() + ")"
	}
	return strconv.FormatInt(int64(o.Value), 10)
}
