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

package vm_test

import (
	"fmt"
	"os"

	"github.com/db47h/marksweep/vm"
)

// Shows how objects are allocated, collected and inspected.
func Example() {
	i, err := vm.New(vm.OnCollect(func(s vm.Stats) { vm.DumpStats(os.Stdout, s) }))
	if err != nil {
		panic(err)
	}
	i.PushInt(1)
	i.PushInt(2)
	i.PushPair()
	i.PushInt(3)
	i.Pop()

	i.Collect()
	i.Dump(os.Stdout)
	i.Close()

	// Output:
	// gc #1: collected objects - 1, remaining objects - 3
	// stack #2.0
	// #2.0 pair (#0.0 . #1.0)
	// #1.0 int 2
	// #0.0 int 1
	// gc #2: collected objects - 3, remaining objects - 0
}

// Cyclic structures are collected once they are no longer reachable from the
// stack.
func ExampleInstance_SetTail() {
	i, _ := vm.New()
	i.PushInt(1)
	i.PushInt(2)
	p, _ := i.PushPair()
	i.SetTail(p, p)

	st, _ := i.Collect()
	fmt.Println("live:", st.Remaining)

	i.Pop()
	st, _ = i.Collect()
	fmt.Println("collected:", st.Collected, "live:", i.ObjectCount())

	// Output:
	// live: 2
	// collected: 2 live: 0
}

// A collection runs automatically before an allocation once the heap holds
// Threshold objects.
func ExampleThreshold() {
	i, _ := vm.New(
		vm.Threshold(3),
		vm.OnCollect(func(s vm.Stats) {
			fmt.Printf("collected %d of %d, next collection at %d objects\n", s.Collected, s.Before, s.Threshold)
		}))
	for n := int32(0); n < 4; n++ {
		i.PushInt(n)
	}
	fmt.Println(i.ObjectCount(), "objects")

	// Output:
	// collected 0 of 3, next collection at 6 objects
	// 4 objects
}
