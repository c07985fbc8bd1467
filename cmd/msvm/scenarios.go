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

package main

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/db47h/marksweep/vm"
)

type scenario struct {
	desc string
	run  func(i *vm.Instance) error
}

var scenarios = map[string]scenario{
	"preserve": {"objects on the stack are preserved", func(i *vm.Instance) error {
		if err := pushInts(i, 1, 2); err != nil {
			return err
		}
		return collectExpect(i, 2)
	}},
	"collect": {"unreached objects are collected", func(i *vm.Instance) error {
		if err := pushInts(i, 1, 2); err != nil {
			return err
		}
		if err := pop(i, 2); err != nil {
			return err
		}
		return collectExpect(i, 0)
	}},
	"nested": {"nested objects are reached", func(i *vm.Instance) error {
		if err := pushInts(i, 1, 2); err != nil {
			return err
		}
		if _, err := i.PushPair(); err != nil {
			return err
		}
		if err := pushInts(i, 3, 4); err != nil {
			return err
		}
		for n := 0; n < 2; n++ {
			if _, err := i.PushPair(); err != nil {
				return err
			}
		}
		if err := collectExpect(i, 7); err != nil {
			return err
		}
		if err := pop(i, 1); err != nil {
			return err
		}
		return collectExpect(i, 0)
	}},
	"cycle": {"reference cycles are handled", func(i *vm.Instance) error {
		if err := pushInts(i, 1, 2); err != nil {
			return err
		}
		a, err := i.PushPair()
		if err != nil {
			return err
		}
		if err = pushInts(i, 3, 4); err != nil {
			return err
		}
		b, err := i.PushPair()
		if err != nil {
			return err
		}
		if err = i.SetTail(a, b); err != nil {
			return err
		}
		if err = i.SetTail(b, a); err != nil {
			return err
		}
		if err = collectExpect(i, 4); err != nil {
			return err
		}
		if err = pop(i, 2); err != nil {
			return err
		}
		return collectExpect(i, 0)
	}},
	"stress": {"many short lived objects", func(i *vm.Instance) error {
		for n := int32(0); n < 1000; n++ {
			if err := pushInts(i, n, n); err != nil {
				return err
			}
			if _, err := i.PushPair(); err != nil {
				return err
			}
			if err := pop(i, 1); err != nil {
				return err
			}
		}
		return collectExpect(i, 0)
	}},
	"auto": {"collections run when the threshold is reached", func(i *vm.Instance) error {
		start := i.Cycles()
		t := i.Threshold() - i.ObjectCount()
		for n := 0; n <= t; n++ {
			if err := pushInts(i, int32(n)); err != nil {
				return err
			}
			if err := pop(i, 1); err != nil {
				return err
			}
		}
		if i.Cycles() != start+1 {
			return errors.Errorf("expected 1 automatic collection, got %d", i.Cycles()-start)
		}
		if i.ObjectCount() != 1 {
			return errors.Errorf("expected 1 object after the automatic collection, got %d", i.ObjectCount())
		}
		return nil
	}},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func pushInts(i *vm.Instance, vs ...int32) error {
	for _, v := range vs {
		if _, err := i.PushInt(v); err != nil {
			return err
		}
	}
	return nil
}

func pop(i *vm.Instance, n int) error {
	for ; n > 0; n-- {
		if _, err := i.Pop(); err != nil {
			return err
		}
	}
	return nil
}

func collectExpect(i *vm.Instance, live int) error {
	st, err := i.Collect()
	if err != nil {
		return err
	}
	if st.Remaining != live {
		return errors.Errorf("expected %d live objects, got %d", live, st.Remaining)
	}
	return nil
}
