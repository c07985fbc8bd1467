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

// Package vm implements the heap of a toy virtual machine: integer and pair
// objects, a bounded execution stack, and a stop-the-world mark and sweep
// garbage collector.
//
// The stack is the root set. Every object reachable from it, following pair
// heads and tails, survives a collection; everything else is freed. A
// collection runs automatically before an allocation when the number of
// allocated objects reaches the collection threshold, and can be triggered
// explicitly with Collect. After each cycle the threshold is set to twice the
// number of survivors, or back to its initial value if nothing survived.
//
// Objects are referred to by Ref handles. A Ref to an object that has been
// collected never resolves again: every accessor returns ErrInvalidRef.
//
// Misuse, like popping from an empty stack or pushing on a full one, is
// reported with an error and leaves the VM untouched.
//
// Collection events are reported to handlers registered with the OnCollect
// option. The package itself only logs them through glog at verbosity 2.
package vm
