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
	"io"
	"strconv"

	"github.com/db47h/marksweep/internal/iox"
)

// Dump writes the stack and the heap registry of the VM to the specified
// io.Writer. The first line lists the stack from bottom to top, then each
// object follows on its own line, most recently allocated first:
//
//	stack #2.0
//	#2.0 pair (#1.0 . #0.0)
//	#1.0 int 2
//	#0.0 int 1
//
// The output is for diagnostics only.
func (i *Instance) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	ew.WriteString("stack")
	for _, r := range i.stack.roots() {
		ew.WriteByte(' ')
		ew.WriteString(r.String())
	}
	ew.WriteByte('\n')
	i.heap.each(func(r Ref, o Object) bool {
		ew.WriteString(r.String())
		ew.WriteByte(' ')
		ew.WriteString(o.Kind.String())
		ew.WriteByte(' ')
		ew.WriteString(o.String())
		ew.WriteByte('\n')
		return ew.Err == nil
	})
	return ew.Err
}

// DumpStats writes a one line summary of s to w, in the same terms as the
// classic collector traces.
func DumpStats(w io.Writer, s Stats) error {
	ew := iox.NewErrWriter(w)
	ew.WriteString("gc #")
	ew.WriteString(strconv.FormatUint(s.Cycle, 10))
	ew.WriteString(": collected objects - ")
	ew.WriteString(strconv.Itoa(s.Collected))
	ew.WriteString(", remaining objects - ")
	ew.WriteString(strconv.Itoa(s.Remaining))
	ew.WriteByte('\n')
	return ew.Err
}
