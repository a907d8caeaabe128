// Copyright 2025 The Cockroach Authors
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
//
// SPDX-License-Identifier: Apache-2.0

package dine

import "fmt"

// A Table owns the ring of forks. It is a pure topology builder: after
// construction it only hands out fork references. Each fork is shared
// by exactly the two seats adjacent to it.
type Table struct {
	forks []*Fork
}

// NewTable lays a table with one fork between each pair of adjacent
// seats. At least two seats are required; with exactly two, both
// philosophers share the same two forks in opposite roles.
func NewTable(seats int) (*Table, error) {
	if seats < 2 {
		return nil, fmt.Errorf("a table needs at least 2 seats, have %d", seats)
	}
	forks := make([]*Fork, seats)
	for i := range forks {
		forks[i] = newFork(i)
	}
	return &Table{forks: forks}, nil
}

// Seats returns the number of places at the table.
func (t *Table) Seats() int { return len(t.forks) }

// Fork returns the fork at the given ring position.
func (t *Table) Fork(i int) *Fork { return t.forks[i] }

// Setting returns the left and right forks for a seat: the fork at the
// seat's own position and the one at the next position around the ring.
func (t *Table) Setting(seat int) (left, right *Fork) {
	return t.forks[seat], t.forks[(seat+1)%len(t.forks)]
}
