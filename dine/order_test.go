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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeatParity(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(6)
	r.NoError(err)

	for seat := 0; seat < table.Seats(); seat++ {
		left, right := table.Setting(seat)
		first, second := SeatParity(seat, left, right)
		if seat%2 == 0 {
			r.Same(left, first)
			r.Same(right, second)
		} else {
			r.Same(right, first)
			r.Same(left, second)
		}
	}
}

func TestLeftFirst(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(3)
	r.NoError(err)

	for seat := 0; seat < table.Seats(); seat++ {
		left, right := table.Setting(seat)
		first, second := LeftFirst(seat, left, right)
		r.Same(left, first)
		r.Same(right, second)
	}
}
