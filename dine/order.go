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

// An Order decides the sequence in which a philosopher picks up its two
// forks. The order is fixed per seat at construction time; it is the
// only coordination mechanism in the simulation.
type Order func(seat int, left, right *Fork) (first, second *Fork)

// SeatParity is the default order: even seats pick up the left fork
// first, odd seats the right. Any two neighbors therefore disagree
// about which of their shared forks comes first, which breaks the
// circular hold-and-wait cycle for every ring size of at least two.
func SeatParity(seat int, left, right *Fork) (first, second *Fork) {
	if seat%2 == 0 {
		return left, right
	}
	return right, left
}

// LeftFirst picks up the left fork first at every seat. When all seats
// use it, a schedule exists in which every philosopher holds its left
// fork and waits forever for its right one. It is exported so tests can
// reproduce the deadlock that [SeatParity] prevents.
func LeftFirst(_ int, left, right *Fork) (first, second *Fork) {
	return left, right
}
