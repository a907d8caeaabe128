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

/*
Package dine simulates the dining-philosophers table: a ring of
exclusive forks shared by neighboring philosophers, each of which runs
an independent think-eat loop on its own goroutine.

A minimal simulation looks like this:

	// Five philosophers, each eating three meals, no simulated delays.
	sim, err := dine.New(dine.Config{Seats: 5, Meals: 3})
	if err != nil {
		return err
	}

	// Run blocks until every philosopher has finished its meals.
	if err := sim.Run(ctx); err != nil {
		return err
	}

The correctness mechanism is the acquisition [Order]: with the default
[SeatParity] order, any two neighbors disagree about which of their
shared forks is picked up first, so the circular hold-and-wait pattern
that deadlocks the naive all-left-first scheme cannot form. The
deliberately broken [LeftFirst] order is exported so that tests can
demonstrate the deadlock the parity rule prevents.

There is no coordinator: philosophers interact only by contending for
the same [Fork] values. Progress is observable through each
philosopher's [Outcome] and through optional [Events] callbacks, which
is how the command-line narration is attached without the core ever
logging.
*/
package dine
