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

// Events provides optional callbacks to observe philosopher lifecycle
// transitions. Callbacks are invoked from the philosopher's own
// goroutine, so a blocking callback stalls that philosopher exactly
// where the event occurred.
//
// See [Config.Events].
type Events struct {
	// OnAcquire fires after a fork has been picked up. first reports
	// whether this was the seat's first or second fork of the attempt.
	OnAcquire func(seat int, fork *Fork, first bool)
	// OnDone fires once per philosopher, after its final release.
	OnDone func(seat, meals int, err error)
	// OnEat fires when both forks are held, before the meal delay.
	OnEat func(seat, meal int)
	// OnRelease fires after a fork has been put back.
	OnRelease func(seat int, fork *Fork)
	// OnThink fires at the top of each loop iteration.
	OnThink func(seat int)
}

func (e *Events) doAcquire(seat int, fork *Fork, first bool) {
	if e != nil && e.OnAcquire != nil {
		e.OnAcquire(seat, fork, first)
	}
}

func (e *Events) doDone(seat, meals int, err error) {
	if e != nil && e.OnDone != nil {
		e.OnDone(seat, meals, err)
	}
}

func (e *Events) doEat(seat, meal int) {
	if e != nil && e.OnEat != nil {
		e.OnEat(seat, meal)
	}
}

func (e *Events) doRelease(seat int, fork *Fork) {
	if e != nil && e.OnRelease != nil {
		e.OnRelease(seat, fork)
	}
}

func (e *Events) doThink(seat int) {
	if e != nil && e.OnThink != nil {
		e.OnThink(seat)
	}
}
