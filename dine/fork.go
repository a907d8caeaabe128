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
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrForkBusy is returned by [Fork.AcquireTimeout] when the fork is
// still held by a neighbor at the end of the wait.
var ErrForkBusy = errors.New("fork is held by a neighbor")

// A Fork is an exclusive-ownership token shared by two neighboring
// philosophers. It has no state beyond free or held; it does not track
// its holder. Forks are created by [NewTable] and live for the whole
// simulation.
//
// Acquisition is not reentrant: a holder must not call an acquire
// method again before releasing.
type Fork struct {
	id   int
	slot chan struct{} // One-element buffer; full while the fork is held.
}

func newFork(id int) *Fork {
	return &Fork{id: id, slot: make(chan struct{}, 1)}
}

// ID returns the fork's position in the table's ring.
func (f *Fork) ID() int { return f.id }

// Acquire blocks until the fork transitions to held for the caller, or
// until the context is done.
func (f *Fork) Acquire(ctx context.Context) error {
	select {
	case f.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AcquireTimeout behaves like [Fork.Acquire], but gives up and returns
// [ErrForkBusy] if the fork is still held after the given duration.
func (f *Fork) AcquireTimeout(ctx context.Context, d time.Duration) error {
	if f.TryAcquire() {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case f.slot <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrForkBusy
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire attempts to take the fork without blocking. It returns
// true if the caller now holds the fork.
func (f *Fork) TryAcquire() bool {
	select {
	case f.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release transitions the fork back to free, unblocking at most one
// waiting acquirer. Releasing a free fork is a protocol violation and
// panics.
func (f *Fork) Release() {
	select {
	case <-f.slot:
	default:
		panic(fmt.Sprintf("fork %d: released while free", f.id))
	}
}

func (f *Fork) String() string { return fmt.Sprintf("fork %d", f.id) }
