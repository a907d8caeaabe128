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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestPhilosopher(t *testing.T, seat int, left, right *Fork, cfg Config) *Philosopher {
	t.Helper()
	require.NoError(t, (&cfg).preflight())
	return newPhilosopher(seat, left, right, &cfg)
}

// A single philosopher with no contention runs to its target.
func TestPhilosopherDines(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(2)
	r.NoError(err)
	left, right := table.Setting(0)

	p := newTestPhilosopher(t, 0, left, right, Config{Meals: 3})
	p.run(context.Background())

	status, _ := p.Outcome().Get()
	r.True(status.Success(), "status was %s", status)
	r.Equal(3, p.Meals())

	// Both forks are back on the table.
	r.True(left.TryAcquire())
	r.True(right.TryAcquire())
}

func TestPhilosopherZeroTarget(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(2)
	r.NoError(err)
	left, right := table.Setting(0)

	var acquires atomic.Int32
	p := newTestPhilosopher(t, 0, left, right, Config{
		Meals: 0,
		Events: &Events{
			OnAcquire: func(int, *Fork, bool) { acquires.Add(1) },
		},
	})
	p.run(context.Background())

	status, _ := p.Outcome().Get()
	r.True(status.Success())
	r.Zero(p.Meals())
	r.Zero(acquires.Load())
}

// If the second acquisition is interrupted, the first fork must be
// rolled back before the failure propagates.
func TestPhilosopherRollbackOnCancel(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(2)
	r.NoError(err)
	left, right := table.Setting(0)

	// The neighbor holds the fork this philosopher wants second.
	r.True(right.TryAcquire())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := newTestPhilosopher(t, 0, left, right, Config{
		Meals: 1,
		Events: &Events{
			// Interrupt the attempt once the first fork is held.
			OnAcquire: func(_ int, _ *Fork, first bool) {
				if first {
					cancel()
				}
			},
		},
	})
	p.run(ctx)

	status, _ := p.Outcome().Get()
	r.ErrorIs(status.Err(), context.Canceled)
	r.Zero(p.Meals())

	// The first fork was released; the second is still the neighbor's.
	r.True(left.TryAcquire())
	r.False(right.TryAcquire())
}

// In the bounded-wait mode, a busy second fork triggers rollback and a
// retried pickup, which eventually succeeds once the neighbor lets go.
func TestPhilosopherBoundedRetry(t *testing.T) {
	r := require.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	table, err := NewTable(2)
	r.NoError(err)
	left, right := table.Setting(0)
	r.True(right.TryAcquire())

	var once sync.Once
	rolledBack := make(chan struct{})
	p := newTestPhilosopher(t, 0, left, right, Config{
		Meals:       1,
		HoldTimeout: 2 * time.Millisecond,
		Events: &Events{
			OnRelease: func(_ int, fork *Fork) {
				if fork == left {
					once.Do(func() { close(rolledBack) })
				}
			},
		},
	})
	go p.run(ctx)

	// Wait for at least one abandoned pickup, then free the fork.
	select {
	case <-rolledBack:
	case <-ctx.Done():
		r.NoError(ctx.Err())
	}
	right.Release()

	r.NoError(Wait(ctx, []Outcome{p.Outcome()}))
	r.Equal(1, p.Meals())
	r.True(left.TryAcquire())
	r.True(right.TryAcquire())
}

// A fault while eating still passes through the release step.
func TestPhilosopherEatPanic(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(2)
	r.NoError(err)
	left, right := table.Setting(0)

	p := newTestPhilosopher(t, 0, left, right, Config{
		Meals: 1,
		Eat:   func(context.Context) error { panic("dropped the plate") },
	})
	p.run(context.Background())

	status, _ := p.Outcome().Get()
	r.ErrorContains(status.Err(), "dropped the plate")
	r.Zero(p.Meals())
	r.True(left.TryAcquire())
	r.True(right.TryAcquire())
}

func TestPhilosopherEatPanicError(t *testing.T) {
	r := require.New(t)

	table, err := NewTable(2)
	r.NoError(err)
	left, right := table.Setting(0)

	boom := errors.New("boom")
	p := newTestPhilosopher(t, 0, left, right, Config{
		Meals: 1,
		Eat:   func(context.Context) error { panic(boom) },
	})
	p.run(context.Background())

	status, _ := p.Outcome().Get()
	r.ErrorIs(status.Err(), boom)
	r.True(left.TryAcquire())
	r.True(right.TryAcquire())
}
