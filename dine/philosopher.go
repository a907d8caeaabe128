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

	"github.com/sethvargo/go-retry"

	"github.com/cockroachdb/dinesim/notify"
)

// A Philosopher runs the think-eat loop for one seat. It holds
// non-owning references to the two forks adjacent to its seat and,
// outside of a pickup attempt itself, holds either zero or two of them
// at any observable instant.
//
// A Philosopher is driven by [Simulation.Run] on its own goroutine and
// should not be used concurrently beyond the read-only accessors.
type Philosopher struct {
	seat          int
	first, second *Fork // Pickup sequence, fixed by the Order at construction.
	target        int
	think, eat    DelayFunc
	events        *Events
	holdTimeout   time.Duration
	backoff       func() retry.Backoff
	meals         int
	outcome       *notify.Var[*Status]
}

func newPhilosopher(seat int, left, right *Fork, cfg *Config) *Philosopher {
	first, second := cfg.Order(seat, left, right)
	return &Philosopher{
		seat:        seat,
		first:       first,
		second:      second,
		target:      cfg.Meals,
		think:       cfg.Think,
		eat:         cfg.Eat,
		events:      cfg.Events,
		holdTimeout: cfg.HoldTimeout,
		backoff:     cfg.newBackoff,
		outcome:     notify.VarOf(seated),
	}
}

// Seat returns the philosopher's position at the table.
func (p *Philosopher) Seat() int { return p.seat }

// Meals returns the number of completed meals. The value is only
// stable once the philosopher's outcome is terminal.
func (p *Philosopher) Meals() int { return p.meals }

// Outcome returns the philosopher's observable status. The outcome
// becomes terminal once the meal target is reached or the loop exits
// with an error.
func (p *Philosopher) Outcome() Outcome { return p.outcome }

// run executes the lifecycle loop and publishes the terminal status.
func (p *Philosopher) run(ctx context.Context) {
	err := p.dine(ctx)
	p.events.doDone(p.seat, p.meals, err)
	p.outcome.Set(StatusFor(err))
}

func (p *Philosopher) dine(ctx context.Context) error {
	for p.meals < p.target {
		p.outcome.Set(thinking)
		p.events.doThink(p.seat)
		if err := p.think(ctx); err != nil {
			return err
		}
		if err := p.pickUp(ctx); err != nil {
			return err
		}
		err := p.eatMeal(ctx)
		// Both forks go back on every exit path out of eating, even
		// when the meal failed.
		p.putDown()
		if err != nil {
			return err
		}
	}
	return nil
}

// pickUp acquires both forks in the seat's fixed order. On return
// without error, both forks are held; on error, neither is.
func (p *Philosopher) pickUp(ctx context.Context) error {
	p.outcome.Set(acquiring)
	if p.holdTimeout <= 0 {
		return p.pickUpBlocking(ctx)
	}
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := p.pickUpBounded(ctx)
		if errors.Is(err, ErrForkBusy) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (p *Philosopher) pickUpBlocking(ctx context.Context) error {
	if err := p.first.Acquire(ctx); err != nil {
		return err
	}
	p.events.doAcquire(p.seat, p.first, true)
	if err := p.second.Acquire(ctx); err != nil {
		// A philosopher abandoning a pickup must not keep its first
		// fork, or it would starve a neighbor while making no progress.
		p.first.Release()
		p.events.doRelease(p.seat, p.first)
		return err
	}
	p.events.doAcquire(p.seat, p.second, false)
	return nil
}

// pickUpBounded waits at most holdTimeout for the second fork. Giving
// up rolls back the first fork and surfaces [ErrForkBusy] so the
// caller can back off and try the whole pickup again.
func (p *Philosopher) pickUpBounded(ctx context.Context) error {
	if err := p.first.Acquire(ctx); err != nil {
		return err
	}
	p.events.doAcquire(p.seat, p.first, true)
	if err := p.second.AcquireTimeout(ctx, p.holdTimeout); err != nil {
		p.first.Release()
		p.events.doRelease(p.seat, p.first)
		return err
	}
	p.events.doAcquire(p.seat, p.second, false)
	return nil
}

// eatMeal consumes one meal while holding both forks. A panic out of a
// delay or event callback is converted into an error so that the
// caller's unconditional putDown still runs.
func (p *Philosopher) eatMeal(ctx context.Context) (err error) {
	defer func() {
		x := recover()
		switch t := x.(type) {
		case nil:
		// Success.
		case error:
			err = t
		default:
			err = fmt.Errorf("panic while eating: %v", t)
		}
	}()

	p.outcome.Set(eating)
	p.events.doEat(p.seat, p.meals+1)
	if err := p.eat(ctx); err != nil {
		return err
	}
	p.meals++
	return nil
}

func (p *Philosopher) putDown() {
	p.second.Release()
	p.events.doRelease(p.seat, p.second)
	p.first.Release()
	p.events.doRelease(p.seat, p.first)
}
