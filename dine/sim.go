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
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"
)

// Defaults match the classic formulation of the problem: five
// philosophers eating three meals each.
const (
	DefaultSeats = 5
	DefaultMeals = 3
)

// Config describes a simulation run. The zero value seats
// [DefaultSeats] philosophers who eat no meals and never pause.
type Config struct {
	// Seats is the number of philosophers (and forks). Must be at
	// least 2; zero selects DefaultSeats.
	Seats int
	// Meals is the per-philosopher meal target. Must not be negative.
	Meals int
	// Think and Eat pace the loop. Nil means NoDelay.
	Think, Eat DelayFunc
	// Order is the fork-acquisition policy. Nil means SeatParity.
	Order Order
	// HoldTimeout, when positive, bounds the wait for the second fork.
	// A philosopher that gives up rolls back its first fork, backs
	// off, and retries the pickup. Zero selects plain blocking
	// acquisition, under which only the Order prevents deadlock.
	HoldTimeout time.Duration
	// Events receives lifecycle callbacks. May be nil.
	Events *Events
	// Runner starts the philosopher goroutines. Nil means a GoRunner
	// over the context passed to Run.
	Runner Runner
}

func (c *Config) preflight() error {
	if c.Seats == 0 {
		c.Seats = DefaultSeats
	}
	if c.Seats < 2 {
		return fmt.Errorf("at least 2 seats are required, have %d", c.Seats)
	}
	if c.Meals < 0 {
		return fmt.Errorf("meal target must not be negative, have %d", c.Meals)
	}
	if c.HoldTimeout < 0 {
		return fmt.Errorf("hold timeout must not be negative, have %s", c.HoldTimeout)
	}
	if c.Think == nil {
		c.Think = NoDelay
	}
	if c.Eat == nil {
		c.Eat = NoDelay
	}
	if c.Order == nil {
		c.Order = SeatParity
	}
	return nil
}

// newBackoff returns a fresh backoff strategy for one pickup attempt
// in the bounded-wait mode.
func (c *Config) newBackoff() retry.Backoff {
	jitter := c.HoldTimeout / 2
	if jitter <= 0 {
		jitter = time.Millisecond
	}
	return retry.WithJitter(jitter, retry.NewFibonacci(c.HoldTimeout))
}

// A Simulation owns a [Table] and the philosophers seated at it. There
// is no coordinator beyond the per-seat acquisition order: the driver
// only starts the goroutines and waits for them to finish.
type Simulation struct {
	table        *Table
	philosophers []*Philosopher
	runner       Runner
	started      atomic.Bool
}

// New builds the table and binds one philosopher to each seat.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.preflight(); err != nil {
		return nil, err
	}
	table, err := NewTable(cfg.Seats)
	if err != nil {
		return nil, err
	}
	s := &Simulation{table: table, runner: cfg.Runner}
	for seat := 0; seat < cfg.Seats; seat++ {
		left, right := table.Setting(seat)
		s.philosophers = append(s.philosophers, newPhilosopher(seat, left, right, &cfg))
	}
	return s, nil
}

// Philosopher returns the philosopher at the given seat.
func (s *Simulation) Philosopher(seat int) *Philosopher {
	return s.philosophers[seat]
}

// Philosophers returns all seated philosophers in seat order.
func (s *Simulation) Philosophers() []*Philosopher {
	return append([]*Philosopher(nil), s.philosophers...)
}

// Table returns the simulation's topology.
func (s *Simulation) Table() *Table { return s.table }

// Run starts every philosopher and blocks until all of them have
// reached a terminal state, returning the first error. There is no
// default timeout: if the acquisition order permits a deadlock, Run
// hangs, which is the observable failure signature tests rely on.
// A Simulation can only run once.
func (s *Simulation) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("simulation has already run")
	}
	runner := s.runner
	if runner == nil {
		runner = GoRunner(ctx)
	}
	outcomes := make([]Outcome, len(s.philosophers))
	for i, p := range s.philosophers {
		outcomes[i] = p.outcome
		if err := runner.Go(p.run); err != nil {
			p.outcome.Set(StatusFor(err))
		}
	}
	return Wait(ctx, outcomes)
}
