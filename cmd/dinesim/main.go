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

// dinesim runs a dining-philosophers simulation and narrates the
// philosophers' lifecycle transitions to stdout.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/cockroachdb/dinesim/dine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		seats              int
		meals              int
		thinkMin, thinkMax time.Duration
		eatMin, eatMax     time.Duration
		holdTimeout        time.Duration
		timeout            time.Duration
		quiet              bool
	)
	cmd := &cobra.Command{
		Use:   "dinesim",
		Short: "Simulate the dining-philosophers table",
		Long: `dinesim seats N philosophers around a ring of N shared forks and runs
each one on its own goroutine until everyone has eaten the target
number of meals.

Deadlock is avoided by the seat-parity acquisition order: even seats
pick up their left fork first, odd seats their right. With
--hold-timeout, philosophers instead give up on a busy second fork,
put the first one back, and retry after a backoff.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			log := slog.New(slog.NewTextHandler(cmd.OutOrStdout(), nil))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			cfg := dine.Config{
				Seats:       seats,
				Meals:       meals,
				Think:       dine.RandomDelay(thinkMin, thinkMax),
				Eat:         dine.RandomDelay(eatMin, eatMax),
				HoldTimeout: holdTimeout,
			}
			if !quiet {
				cfg.Events = narrate(log)
			}
			sim, err := dine.New(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := sim.Run(ctx); err != nil {
				return fmt.Errorf("dinner did not finish: %w", err)
			}
			log.Info("dinner finished",
				"seats", seats, "meals", meals, "elapsed", time.Since(start))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&seats, "philosophers", "n", dine.DefaultSeats, "number of philosophers at the table (minimum 2)")
	f.IntVarP(&meals, "meals", "m", dine.DefaultMeals, "meals each philosopher must eat")
	f.DurationVar(&thinkMin, "think-min", 100*time.Millisecond, "minimum thinking pause")
	f.DurationVar(&thinkMax, "think-max", 500*time.Millisecond, "maximum thinking pause")
	f.DurationVar(&eatMin, "eat-min", 200*time.Millisecond, "minimum eating pause")
	f.DurationVar(&eatMax, "eat-max", 600*time.Millisecond, "maximum eating pause")
	f.DurationVar(&holdTimeout, "hold-timeout", 0, "bounded wait for the second fork; 0 blocks indefinitely")
	f.DurationVar(&timeout, "timeout", 0, "overall run deadline; 0 waits forever")
	f.BoolVarP(&quiet, "quiet", "q", false, "suppress per-event narration")
	return cmd
}

// narrate adapts lifecycle events to structured log lines. The core
// never logs on its own; this observer is the whole console surface.
func narrate(log *slog.Logger) *dine.Events {
	return &dine.Events{
		OnThink: func(seat int) {
			log.Info("thinking", "seat", seat)
		},
		OnAcquire: func(seat int, fork *dine.Fork, first bool) {
			log.Info("picked up fork", "seat", seat, "fork", fork.ID(), "first", first)
		},
		OnEat: func(seat, meal int) {
			log.Info("eating", "seat", seat, "meal", meal)
		},
		OnRelease: func(seat int, fork *dine.Fork) {
			log.Info("put down fork", "seat", seat, "fork", fork.ID())
		},
		OnDone: func(seat, meals int, err error) {
			if err != nil {
				log.Error("left the table early", "seat", seat, "meals", meals, "error", err)
				return
			}
			log.Info("left the table", "seat", seat, "meals", meals)
		},
	}
}
