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
	"fmt"

	"github.com/cockroachdb/dinesim/notify"
)

// Outcome is a convenience type alias for a philosopher's observable
// state.
type Outcome = *notify.Var[*Status]

// Status describes where a philosopher is in its lifecycle loop.
type Status struct {
	err error
}

// StatusFor constructs a finished status if err is nil. Otherwise, it
// returns a new Status object that reports the error.
func StatusFor(err error) *Status {
	if err == nil {
		return finished
	}
	return &Status{err: err}
}

// Sentinel instances of Status.
var (
	seated    = &Status{}
	thinking  = &Status{}
	acquiring = &Status{}
	eating    = &Status{}
	finished  = &Status{}
)

// Acquiring returns true if the philosopher is picking up forks.
func (s *Status) Acquiring() bool { return s == acquiring }

// Completed returns true if the philosopher's loop has exited, whether
// successfully or with an error. See also [Status.Success].
func (s *Status) Completed() bool {
	return s == finished || s.err != nil
}

// Eating returns true if the philosopher holds both forks and is
// consuming a meal.
func (s *Status) Eating() bool { return s == eating }

// Err returns the error that terminated the philosopher, if any.
func (s *Status) Err() error { return s.err }

// Success returns true if the philosopher reached its meal target.
func (s *Status) Success() bool { return s == finished }

// Thinking returns true if the philosopher holds no forks and is
// between meals.
func (s *Status) Thinking() bool { return s == thinking }

func (s *Status) String() string {
	switch s {
	case seated:
		return "seated"
	case thinking:
		return "thinking"
	case acquiring:
		return "acquiring"
	case eating:
		return "eating"
	case finished:
		return "finished"
	default:
		return fmt.Sprintf("error: %v", s.err)
	}
}

// Wait blocks until every outcome reaches a terminal state and returns
// the first error encountered. A philosopher that fails early does not
// cut the dinner short: Wait keeps draining the remaining outcomes so
// that the other philosophers still reach their natural termination.
// The context is a backstop; an unresolved deadlock will block here
// indefinitely when the context has no deadline.
func Wait(ctx context.Context, outcomes []Outcome) error {
	var first error
outcome:
	for _, outcome := range outcomes {
		for {
			status, changed := outcome.Get()
			if status.Completed() {
				if err := status.Err(); err != nil && first == nil {
					first = err
				}
				continue outcome
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return first
}
