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
	"math/rand/v2"
	"time"
)

// A DelayFunc stands in for the work a philosopher performs while
// thinking or eating. It suspends only the calling philosopher and has
// no mutual-exclusion effect on the others. Tests inject [NoDelay] to
// run the loop at full speed.
type DelayFunc func(ctx context.Context) error

// NoDelay returns immediately.
func NoDelay(context.Context) error { return nil }

// RandomDelay sleeps for a uniformly distributed duration in
// [min, max), or until the context is done.
func RandomDelay(min, max time.Duration) DelayFunc {
	return func(ctx context.Context) error {
		d := min
		if jitter := max - min; jitter > 0 {
			d += rand.N(jitter)
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
