// timing.go

// This file contains the settle-delay policy applied after each command.

// Copyright (C) 2025  Daniel Tantsyura

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package drone

import "time"

// Nominal settle delays per command class. The physical backend additionally
// waits for the vehicle's own acknowledgment, so these only pace the mission;
// on the simulated backend the delay is the sole completion proxy.
const (
	settleTakeoff = 2 * time.Second
	settleLand    = 2 * time.Second
	settleMove    = 1 * time.Second
	settleRotate  = 1 * time.Second
	settleStream  = 500 * time.Millisecond
)

// fastScale and fastFloor bound the reduced delays used in fast mode.
const (
	fastScale = 4 // delays are divided by this in fast mode
	fastFloor = 50 * time.Millisecond
)

// TimingPolicy decides how long to pause after each issued command.
// The zero value is the normal (full-delay) policy.
type TimingPolicy struct {
	// Fast scales all settle delays down to a quarter of their nominal
	// value, with an absolute floor, for quick simulated runs.
	Fast bool
}

// Delay returns the settle duration to apply for a command whose nominal
// settle time is d. The derivation is pure: two policies constructed with
// the same flag always return identical values.
func (p TimingPolicy) Delay(d time.Duration) time.Duration {
	if !p.Fast {
		return d
	}
	scaled := d / fastScale
	if scaled < fastFloor {
		scaled = fastFloor
	}
	return scaled
}
