// timing_test.go

// This file contains tests for the settle-delay policy.

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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimingPolicyDelay(t *testing.T) {
	tests := []struct {
		name    string
		policy  TimingPolicy
		nominal time.Duration
		want    time.Duration
	}{
		{"normal passes through", TimingPolicy{}, 2 * time.Second, 2 * time.Second},
		{"fast quarters", TimingPolicy{Fast: true}, 2 * time.Second, 500 * time.Millisecond},
		{"fast hits the floor", TimingPolicy{Fast: true}, 100 * time.Millisecond, 50 * time.Millisecond},
		{"fast exactly at floor", TimingPolicy{Fast: true}, 200 * time.Millisecond, 50 * time.Millisecond},
		{"zero stays zero in normal mode", TimingPolicy{}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.policy.Delay(tc.nominal))
		})
	}
}

func TestTimingPolicyIsPure(t *testing.T) {
	a := TimingPolicy{Fast: true}
	b := TimingPolicy{Fast: true}
	for _, d := range []time.Duration{0, time.Millisecond, time.Second, 2 * time.Second} {
		assert.Equal(t, a.Delay(d), b.Delay(d))
		assert.Equal(t, a.Delay(d), a.Delay(d))
	}
}
