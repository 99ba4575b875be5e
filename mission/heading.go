// heading.go

// This file contains the heading bookkeeping math used by the planner.

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

package mission

import "math"

// normalizeHeading maps any angle in degrees into [0,360).
func normalizeHeading(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// headingTo returns the heading in [0,360) that points from the current
// position along the displacement (dx, dy). The frame is the launch frame:
// x forward at launch (heading 0), y right at launch (heading 90).
// At least one of dx, dy must be nonzero.
func headingTo(dx, dy float64) float64 {
	if dx == 0 {
		if dy > 0 {
			return 90
		}
		return 270
	}
	return normalizeHeading(math.Atan2(dy, dx) * 180 / math.Pi)
}

// minimalRotation returns the signed turn in (-180,180] that takes the
// vehicle from the current heading to the target heading by the shorter
// arc; positive is clockwise. A dead-heat 180° turn goes clockwise.
func minimalRotation(current, target float64) float64 {
	r := math.Mod(target-current, 360)
	if r < 0 {
		r += 360
	}
	if r > 180 {
		r -= 360
	}
	return r
}
