// spiral_test.go

// This file contains tests for the spiral waypoint generator.

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

package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpiralWaypointsExpandOutwardAndUpward(t *testing.T) {
	wps := SpiralWaypoints(SpiralConfig{
		Radius:        200,
		Height:        160,
		Turns:         2,
		PointsPerTurn: 4,
	})
	require.Len(t, wps, 9) // total points plus the launch-point start

	first, last := wps[0], wps[len(wps)-1]
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, 0.0, first.Y)
	assert.Equal(t, 0.0, first.Z)
	assert.Equal(t, 160.0, last.Z)
	assert.InDelta(t, 200, math.Hypot(last.X, last.Y), 1)

	// the spiral never contracts and never descends
	prevR, prevZ := -1.0, -1.0
	for i, wp := range wps {
		r := math.Hypot(wp.X, wp.Y)
		assert.GreaterOrEqual(t, r, prevR, "radius shrank at waypoint %d", i)
		assert.GreaterOrEqual(t, wp.Z, prevZ, "altitude dropped at waypoint %d", i)
		assert.True(t, wp.TakePhoto)
		require.NotNil(t, wp.Heading)
		prevR, prevZ = r, wp.Z
	}
}

func TestSpiralWaypointsEmptyConfig(t *testing.T) {
	assert.Nil(t, SpiralWaypoints(SpiralConfig{}))
	assert.Nil(t, SpiralWaypoints(SpiralConfig{Turns: 1}))
}
