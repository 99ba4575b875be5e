// spiral.go

// This file contains the spiral waypoint generator: an expanding climb
// around the launch point, photographing outward along the tangent.

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

	"github.com/DanielTantsyura/real-estate-drone/mission"
)

// SpiralConfig parameterizes an expanding spiral climb.
type SpiralConfig struct {
	Radius        int // final radius, cm
	Height        int // final height above launch, cm
	Turns         int // full revolutions
	PointsPerTurn int // waypoints per revolution
}

// SpiralWaypoints expands the configuration into a waypoint list that
// spirals outward and upward from the launch point, heading tangent to the
// spiral, photographing at every point.
func SpiralWaypoints(cfg SpiralConfig) []mission.Waypoint {
	total := cfg.Turns * cfg.PointsPerTurn
	if total < 1 {
		return nil
	}
	heightStep := float64(cfg.Height) / float64(total)

	wps := make([]mission.Waypoint, 0, total+1)
	for i := 0; i <= total; i++ {
		angle := float64(i) * 2 * math.Pi / float64(cfg.PointsPerTurn)
		r := float64(cfg.Radius) * float64(i) / float64(total)
		heading := math.Mod(angle*180/math.Pi+90, 360)
		wps = append(wps, mission.Waypoint{
			X:         math.Round(r * math.Cos(angle)),
			Y:         math.Round(r * math.Sin(angle)),
			Z:         math.Round(float64(i) * heightStep),
			Heading:   mission.Deg(math.Round(heading)),
			TakePhoto: true,
		})
	}
	return wps
}
