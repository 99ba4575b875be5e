// waypoint.go

// This file contains the Waypoint value type and the custom-action
// extension point.

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

import "github.com/DanielTantsyura/real-estate-drone/drone"

// Waypoint is one target pose in the launch frame: position in centimeters
// (x forward at launch, y right at launch, z altitude above launch), an
// optional heading to assume once the position is reached, and optional
// photo/action side effects. Waypoints are immutable once enqueued.
type Waypoint struct {
	X, Y, Z float64

	// Heading, if non-nil, is the heading in [0,360) to turn to after
	// reaching the position.
	Heading *float64

	// TakePhoto captures a photo, labelled with the waypoint index,
	// once the pose is reached.
	TakePhoto bool

	// Action, if non-nil, runs after the pose is reached (and after any
	// photo). An error from the action is logged, never mission-fatal.
	Action Action
}

// Deg is a convenience for populating Waypoint.Heading inline.
func Deg(d float64) *float64 { return &d }

// Action is a custom per-waypoint step. It receives the live vehicle handle
// and the executing planner; it must confine failures to its error return.
type Action interface {
	Execute(d *drone.Drone, p *Planner) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(d *drone.Drone, p *Planner) error

func (f ActionFunc) Execute(d *drone.Drone, p *Planner) error { return f(d, p) }
