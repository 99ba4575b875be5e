// errors.go

// This file defines the error taxonomy shared by both vehicle backends.

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
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when a command is issued before Connect()
	// has succeeded (or after Disconnect()).
	ErrNotConnected = errors.New("drone: not connected")

	// ErrNotFlying is returned when a motion or rotation command is issued
	// while the vehicle is on the ground.
	ErrNotFlying = errors.New("drone: not airborne")

	// ErrNoTelemetry is returned by Battery() on backends that report no
	// telemetry (the simulator).
	ErrNoTelemetry = errors.New("drone: backend provides no telemetry")

	// ErrNoVideo is returned by Frame() on backends that provide no video
	// frames, or before the stream has been started.
	ErrNoVideo = errors.New("drone: no video frame available")
)

// CommandError wraps a failure reported by the selected driver for a single
// primitive. It is non-fatal at this layer; callers decide whether to treat
// it as mission-fatal.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("drone: command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// LowBatteryError reports a failed pre-takeoff battery check.
type LowBatteryError struct {
	Level int // reported charge, percent
	Min   int // required minimum, percent
}

func (e *LowBatteryError) Error() string {
	return fmt.Sprintf("drone: battery %d%% below mission minimum %d%%", e.Level, e.Min)
}
