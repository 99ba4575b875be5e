// driver.go

// This file defines the capability interface implemented by the two
// vehicle backends (physical Tello and simulator).

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

// Direction identifies one of the six translation axes.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Driver is the capability interface a vehicle backend must provide.
// The two implementations accept different command vocabularies; the
// Drone layer normalizes units (centimeters, degrees) before calling.
//
// Battery returns ErrNoTelemetry and Frame returns ErrNoVideo on backends
// that do not support them.
type Driver interface {
	Name() string

	Connect() error
	Disconnect() error

	Takeoff() error
	Land() error
	Emergency() error

	Move(dir Direction, cm int) error
	Rotate(deg int, clockwise bool) error

	StreamOn() error
	StreamOff() error

	Battery() (int, error)
	Frame() ([]byte, error)
}
