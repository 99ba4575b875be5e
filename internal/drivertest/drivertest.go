// drivertest.go

// This file contains a command-recording fake backend used by tests across
// the repository.

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

// Package drivertest provides a fake drone.Driver that records every command
// it receives, for asserting on exact command sequences in tests.
package drivertest

import (
	"fmt"

	"github.com/DanielTantsyura/real-estate-drone/drone"
)

// Command is one recorded driver call.
type Command struct {
	Name string // e.g. "forward", "cw", "takeoff"
	Arg  int    // centimeters or degrees; 0 for lifecycle commands
}

func (c Command) String() string { return fmt.Sprintf("%s(%d)", c.Name, c.Arg) }

// Driver is a drone.Driver that records commands instead of flying.
// Error fields, when set, are returned by the corresponding call.
type Driver struct {
	Commands []Command

	ConnectErr   error
	TakeoffErr   error
	LandErr      error
	EmergencyErr error
	MoveErr      error // returned by every Move until cleared
	RotateErr    error

	BatteryLevel int
	BatteryErr   error // set to drone.ErrNoTelemetry to mimic the simulator

	FrameData []byte // nil means no video (drone.ErrNoVideo)

	Connected bool
}

func (d *Driver) Name() string { return "fake" }

func (d *Driver) Connect() error {
	if d.ConnectErr != nil {
		return d.ConnectErr
	}
	d.Connected = true
	return nil
}

func (d *Driver) Disconnect() error {
	d.Connected = false
	return nil
}

func (d *Driver) Takeoff() error {
	if d.TakeoffErr != nil {
		return d.TakeoffErr
	}
	d.Commands = append(d.Commands, Command{Name: "takeoff"})
	return nil
}

func (d *Driver) Land() error {
	if d.LandErr != nil {
		return d.LandErr
	}
	d.Commands = append(d.Commands, Command{Name: "land"})
	return nil
}

func (d *Driver) Emergency() error {
	if d.EmergencyErr != nil {
		return d.EmergencyErr
	}
	d.Commands = append(d.Commands, Command{Name: "emergency"})
	return nil
}

func (d *Driver) Move(dir drone.Direction, cm int) error {
	if d.MoveErr != nil {
		return d.MoveErr
	}
	d.Commands = append(d.Commands, Command{Name: dir.String(), Arg: cm})
	return nil
}

func (d *Driver) Rotate(deg int, clockwise bool) error {
	if d.RotateErr != nil {
		return d.RotateErr
	}
	name := "ccw"
	if clockwise {
		name = "cw"
	}
	d.Commands = append(d.Commands, Command{Name: name, Arg: deg})
	return nil
}

func (d *Driver) StreamOn() error {
	d.Commands = append(d.Commands, Command{Name: "streamon"})
	return nil
}

func (d *Driver) StreamOff() error {
	d.Commands = append(d.Commands, Command{Name: "streamoff"})
	return nil
}

func (d *Driver) Battery() (int, error) {
	if d.BatteryErr != nil {
		return 0, d.BatteryErr
	}
	return d.BatteryLevel, nil
}

func (d *Driver) Frame() ([]byte, error) {
	if d.FrameData == nil {
		return nil, drone.ErrNoVideo
	}
	return d.FrameData, nil
}

// Moves returns only the recorded translation commands.
func (d *Driver) Moves() []Command { return d.filter("forward", "back", "left", "right", "up", "down") }

// Rotations returns only the recorded rotation commands.
func (d *Driver) Rotations() []Command { return d.filter("cw", "ccw") }

func (d *Driver) filter(names ...string) []Command {
	var out []Command
	for _, c := range d.Commands {
		for _, n := range names {
			if c.Name == n {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
