// planner.go

// This file contains the waypoint mission planner: it executes an ordered
// list of waypoints against the vehicle, dead-reckoning the pose from the
// commands it issues, and finishes with a return-to-launch.

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

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/DanielTantsyura/real-estate-drone/drone"
)

// returnDeadZoneCm is the launch-point distance below which the final
// return translate is skipped, avoiding a spurious near-zero move.
const returnDeadZoneCm = 20

// DefaultMinBattery is the pre-takeoff charge threshold used when the
// caller does not set one.
const DefaultMinBattery = 30

// State is the dead-reckoned vehicle pose, updated only as a side effect of
// successfully issued commands. It is never read back from the vehicle.
type State struct {
	X, Y, Z    float64 // centimeters, launch frame
	Heading    float64 // degrees, always in [0,360)
	Flying     bool
	PhotoCount int
}

// Outcome classifies how a mission ended, for exit-code style reporting.
type Outcome int

const (
	OutcomeOK          Outcome = iota // mission completed
	OutcomeFailed                     // mission failed cleanly before takeoff
	OutcomeInterrupted                // operator interrupt while airborne
	OutcomeError                      // exception path while airborne
)

// ExitCode maps an Outcome to a process exit code.
func (o Outcome) ExitCode() int { return int(o) }

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFailed:
		return "failed"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Camera captures a labelled photo, returning the saved path ("" when the
// backend has no camera). *drone.Drone satisfies Camera.
type Camera interface {
	TakePhoto(label string) (string, error)
}

// Planner holds an ordered mission and executes it step by step.
type Planner struct {
	// Camera receives per-waypoint photo captures. Defaults to the drone
	// itself; set nil to disable photos entirely.
	Camera Camera

	// MinBattery aborts the mission before takeoff when the reported
	// charge is below it. Ignored on backends without battery telemetry.
	MinBattery int

	drone     *drone.Drone
	waypoints []Waypoint
	state     State
}

// NewPlanner builds a planner for the given vehicle.
func NewPlanner(d *drone.Drone) *Planner {
	return &Planner{drone: d, Camera: d, MinBattery: DefaultMinBattery}
}

// AddWaypoint appends a waypoint to the mission; insertion order is the
// execution order. Returns the planner for chaining.
func (p *Planner) AddWaypoint(wp Waypoint) *Planner {
	p.waypoints = append(p.waypoints, wp)
	log.Printf("added waypoint: (%.0f, %.0f, %.0f), heading: %v",
		wp.X, wp.Y, wp.Z, headingString(wp.Heading))
	return p
}

// Clear removes all waypoints.
func (p *Planner) Clear() *Planner {
	p.waypoints = nil
	return p
}

// Waypoints returns a copy of the enqueued mission.
func (p *Planner) Waypoints() []Waypoint {
	out := make([]Waypoint, len(p.waypoints))
	copy(out, p.waypoints)
	return out
}

// State returns the current dead-reckoned pose.
func (p *Planner) State() State { return p.state }

// Drone returns the vehicle handle, for custom actions.
func (p *Planner) Drone() *drone.Drone { return p.drone }

// Execute flies the mission: connect (idempotent), battery precheck where
// telemetry exists, takeoff, the waypoint loop, return-to-launch, land.
// Any failure while airborne triggers a best-effort landing; disconnect is
// always attempted. The ctx cancels between commands, not mid-command.
func (p *Planner) Execute(ctx context.Context) (Outcome, error) {
	if len(p.waypoints) == 0 {
		return OutcomeFailed, errors.New("mission: no waypoints defined")
	}

	if err := p.drone.Connect(); err != nil {
		return OutcomeFailed, err
	}
	defer func() {
		if err := p.drone.Disconnect(); err != nil {
			log.Printf("error disconnecting: %v", err)
		}
	}()

	if outcome, err := p.precheck(); err != nil {
		return outcome, err
	}

	if p.Camera != nil {
		if err := p.drone.StartVideo(); err != nil {
			log.Printf("could not start video stream: %v", err)
		} else {
			defer func() {
				if err := p.drone.StopVideo(); err != nil {
					log.Printf("error stopping video stream: %v", err)
				}
			}()
		}
	}

	if err := p.drone.TakeOff(); err != nil {
		return OutcomeFailed, err
	}
	p.state.Flying = true

	if err := p.run(ctx); err != nil {
		p.emergencyLand()
		if ctx.Err() != nil {
			log.Printf("mission interrupted by operator")
			return OutcomeInterrupted, err
		}
		log.Printf("error during mission: %v", err)
		return OutcomeError, err
	}

	log.Printf("mission completed, %d photos captured", p.state.PhotoCount)
	return OutcomeOK, nil
}

// precheck verifies the battery charge before takeoff. Backends without
// battery telemetry (the simulator) skip the check.
func (p *Planner) precheck() (Outcome, error) {
	if err := BatteryPrecheck(p.drone, p.MinBattery); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeOK, nil
}

// run executes the waypoint loop, the return-to-launch and the landing.
func (p *Planner) run(ctx context.Context) error {
	for i, wp := range p.waypoints {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("navigating to waypoint %d/%d...", i+1, len(p.waypoints))
		if err := p.flyTo(i, wp); err != nil {
			return err
		}
		log.Printf("waypoint %d reached", i+1)
	}

	log.Printf("mission waypoints done, returning to launch point...")
	if err := p.returnToLaunch(ctx); err != nil {
		return err
	}

	if err := p.drone.Land(); err != nil {
		return err
	}
	p.state.Flying = false
	log.Printf("landed")
	return nil
}

// flyTo navigates to one waypoint: altitude first, then rotate toward the
// target, translate, and finally assume any explicit heading. Each command
// updates the dead-reckoned state only on success; a driver-level command
// failure is logged and the mission continues.
func (p *Planner) flyTo(index int, wp Waypoint) error {
	// altitude change first (safer)
	if dz := wp.Z - p.state.Z; dz != 0 {
		var err error
		if dz > 0 {
			err = p.drone.MoveUp(roundCm(dz))
		} else {
			err = p.drone.MoveDown(roundCm(-dz))
		}
		if err != nil {
			if fatal(err) {
				return err
			}
			log.Printf("height adjustment failed: %v", err)
		} else {
			p.state.Z = wp.Z
		}
	}

	// rotate toward the target and translate
	dx, dy := wp.X-p.state.X, wp.Y-p.state.Y
	if dx != 0 || dy != 0 {
		target := headingTo(dx, dy)
		if err := p.rotateTo(target); err != nil {
			return err
		}
		distance := math.Round(math.Hypot(dx, dy))
		if err := p.drone.MoveForward(int(distance)); err != nil {
			if fatal(err) {
				return err
			}
			log.Printf("translate failed: %v", err)
		} else {
			p.state.X, p.state.Y = wp.X, wp.Y
		}
	}

	// explicit heading override
	if wp.Heading != nil {
		if err := p.rotateTo(normalizeHeading(*wp.Heading)); err != nil {
			return err
		}
	}

	if wp.TakePhoto && p.Camera != nil {
		if _, err := p.Camera.TakePhoto(fmt.Sprintf("waypoint_%d", index+1)); err != nil {
			log.Printf("error taking photo: %v", err)
		} else {
			p.state.PhotoCount++
		}
	}

	if wp.Action != nil {
		log.Printf("executing custom action...")
		if err := wp.Action.Execute(p.drone, p); err != nil {
			log.Printf("error executing custom action: %v", err)
		}
	}
	return nil
}

// rotateTo issues the minimal signed rotation from the current heading to
// target and updates the heading bookkeeping. No command is issued when the
// rotation is zero.
func (p *Planner) rotateTo(target float64) error {
	rotation := minimalRotation(p.state.Heading, target)
	if rotation == 0 {
		p.state.Heading = target
		return nil
	}
	log.Printf("rotating %.0f° to heading %.0f°...", rotation, target)
	var err error
	if rotation > 0 {
		err = p.drone.RotateClockwise(roundCm(rotation))
	} else {
		err = p.drone.RotateCounterClockwise(roundCm(-rotation))
	}
	if err != nil {
		if fatal(err) {
			return err
		}
		log.Printf("rotation failed: %v", err)
		return nil
	}
	p.state.Heading = target
	return nil
}

// returnToLaunch faces the origin and translates home, unless already
// within the dead zone.
func (p *Planner) returnToLaunch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	distance := math.Hypot(p.state.X, p.state.Y)
	if distance <= returnDeadZoneCm {
		return nil
	}
	if err := p.rotateTo(headingTo(-p.state.X, -p.state.Y)); err != nil {
		return err
	}
	log.Printf("moving home: %.0fcm...", distance)
	if err := p.drone.MoveForward(int(math.Round(distance))); err != nil {
		if fatal(err) {
			return err
		}
		log.Printf("return translate failed: %v", err)
		return nil
	}
	p.state.X, p.state.Y = 0, 0
	return nil
}

// emergencyLand attempts a landing after a mission failure, swallowing any
// secondary failure so the disconnect cleanup still runs.
func (p *Planner) emergencyLand() {
	if err := p.drone.Land(); err != nil {
		log.Printf("could not execute emergency landing: %v", err)
		return
	}
	p.state.Flying = false
	log.Printf("emergency landing executed")
}

// fatal reports whether err must abort the mission. Driver-level command
// failures are non-fatal; state violations and everything else are fatal.
func fatal(err error) bool {
	var ce *drone.CommandError
	return !errors.As(err, &ce)
}

func roundCm(v float64) int { return int(math.Round(v)) }

func headingString(h *float64) string {
	if h == nil {
		return "none"
	}
	return fmt.Sprintf("%.0f", *h)
}
