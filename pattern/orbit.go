// orbit.go

// This file contains the orbital flight pattern: circling a subject at a
// fixed radius, photographing it from evenly spaced angles.

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
	"context"
	"fmt"
	"log"
	"math"

	"github.com/DanielTantsyura/real-estate-drone/mission"
)

// OrbitConfig parameterizes a circular orbit around the launch point.
type OrbitConfig struct {
	Radius       int // orbit radius, cm
	Points       int // photo positions around the orbit (≥1)
	CenterHeight int // flight height above launch, cm
}

// AngleStep is the angular spacing between photo positions, degrees.
func (c OrbitConfig) AngleStep() float64 { return 360 / float64(c.Points) }

// TravelDistance is how far the vehicle flies between consecutive orbit
// positions. The chord length 2·r·sin(step/2) is used rather than the arc
// length: the vehicle flies a straight line between samples, and the chord
// stays exact as the step angle grows where the arc increasingly overshoots.
func (c OrbitConfig) TravelDistance() int {
	half := c.AngleStep() / 2 * math.Pi / 180
	return int(math.Round(2 * float64(c.Radius) * math.Sin(half)))
}

// OrbitWaypoints expands the configuration into the waypoint list a planner
// would fly: the orbit positions counter-clockwise from (radius, 0), each
// facing the center with a photo.
func OrbitWaypoints(cfg OrbitConfig) []mission.Waypoint {
	wps := make([]mission.Waypoint, 0, cfg.Points)
	for i := 0; i < cfg.Points; i++ {
		theta := float64(i) * cfg.AngleStep() * math.Pi / 180
		deg := float64(i) * cfg.AngleStep()
		wps = append(wps, mission.Waypoint{
			X:         float64(cfg.Radius) * math.Cos(theta),
			Y:         float64(cfg.Radius) * math.Sin(theta),
			Z:         float64(cfg.CenterHeight),
			Heading:   mission.Deg(math.Mod(deg+180, 360)),
			TakePhoto: true,
		})
	}
	return wps
}

// OrbitalMission flies the orbit directly: out to the radius, turn to face
// the center, then hop chord by chord (yaw to the tangent, fly, yaw back
// to the center), photographing at every position.
type OrbitalMission struct {
	*mission.Controller
	Config     OrbitConfig
	MinBattery int

	photos int
}

// NewOrbitalMission builds an orbital mission over an existing controller.
func NewOrbitalMission(ctrl *mission.Controller, cfg OrbitConfig) *OrbitalMission {
	return &OrbitalMission{Controller: ctrl, Config: cfg, MinBattery: mission.DefaultMinBattery}
}

// Photos returns the number of photo captures made during the last run.
func (m *OrbitalMission) Photos() int { return m.photos }

// Execute flies the full orbital mission with the same bracket as the grid
// mission: connect, precheck, video, takeoff, orbit, return, land.
func (m *OrbitalMission) Execute(ctx context.Context) (mission.Outcome, error) {
	if m.Config.Points < 1 {
		return mission.OutcomeFailed, fmt.Errorf("orbit: need at least 1 point, got %d", m.Config.Points)
	}
	if err := m.Connect(); err != nil {
		return mission.OutcomeFailed, err
	}
	defer m.Disconnect()

	if err := mission.BatteryPrecheck(m.Drone, m.MinBattery); err != nil {
		return mission.OutcomeFailed, err
	}

	if err := m.StartVideo(); err != nil {
		log.Printf("could not start video stream: %v", err)
	} else {
		defer m.StopVideo()
	}

	if err := m.TakeOff(); err != nil {
		return mission.OutcomeFailed, err
	}

	if err := m.fly(ctx); err != nil {
		m.EmergencyLand()
		if ctx.Err() != nil {
			return mission.OutcomeInterrupted, err
		}
		return mission.OutcomeError, err
	}
	return mission.OutcomeOK, nil
}

func (m *OrbitalMission) fly(ctx context.Context) error {
	cfg := m.Config
	d := m.Drone
	m.photos = 0

	log.Printf("orbit radius %dcm, %d points, height %dcm, %dcm per hop",
		cfg.Radius, cfg.Points, cfg.CenterHeight, cfg.TravelDistance())

	if err := nonFatal(d.MoveUp(cfg.CenterHeight)); err != nil {
		return err
	}

	// out to the orbit, then about-face toward the subject
	if err := nonFatal(d.MoveForward(cfg.Radius)); err != nil {
		return err
	}
	if err := nonFatal(d.RotateClockwise(180)); err != nil {
		return err
	}
	m.capture(0)

	for i := 1; i < cfg.Points; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		angle := float64(i) * cfg.AngleStep()
		log.Printf("orbit position %d/%d (%.0f°)...", i+1, cfg.Points, angle)

		// face the tangent, hop, face the center again
		if err := nonFatal(d.RotateCounterClockwise(90)); err != nil {
			return err
		}
		if err := nonFatal(d.MoveForward(cfg.TravelDistance())); err != nil {
			return err
		}
		if err := nonFatal(d.RotateClockwise(90)); err != nil {
			return err
		}
		m.capture(angle)
	}

	log.Printf("orbital pattern completed, %d photos captured", m.photos)

	// facing the center, so the outward leg reverses with a single move
	if err := nonFatal(d.MoveForward(cfg.Radius)); err != nil {
		return err
	}

	return nonFatal(d.Land())
}

func (m *OrbitalMission) capture(angle float64) {
	label := fmt.Sprintf("orbital/%03.0f", angle)
	if _, err := m.TakePhoto(label); err != nil {
		log.Printf("error capturing orbital photo: %v", err)
		return
	}
	m.photos++
	log.Printf("photo %d captured at angle %.0f°", m.photos, angle)
}
