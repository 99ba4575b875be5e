// main.go

// This file contains the fly command: it assembles a vehicle, a mission and
// a flight log from flags and runs the mission to completion.

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

// The fly command runs a survey mission against a physical vehicle or the
// browser simulator.
//
//	fly -pattern grid -grid-size 3 -spacing 100 -height 150 -overlap 0.5
//	fly -sim -sim-url ws://localhost:8080/ws -pattern orbit -radius 200 -points 8
//
// The exit code reports the outcome: 0 completed, 1 failed before takeoff,
// 2 interrupted by the operator, 3 error while airborne.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanielTantsyura/real-estate-drone/drone"
	"github.com/DanielTantsyura/real-estate-drone/flightlog"
	"github.com/DanielTantsyura/real-estate-drone/mission"
	"github.com/DanielTantsyura/real-estate-drone/pattern"
)

var (
	sim    = flag.Bool("sim", false, "fly the browser simulator instead of a physical vehicle")
	simURL = flag.String("sim-url", "ws://localhost:8080/ws", "simulator websocket endpoint")
	simKey = flag.String("sim-key", "", "simulator session key")

	addr = flag.String("addr", "", "physical vehicle address (host:port)")

	patternName = flag.String("pattern", "square", "mission pattern: square, grid, orbit or spiral")
	fast        = flag.Bool("fast", false, "shorten settle delays (simulator only, vehicle physics do not hurry)")
	speed       = flag.Int("speed", 50, "cruise speed, cm/s")
	emergency   = flag.Bool("emergency-stop", false, "cut motors instead of landing on abort (physical only)")
	minBattery  = flag.Int("min-battery", mission.DefaultMinBattery, "abort before takeoff below this charge percentage")

	side = flag.Int("side", 80, "square pattern: side length, cm")

	gridSize = flag.Int("grid-size", 3, "grid pattern: points per side")
	spacing  = flag.Int("spacing", 100, "grid pattern: point spacing, cm")
	overlap  = flag.Float64("overlap", 0.5, "grid pattern: target image overlap fraction")

	radius = flag.Int("radius", 200, "orbit/spiral pattern: radius, cm")
	points = flag.Int("points", 8, "orbit pattern: photo positions")
	turns  = flag.Int("turns", 2, "spiral pattern: revolutions")

	height   = flag.Int("height", 100, "flight height above launch, cm")
	photoDir = flag.String("photo-dir", "photos", "directory for captured photos")
	logPath  = flag.String("log", "", "sqlite flight log path (empty disables logging)")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run holds all the deferred cleanup (flight log close, signal release);
// main exits only after it returns.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := drone.New(drone.Config{
		Simulator:     *sim,
		SimulatorURL:  *simURL,
		SimulatorKey:  *simKey,
		Addr:          *addr,
		DefaultSpeed:  *speed,
		EmergencyStop: *emergency,
		PhotoDir:      *photoDir,
		Timing:        drone.TimingPolicy{Fast: *fast},
	})

	if *logPath != "" {
		store, err := flightlog.Open(*logPath)
		if err != nil {
			log.Printf("could not open flight log: %v", err)
			return mission.OutcomeFailed.ExitCode()
		}
		defer store.Close()
		runID, err := store.StartRun(*patternName)
		if err != nil {
			log.Printf("could not start flight log run: %v", err)
			return mission.OutcomeFailed.ExitCode()
		}
		log.Printf("flight log run %s", runID)
		d.SetRecorder(store)
	}

	m, err := buildMission(d)
	if err != nil {
		log.Printf("%v", err)
		return mission.OutcomeFailed.ExitCode()
	}

	outcome, err := m.Execute(ctx)
	if err != nil {
		log.Printf("mission %s: %v", outcome, err)
	} else {
		log.Printf("mission %s", outcome)
	}
	return outcome.ExitCode()
}

// buildMission translates the pattern flags into a runnable mission.
func buildMission(d *drone.Drone) (mission.Mission, error) {
	switch *patternName {
	case "square":
		p := mission.NewPlanner(d)
		p.MinBattery = *minBattery
		s, h := float64(*side), float64(*height)
		p.AddWaypoint(mission.Waypoint{X: 0, Y: 0, Z: h, Heading: mission.Deg(0), TakePhoto: true}).
			AddWaypoint(mission.Waypoint{X: s, Y: 0, Z: h, Heading: mission.Deg(90), TakePhoto: true}).
			AddWaypoint(mission.Waypoint{X: s, Y: s, Z: h, Heading: mission.Deg(180), TakePhoto: true}).
			AddWaypoint(mission.Waypoint{X: 0, Y: s, Z: h, Heading: mission.Deg(270), TakePhoto: true}).
			AddWaypoint(mission.Waypoint{X: 0, Y: 0, Z: h, Heading: mission.Deg(0), TakePhoto: true})
		return p, nil
	case "grid":
		ctrl, err := mission.NewController(d, *photoDir)
		if err != nil {
			return nil, err
		}
		m := pattern.NewGridMission(ctrl, pattern.GridConfig{
			Size:    *gridSize,
			Spacing: *spacing,
			Height:  *height,
			Overlap: *overlap,
		})
		m.MinBattery = *minBattery
		return m, nil
	case "orbit":
		ctrl, err := mission.NewController(d, *photoDir)
		if err != nil {
			return nil, err
		}
		m := pattern.NewOrbitalMission(ctrl, pattern.OrbitConfig{
			Radius:       *radius,
			Points:       *points,
			CenterHeight: *height,
		})
		m.MinBattery = *minBattery
		return m, nil
	case "spiral":
		p := mission.NewPlanner(d)
		p.MinBattery = *minBattery
		for _, wp := range pattern.SpiralWaypoints(pattern.SpiralConfig{
			Radius:        *radius,
			Height:        *height,
			Turns:         *turns,
			PointsPerTurn: 8,
		}) {
			p.AddWaypoint(wp)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown pattern %q (want square, grid, orbit or spiral)", *patternName)
}
