// grid.go

// This file contains the boustrophedon grid flight pattern used for
// photogrammetry sweeps over an area.

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
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/DanielTantsyura/real-estate-drone/drone"
	"github.com/DanielTantsyura/real-estate-drone/mission"
)

// minPhotoSpacingCm is the closest two photo positions may be.
const minPhotoSpacingCm = 10

// GridConfig parameterizes a Size×Size boustrophedon sweep at a fixed
// height, with photo density derived from the target image overlap.
type GridConfig struct {
	Size    int     // grid points per side
	Spacing int     // distance between grid points, cm
	Height  int     // flight height above launch, cm
	Overlap float64 // target image overlap fraction, [0,1)
}

// PhotoSpacing is the distance between photo positions:
// max(10, round(Spacing·(1-Overlap))) cm.
func (c GridConfig) PhotoSpacing() int {
	s := int(math.Round(float64(c.Spacing) * (1 - c.Overlap)))
	if s < minPhotoSpacingCm {
		s = minPhotoSpacingCm
	}
	return s
}

// PhotosPerCell is how many photo positions fit along each side of one
// grid cell: max(1, floor(Spacing/PhotoSpacing)).
func (c GridConfig) PhotosPerCell() int {
	n := c.Spacing / c.PhotoSpacing()
	if n < 1 {
		n = 1
	}
	return n
}

// GridWaypoints expands the configuration into the ordered waypoint list a
// planner would fly: grid intersections in boustrophedon order, one photo
// each. Rows advance to the right (y), columns along the launch heading (x).
func GridWaypoints(cfg GridConfig) []mission.Waypoint {
	var wps []mission.Waypoint
	for row := 0; row < cfg.Size; row++ {
		for k := 0; k < cfg.Size; k++ {
			col := k
			if row%2 == 1 {
				col = cfg.Size - 1 - k
			}
			wps = append(wps, mission.Waypoint{
				X:         float64(col * cfg.Spacing),
				Y:         float64(row * cfg.Spacing),
				Z:         float64(cfg.Height),
				TakePhoto: true,
			})
		}
	}
	return wps
}

// GridMission flies the grid pattern directly with sideways/backward motion
// primitives, never yawing. The photogrammetry pipeline wants a constant
// camera orientation across the sweep.
type GridMission struct {
	*mission.Controller
	Config     GridConfig
	MinBattery int

	photos int
}

// NewGridMission builds a grid mission over an existing controller.
func NewGridMission(ctrl *mission.Controller, cfg GridConfig) *GridMission {
	return &GridMission{Controller: ctrl, Config: cfg, MinBattery: mission.DefaultMinBattery}
}

// Photos returns the number of photo captures made during the last run.
func (m *GridMission) Photos() int { return m.photos }

// Execute flies the full grid mission: connect, battery precheck, video on,
// takeoff, sweep, return to origin, land. Failures while airborne trigger a
// best-effort landing; disconnect always runs.
func (m *GridMission) Execute(ctx context.Context) (mission.Outcome, error) {
	if m.Config.Size < 1 {
		return mission.OutcomeFailed, fmt.Errorf("grid: need at least a 1x1 grid, got %d", m.Config.Size)
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

func (m *GridMission) fly(ctx context.Context) error {
	cfg := m.Config
	d := m.Drone
	m.photos = 0

	log.Printf("grid %dx%d, spacing %dcm, overlap %.0f%%, photo spacing %dcm, %d photos per cell",
		cfg.Size, cfg.Size, cfg.Spacing, cfg.Overlap*100, cfg.PhotoSpacing(), cfg.PhotosPerCell())

	if err := nonFatal(d.MoveUp(cfg.Height)); err != nil {
		return err
	}

	// position tracked in cm relative to the first grid point
	var curX, curY int

	for row := 0; row < cfg.Size; row++ {
		reverse := row%2 == 1
		for k := 0; k < cfg.Size; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			col := k
			if reverse {
				col = cfg.Size - 1 - k
			}
			x, y := col*cfg.Spacing, row*cfg.Spacing

			switch {
			case row == 0 && k == 0:
				// first grid point: move directly by its absolute offset
				if err := nonFatal(d.MoveForward(x)); err != nil {
					return err
				}
				if err := nonFatal(d.MoveRight(y)); err != nil {
					return err
				}
			case k == 0:
				// start of a new row: one spacing sideways
				if err := nonFatal(d.MoveRight(cfg.Spacing)); err != nil {
					return err
				}
			case reverse:
				if err := nonFatal(d.MoveBack(cfg.Spacing)); err != nil {
					return err
				}
			default:
				if err := nonFatal(d.MoveForward(cfg.Spacing)); err != nil {
					return err
				}
			}
			curX, curY = x, y

			if err := m.photographCell(row, col, x, y); err != nil {
				return err
			}
		}
	}

	log.Printf("grid pattern completed, %d photos captured", m.photos)

	// move directly back over the launch point
	if err := nonFatal(d.MoveBack(curX)); err != nil {
		return err
	}
	if err := nonFatal(d.MoveLeft(curY)); err != nil {
		return err
	}

	return nonFatal(d.Land())
}

// photographCell captures the photos for one grid intersection: a single
// shot when one photo per cell suffices, otherwise a raster of micro-steps
// within the cell, retraced exactly so the sweep resumes at the
// intersection.
func (m *GridMission) photographCell(row, col, x, y int) error {
	cfg := m.Config
	d := m.Drone
	per := cfg.PhotosPerCell()

	if per == 1 {
		m.capture(row, col, x, y)
		return nil
	}

	micro := cfg.PhotoSpacing()
	span := (per - 1) * micro
	for i := 0; i < per; i++ {
		if i > 0 {
			if err := nonFatal(d.MoveForward(micro)); err != nil {
				return err
			}
			if err := nonFatal(d.MoveLeft(span)); err != nil {
				return err
			}
		}
		for j := 0; j < per; j++ {
			if j > 0 {
				if err := nonFatal(d.MoveRight(micro)); err != nil {
					return err
				}
			}
			m.capture(row, col, x+i*micro, y+j*micro)
		}
	}
	// reverse the accumulated micro-displacement
	if err := nonFatal(d.MoveBack(span)); err != nil {
		return err
	}
	return nonFatal(d.MoveLeft(span))
}

func (m *GridMission) capture(row, col, x, y int) {
	label := fmt.Sprintf("grid/r%d_c%d_x%d_y%d", row+1, col+1, x, y)
	if _, err := m.TakePhoto(label); err != nil {
		log.Printf("error capturing photo: %v", err)
		return
	}
	m.photos++
	log.Printf("photo %d captured at position (%d, %d)", m.photos, row+1, col+1)
}

// nonFatal absorbs driver-level command failures (they are logged and the
// pattern continues) while passing through state violations and anything
// else that must abort the flight.
func nonFatal(err error) error {
	if err == nil {
		return nil
	}
	var ce *drone.CommandError
	if errors.As(err, &ce) {
		log.Printf("command failed: %v", ce)
		return nil
	}
	return err
}
