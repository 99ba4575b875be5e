// controller.go

// This file contains the base mission controller: a thin lifecycle wrapper
// plus photo-directory bookkeeping, embedded by concrete mission types.

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
	"log"
	"os"
	"path/filepath"

	"github.com/DanielTantsyura/real-estate-drone/drone"
)

// Mission is a runnable flight. The planner and the pattern missions all
// implement it.
type Mission interface {
	Execute(ctx context.Context) (Outcome, error)
}

// Controller is the base for concrete mission types: it owns the vehicle
// handle and the photo directory layout, and forwards the lifecycle calls.
type Controller struct {
	Drone *drone.Drone

	PhotoDir        string
	GridPhotoDir    string
	OrbitalPhotoDir string
}

// NewController builds a controller and ensures the photo directories
// exist. photoDir defaults to "photos"; the pattern subdirectories hang
// off it.
func NewController(d *drone.Drone, photoDir string) (*Controller, error) {
	if photoDir == "" {
		photoDir = "photos"
	}
	c := &Controller{
		Drone:           d,
		PhotoDir:        photoDir,
		GridPhotoDir:    filepath.Join(photoDir, "grid"),
		OrbitalPhotoDir: filepath.Join(photoDir, "orbital"),
	}
	for _, dir := range []string{c.PhotoDir, c.GridPhotoDir, c.OrbitalPhotoDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Connect connects to the vehicle (idempotent).
func (c *Controller) Connect() error { return c.Drone.Connect() }

// Disconnect tears down the vehicle link.
func (c *Controller) Disconnect() {
	if err := c.Drone.Disconnect(); err != nil {
		log.Printf("error disconnecting: %v", err)
	}
}

// TakeOff launches the vehicle.
func (c *Controller) TakeOff() error { return c.Drone.TakeOff() }

// Land lands the vehicle normally.
func (c *Controller) Land() error { return c.Drone.Land() }

// EmergencyLand brings the vehicle down as safely as possible, logging
// rather than propagating any failure.
func (c *Controller) EmergencyLand() {
	log.Printf("emergency landing initiated")
	if err := c.Drone.Abort(); err != nil {
		log.Printf("error during emergency landing: %v", err)
	}
}

// StartVideo turns the video stream on.
func (c *Controller) StartVideo() error { return c.Drone.StartVideo() }

// StopVideo turns the video stream off.
func (c *Controller) StopVideo() {
	if err := c.Drone.StopVideo(); err != nil {
		log.Printf("error stopping video stream: %v", err)
	}
}

// TakePhoto captures a labelled photo through the vehicle's camera.
func (c *Controller) TakePhoto(label string) (string, error) {
	return c.Drone.TakePhoto(label)
}

// BatteryPrecheck verifies the reported charge is at least min percent.
// Backends without battery telemetry (the simulator) pass unconditionally.
func BatteryPrecheck(d *drone.Drone, min int) error {
	level, err := d.Battery()
	if errors.Is(err, drone.ErrNoTelemetry) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("battery level: %d%%", level)
	if level < min {
		return &drone.LowBatteryError{Level: level, Min: min}
	}
	return nil
}
