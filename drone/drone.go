// drone.go

// This file contains the semantic flight command API presented to the
// mission layer, independent of which backend is driving the vehicle.

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
	"log"
	"sync"
	"time"
)

// Config selects and parameterizes the vehicle backend. It is read once at
// construction; nothing in this package consults ambient state afterwards.
type Config struct {
	Simulator    bool   // drive the simulator instead of a physical vehicle
	SimulatorURL string // websocket endpoint of the simulator
	SimulatorKey string // session key identifying the simulated vehicle

	Addr string // physical vehicle address, host:port (default 192.168.10.1:8889)

	DefaultSpeed  int  // cruise speed in cm/s, sent to the physical vehicle on connect
	EmergencyStop bool // cut motors on Abort() instead of landing (physical only)

	PhotoDir string // where captured photos are written

	Timing TimingPolicy
}

// Recorder receives a copy of every successfully issued command and every
// saved photo. Implementations must not fail the flight; errors are theirs
// to log and swallow.
type Recorder interface {
	RecordCommand(name string, arg int)
	RecordPhoto(path string)
}

// Drone presents one semantic motion/rotation/lifecycle interface over the
// selected Driver. Every primitive validates connection (and, for motion,
// airborne) state, forwards to the driver, and applies the configured
// settle delay.
type Drone struct {
	cfg    Config
	driver Driver

	mu         sync.Mutex
	connected  bool
	flying     bool
	photoCount int
	recorder   Recorder

	sleep func(time.Duration) // indirection for tests
}

// New builds a Drone for the backend named by cfg. The driver choice is
// fixed for the lifetime of the Drone.
func New(cfg Config) *Drone {
	var drv Driver
	if cfg.Simulator {
		drv = newSimDriver(cfg.SimulatorURL, cfg.SimulatorKey)
	} else {
		drv = newTelloDriver(cfg.Addr, cfg.DefaultSpeed)
	}
	return NewWithDriver(cfg, drv)
}

// NewWithDriver builds a Drone over an explicit driver. Used by tests and
// by callers supplying their own backend.
func NewWithDriver(cfg Config, drv Driver) *Drone {
	return &Drone{cfg: cfg, driver: drv, sleep: time.Sleep}
}

// SetRecorder attaches a command/photo recorder. Pass nil to detach.
func (d *Drone) SetRecorder(r Recorder) {
	d.mu.Lock()
	d.recorder = r
	d.mu.Unlock()
}

// SetSleepFunc replaces the function used for settle delays, so tests and
// embedding simulations can run missions without real-time pauses. Pass nil
// to restore time.Sleep.
func (d *Drone) SetSleepFunc(f func(time.Duration)) {
	if f == nil {
		f = time.Sleep
	}
	d.sleep = f
}

// Driver returns the backend behind this Drone.
func (d *Drone) Driver() Driver { return d.driver }

// SimulatorMode reports whether the simulated backend was selected.
func (d *Drone) SimulatorMode() bool { return d.cfg.Simulator }

// Connected reports whether Connect() has succeeded.
func (d *Drone) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Flying reports whether the vehicle is believed airborne.
func (d *Drone) Flying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flying
}

// Connect establishes the backend link. Calling Connect on an already
// connected Drone is a no-op, so mission code may connect unconditionally.
func (d *Drone) Connect() error {
	d.mu.Lock()
	if d.connected {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	log.Printf("connecting to %s...", d.driver.Name())
	if err := d.driver.Connect(); err != nil {
		return err
	}
	d.mu.Lock()
	d.connected = true
	d.mu.Unlock()
	log.Printf("connected to %s", d.driver.Name())
	return nil
}

// Disconnect tears down the backend link. Safe to call at any time,
// including after a failed mission.
func (d *Drone) Disconnect() error {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return nil
	}
	d.connected = false
	d.flying = false
	d.mu.Unlock()

	log.Printf("disconnecting from %s...", d.driver.Name())
	return d.driver.Disconnect()
}

// Battery returns the reported charge percentage, or ErrNoTelemetry on
// backends without battery telemetry.
func (d *Drone) Battery() (int, error) {
	if !d.Connected() {
		return 0, ErrNotConnected
	}
	return d.driver.Battery()
}

// TakeOff launches the vehicle and waits out the stabilization delay.
func (d *Drone) TakeOff() error {
	if !d.Connected() {
		return ErrNotConnected
	}
	log.Printf("taking off...")
	if err := d.driver.Takeoff(); err != nil {
		return &CommandError{Command: "takeoff", Err: err}
	}
	d.mu.Lock()
	d.flying = true
	d.mu.Unlock()
	d.record("takeoff", 0)
	d.settle(settleTakeoff)
	return nil
}

// Land brings the vehicle down normally.
func (d *Drone) Land() error {
	if !d.Connected() {
		return ErrNotConnected
	}
	log.Printf("landing...")
	if err := d.driver.Land(); err != nil {
		return &CommandError{Command: "land", Err: err}
	}
	d.mu.Lock()
	d.flying = false
	d.mu.Unlock()
	d.record("land", 0)
	d.settle(settleLand)
	return nil
}

// Emergency cuts the motors immediately.
func (d *Drone) Emergency() error {
	if !d.Connected() {
		return ErrNotConnected
	}
	log.Printf("EMERGENCY STOP - cutting motors")
	if err := d.driver.Emergency(); err != nil {
		return &CommandError{Command: "emergency", Err: err}
	}
	d.mu.Lock()
	d.flying = false
	d.mu.Unlock()
	d.record("emergency", 0)
	return nil
}

// Abort brings the vehicle down as safely as the configuration allows:
// motor cut-off where enabled on the physical vehicle, a normal landing
// otherwise. The simulator has no motor cut-off, so it always lands.
func (d *Drone) Abort() error {
	if d.cfg.Simulator || !d.cfg.EmergencyStop {
		return d.Land()
	}
	return d.Emergency()
}

// MoveForward translates the vehicle forward by cm centimeters.
func (d *Drone) MoveForward(cm int) error { return d.move(Forward, cm) }

// MoveBack translates the vehicle backward by cm centimeters.
func (d *Drone) MoveBack(cm int) error { return d.move(Back, cm) }

// MoveLeft translates the vehicle left by cm centimeters.
func (d *Drone) MoveLeft(cm int) error { return d.move(Left, cm) }

// MoveRight translates the vehicle right by cm centimeters.
func (d *Drone) MoveRight(cm int) error { return d.move(Right, cm) }

// MoveUp climbs by cm centimeters.
func (d *Drone) MoveUp(cm int) error { return d.move(Up, cm) }

// MoveDown descends by cm centimeters.
func (d *Drone) MoveDown(cm int) error { return d.move(Down, cm) }

// RotateClockwise yaws right by deg degrees.
func (d *Drone) RotateClockwise(deg int) error { return d.rotate(deg, true) }

// RotateCounterClockwise yaws left by deg degrees.
func (d *Drone) RotateCounterClockwise(deg int) error { return d.rotate(deg, false) }

// StartVideo turns the video stream on.
func (d *Drone) StartVideo() error {
	if !d.Connected() {
		return ErrNotConnected
	}
	if err := d.driver.StreamOn(); err != nil {
		return &CommandError{Command: "streamon", Err: err}
	}
	d.record("streamon", 0)
	d.settle(settleStream)
	return nil
}

// StopVideo turns the video stream off.
func (d *Drone) StopVideo() error {
	if !d.Connected() {
		return ErrNotConnected
	}
	if err := d.driver.StreamOff(); err != nil {
		return &CommandError{Command: "streamoff", Err: err}
	}
	d.record("streamoff", 0)
	return nil
}

func (d *Drone) move(dir Direction, cm int) error {
	if cm <= 0 {
		return nil
	}
	if err := d.checkAirborne(); err != nil {
		return err
	}
	if err := d.driver.Move(dir, cm); err != nil {
		return &CommandError{Command: "move_" + dir.String(), Err: err}
	}
	d.record("move_"+dir.String(), cm)
	d.settle(settleMove)
	return nil
}

func (d *Drone) rotate(deg int, clockwise bool) error {
	if deg <= 0 {
		return nil
	}
	name := "rotate_counter_clockwise"
	if clockwise {
		name = "rotate_clockwise"
	}
	if err := d.checkAirborne(); err != nil {
		return err
	}
	if err := d.driver.Rotate(deg, clockwise); err != nil {
		return &CommandError{Command: name, Err: err}
	}
	d.record(name, deg)
	d.settle(settleRotate)
	return nil
}

func (d *Drone) checkAirborne() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return ErrNotConnected
	}
	if !d.flying {
		return ErrNotFlying
	}
	return nil
}

func (d *Drone) record(name string, arg int) {
	d.mu.Lock()
	r := d.recorder
	d.mu.Unlock()
	if r != nil {
		r.RecordCommand(name, arg)
	}
}

func (d *Drone) settle(nominal time.Duration) {
	d.sleep(d.cfg.Timing.Delay(nominal))
}
