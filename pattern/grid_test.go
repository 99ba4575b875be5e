// grid_test.go

// This file contains tests for the grid pattern configuration math and the
// grid mission's command sequence.

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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielTantsyura/real-estate-drone/drone"
	"github.com/DanielTantsyura/real-estate-drone/internal/drivertest"
	"github.com/DanielTantsyura/real-estate-drone/mission"
)

func newTestController(t *testing.T, drv *drivertest.Driver) *mission.Controller {
	t.Helper()
	drv.BatteryErr = drone.ErrNoTelemetry
	photoDir := t.TempDir()
	d := drone.NewWithDriver(drone.Config{Simulator: true, PhotoDir: photoDir}, drv)
	d.SetSleepFunc(func(time.Duration) {})
	ctrl, err := mission.NewController(d, photoDir)
	require.NoError(t, err)
	return ctrl
}

func TestGridConfigDerivations(t *testing.T) {
	tests := []struct {
		name        string
		cfg         GridConfig
		wantSpacing int
		wantPerCell int
	}{
		{"no overlap", GridConfig{Spacing: 100, Overlap: 0}, 100, 1},
		{"half overlap", GridConfig{Spacing: 100, Overlap: 0.5}, 50, 2},
		{"dense overlap", GridConfig{Spacing: 50, Overlap: 0.8}, 10, 5},
		{"overlap floored at 10cm", GridConfig{Spacing: 20, Overlap: 0.95}, 10, 2},
		{"tiny cells never exceed one photo", GridConfig{Spacing: 5, Overlap: 0}, 10, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantSpacing, tc.cfg.PhotoSpacing())
			assert.Equal(t, tc.wantPerCell, tc.cfg.PhotosPerCell())
		})
	}
}

func TestGridWaypointsBoustrophedonOrder(t *testing.T) {
	wps := GridWaypoints(GridConfig{Size: 3, Spacing: 100, Height: 150})
	require.Len(t, wps, 9)

	type xy struct{ x, y float64 }
	var got []xy
	for _, wp := range wps {
		assert.Equal(t, 150.0, wp.Z)
		assert.True(t, wp.TakePhoto)
		got = append(got, xy{wp.X, wp.Y})
	}
	assert.Equal(t, []xy{
		{0, 0}, {100, 0}, {200, 0}, // row 1, outbound
		{200, 100}, {100, 100}, {0, 100}, // row 2, inbound
		{0, 200}, {100, 200}, {200, 200}, // row 3, outbound
	}, got)
}

func TestGridMissionSweepsAndReturns(t *testing.T) {
	drv := &drivertest.Driver{}
	m := NewGridMission(newTestController(t, drv), GridConfig{
		Size:    2,
		Spacing: 100,
		Height:  150,
	})

	outcome, err := m.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mission.OutcomeOK, outcome)
	assert.Equal(t, 4, m.Photos())

	// camera orientation is fixed: the whole sweep is translation only
	assert.Empty(t, drv.Rotations())
	assert.Equal(t, []drivertest.Command{
		{Name: "up", Arg: 150},
		{Name: "forward", Arg: 100}, // (0,0) -> (100,0)
		{Name: "right", Arg: 100},   // row change
		{Name: "back", Arg: 100},    // (100,100) -> (0,100)
		{Name: "left", Arg: 100},    // home
	}, drv.Moves())
}

func TestGridMissionMicroRaster(t *testing.T) {
	drv := &drivertest.Driver{}
	m := NewGridMission(newTestController(t, drv), GridConfig{
		Size:    1,
		Spacing: 20,
		Height:  100,
		Overlap: 0.5, // 10cm photo spacing, 2x2 raster per cell
	})

	outcome, err := m.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mission.OutcomeOK, outcome)
	assert.Equal(t, 4, m.Photos())

	assert.Equal(t, []drivertest.Command{
		{Name: "up", Arg: 100},
		{Name: "right", Arg: 10},   // raster row 1, second shot
		{Name: "forward", Arg: 10}, // raster row 2
		{Name: "left", Arg: 10},
		{Name: "right", Arg: 10},
		{Name: "back", Arg: 10}, // retrace to the grid intersection
		{Name: "left", Arg: 10},
	}, drv.Moves())
}

func TestGridMissionRejectsEmptyGrid(t *testing.T) {
	drv := &drivertest.Driver{}
	m := NewGridMission(newTestController(t, drv), GridConfig{Size: 0, Spacing: 100, Height: 100})

	outcome, err := m.Execute(context.Background())
	assert.Equal(t, mission.OutcomeFailed, outcome)
	assert.Error(t, err)
	assert.Empty(t, drv.Commands)
}

func TestGridMissionLowBatteryFailsCleanly(t *testing.T) {
	drv := &drivertest.Driver{}
	ctrl := newTestController(t, drv)
	drv.BatteryErr = nil
	drv.BatteryLevel = 5

	m := NewGridMission(ctrl, GridConfig{Size: 2, Spacing: 100, Height: 100})

	outcome, err := m.Execute(context.Background())
	assert.Equal(t, mission.OutcomeFailed, outcome)

	var lbe *drone.LowBatteryError
	require.ErrorAs(t, err, &lbe)
	assert.Empty(t, drv.Commands)
}

func TestGridMissionInterrupt(t *testing.T) {
	drv := &drivertest.Driver{}
	m := NewGridMission(newTestController(t, drv), GridConfig{Size: 3, Spacing: 100, Height: 100})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := m.Execute(ctx)
	assert.Equal(t, mission.OutcomeInterrupted, outcome)
	assert.ErrorIs(t, err, context.Canceled)

	var names []string
	for _, c := range drv.Commands {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "land", "interrupt must still land the vehicle")
}
