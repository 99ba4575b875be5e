// main.go

// This file contains the pathplot command: it expands a pattern into its
// waypoint list and renders the planned path as an interactive HTML chart,
// so a mission can be eyeballed before anything leaves the ground.

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

// The pathplot command previews a mission's waypoint path as an HTML chart.
//
//	pathplot -pattern grid -grid-size 4 -spacing 100 -height 150 -out grid.html
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/DanielTantsyura/real-estate-drone/mission"
	"github.com/DanielTantsyura/real-estate-drone/pattern"
)

var (
	patternName = flag.String("pattern", "grid", "pattern to preview: grid, orbit or spiral")
	out         = flag.String("out", "flightpath.html", "output HTML file")

	gridSize = flag.Int("grid-size", 3, "grid pattern: points per side")
	spacing  = flag.Int("spacing", 100, "grid pattern: point spacing, cm")
	overlap  = flag.Float64("overlap", 0.5, "grid pattern: target image overlap fraction")

	radius = flag.Int("radius", 200, "orbit/spiral pattern: radius, cm")
	points = flag.Int("points", 8, "orbit pattern: photo positions")
	turns  = flag.Int("turns", 2, "spiral pattern: revolutions")

	height = flag.Int("height", 100, "flight height above launch, cm")
)

func main() {
	flag.Parse()

	wps, err := waypoints()
	if err != nil {
		log.Fatalf("%v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("could not create %s: %v", *out, err)
	}
	defer f.Close()

	if err := render(wps, f); err != nil {
		log.Fatalf("could not render chart: %v", err)
	}
	log.Printf("wrote %d waypoints to %s", len(wps), *out)
}

func waypoints() ([]mission.Waypoint, error) {
	switch *patternName {
	case "grid":
		return pattern.GridWaypoints(pattern.GridConfig{
			Size:    *gridSize,
			Spacing: *spacing,
			Height:  *height,
			Overlap: *overlap,
		}), nil
	case "orbit":
		return pattern.OrbitWaypoints(pattern.OrbitConfig{
			Radius:       *radius,
			Points:       *points,
			CenterHeight: *height,
		}), nil
	case "spiral":
		return pattern.SpiralWaypoints(pattern.SpiralConfig{
			Radius:        *radius,
			Height:        *height,
			Turns:         *turns,
			PointsPerTurn: 8,
		}), nil
	}
	return nil, fmt.Errorf("unknown pattern %q (want grid, orbit or spiral)", *patternName)
}

// render draws the waypoint path as a scatter plot in the launch frame,
// colored by altitude, square axes so distances read true.
func render(wps []mission.Waypoint, w *os.File) error {
	data := make([]opts.ScatterData, 0, len(wps))
	maxAbs, maxZ := 0.0, 0.0
	for _, wp := range wps {
		if math.Abs(wp.X) > maxAbs {
			maxAbs = math.Abs(wp.X)
		}
		if math.Abs(wp.Y) > maxAbs {
			maxAbs = math.Abs(wp.Y)
		}
		if wp.Z > maxZ {
			maxZ = wp.Z
		}
		data = append(data, opts.ScatterData{Value: []interface{}{wp.X, wp.Y, wp.Z}})
	}

	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	if maxZ == 0 {
		maxZ = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Flight Path", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Planned Flight Path",
			Subtitle: fmt.Sprintf("pattern=%s waypoints=%d", *patternName, len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (cm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (cm)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#31688e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("waypoints", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))

	return scatter.Render(w)
}
