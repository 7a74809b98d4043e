package main

import "github.com/genradar/genradar/pkg/core"

const (
	demoSetName = "islamabad"
	poiRadius   = 1.2
)

// demoCenter is the fixed projection origin of the example screen.
var demoCenter = core.NewPoint("Center Point", 33.683232, 72.988972, 0, poiRadius, core.Transparent)

// demoPoints returns the example points. The center is part of the list
// and drawn transparent.
func demoPoints() []core.Point {
	return []core.Point{
		demoCenter,
		core.NewPoint("Model Filling Station", 33.685354, 72.985651, 0, poiRadius, core.Blue),
		core.NewPoint("IMCB", 33.688210, 72.991315, 0, poiRadius, core.Blue),
		core.NewPoint("UnKnown", 33.684854, 72.991315, 0, poiRadius, core.Blue),
		core.NewPoint("Shifa medical Center", 33.683836, 72.986573, 0, poiRadius, core.Blue),
		core.NewPoint("Alian Enterprises", 33.681399, 72.990545, 0, poiRadius, core.Blue),
		core.NewPoint("Sadar police Station", 33.691424, 72.970287, 0, poiRadius, core.Blue),
	}
}
