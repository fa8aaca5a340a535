// Package flameplot turns a call tree into the geometry a flame plot
// renderer needs: one horizontal bar per call, stacked by level, with the
// parent's exclusive time padding its children into the center.
package flameplot

import (
	"fmt"
	"math/rand"

	"github.com/mbareford/io-calltree-viewer/internal/calltree"
)

// palette holds sequential YlOrRd hues, darkest first, taken from
// colorbrewer2.org.
var palette = []string{
	"#800026", "#bd0026", "#e31a1c", "#fc4e2a", "#fd8d3c",
	"#feb24c", "#fed976", "#ffeda0", "#ffffcc",
}

type (
	// Bar is one rendered call. Offset and Time are the bar's start and
	// width on the time axis, Level is its row on the stack axis.
	Bar struct {
		Level       int     `json:"level"`
		Name        string  `json:"name"`
		Calls       float64 `json:"calls"`
		Time        float64 `json:"time"`
		Offset      float64 `json:"offset"`
		Color       string  `json:"color"`
		Description string  `json:"description"`
	}

	// Plot carries every bar in breadth-first order plus the ranges a
	// renderer needs to scale its axes and size its color buckets.
	Plot struct {
		Title    string  `json:"title"`
		Bars     []Bar   `json:"bars"`
		LevelMin int     `json:"level_min"`
		LevelMax int     `json:"level_max"`
		CallsMin float64 `json:"calls_min"`
		CallsMax float64 `json:"calls_max"`
		TimeMax  float64 `json:"time_max"`
	}

	Options struct {
		// ColorByCalls buckets each bar's hue by its call count instead
		// of picking a random hue from the palette.
		ColorByCalls bool
	}
)

// Build lays out ct as a flame plot. Bars come out in breadth-first
// order, so every bar's parent is laid out before it, which is what the
// offset computation requires.
func Build(ct *calltree.CallTree, title string, opts Options) Plot {
	p := Plot{
		Title:    title,
		LevelMin: ct.LevelMin,
		LevelMax: ct.LevelMax,
		CallsMin: ct.CallsMin,
		CallsMax: ct.CallsMax,
	}
	root := ct.Root()
	if root == nil {
		return p
	}
	p.TimeMax = root.Label.Time

	colorIncr := (ct.CallsMax - ct.CallsMin + 1) / float64(len(palette))
	for _, n := range ct.Traverse(ct.RootID, calltree.BreadthFirst) {
		label := n.Label
		bar := Bar{
			Level:       label.Level,
			Name:        label.Name,
			Calls:       label.Calls,
			Time:        label.Time,
			Offset:      ct.TimeOffset(n),
			Description: fmt.Sprintf("%d: %s(%g) - %.3f.", label.Level, label.Name, label.Calls, label.Time),
		}
		if opts.ColorByCalls {
			i := int(label.Calls / colorIncr)
			if i > len(palette)-1 {
				i = len(palette) - 1
			}
			bar.Color = palette[i]
		} else {
			bar.Color = palette[rand.Intn(len(palette))]
		}
		p.Bars = append(p.Bars, bar)
	}
	return p
}
