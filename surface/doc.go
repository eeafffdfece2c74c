// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface holds the output backends plans are replayed onto.
//
// A [Target] is a [ggplan.Surface] that collects one frame and encodes it.
// Backends live in sub-packages and register a factory under a format name
// from their init function, the way database/sql drivers do:
//
//   - surface/svg: an SVG document ("svg")
//   - surface/raster: a gogpu/gg raster context encoded as PNG ("png")
//
// # Usage
//
//	import (
//	    "github.com/gogpu/ggplan/surface"
//	    _ "github.com/gogpu/ggplan/surface/svg"
//	)
//
//	t, err := surface.NewTarget("svg", surface.Options{Width: 800, Height: 600})
//	if err != nil {
//	    return err
//	}
//	defer t.Close()
//	plan.Apply(t)
//	_, err = t.WriteTo(w)
//
// [ParseColor] resolves the color strings carried by ggplan styles ("#rgb",
// "#rrggbb", "#rrggbbaa" and CSS color names) for backends that need
// concrete colors.
package surface
