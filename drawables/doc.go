// Package drawables provides the geometry objects a ggplan scene is made
// of and the draw callbacks that turn them into primitive surface calls.
//
// Each kind is exposed to its draw callback through a read-only view
// interface (PointView, SegmentView, AngleView, ...), so a callback declares
// exactly which attributes it reads. The concrete types in this package
// implement those views and can be decoded from a YAML scene file:
//
//	width: 800
//	height: 600
//	scale: 40
//	drawables:
//	  - kind: point
//	    name: A
//	    at: {x: 1, y: 2}
//	    label: A
//	  - kind: segment
//	    from: {x: 0, y: 0}
//	    to: {x: 3, y: 4}
//
// Draw callbacks attach metadata (angle arcs, circle arcs, arrowheads,
// labels) and screen-space hints so that recorded plans stay pixel-exact
// when the view changes. Register installs the callbacks in a registry:
//
//	reg := ggplan.NewRegistry()
//	drawables.Register(reg, drawables.DefaultOptions())
//	plan, err := ggplan.Build(point, mapper, reg)
package drawables
