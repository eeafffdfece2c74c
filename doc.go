// Package ggplan caches the drawing of geometry drawables as replayable plans
// and keeps them correct across pan and zoom without re-running the
// geometry-to-pixel pipeline.
//
// # Overview
//
// A drawable (point, segment, angle, label, function plot, ...) is drawn once
// into a [Recorder] by its per-kind [DrawFunc]. The recorder captures every
// primitive call as a [Command] and the result is wrapped in a [Plan]. On every
// view change the caller passes the new [MapState] to [Plan.UpdateMapState]
// and replays dirty plans with [Plan.Apply].
//
//	mapper := ggplan.NewCoordinateMapper(800, 600)
//	plan, err := ggplan.Build(segment, mapper, registry)
//	if err != nil {
//		// not renderable or unknown kind
//	}
//	plan.Apply(surface)
//
//	mapper.ZoomAt(2, 400, 300)
//	plan.UpdateMapState(ggplan.Capture(mapper))
//	if plan.IsVisible(800, 600, 1) && plan.NeedsApply() {
//		plan.Apply(surface)
//	}
//
// # Update Strategies
//
// A plan chooses one of two update strategies at construction and never
// changes it:
//
//   - Affine: no command uses a pixel-constant size, so one similarity
//     matrix computed from the base state to the target state relocates
//     every recorded coordinate. Updating is O(1).
//   - Exact: at least one command is screen-space (point markers, arrow tips,
//     labels, angle arcs). Every command is reprojected from its stored math
//     coordinates and metadata.
//
// # Coordinate System
//
// Math coordinates have Y up. Screen coordinates have the origin at the top
// left and Y down:
//
//	screen.X = origin.X + math.X*scale + offset.X
//	screen.Y = origin.Y - math.Y*scale + offset.Y
//
// Angles stored in commands are screen-space radians, so increasing angles
// turn clockwise on screen.
//
// # Thread Safety
//
// Recorder and Plan are not safe for concurrent use. A plan is owned by the
// drawable it represents and is updated from a single redraw loop.
package ggplan
