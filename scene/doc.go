// Package scene drives the plans of a whole canvas, one frame at a time.
//
// A [Renderer] keeps one [ggplan.Plan] per drawable in an LRU cache keyed by
// drawable name. Each call to Render captures the view once, then for every
// drawable in paint order:
//
//   - builds the plan on first sight, or rebuilds it when the drawable's
//     content signature changed (plans are never patched);
//   - otherwise updates the cached plan to the new view;
//   - culls plans whose bounds fall outside the viewport;
//   - applies the visible plans that changed since their last apply.
//
// Plans of drawables missing from the frame are evicted. A draw callback
// that panics costs only its own drawable; the panic is logged and the
// frame goes on.
//
// Example:
//
//	r := scene.NewRenderer(800, 600, scene.WithRegistry(reg), scene.WithFullRedraw())
//	for _, step := range steps {
//		mapper.ZoomAt(step.Factor, step.X, step.Y)
//		stats := r.Render(svgSurface, mapper, doc.Drawables)
//		...
//	}
package scene
