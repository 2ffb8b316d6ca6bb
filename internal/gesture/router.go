// Package gesture converts pointer events into placement requests, with the
// drag throttle that lets surface mode paint a trail of objects.
package gesture

import (
	"github.com/Faultbox/arcanvas/internal/placer"
	"github.com/Faultbox/arcanvas/pkg/math"
)

// DefaultDragThreshold is the screen-space distance a drag must cover
// before another surface placement fires.
const DefaultDragThreshold = 40

// Router feeds touch events into the placement controller.
type Router struct {
	controller *placer.Controller
	threshold  float32

	inGesture bool
	lastPoint math.Vec2
	hasLast   bool
}

// NewRouter creates a router. threshold <= 0 selects the default.
func NewRouter(controller *placer.Controller, threshold float32) *Router {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Router{controller: controller, threshold: threshold}
}

// TouchBegan starts a gesture. Free-form mode places immediately and
// ignores the point; surface mode places at the point; marker mode ignores
// touches entirely since placement is anchor-driven.
func (r *Router) TouchBegan(point math.Vec2) {
	r.inGesture = true

	switch r.controller.Mode() {
	case placer.ModeFreeForm:
		r.controller.PlaceFreeForm()
	case placer.ModeSurface:
		if r.controller.PlaceAtScreen(point) {
			r.lastPoint = point
			r.hasLast = true
		}
	case placer.ModeMarker:
		// Anchor-driven, not touch-driven.
	}
}

// TouchMoved continues a gesture. Only surface mode reacts, and only once
// an initial placement has landed in this gesture: when the pointer has
// moved at least the threshold distance from the last commit, another
// placement fires there.
func (r *Router) TouchMoved(point math.Vec2) {
	if !r.inGesture || !r.hasLast {
		return
	}
	if r.controller.Mode() != placer.ModeSurface {
		return
	}
	if point.Distance(r.lastPoint) < r.threshold {
		return
	}
	if r.controller.PlaceAtScreen(point) {
		r.lastPoint = point
	}
}

// TouchEnded finishes the gesture; the next one starts fresh.
func (r *Router) TouchEnded() {
	r.inGesture = false
	r.hasLast = false
}
