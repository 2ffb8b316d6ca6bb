// Package anchors tracks the live set of spatial anchors and owns the
// plane-indicator visual for each detected surface.
package anchors

import (
	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/internal/tracking"
)

// Visual is the display node for one surface anchor: a translucent plane
// sized to the anchor's current extent. It references its owning anchor by
// ID only.
type Visual struct {
	AnchorID string
	Pose     tracking.Pose
	Width    float32
	Depth    float32
	Visible  bool
}

// Registry mirrors the tracking subsystem's anchor set. It implements
// tracking.AnchorHandler; every mutation happens through those callbacks
// or Clear, all on the frame goroutine.
type Registry struct {
	anchors map[string]tracking.Anchor
	visuals map[string]*Visual
	order   []string

	showSurfaces bool
	onMarker     func(tracking.Anchor)
}

// NewRegistry creates an empty registry. showSurfaces is the initial
// visibility of plane indicators.
func NewRegistry(showSurfaces bool) *Registry {
	return &Registry{
		anchors:      make(map[string]tracking.Anchor),
		visuals:      make(map[string]*Visual),
		showSurfaces: showSurfaces,
	}
}

// SetMarkerObserver registers the callback run when a marker anchor is
// first detected.
func (r *Registry) SetMarkerObserver(fn func(tracking.Anchor)) {
	r.onMarker = fn
}

// OnAnchorAdded records a new anchor. Surfaces get a visual sized to the
// reported extent; markers are forwarded to the marker observer.
func (r *Registry) OnAnchorAdded(anchor tracking.Anchor) {
	if _, exists := r.anchors[anchor.ID]; exists {
		return
	}
	r.anchors[anchor.ID] = anchor
	r.order = append(r.order, anchor.ID)

	switch anchor.Kind {
	case tracking.KindSurface:
		r.visuals[anchor.ID] = &Visual{
			AnchorID: anchor.ID,
			Pose:     anchor.Pose,
			Width:    anchor.Width,
			Depth:    anchor.Depth,
			Visible:  r.showSurfaces,
		}
		logger.Debug("surface anchor added",
			zap.String("anchor", anchor.ID),
			zap.Float32("width", anchor.Width),
			zap.Float32("depth", anchor.Depth),
		)
	case tracking.KindMarker:
		logger.Debug("marker anchor added",
			zap.String("anchor", anchor.ID),
			zap.String("image", anchor.Image),
		)
		if r.onMarker != nil {
			r.onMarker(anchor)
		}
	}
}

// OnAnchorUpdated resynchronizes the stored anchor and its visual with the
// new observation. The visual snaps to the reported center and extent; it
// never integrates deltas.
func (r *Registry) OnAnchorUpdated(anchor tracking.Anchor) {
	if _, exists := r.anchors[anchor.ID]; !exists {
		return
	}
	r.anchors[anchor.ID] = anchor

	if v, ok := r.visuals[anchor.ID]; ok {
		v.Pose = anchor.Pose
		v.Width = anchor.Width
		v.Depth = anchor.Depth
	}
}

// OnAnchorRemoved drops the anchor and discards its visual.
func (r *Registry) OnAnchorRemoved(anchor tracking.Anchor) {
	if _, exists := r.anchors[anchor.ID]; !exists {
		return
	}
	delete(r.anchors, anchor.ID)
	delete(r.visuals, anchor.ID)
	for i, id := range r.order {
		if id == anchor.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	logger.Debug("anchor removed", zap.String("anchor", anchor.ID))
}

// SetShowSurfaces toggles plane-indicator visibility and fans the flag out
// to every owned visual.
func (r *Registry) SetShowSurfaces(show bool) {
	r.showSurfaces = show
	for _, v := range r.visuals {
		v.Visible = show
	}
}

// ShowSurfaces returns the current visibility flag.
func (r *Registry) ShowSurfaces() bool {
	return r.showSurfaces
}

// Anchor returns the anchor with the given ID.
func (r *Registry) Anchor(id string) (tracking.Anchor, bool) {
	a, ok := r.anchors[id]
	return a, ok
}

// Visuals returns the surface visuals in detection order. The slice is
// rebuilt per call; entries are copies safe for the renderer to read.
func (r *Registry) Visuals() []Visual {
	result := make([]Visual, 0, len(r.visuals))
	for _, id := range r.order {
		if v, ok := r.visuals[id]; ok {
			result = append(result, *v)
		}
	}
	return result
}

// Len returns the number of tracked anchors.
func (r *Registry) Len() int {
	return len(r.anchors)
}

// VisualCount returns the number of owned surface visuals.
func (r *Registry) VisualCount() int {
	return len(r.visuals)
}

// Clear drops every anchor and visual. Used on full scene reset.
func (r *Registry) Clear() {
	if len(r.anchors) == 0 && len(r.visuals) == 0 {
		return
	}
	logger.Debug("anchor registry cleared", zap.Int("removed", len(r.anchors)))
	r.anchors = make(map[string]tracking.Anchor)
	r.visuals = make(map[string]*Visual)
	r.order = r.order[:0]
}
