// Package tracking defines the boundary to the sensing subsystem that
// produces camera poses and spatial anchors, plus a deterministic simulator
// used by the viewer and tests.
package tracking

import (
	"github.com/Faultbox/arcanvas/pkg/math"
)

// Kind classifies a spatial anchor.
type Kind uint8

const (
	// KindSurface is a detected horizontal plane with a measured extent.
	KindSurface Kind = iota
	// KindMarker is a recognized reference image.
	KindMarker
)

// String returns the anchor kind name.
func (k Kind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Pose is a position and orientation in world space.
type Pose struct {
	Position    math.Vec3
	Orientation math.Quat
}

// Anchor is a tracked reference frame reported by the sensing subsystem.
// The tracking side owns the anchor lifecycle; consumers only react to
// add/update/remove events and key their own state by ID.
type Anchor struct {
	ID   string
	Kind Kind
	Pose Pose

	// Extent of the detected plane, surfaces only. Both values and the
	// pose may change on every update as the estimate refines.
	Width float32
	Depth float32

	// Image names the recognized picture, markers only.
	Image string
}

// Hit is a single hit-test intersection against a surface anchor.
type Hit struct {
	Position math.Vec3
	AnchorID string
	Distance float32
}

// DetectionConfig selects which detection features a session runs with.
type DetectionConfig struct {
	PlaneDetection bool
	MarkerImages   []string
}

// AnchorHandler receives anchor lifecycle events. All callbacks are
// delivered on the caller's goroutine, serialized with the frame loop.
type AnchorHandler interface {
	OnAnchorAdded(anchor Anchor)
	OnAnchorUpdated(anchor Anchor)
	OnAnchorRemoved(anchor Anchor)
}

// Session is the tracking subsystem boundary consumed by the placement core.
type Session interface {
	// CameraPose returns the current camera pose, or false when tracking
	// has not produced one yet.
	CameraPose() (Pose, bool)

	// HitTest intersects a screen point with the known surface anchors.
	// Hits are ordered near to far; the slice is empty on a miss.
	HitTest(point math.Vec2) []Hit

	// Run (re)starts tracking with the given feature set. removeAnchors
	// drops every anchor the session has accumulated so far.
	Run(cfg DetectionConfig, removeAnchors bool)

	// SetHandler registers the receiver for anchor lifecycle events.
	SetHandler(h AnchorHandler)
}
