// Package placer decides where each placement request commits a new object
// and keeps the tracking feature set aligned with the active mode.
package placer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/anchors"
	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/internal/placed"
	"github.com/Faultbox/arcanvas/internal/tracking"
	"github.com/Faultbox/arcanvas/pkg/math"
)

// Mode is the active placement strategy.
type Mode uint8

const (
	// ModeFreeForm places directly in front of the camera.
	ModeFreeForm Mode = iota
	// ModeSurface places on a detected plane under the touched point.
	ModeSurface
	// ModeMarker attaches a copy to each newly recognized marker.
	ModeMarker
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFreeForm:
		return "freeform"
	case ModeSurface:
		return "surface"
	case ModeMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "freeform":
		return ModeFreeForm, nil
	case "surface":
		return ModeSurface, nil
	case "marker":
		return ModeMarker, nil
	default:
		return ModeFreeForm, fmt.Errorf("unknown placement mode %q", s)
	}
}

// Config holds placement behaviour settings.
type Config struct {
	// ForwardOffset is the distance in front of the camera for free-form
	// placement.
	ForwardOffset float32

	// MarkerImages is the image set activated while in marker mode.
	MarkerImages []string
}

// Controller dispatches placement requests to the arm for the active mode
// and owns mode transitions. Every precondition miss (no model, no camera
// pose, no hit) is a silent no-op; those are normal transient states.
type Controller struct {
	session  tracking.Session
	registry *anchors.Registry
	ledger   *placed.Ledger
	cfg      Config

	mode  Mode
	model *placed.Template
}

// NewController wires the controller to its collaborators and registers it
// as the registry's marker observer. The tracking session is not started;
// call Reset (or Reconfigure) once to begin.
func NewController(session tracking.Session, registry *anchors.Registry, ledger *placed.Ledger, cfg Config) *Controller {
	if cfg.ForwardOffset == 0 {
		cfg.ForwardOffset = 0.2
	}
	c := &Controller{
		session:  session,
		registry: registry,
		ledger:   ledger,
		cfg:      cfg,
	}
	registry.SetMarkerObserver(c.attachToMarker)
	return c
}

// Mode returns the active placement mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SelectModel sets the template new placements copy.
func (c *Controller) SelectModel(t placed.Template) {
	c.model = &t
	logger.Info("model selected", zap.String("template", t.Name))
}

// ClearModel deselects the current template.
func (c *Controller) ClearModel() {
	c.model = nil
}

// Model returns the selected template, if any.
func (c *Controller) Model() (placed.Template, bool) {
	if c.model == nil {
		return placed.Template{}, false
	}
	return *c.model, true
}

// PlaceFreeForm commits a copy offset in front of the current camera pose,
// inheriting the camera's orientation. Returns false when no model is
// selected or tracking has no camera pose yet.
func (c *Controller) PlaceFreeForm() bool {
	if c.model == nil {
		return false
	}
	pose, ok := c.session.CameraPose()
	if !ok {
		return false
	}

	position := pose.Position.Add(pose.Orientation.Forward().Scale(c.cfg.ForwardOffset))
	c.ledger.Commit(placed.Object{
		Template:       *c.model,
		Position:       position,
		Orientation:    pose.Orientation,
		HasOrientation: true,
	})
	return true
}

// PlaceAtScreen hit-tests the screen point against the known surfaces and
// commits a copy at the nearest hit's world position. Returns false when
// no model is selected or nothing is hit.
func (c *Controller) PlaceAtScreen(point math.Vec2) bool {
	if c.model == nil {
		return false
	}
	hits := c.session.HitTest(point)
	if len(hits) == 0 {
		return false
	}

	c.ledger.Commit(placed.Object{
		Template: *c.model,
		Position: hits[0].Position,
	})
	return true
}

// attachToMarker runs when a marker anchor is first detected. The model
// selection is sampled at detection time: markers recognized before a
// model is chosen never receive an object, even if one is chosen later.
func (c *Controller) attachToMarker(anchor tracking.Anchor) {
	if anchor.Kind != tracking.KindMarker {
		return
	}
	if c.model == nil {
		logger.Debug("marker detected with no model selected", zap.String("anchor", anchor.ID))
		return
	}

	c.ledger.Commit(placed.Object{
		Template:       *c.model,
		Orientation:    math.QuatIdentity(),
		HasOrientation: true,
		AnchorID:       anchor.ID,
	})
}

// Undo removes the most recently placed object.
func (c *Controller) Undo() (placed.Object, bool) {
	return c.ledger.UndoLast()
}

// TogglePlaneVisualization flips the surface-indicator flag and returns
// the new value.
func (c *Controller) TogglePlaneVisualization() bool {
	show := !c.registry.ShowSurfaces()
	c.registry.SetShowSurfaces(show)
	return show
}
