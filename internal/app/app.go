// Package app wires the placement core, the simulated tracking session and
// the viewer into a frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/anchors"
	"github.com/Faultbox/arcanvas/internal/config"
	"github.com/Faultbox/arcanvas/internal/engine/camera"
	"github.com/Faultbox/arcanvas/internal/engine/input"
	"github.com/Faultbox/arcanvas/internal/engine/renderer"
	"github.com/Faultbox/arcanvas/internal/engine/window"
	"github.com/Faultbox/arcanvas/internal/gesture"
	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/internal/placed"
	"github.com/Faultbox/arcanvas/internal/placer"
	"github.com/Faultbox/arcanvas/internal/tracking"
	"github.com/Faultbox/arcanvas/pkg/math"
)

var planeColor = [3]float32{0.3, 0.7, 0.9}

// catalog is the built-in set of placeable models.
var catalog = []placed.Template{
	{ID: "chair", Name: "chair", Color: [3]float32{0.8, 0.5, 0.2}, Scale: 0.25},
	{ID: "lamp", Name: "lamp", Color: [3]float32{0.9, 0.85, 0.3}, Scale: 0.15},
	{ID: "plant", Name: "plant", Color: [3]float32{0.3, 0.75, 0.35}, Scale: 0.2},
}

// App owns every subsystem of the viewer.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	session    *tracking.Sim
	registry   *anchors.Registry
	ledger     *placed.Ledger
	controller *placer.Controller
	router     *gesture.Router

	running    bool
	catalogIdx int

	leftDown   bool
	rightDown  bool
	lastMouseX int
	lastMouseY int
}

// New creates the app and starts an initial tracking session.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{cfg: cfg, catalogIdx: -1}

	var err error
	a.window, err = window.New(window.Config{
		Title:  "arcanvas",
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.camera = camera.NewOrbitCamera()

	a.session = tracking.NewSim(tracking.SimConfig{
		ViewportW:     cfg.Graphics.Width,
		ViewportH:     cfg.Graphics.Height,
		PlaneInterval: cfg.Tracking.PlaneInterval,
		MaxPlanes:     cfg.Tracking.MaxPlanes,
	})
	a.session.SetCameraPoseFunc(func() (tracking.Pose, bool) {
		return tracking.Pose{
			Position:    a.camera.Position(),
			Orientation: a.camera.Orientation(),
		}, true
	})

	a.registry = anchors.NewRegistry(cfg.Placement.ShowSurfaces)
	a.session.SetHandler(a.registry)

	a.ledger = placed.NewLedger()
	a.controller = placer.NewController(a.session, a.registry, a.ledger, placer.Config{
		ForwardOffset: cfg.Placement.ForwardOffset,
		MarkerImages:  cfg.Tracking.MarkerImages,
	})
	a.router = gesture.NewRouter(a.controller, cfg.Placement.DragThreshold)

	mode, err := placer.ParseMode(cfg.Placement.DefaultMode)
	if err != nil {
		logger.Warn("bad default mode, using freeform", zap.Error(err))
		mode = placer.ModeFreeForm
	}
	a.controller.SetMode(mode)

	// Initial session start drops any prior anchors.
	a.controller.Reset()

	logger.Info("initialized")
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}

		a.session.Tick(dt)
		a.render()
		a.window.Swap()
	}

	return nil
}

// handleEvent dispatches one input event.
func (a *App) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		a.renderer.Resize(e.Width, e.Height)
		a.session.Resize(e.Width, e.Height)

	case input.EventKeyDown:
		a.handleKey(e.Key)

	case input.EventMouseDown:
		a.lastMouseX, a.lastMouseY = e.MouseX, e.MouseY
		switch e.Button {
		case sdl.BUTTON_LEFT:
			a.leftDown = true
			a.router.TouchBegan(math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)})
		case sdl.BUTTON_RIGHT:
			a.rightDown = true
		}

	case input.EventMouseMove:
		dx := float32(e.MouseX - a.lastMouseX)
		dy := float32(e.MouseY - a.lastMouseY)
		a.lastMouseX, a.lastMouseY = e.MouseX, e.MouseY
		if a.leftDown {
			a.router.TouchMoved(math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)})
		}
		if a.rightDown {
			a.camera.HandleDrag(dx, dy)
		}

	case input.EventMouseUp:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			a.leftDown = false
			a.router.TouchEnded()
		case sdl.BUTTON_RIGHT:
			a.rightDown = false
		}

	case input.EventMouseWheel:
		a.camera.HandleZoom(float32(e.Wheel))
	}
}

// handleKey runs the keyboard bindings.
func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_1:
		a.controller.SetMode(placer.ModeFreeForm)
	case sdl.SCANCODE_2:
		a.controller.SetMode(placer.ModeSurface)
	case sdl.SCANCODE_3:
		a.controller.SetMode(placer.ModeMarker)

	case sdl.SCANCODE_TAB:
		a.catalogIdx = (a.catalogIdx + 1) % len(catalog)
		a.controller.SelectModel(catalog[a.catalogIdx])
	case sdl.SCANCODE_0:
		a.catalogIdx = -1
		a.controller.ClearModel()

	case sdl.SCANCODE_U:
		a.controller.Undo()
	case sdl.SCANCODE_R:
		a.controller.Reset()
	case sdl.SCANCODE_P:
		show := a.controller.TogglePlaneVisualization()
		logger.Info("plane visualization toggled", zap.Bool("show", show))

	case sdl.SCANCODE_M:
		// Walk past a marker: the simulator recognizes the first
		// configured image.
		if len(a.cfg.Tracking.MarkerImages) > 0 {
			a.session.DetectMarker(a.cfg.Tracking.MarkerImages[0])
		}

	case sdl.SCANCODE_UP:
		a.camera.HandleMovement(1, 0, 0)
	case sdl.SCANCODE_DOWN:
		a.camera.HandleMovement(-1, 0, 0)
	case sdl.SCANCODE_LEFT:
		a.camera.HandleMovement(0, -1, 0)
	case sdl.SCANCODE_RIGHT:
		a.camera.HandleMovement(0, 1, 0)
	}
}

// render draws the plane indicators and the placed objects.
func (a *App) render() {
	a.renderer.Begin(a.camera.ViewMatrix())

	for _, v := range a.registry.Visuals() {
		if !v.Visible {
			continue
		}
		a.renderer.DrawPlane(v.Pose.Position, v.Pose.Orientation, v.Width, v.Depth, planeColor, 0.35)
	}

	for _, obj := range a.ledger.Objects() {
		anchorPose := math.Identity()
		if obj.AnchorID != "" {
			anchor, ok := a.registry.Anchor(obj.AnchorID)
			if !ok {
				// Host anchor lost by tracking; nothing to draw against.
				continue
			}
			anchorPose = math.Compose(anchor.Pose.Position, anchor.Pose.Orientation, 1)
		}
		a.renderer.DrawBox(obj.WorldMatrix(anchorPose), obj.Template.Color)
	}

	a.renderer.End()
}

// Mode returns the active placement mode, for persisting preferences.
func (a *App) Mode() placer.Mode {
	return a.controller.Mode()
}

// ShowSurfaces returns the plane-indicator flag, for persisting preferences.
func (a *App) ShowSurfaces() bool {
	return a.registry.ShowSurfaces()
}

// Close shuts the app down.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
