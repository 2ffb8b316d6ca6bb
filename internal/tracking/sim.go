package tracking

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/pkg/math"
)

// planeLayouts is the scripted room the simulator detects, near to far.
var planeLayouts = []struct {
	center math.Vec3
	width  float32
	depth  float32
}{
	{math.Vec3{X: 0, Y: 0, Z: 0}, 2.4, 2.4},        // floor
	{math.Vec3{X: 0.8, Y: 0.4, Z: -1.2}, 1.2, 0.8}, // table
	{math.Vec3{X: -1.0, Y: 0.9, Z: -1.6}, 0.8, 0.4},
	{math.Vec3{X: 0.2, Y: 0.45, Z: 1.4}, 1.0, 0.6},
}

// SimConfig holds simulator settings.
type SimConfig struct {
	ViewportW     int
	ViewportH     int
	FovY          float32 // radians
	PlaneInterval time.Duration
	MaxPlanes     int
}

// Sim is a deterministic in-process tracking session. It detects scripted
// horizontal planes over time, refines their extent across updates the way
// real plane estimation does, and recognizes markers on demand.
type Sim struct {
	cfg       SimConfig
	detection DetectionConfig
	handler   AnchorHandler
	poseFn    func() (Pose, bool)

	running    bool
	anchors    map[string]Anchor
	order      []string
	targets    map[string]Anchor // refinement target per growing surface
	sincePlane time.Duration
	planeIdx   int
}

// NewSim creates a simulator session.
func NewSim(cfg SimConfig) *Sim {
	if cfg.FovY == 0 {
		cfg.FovY = 1.0
	}
	if cfg.PlaneInterval == 0 {
		cfg.PlaneInterval = 2 * time.Second
	}
	if cfg.MaxPlanes <= 0 || cfg.MaxPlanes > len(planeLayouts) {
		cfg.MaxPlanes = len(planeLayouts)
	}
	return &Sim{
		cfg:     cfg,
		anchors: make(map[string]Anchor),
		targets: make(map[string]Anchor),
	}
}

// SetHandler registers the receiver for anchor lifecycle events.
func (s *Sim) SetHandler(h AnchorHandler) {
	s.handler = h
}

// SetCameraPoseFunc sets the camera pose provider.
func (s *Sim) SetCameraPoseFunc(fn func() (Pose, bool)) {
	s.poseFn = fn
}

// Resize updates the viewport used for hit testing.
func (s *Sim) Resize(w, h int) {
	s.cfg.ViewportW = w
	s.cfg.ViewportH = h
}

// CameraPose returns the current camera pose, if any.
func (s *Sim) CameraPose() (Pose, bool) {
	if s.poseFn == nil {
		return Pose{}, false
	}
	return s.poseFn()
}

// Run (re)starts the session with the given feature set.
func (s *Sim) Run(cfg DetectionConfig, removeAnchors bool) {
	s.detection = cfg
	s.running = true

	if removeAnchors {
		for _, id := range s.order {
			if a, ok := s.anchors[id]; ok && s.handler != nil {
				s.handler.OnAnchorRemoved(a)
			}
		}
		s.anchors = make(map[string]Anchor)
		s.targets = make(map[string]Anchor)
		s.order = s.order[:0]
		s.sincePlane = 0
		s.planeIdx = 0
	}

	logger.Debug("tracking session started",
		zap.Bool("planes", cfg.PlaneDetection),
		zap.Strings("markers", cfg.MarkerImages),
		zap.Bool("removed_anchors", removeAnchors),
	)
}

// Tick advances simulated detection. Call once per frame from the loop
// that also delivers input, so anchor callbacks stay serialized.
func (s *Sim) Tick(dt time.Duration) {
	if !s.running {
		return
	}

	s.refineSurfaces()

	if !s.detection.PlaneDetection || s.planeIdx >= s.cfg.MaxPlanes {
		return
	}
	s.sincePlane += dt
	if s.sincePlane < s.cfg.PlaneInterval {
		return
	}
	s.sincePlane = 0
	s.spawnPlane()
}

// spawnPlane detects the next scripted plane with a rough initial estimate.
func (s *Sim) spawnPlane() {
	layout := planeLayouts[s.planeIdx]
	s.planeIdx++

	target := Anchor{
		ID:    uuid.NewString(),
		Kind:  KindSurface,
		Pose:  Pose{Position: layout.center, Orientation: math.QuatIdentity()},
		Width: layout.width,
		Depth: layout.depth,
	}

	// First observation: smaller extent, center slightly off.
	initial := target
	initial.Width = target.Width * 0.4
	initial.Depth = target.Depth * 0.4
	initial.Pose.Position = target.Pose.Position.Add(math.Vec3{X: 0.15, Z: -0.1})

	s.anchors[initial.ID] = initial
	s.order = append(s.order, initial.ID)
	s.targets[initial.ID] = target

	logger.Debug("plane detected", zap.String("anchor", initial.ID))
	if s.handler != nil {
		s.handler.OnAnchorAdded(initial)
	}
}

// refineSurfaces moves every growing surface estimate toward its target,
// emitting an update per refinement step.
func (s *Sim) refineSurfaces() {
	for id, target := range s.targets {
		a := s.anchors[id]

		a.Width += (target.Width - a.Width) * 0.5
		a.Depth += (target.Depth - a.Depth) * 0.5
		a.Pose.Position = a.Pose.Position.Add(
			target.Pose.Position.Sub(a.Pose.Position).Scale(0.5))

		if target.Width-a.Width < 0.01 && target.Depth-a.Depth < 0.01 {
			a = target
			delete(s.targets, id)
		}

		s.anchors[id] = a
		if s.handler != nil {
			s.handler.OnAnchorUpdated(a)
		}
	}
}

// DetectMarker recognizes a marker image, if the active feature set
// includes it, and reports the new anchor. Repeated detections of the same
// image create distinct anchors, matching one recognition event each.
func (s *Sim) DetectMarker(image string) bool {
	if !s.running || !s.markerEnabled(image) {
		return false
	}

	n := float32(len(s.order))
	anchor := Anchor{
		ID:   uuid.NewString(),
		Kind: KindMarker,
		Pose: Pose{
			Position:    math.Vec3{X: -0.5 + 0.3*n, Y: 1.2, Z: -1.0},
			Orientation: math.QuatIdentity(),
		},
		Image: image,
	}
	s.anchors[anchor.ID] = anchor
	s.order = append(s.order, anchor.ID)

	logger.Debug("marker recognized", zap.String("image", image), zap.String("anchor", anchor.ID))
	if s.handler != nil {
		s.handler.OnAnchorAdded(anchor)
	}
	return true
}

func (s *Sim) markerEnabled(image string) bool {
	for _, img := range s.detection.MarkerImages {
		if img == image {
			return true
		}
	}
	return false
}

// LoseAnchor simulates tracking losing an anchor.
func (s *Sim) LoseAnchor(id string) {
	a, ok := s.anchors[id]
	if !ok {
		return
	}
	delete(s.anchors, id)
	delete(s.targets, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.handler != nil {
		s.handler.OnAnchorRemoved(a)
	}
}

// Anchors returns the live anchors in detection order.
func (s *Sim) Anchors() []Anchor {
	result := make([]Anchor, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.anchors[id])
	}
	return result
}

// HitTest intersects a screen point with the known surface anchors.
func (s *Sim) HitTest(point math.Vec2) []Hit {
	pose, ok := s.CameraPose()
	if !ok || s.cfg.ViewportW == 0 || s.cfg.ViewportH == 0 {
		return nil
	}

	camera := math.Compose(pose.Position, pose.Orientation, 1)
	view := camera.Inverse()
	aspect := float32(s.cfg.ViewportW) / float32(s.cfg.ViewportH)
	proj := math.Perspective(s.cfg.FovY, aspect, 0.05, 100)
	invViewProj := proj.Mul(view).Inverse()

	ray := ScreenToRay(point.X, point.Y,
		float32(s.cfg.ViewportW), float32(s.cfg.ViewportH), invViewProj)

	var hits []Hit
	for _, id := range s.order {
		a := s.anchors[id]
		if a.Kind != KindSurface {
			continue
		}
		if p, t, ok := ray.IntersectSurface(a); ok {
			hits = append(hits, Hit{Position: p, AnchorID: a.ID, Distance: t})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
