package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/arcanvas/internal/anchors"
	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/internal/placed"
	"github.com/Faultbox/arcanvas/internal/placer"
	"github.com/Faultbox/arcanvas/internal/tracking"
	"github.com/Faultbox/arcanvas/pkg/math"
)

func TestMain(m *testing.M) {
	logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	m.Run()
}

// hitSession always reports one surface hit under the pointer.
type hitSession struct {
	hits    []tracking.Hit
	hasPose bool
}

func (s *hitSession) CameraPose() (tracking.Pose, bool) {
	return tracking.Pose{Orientation: math.QuatIdentity()}, s.hasPose
}
func (s *hitSession) HitTest(math.Vec2) []tracking.Hit { return s.hits }

func (s *hitSession) SetHandler(tracking.AnchorHandler) {}

func (s *hitSession) Run(tracking.DetectionConfig, bool) {}

type fixture struct {
	session    *hitSession
	ledger     *placed.Ledger
	controller *placer.Controller
	router     *Router
}

func newFixture() *fixture {
	session := &hitSession{}
	ledger := placed.NewLedger()
	controller := placer.NewController(session, anchors.NewRegistry(true), ledger, placer.Config{})
	controller.SelectModel(placed.Template{Name: "chair"})
	return &fixture{
		session:    session,
		ledger:     ledger,
		controller: controller,
		router:     NewRouter(controller, 40),
	}
}

func TestSurfaceDragThreshold(t *testing.T) {
	f := newFixture()
	f.controller.SetMode(placer.ModeSurface)
	f.session.hits = []tracking.Hit{{Position: math.Vec3{Y: 0}}}

	p0 := math.Vec2{X: 200, Y: 200}
	f.router.TouchBegan(p0)
	require.Equal(t, 1, f.ledger.Len())

	// Under the threshold: no second placement.
	p1 := math.Vec2{X: 230, Y: 200} // distance 30
	f.router.TouchMoved(p1)
	assert.Equal(t, 1, f.ledger.Len())

	// At or past the threshold: a second placement fires and the
	// reference point moves to the new location.
	p2 := math.Vec2{X: 240, Y: 200} // distance 40 from p0
	f.router.TouchMoved(p2)
	assert.Equal(t, 2, f.ledger.Len())

	// Distance is now measured from p2, not p0.
	p3 := math.Vec2{X: 270, Y: 200} // 30 from p2
	f.router.TouchMoved(p3)
	assert.Equal(t, 2, f.ledger.Len())
}

func TestTouchEndedResetsGesture(t *testing.T) {
	f := newFixture()
	f.controller.SetMode(placer.ModeSurface)
	f.session.hits = []tracking.Hit{{Position: math.Vec3{}}}

	f.router.TouchBegan(math.Vec2{X: 0, Y: 0})
	require.Equal(t, 1, f.ledger.Len())
	f.router.TouchEnded()

	// Moves after the gesture ends never place.
	f.router.TouchMoved(math.Vec2{X: 500, Y: 500})
	assert.Equal(t, 1, f.ledger.Len())

	// A fresh gesture starts from its own began point.
	f.router.TouchBegan(math.Vec2{X: 500, Y: 500})
	assert.Equal(t, 2, f.ledger.Len())
}

func TestSurfaceDragRequiresInitialPlacement(t *testing.T) {
	f := newFixture()
	f.controller.SetMode(placer.ModeSurface)

	// Began misses (no hit), so moves in this gesture never place even
	// when hits appear later.
	f.router.TouchBegan(math.Vec2{X: 0, Y: 0})
	require.Equal(t, 0, f.ledger.Len())

	f.session.hits = []tracking.Hit{{Position: math.Vec3{}}}
	f.router.TouchMoved(math.Vec2{X: 500, Y: 500})
	assert.Equal(t, 0, f.ledger.Len())
}

func TestFreeFormTouchIgnoresPoint(t *testing.T) {
	f := newFixture()
	f.controller.SetMode(placer.ModeFreeForm)
	f.session.hasPose = true

	f.router.TouchBegan(math.Vec2{X: 123, Y: 456})
	require.Equal(t, 1, f.ledger.Len())

	obj, _ := f.ledger.Last()
	assert.Empty(t, obj.AnchorID)
	assert.True(t, obj.HasOrientation)

	// Dragging in free-form mode places nothing further.
	f.router.TouchMoved(math.Vec2{X: 900, Y: 900})
	assert.Equal(t, 1, f.ledger.Len())
}

func TestMarkerModeIgnoresTouches(t *testing.T) {
	f := newFixture()
	f.controller.SetMode(placer.ModeMarker)
	f.session.hits = []tracking.Hit{{Position: math.Vec3{}}}
	f.session.hasPose = true

	f.router.TouchBegan(math.Vec2{X: 10, Y: 10})
	f.router.TouchMoved(math.Vec2{X: 500, Y: 500})
	f.router.TouchEnded()

	assert.Equal(t, 0, f.ledger.Len())
}

func TestDefaultThreshold(t *testing.T) {
	r := NewRouter(nil, 0)
	assert.Equal(t, float32(DefaultDragThreshold), r.threshold)
}
