// Package placed holds the objects committed into the world and the
// append-ordered ledger that owns them.
package placed

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/pkg/math"
)

// Template is a selectable model the user places copies of.
type Template struct {
	ID    string
	Name  string
	Color [3]float32
	Scale float32
}

// Object is one committed copy of a template.
//
// Marker-attached objects carry the anchor's ID and a transform relative
// to that anchor; surface and free-form objects store an absolute world
// position and an empty AnchorID. Anchors are referenced by ID, never by
// pointer, so an anchor removed by tracking can never dangle here.
type Object struct {
	ID       string
	Template Template

	Position    math.Vec3
	Orientation math.Quat

	// HasOrientation is false for surface placements, which take the
	// renderer's default orientation.
	HasOrientation bool

	// AnchorID is set only for marker-attached objects.
	AnchorID string
}

// WorldMatrix returns the object's model matrix. anchorPose supplies the
// host anchor's current pose for marker-attached objects and is ignored
// otherwise.
func (o Object) WorldMatrix(anchorPose math.Mat4) math.Mat4 {
	scale := o.Template.Scale
	if scale == 0 {
		scale = 1
	}
	local := math.Compose(o.Position, o.Orientation, scale)
	if o.AnchorID != "" {
		return anchorPose.Mul(local)
	}
	return local
}

// Ledger is the ordered collection of placed objects. Iteration order is
// placement order; undo removes exactly the most recent entry.
type Ledger struct {
	objects []Object
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Commit assigns the object an ID, appends it, and returns the stored copy.
func (l *Ledger) Commit(obj Object) Object {
	obj.ID = uuid.NewString()
	if obj.Orientation == (math.Quat{}) {
		obj.Orientation = math.QuatIdentity()
	}
	l.objects = append(l.objects, obj)

	logger.Debug("object committed",
		zap.String("id", obj.ID),
		zap.String("template", obj.Template.Name),
		zap.String("anchor", obj.AnchorID),
		zap.Int("count", len(l.objects)),
	)
	return obj
}

// UndoLast removes and returns the most recently committed object.
// Returns false on an empty ledger.
func (l *Ledger) UndoLast() (Object, bool) {
	if len(l.objects) == 0 {
		return Object{}, false
	}
	last := l.objects[len(l.objects)-1]
	l.objects = l.objects[:len(l.objects)-1]

	logger.Debug("object removed", zap.String("id", last.ID), zap.Int("count", len(l.objects)))
	return last, true
}

// ResetAll removes every object. Calling it on an empty ledger is a no-op.
func (l *Ledger) ResetAll() {
	if len(l.objects) == 0 {
		return
	}
	logger.Debug("ledger cleared", zap.Int("removed", len(l.objects)))
	l.objects = l.objects[:0]
}

// Len returns the number of placed objects.
func (l *Ledger) Len() int {
	return len(l.objects)
}

// Last returns the most recently committed object.
func (l *Ledger) Last() (Object, bool) {
	if len(l.objects) == 0 {
		return Object{}, false
	}
	return l.objects[len(l.objects)-1], true
}

// Objects returns the placed objects in placement order. The slice is a
// copy; the ledger is mutated only through Commit, UndoLast and ResetAll.
func (l *Ledger) Objects() []Object {
	result := make([]Object, len(l.objects))
	copy(result, l.objects)
	return result
}
