package placer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/internal/tracking"
)

// SetMode switches the placement mode and reconfigures the tracking
// session for it. Existing anchors and placed objects are preserved; only
// Reset clears them.
func (c *Controller) SetMode(mode Mode) {
	c.mode = mode
	logger.Info("placement mode set", zap.Stringer("mode", mode))
	c.Reconfigure(false)
}

// Reset clears every placed object and tracked anchor and restarts the
// session from scratch. Used on startup and on an explicit scene reset.
func (c *Controller) Reset() {
	logger.Info("scene reset")
	c.Reconfigure(true)
}

// Reconfigure restarts the tracking session with the feature set for the
// active mode. Plane detection stays on in every mode so surfaces keep
// being found and drawn; the marker image set is active only in marker
// mode. clearExisting additionally wipes the registry and ledger and tells
// the session to drop all prior anchors.
func (c *Controller) Reconfigure(clearExisting bool) {
	cfg := tracking.DetectionConfig{PlaneDetection: true}
	if c.mode == ModeMarker {
		cfg.MarkerImages = c.cfg.MarkerImages
	}

	if clearExisting {
		c.registry.Clear()
		c.ledger.ResetAll()
	}

	c.session.Run(cfg, clearExisting)
}
