// Package bridge keeps track of the native host currently attached to the process.
package bridge

import (
	"sync"

	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/application/port"
)

// Holder implements port.BridgeProvider. The host may attach or detach at
// any time from its own thread, so access is guarded.
type Holder struct {
	mu     sync.RWMutex
	bridge port.NativeBridge
	logger *zap.Logger
}

// NewHolder creates an empty holder; Bridge returns nil until Register is called
func NewHolder(logger *zap.Logger) *Holder {
	return &Holder{logger: logger}
}

// Register attaches a host, replacing any previous one. Passing nil detaches.
func (h *Holder) Register(b port.NativeBridge) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.bridge = b
	if b == nil {
		h.logger.Info("Native bridge detached")
		return
	}

	h.logger.Info("Native bridge attached", zap.Strings("capabilities", Capabilities(b)))
}

// Bridge returns the attached host or nil
func (h *Holder) Bridge() port.NativeBridge {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bridge
}

// Available reports whether a host is attached
func (h *Holder) Available() bool {
	return h.Bridge() != nil
}

// Capabilities lists the bridge methods a host implements
func Capabilities(b port.NativeBridge) []string {
	caps := []string{}
	if _, ok := b.(port.FolderConfigWriter); ok {
		caps = append(caps, "configSetLocalFolders")
	}
	if _, ok := b.(port.FolderConfigReader); ok {
		caps = append(caps, "configGetLocalFolders")
	}
	if _, ok := b.(port.MediaPermissionChecker); ok {
		caps = append(caps, "configHasMediaPermission")
	}
	if _, ok := b.(port.Toaster); ok {
		caps = append(caps, "toast")
	}
	if _, ok := b.(port.FreeSpaceScanner); ok {
		caps = append(caps, "freeSpaceScan")
	}
	if _, ok := b.(port.RemoteMarker); ok {
		caps = append(caps, "setHasRemote")
	}
	return caps
}

// Verify interface compliance
var _ port.BridgeProvider = (*Holder)(nil)
