package port

// NativeBridge is the host object injected by the native app. Any value may
// be registered; operations discover what the host supports through the
// capability interfaces below, so a host that lacks a method simply does not
// implement the corresponding interface.
type NativeBridge interface{}

// FolderConfigWriter stores the local folder configuration
type FolderConfigWriter interface {
	ConfigSetLocalFolders(configJSON string) error
}

// FolderConfigReader returns the local folder configuration as JSON
type FolderConfigReader interface {
	ConfigGetLocalFolders() string
}

// MediaPermissionChecker reports whether the user allowed media access
type MediaPermissionChecker interface {
	ConfigHasMediaPermission() bool
}

// Toaster shows a short message to the user
type Toaster interface {
	Toast(message string, long bool)
}

// FreeSpaceScanner runs the host's own free-space scan and deletion prompt
type FreeSpaceScanner interface {
	FreeSpaceScan()
}

// RemoteMarker flags local items, by auid and buid, as present on the server
type RemoteMarker interface {
	SetHasRemote(auidsJSON, buidsJSON string, value bool)
}

// BridgeProvider returns the currently registered bridge, or nil when the
// app is not running inside a native host.
type BridgeProvider interface {
	Bridge() NativeBridge
}
