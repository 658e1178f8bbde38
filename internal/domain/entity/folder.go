package entity

// LocalFolderConfig is the enabled state of one on-device folder.
// The list is stored by the native host as a JSON array; no validation or
// uniqueness is enforced on this side.
type LocalFolderConfig struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}
