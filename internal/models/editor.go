package models

// Editor is one installed Unity editor.
type Editor struct {
	// Version is the directory name under the install root, e.g. "2021.3.5f1"
	Version string `json:"version"`

	// Path is the absolute path to the editor executable
	Path string `json:"path"`

	// Root is the install root the editor was discovered under
	Root string `json:"root"`
}
