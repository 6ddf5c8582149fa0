package types

import "path/filepath"

// ItemKind distinguishes files from folders
type ItemKind int

const (
	File ItemKind = iota
	Folder
)

func (k ItemKind) String() string {
	if k == Folder {
		return "folder"
	}
	return "file"
}

// ListedItem is an entry shown in the current view. It is owned by the
// view-model; operations only read it and ask for its removal.
type ListedItem struct {
	Path string   `json:"path"`
	Kind ItemKind `json:"kind"`
	Name string   `json:"name"`
}

// NewListedItem builds an item whose name is derived from its path
func NewListedItem(path string, kind ItemKind) ListedItem {
	return ListedItem{
		Path: path,
		Kind: kind,
		Name: filepath.Base(path),
	}
}

// DeleteMode selects between recycling and permanent removal
type DeleteMode int

const (
	// Default moves items to the recycle bin
	Default DeleteMode = iota
	// PermanentDelete removes items without recycling them
	PermanentDelete
)

func (m DeleteMode) String() string {
	if m == PermanentDelete {
		return "permanent"
	}
	return "recycle"
}

// DeleteRequest is one batch delete invocation
type DeleteRequest struct {
	Items          []ListedItem
	Mode           DeleteMode
	FromRecycleBin bool
}

// ValidationError represents an item rejected before any mutation
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Message: message,
	}
}
