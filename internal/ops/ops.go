// Package ops runs the destructive commands of the file manager: batch
// delete with recycle-bin semantics and privilege escalation, and item
// creation.
package ops

import (
	"context"
	"time"

	"github.com/babarot/fileops/internal/audit"
	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/elevate"
	"github.com/babarot/fileops/internal/fsresult"
	"github.com/babarot/fileops/internal/storage"
)

// Settings is the snapshot of user settings an invocation runs with
type Settings struct {
	ConfirmDelete bool
	// CompletionBannerAfter is the minimum batch duration that earns a
	// completion banner
	CompletionBannerAfter time.Duration
	// ProgressThreshold is the batch size progress reporting starts above
	ProgressThreshold int
}

// DefaultSettings mirrors the default config
func DefaultSettings() Settings {
	return Settings{
		ConfirmDelete:         true,
		CompletionBannerAfter: 10 * time.Second,
		ProgressThreshold:     3,
	}
}

// Context is everything an invocation needs from the surrounding
// application. It is passed explicitly; nothing is read from globals.
type Context struct {
	WorkingDirectory string
	// RecycleBinRoot is compared against WorkingDirectory to detect
	// deletes from inside the bin
	RecycleBinRoot string
	ViewModel      ViewModel
	Settings       Settings
	// RunID tags audit records of this invocation
	RunID string
}

// ViewModel owns the listing the user is looking at
type ViewModel interface {
	RemoveItem(ctx context.Context, item types.ListedItem) error
	AddItem(ctx context.Context, path string) error
}

// Outcome is the user's answer to the confirmation prompt
type Outcome int

const (
	Cancel Outcome = iota
	Delete
)

func (o Outcome) String() string {
	if o == Delete {
		return "delete"
	}
	return "cancel"
}

// Confirmer asks the user to confirm a delete. The returned flag is the
// permanent-delete choice the user settled on.
type Confirmer interface {
	Confirm(ctx context.Context, fromRecycleBin bool, mode types.DeleteMode) (Outcome, bool, error)
}

// Banner is a status notification
type Banner struct {
	Title     string
	Detail    string
	Progress  int
	Severity  types.Severity
	Operation types.OperationKind
}

// BannerHandle controls a posted banner
type BannerHandle interface {
	ReportProgress(percent int)
	Remove()
}

// Banners posts status notifications
type Banners interface {
	Post(b Banner) BannerHandle
	// PostActionable shows an error banner with two choices. onPrimary
	// runs when the user picks the primary one.
	PostActionable(title, detail, primary, secondary string, onPrimary func())
}

// Progress observes the executing phase of a delete
type Progress interface {
	// Started is called once when execution begins, with the final mode
	Started(mode types.DeleteMode, total int)
	// ReportProgress receives the share of items deleted so far, in percent
	ReportProgress(percent int)
}

// Mutator performs single filesystem mutations and reports classified
// results
type Mutator interface {
	Delete(ctx context.Context, item types.ListedItem, mode types.DeleteMode) fsresult.Status
	DeletePermanently(ctx context.Context, path string) fsresult.Status
	ResolveFolder(path string) fsresult.Result[*storage.FileInfo]
	CreateFolder(ctx context.Context, dir, name string) fsresult.Result[string]
	CreateFile(ctx context.Context, dir, name string) fsresult.Result[string]
}

// Recorder keeps a trail of item outcomes
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) error
}

// Escalator is re-exported so callers need not import elevate
type Escalator = elevate.Escalator
