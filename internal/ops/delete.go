package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/babarot/fileops/internal/audit"
	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/elevate"
	"github.com/babarot/fileops/internal/fsresult"
	"github.com/babarot/fileops/internal/recyclebin"
)

// State is the position of a delete invocation in its lifecycle
type State int

const (
	Idle State = iota
	Confirming
	Executing
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirming:
		return "confirming"
	case Executing:
		return "executing"
	case Completed:
		return "completed"
	default:
		return "cancelled"
	}
}

// Failure is an item that was left in place
type Failure struct {
	Item types.ListedItem
	Code fsresult.ErrorCode
}

// Summary describes a finished invocation
type Summary struct {
	State    State
	Mode     types.DeleteMode
	Total    int
	Deleted  int
	Failures []Failure
	Elapsed  time.Duration
}

// BatchError aborts a whole invocation before or outside the per-item
// loop. Per-item failures never become a BatchError.
type BatchError struct {
	Op  string
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Op, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Deleter runs batch deletes. A Deleter is not safe for overlapping
// invocations against the same items; callers serialize destructive
// commands.
type Deleter struct {
	app       Context
	confirmer Confirmer
	banners   Banners
	escalator Escalator
	mutator   Mutator
	recorder  Recorder
	now       func() time.Time
}

// DeleterOption configures optional collaborators
type DeleterOption func(*Deleter)

// WithRecorder sends every item outcome to r
func WithRecorder(r Recorder) DeleterOption {
	return func(d *Deleter) {
		d.recorder = r
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) DeleterOption {
	return func(d *Deleter) {
		d.now = now
	}
}

// NewDeleter wires a Deleter. A nil escalator disables escalation.
func NewDeleter(c Context, confirmer Confirmer, banners Banners, escalator Escalator, mutator Mutator, opts ...DeleterOption) *Deleter {
	if escalator == nil {
		escalator = elevate.Disabled
	}
	d := &Deleter{
		app:       c,
		confirmer: confirmer,
		banners:   banners,
		escalator: escalator,
		mutator:   mutator,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// fromRecycleBin reports whether the request targets items in the bin,
// either flagged by the caller or detected from the working directory
func (d *Deleter) fromRecycleBin(req types.DeleteRequest) bool {
	if req.FromRecycleBin {
		return true
	}
	return d.app.RecycleBinRoot != "" && recyclebin.IsInside(d.app.RecycleBinRoot, d.app.WorkingDirectory)
}

// Run executes one invocation and posts no banners itself. progress may
// be nil.
func (d *Deleter) Run(ctx context.Context, req types.DeleteRequest, progress Progress) (Summary, error) {
	start := d.now()
	fromBin := d.fromRecycleBin(req)
	mode := req.Mode
	if fromBin {
		mode = types.PermanentDelete
	}
	summary := Summary{State: Idle, Mode: mode, Total: len(req.Items)}

	if d.app.WorkingDirectory != "" {
		if res := d.mutator.ResolveFolder(d.app.WorkingDirectory); !res.IsOk() {
			return summary, &BatchError{Op: "resolve working directory", Err: codeError(res.ErrorCode())}
		}
	}

	if d.app.Settings.ConfirmDelete {
		summary.State = Confirming
		outcome, permanent, err := d.confirmer.Confirm(ctx, fromBin, mode)
		if err != nil {
			return summary, &BatchError{Op: "confirm", Err: err}
		}
		if outcome == Cancel {
			summary.State = Cancelled
			summary.Elapsed = d.now().Sub(start)
			slog.Info("delete cancelled", "items", summary.Total)
			return summary, nil
		}
		mode = types.Default
		if permanent || fromBin {
			mode = types.PermanentDelete
		}
		summary.Mode = mode
	}

	summary.State = Executing
	if progress != nil {
		progress.Started(mode, summary.Total)
	}
	reportProgress := progress != nil && summary.Total > d.app.Settings.ProgressThreshold
	for _, item := range req.Items {
		if reportProgress {
			progress.ReportProgress(summary.Deleted * 100 / summary.Total)
		}
		code, escalated := d.deleteItem(ctx, item, mode, fromBin)
		d.record(ctx, item, mode, code, escalated)
		if code != fsresult.OK {
			summary.Failures = append(summary.Failures, Failure{Item: item, Code: code})
			continue
		}
		if d.app.ViewModel != nil {
			if err := d.app.ViewModel.RemoveItem(ctx, item); err != nil {
				slog.Warn("view model refused item removal", "path", item.Path, "error", err)
			}
		}
		summary.Deleted++
	}

	summary.State = Completed
	summary.Elapsed = d.now().Sub(start)
	slog.Info("delete finished",
		"mode", mode,
		"total", summary.Total,
		"deleted", summary.Deleted,
		"elapsed", summary.Elapsed)
	return summary, nil
}

// deleteItem deletes one item and reports its final code and whether the
// helper was involved
func (d *Deleter) deleteItem(ctx context.Context, item types.ListedItem, mode types.DeleteMode, fromBin bool) (fsresult.ErrorCode, bool) {
	code := d.mutator.Delete(ctx, item, mode).ErrorCode()
	escalated := false

	switch code {
	case fsresult.OK:
	case fsresult.Unauthorized:
		escalated = true
		op := elevate.OperationFor(mode)
		if d.escalator.Escalate(ctx, op, item.Path) {
			slog.Info("deleted with elevated rights", "fileop", op, "path", item.Path)
			code = fsresult.OK
		} else {
			slog.Warn("elevation failed", "fileop", op, "path", item.Path)
		}
	case fsresult.InUse:
		// left for the user to retry the whole batch
		slog.Warn("item is in use, skipping", "path", item.Path)
	default:
		slog.Warn("item not deleted", "path", item.Path, "code", code)
	}

	if code == fsresult.OK && fromBin {
		d.deleteCompanion(ctx, item.Path)
	}
	return code, escalated
}

func (d *Deleter) deleteCompanion(ctx context.Context, path string) {
	companion, ok := recyclebin.CompanionPath(path)
	if !ok {
		return
	}
	if st := d.mutator.DeletePermanently(ctx, companion); !st.IsOk() {
		slog.Debug("companion record not deleted", "path", companion, "code", st.ErrorCode())
	}
}

func (d *Deleter) record(ctx context.Context, item types.ListedItem, mode types.DeleteMode, code fsresult.ErrorCode, escalated bool) {
	if d.recorder == nil {
		return
	}
	err := d.recorder.Record(ctx, audit.Entry{
		Time:      d.now(),
		RunID:     d.app.RunID,
		Path:      item.Path,
		Kind:      item.Kind.String(),
		Mode:      mode.String(),
		Code:      code.String(),
		Escalated: escalated,
	})
	if err != nil {
		slog.Warn("failed to record delete outcome", "path", item.Path, "error", err)
	}
}

// DeleteWithStatus runs an invocation wrapped in banners. It posts an
// ongoing banner while executing, a completion banner for slow batches,
// and one terminal banner for batch-level failures it knows how to
// present. Other batch-level failures are returned.
func (d *Deleter) DeleteWithStatus(ctx context.Context, req types.DeleteRequest) (Summary, error) {
	progress := &bannerProgress{banners: d.banners}
	summary, err := d.Run(ctx, req, progress)
	progress.remove()

	if err != nil {
		return summary, d.postBatchError(ctx, req, err)
	}

	if summary.State == Completed && summary.Elapsed >= d.app.Settings.CompletionBannerAfter {
		d.banners.Post(Banner{
			Title:     completionTitle(summary.Mode),
			Detail:    fmt.Sprintf("%d of %d items", summary.Deleted, summary.Total),
			Progress:  100,
			Severity:  types.Success,
			Operation: types.OperationFor(summary.Mode),
		})
	}
	return summary, nil
}

func (d *Deleter) postBatchError(ctx context.Context, req types.DeleteRequest, err error) error {
	switch code := batchCode(err); code {
	case fsresult.Unauthorized:
		d.banners.Post(Banner{
			Title:    "Access Denied",
			Detail:   "You do not have permission to delete one or more of these items.",
			Severity: types.Error,
		})
	case fsresult.NotFound:
		d.banners.Post(Banner{
			Title:    "File Not Found",
			Detail:   "One or more of these items could not be found.",
			Severity: types.Error,
		})
	case fsresult.InUse:
		d.banners.PostActionable(
			"File In Use",
			"One or more of these items is open in another program.",
			"Retry", "Cancel",
			func() {
				if _, err := d.DeleteWithStatus(ctx, req); err != nil {
					slog.Error("retried delete failed", "error", err)
				}
			},
		)
	default:
		return err
	}
	slog.Warn("delete aborted", "error", err)
	return nil
}

// bannerProgress shows the ongoing banner from the moment execution
// starts, so a cancelled prompt leaves no banner behind
type bannerProgress struct {
	banners Banners
	handle  BannerHandle
}

func (p *bannerProgress) Started(mode types.DeleteMode, total int) {
	p.handle = p.banners.Post(Banner{
		Title:     ongoingTitle(mode),
		Detail:    fmt.Sprintf("%d items", total),
		Severity:  types.Ongoing,
		Operation: types.OperationFor(mode),
	})
}

func (p *bannerProgress) ReportProgress(percent int) {
	if p.handle != nil {
		p.handle.ReportProgress(percent)
	}
}

func (p *bannerProgress) remove() {
	if p.handle != nil {
		p.handle.Remove()
		p.handle = nil
	}
}

func ongoingTitle(mode types.DeleteMode) string {
	if mode == types.PermanentDelete {
		return "Deleting"
	}
	return "Recycling"
}

func completionTitle(mode types.DeleteMode) string {
	if mode == types.PermanentDelete {
		return "Deletion Complete"
	}
	return "Recycle Complete"
}

// codeError carries a classified code through an error chain
type codeError fsresult.ErrorCode

func (e codeError) Error() string {
	return fsresult.ErrorCode(e).String()
}

func batchCode(err error) fsresult.ErrorCode {
	var ce codeError
	if errors.As(err, &ce) {
		return fsresult.ErrorCode(ce)
	}
	return fsresult.Classify(err)
}
