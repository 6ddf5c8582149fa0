package ops

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/babarot/fileops/internal/audit"
	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/elevate"
	"github.com/babarot/fileops/internal/fsresult"
	"github.com/babarot/fileops/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type deleteCall struct {
	Path string
	Mode types.DeleteMode
}

// fakeMutator answers with preset codes per path and records every call
type fakeMutator struct {
	mu          sync.Mutex
	codes       map[string]fsresult.ErrorCode
	deletes     []deleteCall
	permanent   []string
	clock       *fakeClock
	perItem     time.Duration
	folderCode  fsresult.ErrorCode
	createCode  fsresult.ErrorCode
	created     []string
	permanentOK bool
}

func newFakeMutator() *fakeMutator {
	return &fakeMutator{codes: map[string]fsresult.ErrorCode{}, permanentOK: true}
}

func (m *fakeMutator) Delete(_ context.Context, item types.ListedItem, mode types.DeleteMode) fsresult.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, deleteCall{item.Path, mode})
	if m.clock != nil {
		m.clock.Advance(m.perItem)
	}
	return fsresult.StatusOf(m.codes[item.Path])
}

func (m *fakeMutator) DeletePermanently(_ context.Context, path string) fsresult.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permanent = append(m.permanent, path)
	return fsresult.StatusFromBool(m.permanentOK)
}

func (m *fakeMutator) ResolveFolder(path string) fsresult.Result[*storage.FileInfo] {
	if m.folderCode != fsresult.OK {
		return fsresult.Fail[*storage.FileInfo](m.folderCode)
	}
	return fsresult.Ok(&storage.FileInfo{Path: path, IsDir: true})
}

func (m *fakeMutator) create(dir, name string) fsresult.Result[string] {
	if m.createCode != fsresult.OK {
		return fsresult.Fail[string](m.createCode)
	}
	path := filepath.Join(dir, name)
	m.created = append(m.created, path)
	return fsresult.Ok(path)
}

func (m *fakeMutator) CreateFolder(_ context.Context, dir, name string) fsresult.Result[string] {
	return m.create(dir, name)
}

func (m *fakeMutator) CreateFile(_ context.Context, dir, name string) fsresult.Result[string] {
	return m.create(dir, name)
}

type escalation struct {
	Op   elevate.Operation
	Path string
}

// fakeEscalator succeeds for paths in allow
type fakeEscalator struct {
	allow map[string]bool
	calls []escalation
}

func (e *fakeEscalator) Escalate(_ context.Context, op elevate.Operation, path string) bool {
	e.calls = append(e.calls, escalation{op, path})
	return e.allow[path]
}

type fakeConfirmer struct {
	outcome   Outcome
	permanent bool
	err       error
	calls     int
	gotBin    bool
	gotMode   types.DeleteMode
}

func (c *fakeConfirmer) Confirm(_ context.Context, fromRecycleBin bool, mode types.DeleteMode) (Outcome, bool, error) {
	c.calls++
	c.gotBin = fromRecycleBin
	c.gotMode = mode
	return c.outcome, c.permanent, c.err
}

type fakeHandle struct {
	banners  *fakeBanners
	progress []int
	removed  bool
}

func (h *fakeHandle) ReportProgress(p int) { h.progress = append(h.progress, p) }
func (h *fakeHandle) Remove()              { h.removed = true }

type actionable struct {
	Title, Detail, Primary, Secondary string
}

// fakeBanners records posted banners and can fire retries
type fakeBanners struct {
	posted     []Banner
	handles    []*fakeHandle
	actionable []actionable
	retry      func()
}

func (b *fakeBanners) Post(banner Banner) BannerHandle {
	b.posted = append(b.posted, banner)
	h := &fakeHandle{banners: b}
	b.handles = append(b.handles, h)
	return h
}

func (b *fakeBanners) PostActionable(title, detail, primary, secondary string, onPrimary func()) {
	b.actionable = append(b.actionable, actionable{title, detail, primary, secondary})
	b.retry = onPrimary
}

func (b *fakeBanners) titles() []string {
	var out []string
	for _, p := range b.posted {
		out = append(out, p.Title)
	}
	return out
}

type fakeViewModel struct {
	removed []string
	added   []string
	err     error
}

func (v *fakeViewModel) RemoveItem(_ context.Context, item types.ListedItem) error {
	v.removed = append(v.removed, item.Path)
	return v.err
}

func (v *fakeViewModel) AddItem(_ context.Context, path string) error {
	v.added = append(v.added, path)
	return v.err
}

type fakeRecorder struct {
	entries []audit.Entry
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

var errBoom = errors.New("boom")

func files(paths ...string) []types.ListedItem {
	items := make([]types.ListedItem, len(paths))
	for i, p := range paths {
		items[i] = types.NewListedItem(p, types.File)
	}
	return items
}
