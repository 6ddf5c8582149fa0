// Package recyclebin stores recycled items as pairs of a primary
// "$R<id><ext>" entry and a companion "$I<id><ext>" info record living
// side by side in one directory.
package recyclebin

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/babarot/fileops/internal/fs"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	primaryPrefix   = "$R"
	companionPrefix = "$I"

	maxIDAttempts = 16
)

// Bin is a recycle bin rooted at a single directory
type Bin struct {
	root string
	now  func() time.Time
}

// New returns a bin rooted at root, creating the directory if needed
func New(root string) (*Bin, error) {
	if root == "" {
		return nil, newError("open", root, fs.ErrInvalidPath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, newError("open", root, err)
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, newError("open", abs, err)
	}
	return &Bin{root: abs, now: time.Now}, nil
}

// Root returns the absolute bin directory
func (b *Bin) Root() string {
	return b.root
}

// Contains reports whether path lies inside the bin
func (b *Bin) Contains(path string) bool {
	return IsInside(b.root, path)
}

// IsInside reports whether dir is the recycle-bin root or below it
func IsInside(root, dir string) bool {
	return fs.IsInside(root, dir)
}

// IsPrimary reports whether the base name of path is a "$R" entry
func IsPrimary(path string) bool {
	return strings.HasPrefix(filepath.Base(path), primaryPrefix)
}

// CompanionPath returns the "$I" record paired with a "$R" entry: the
// same directory and the base name with "$R" replaced by "$I". ok is
// false when the base name carries no "$R".
func CompanionPath(path string) (companion string, ok bool) {
	base := filepath.Base(path)
	if !strings.Contains(base, primaryPrefix) {
		return "", false
	}
	return filepath.Join(filepath.Dir(path), strings.ReplaceAll(base, primaryPrefix, companionPrefix)), true
}

// Put moves src into the bin. The info record is written first so a
// primary never exists without its companion; it is removed again when
// the move fails. The path of the new primary entry is returned.
func (b *Bin) Put(src string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", newError("put", src, err)
	}
	if unsafe, _ := fs.IsUnsafePath(src); unsafe {
		return "", newError("put", src, ErrUnsafePath)
	}
	if b.Contains(abs) {
		return "", newError("put", abs, ErrInsideBin)
	}

	fi, err := os.Lstat(abs)
	if err != nil {
		return "", newError("put", abs, err)
	}
	size, err := fs.DirSize(abs)
	if err != nil {
		slog.Debug("could not size item, recording 0", "path", abs, "error", err)
		size = 0
	}

	info := &Info{
		OriginalPath: abs,
		DeletionDate: b.now(),
		Size:         size,
		IsDir:        fi.IsDir(),
	}

	ext := ""
	if !fi.IsDir() {
		ext = recordExt(abs)
	}

	infoPath, err := b.writeInfo(info, ext)
	if err != nil {
		return "", newError("put", abs, err)
	}

	dst := filepath.Join(b.root, primaryPrefix+strings.TrimPrefix(filepath.Base(infoPath), companionPrefix))
	if err := move(abs, dst, fs.MoveOptions{AllowCrossDev: true}); err != nil {
		if fs.IsPartialMove(err) {
			// dst is the only complete copy; keep it paired with its record
			slog.Warn("recycled copy kept, source only partly removed", "from", abs, "to", dst, "error", err)
			return "", newError("put", abs, err)
		}
		if rmErr := os.Remove(infoPath); rmErr != nil {
			slog.Warn("failed to remove orphaned info record", "path", infoPath, "error", rmErr)
		}
		return "", newError("put", abs, err)
	}

	slog.Debug("recycled", "from", abs, "to", dst)
	return dst, nil
}

var move = fs.Move

// recordExt is the extension carried by both names of a pair. "$" is
// dropped so a marker can never appear past the id.
func recordExt(path string) string {
	return strings.ReplaceAll(filepath.Ext(path), "$", "")
}

func (b *Bin) writeInfo(info *Info, ext string) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		path := filepath.Join(b.root, companionPrefix+newID()+ext)
		f, err := fs.CreateExclusive(path, 0600)
		if errors.Is(err, iofs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := info.WriteTo(f); err != nil {
			f.Close()
			_ = os.Remove(path)
			return "", fmt.Errorf("failed to write info record: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(path)
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("no free record id after %d attempts: %w", maxIDAttempts, iofs.ErrExist)
}

func newID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:6])
}

// Entry is a recycled item as listed from the bin
type Entry struct {
	// Path is the "$R" primary inside the bin
	Path string
	Info *Info
}

func (e *Entry) GetName() string         { return filepath.Base(e.Info.OriginalPath) }
func (e *Entry) GetPath() string         { return e.Path }
func (e *Entry) GetDeletedAt() time.Time { return e.Info.DeletionDate }
func (e *Entry) GetSize() int64          { return e.Info.Size }

// List returns every primary that has a readable companion record,
// newest first. Records that fail to parse are skipped and logged.
func (b *Bin) List() ([]*Entry, error) {
	dirents, err := os.ReadDir(b.root)
	if err != nil {
		return nil, newError("list", b.root, err)
	}

	primaries := lo.Filter(dirents, func(d os.DirEntry, _ int) bool {
		return strings.HasPrefix(d.Name(), primaryPrefix)
	})

	entries := make([]*Entry, 0, len(primaries))
	for _, d := range primaries {
		path := filepath.Join(b.root, d.Name())
		companion, _ := CompanionPath(path)
		info, err := readInfo(companion)
		if err != nil {
			slog.Warn("skipping recycled item without a valid record", "path", path, "error", err)
			continue
		}
		entries = append(entries, &Entry{Path: path, Info: info})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Info.DeletionDate.After(entries[j].Info.DeletionDate)
	})
	return entries, nil
}

func readInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError("read", path, ErrNotFound)
		}
		return nil, newError("read", path, err)
	}
	defer f.Close()

	info, err := ParseInfo(f)
	if err != nil {
		return nil, newError("parse", path, err)
	}
	return info, nil
}

// Orphans returns companion records whose primary is gone. They are
// left behind when a best-effort companion delete fails.
func (b *Bin) Orphans() ([]string, error) {
	dirents, err := os.ReadDir(b.root)
	if err != nil {
		return nil, newError("orphans", b.root, err)
	}
	names := lo.SliceToMap(dirents, func(d os.DirEntry) (string, struct{}) {
		return d.Name(), struct{}{}
	})

	var orphans []string
	for _, d := range dirents {
		if !strings.HasPrefix(d.Name(), companionPrefix) {
			continue
		}
		primary := primaryPrefix + strings.TrimPrefix(d.Name(), companionPrefix)
		if _, ok := names[primary]; !ok {
			orphans = append(orphans, filepath.Join(b.root, d.Name()))
		}
	}
	return orphans, nil
}
