package recyclebin

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/babarot/fileops/internal/fs"
)

func newTestBin(t *testing.T) (*Bin, string) {
	t.Helper()
	dir := t.TempDir()
	bin, err := New(filepath.Join(dir, "bin"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bin.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local) }
	return bin, dir
}

func TestCompanionPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/bin/$RABC123.txt", "/bin/$IABC123.txt", true},
		{"/bin/$RABC123", "/bin/$IABC123", true},
		{"/bin/$R1$R2.txt", "/bin/$I1$I2.txt", true},
		{"/bin/plain.txt", "", false},
		{"/$Rdir/plain.txt", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := CompanionPath(tt.path)
			if ok != tt.ok || got != filepath.FromSlash(tt.want) && tt.ok {
				t.Errorf("CompanionPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPutCreatesPair(t *testing.T) {
	bin, dir := newTestBin(t)
	src := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(src, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	dst, err := bin.Put(src)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after Put")
	}
	if !IsPrimary(dst) || filepath.Ext(dst) != ".txt" {
		t.Errorf("unexpected primary name %q", dst)
	}

	companion, ok := CompanionPath(dst)
	if !ok {
		t.Fatalf("no companion for %q", dst)
	}
	data, err := os.ReadFile(companion)
	if err != nil {
		t.Fatalf("companion record missing: %v", err)
	}
	info, err := ParseInfo(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseInfo: %v", err)
	}
	if info.OriginalPath != src || info.Size != 5 || info.IsDir {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestPutExtensionWithMarker(t *testing.T) {
	bin, dir := newTestBin(t)
	src := filepath.Join(dir, "notes.$Rtmp")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	dst, err := bin.Put(src)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if strings.Count(filepath.Base(dst), "$") != 1 {
		t.Errorf("marker leaked past the id: %q", dst)
	}
	companion, _ := CompanionPath(dst)
	if _, err := os.Stat(companion); err != nil {
		t.Errorf("companion of %q missing: %v", dst, err)
	}

	entries, err := bin.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].GetName() != "notes.$Rtmp" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestPutPartialMoveKeepsPair(t *testing.T) {
	bin, dir := newTestBin(t)
	src := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(src, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	move = func(src, dst string, _ fs.MoveOptions) error {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return err
		}
		return &fs.MoveError{Op: "remove_source", Src: src, Dst: dst, Err: errors.Join(fs.ErrSourceRemains, os.ErrPermission)}
	}
	t.Cleanup(func() { move = fs.Move })

	if _, err := bin.Put(src); !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}

	entries, err := bin.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Info.OriginalPath != src {
		t.Fatalf("copy should stay listed with its record, got %+v", entries)
	}
	if orphans, _ := bin.Orphans(); len(orphans) != 0 {
		t.Errorf("unexpected orphans %v", orphans)
	}
}

func TestPutDirectory(t *testing.T) {
	bin, dir := newTestBin(t)
	src := filepath.Join(dir, "my folder")
	if err := os.MkdirAll(filepath.Join(src, "deep"), 0755); err != nil {
		t.Fatal(err)
	}

	dst, err := bin.Put(src)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(dst, "deep")); err != nil || !fi.IsDir() {
		t.Errorf("directory tree not moved: %v", err)
	}

	entries, err := bin.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].GetName() != "my folder" || !entries[0].Info.IsDir {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestPutFailureLeavesNoRecord(t *testing.T) {
	bin, dir := newTestBin(t)

	_, err := bin.Put(filepath.Join(dir, "missing"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !os.IsNotExist(errors.Unwrap(err)) {
		t.Errorf("expected not-exist cause, got %v", err)
	}

	dirents, _ := os.ReadDir(bin.Root())
	if len(dirents) != 0 {
		t.Errorf("bin should be empty, found %d entries", len(dirents))
	}
}

func TestPutRejects(t *testing.T) {
	bin, _ := newTestBin(t)

	if _, err := bin.Put("/"); !errors.Is(err, ErrUnsafePath) {
		t.Errorf("root: got %v", err)
	}
	inside := filepath.Join(bin.Root(), "x")
	if err := os.WriteFile(inside, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := bin.Put(inside); !errors.Is(err, ErrInsideBin) {
		t.Errorf("inside bin: got %v", err)
	}
}

func TestListSkipsBrokenRecords(t *testing.T) {
	bin, dir := newTestBin(t)
	for _, name := range []string{"a.txt", "b.txt"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := bin.Put(p); err != nil {
			t.Fatal(err)
		}
	}
	// a primary with no record
	if err := os.WriteFile(filepath.Join(bin.Root(), "$RORPHAN"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := bin.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestIsInside(t *testing.T) {
	bin, dir := newTestBin(t)
	if !IsInside(bin.Root(), filepath.Join(bin.Root(), "sub")) {
		t.Error("subdirectory of the bin should be inside")
	}
	if IsInside(bin.Root(), dir) {
		t.Error("parent of the bin should not be inside")
	}
}

func TestParseInfoErrors(t *testing.T) {
	tests := map[string]string{
		"no header":  "Path=/a\nDeletionDate=2025-01-02T03:04:05\n",
		"no path":    "[Recycle Info]\nDeletionDate=2025-01-02T03:04:05\n",
		"no date":    "[Recycle Info]\nPath=/a\n",
		"bad date":   "[Recycle Info]\nPath=/a\nDeletionDate=yesterday\n",
		"bad size":   "[Recycle Info]\nPath=/a\nDeletionDate=2025-01-02T03:04:05\nSize=big\n",
		"bad escape": "[Recycle Info]\nPath=/a%zz\nDeletionDate=2025-01-02T03:04:05\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseInfo(strings.NewReader(in)); !IsInvalidRecord(err) {
				t.Errorf("got %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestInfoRoundTripSpecialCharacters(t *testing.T) {
	in := &Info{
		OriginalPath: "/home/u/100% done/a b#c.txt",
		DeletionDate: time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local),
		Size:         42,
	}
	var buf bytes.Buffer
	if _, err := in.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out, err := ParseInfo(&buf)
	if err != nil {
		t.Fatalf("ParseInfo: %v", err)
	}
	if out.OriginalPath != in.OriginalPath || !out.DeletionDate.Equal(in.DeletionDate) || out.Size != 42 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestOrphans(t *testing.T) {
	bin, dir := newTestBin(t)
	src := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := bin.Put(src); err != nil {
		t.Fatal(err)
	}
	stray := filepath.Join(bin.Root(), "$Iabcdef.txt")
	if err := os.WriteFile(stray, nil, 0644); err != nil {
		t.Fatal(err)
	}

	orphans, err := bin.Orphans()
	if err != nil {
		t.Fatalf("Orphans: %v", err)
	}
	if len(orphans) != 1 || orphans[0] != stray {
		t.Errorf("orphans = %v, want [%s]", orphans, stray)
	}
}
