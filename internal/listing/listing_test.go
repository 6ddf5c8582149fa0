package listing

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babarot/fileops/internal/core/types"
)

func TestFromArgs(t *testing.T) {
	wd := t.TempDir()
	if err := os.Mkdir(filepath.Join(wd, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(wd, "file.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := FromArgs(wd, []string{"dir", "file.txt", "missing", "file.txt", "..", wd + "/dir/."})
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want validation error, got %v", err)
	}

	want := []struct {
		name string
		kind types.ItemKind
	}{
		{"dir", types.Folder},
		{"file.txt", types.File},
		{"missing", types.File},
	}
	if len(items) != len(want) {
		t.Fatalf("items = %+v", items)
	}
	for i, w := range want {
		if items[i].Name != w.name || items[i].Kind != w.kind {
			t.Errorf("item %d = %+v, want %s/%s", i, items[i], w.name, w.kind)
		}
		if items[i].Path != filepath.Join(wd, w.name) {
			t.Errorf("item %d path = %s", i, items[i].Path)
		}
	}
}

func TestFromArgsClean(t *testing.T) {
	items, err := FromArgs("/w", []string{"a/../b", "/abs/c"})
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Path != "/w/b" || items[1].Path != "/abs/c" {
		t.Errorf("items = %+v", items)
	}
}

func TestListing(t *testing.T) {
	var out bytes.Buffer
	items := []types.ListedItem{
		types.NewListedItem("/w/a", types.File),
		types.NewListedItem("/w/b", types.Folder),
	}
	l := New(items, &out, true)
	ctx := context.Background()

	if err := l.RemoveItem(ctx, items[0]); err != nil {
		t.Fatal(err)
	}
	if err := l.RemoveItem(ctx, items[0]); err == nil {
		t.Error("removing twice must fail")
	}
	if got := l.Items(); len(got) != 1 || got[0].Path != "/w/b" {
		t.Errorf("items = %+v", got)
	}
	if err := l.AddItem(ctx, "/w/New Folder"); err != nil {
		t.Fatal(err)
	}
	if got := l.Added(); len(got) != 1 {
		t.Errorf("added = %v", got)
	}
	if !strings.Contains(out.String(), "removed '/w/a'") || !strings.Contains(out.String(), "created '/w/New Folder'") {
		t.Errorf("output = %q", out.String())
	}
}
