package recyclebin

import (
	"testing"
	"time"

	"github.com/babarot/fileops/internal/config"
)

// testItem is a minimal Filterable
type testItem struct {
	name      string
	path      string
	deletedAt time.Time
	size      int64
}

func (t testItem) GetName() string         { return t.name }
func (t testItem) GetPath() string         { return t.path }
func (t testItem) GetDeletedAt() time.Time { return t.deletedAt }
func (t testItem) GetSize() int64          { return t.size }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func createTestItems() []testItem {
	return []testItem{
		{name: "file1.txt", path: "/bin/$RA.txt", deletedAt: testNow.Add(-24 * time.Hour), size: 100},
		{name: "file2.log", path: "/bin/$RB.log", deletedAt: testNow.Add(-48 * time.Hour), size: 1000},
		{name: "important.txt", path: "/bin/$RC.txt", deletedAt: testNow.Add(-72 * time.Hour), size: 10000},
		{name: "temp.tmp", path: "/bin/$RD.tmp", deletedAt: testNow.Add(-96 * time.Hour), size: 100000},
	}
}

func names(items []testItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func equalNames(t *testing.T, got []testItem, want []string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestRejectBySize(t *testing.T) {
	testCases := []struct {
		name     string
		size     config.SizeConfig
		expected []string
	}{
		{
			name:     "No size filter",
			size:     config.SizeConfig{},
			expected: []string{"file1.txt", "file2.log", "important.txt", "temp.tmp"},
		},
		{
			name:     "Filter by min size",
			size:     config.SizeConfig{Min: "1KB"},
			expected: []string{"file2.log", "important.txt", "temp.tmp"},
		},
		{
			name:     "Filter by max size",
			size:     config.SizeConfig{Max: "10KB"},
			expected: []string{"file1.txt", "file2.log", "important.txt"},
		},
		{
			name:     "Filter by range",
			size:     config.SizeConfig{Min: "1KB", Max: "10KB"},
			expected: []string{"file2.log", "important.txt"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			equalNames(t, rejectBySize(createTestItems(), tc.size), tc.expected)
		})
	}
}

func TestRejectByNamesPatternsGlobs(t *testing.T) {
	items := createTestItems()

	equalNames(t, rejectByNames(items, []string{"temp.tmp"}),
		[]string{"file1.txt", "file2.log", "important.txt"})

	equalNames(t, rejectByPatterns(items, []string{`^file\d`, `([`}),
		[]string{"important.txt", "temp.tmp"})

	equalNames(t, rejectByGlobs(items, []string{"*.txt"}),
		[]string{"file2.log", "temp.tmp"})
}

func TestFilterByPeriod(t *testing.T) {
	items := createTestItems()

	equalNames(t, filterByPeriod(items, 0, testNow), names(items))
	equalNames(t, filterByPeriod(items, 3, testNow), []string{"file1.txt", "file2.log"})
}
