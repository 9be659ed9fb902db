package genre

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/keagan/powerhour/internal/source"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadEmptyPathIsEmptyMap(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map, got %d entries", len(m))
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for nonexistent mapping file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
	}
}

func TestLoadRequiresHeaders(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "genres.csv", "file,tag\na.mp4,pop\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for missing path/genre headers")
	}
}

func TestFilterPathsMappingWins(t *testing.T) {
	dir := t.TempDir()
	pop := filepath.Join(dir, "a.mp4")
	rock := filepath.Join(dir, "b.mp4")
	for _, p := range []string{pop, rock} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	csv := writeCSV(t, dir, "genres.csv",
		"path,genre\n"+pop+",Pop|Dance\n"+rock+",rock\n")

	m, err := Load(csv)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := FilterPaths([]string{pop, rock}, "pop", m)
	want := []string{pop}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterPaths() = %v, want %v", got, want)
	}
}

func TestFilterPathsMappedEntryIsAuthoritative(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "pop_anthem.mp4")
	if err := os.WriteFile(p, nil, 0644); err != nil {
		t.Fatal(err)
	}
	csv := writeCSV(t, dir, "genres.csv", "path,genre\n"+p+",rock\n")

	m, err := Load(csv)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The name contains "pop" but the mapping says rock, so it stays out.
	if got := FilterPaths([]string{p}, "pop", m); len(got) != 0 {
		t.Errorf("mapped file should not fall back to name matching, got %v", got)
	}
}

func TestFilterPathsFallsBackToName(t *testing.T) {
	files := []string{
		"/videos/pop/song1.mp4",
		"/videos/rock/song2.mp4",
		"/videos/misc/best_pop_hits.mp4",
	}

	got := FilterPaths(files, "pop", Map{})

	want := []string{"/videos/pop/song1.mp4", "/videos/misc/best_pop_hits.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterPaths() = %v, want %v", got, want)
	}
}

func TestFilterPathsEmptyTermKeepsAll(t *testing.T) {
	files := []string{"/a.mp4", "/b.mp4"}
	if got := FilterPaths(files, "", Map{}); !reflect.DeepEqual(got, files) {
		t.Errorf("FilterPaths() = %v, want %v", got, files)
	}
}

func TestFilterItems(t *testing.T) {
	items := []source.Item{
		{Ref: "a", Genre: "Pop|Dance"},
		{Ref: "b", Genre: "rock"},
		{Ref: "c", Genre: "synthpop"},
		{Ref: "d"},
	}

	got := FilterItems(items, "Pop")

	if len(got) != 2 || got[0].Ref != "a" || got[1].Ref != "c" {
		t.Errorf("FilterItems() = %+v, want items a and c", got)
	}
}

func TestApplyFilter(t *testing.T) {
	withGenres := []source.Item{
		{Ref: "a", Genre: "Pop|Dance"},
		{Ref: "b", Genre: "rock"},
	}
	noGenres := []source.Item{{Ref: "a"}, {Ref: "b", Genre: " "}}

	t.Run("empty term keeps everything", func(t *testing.T) {
		filtered, skipped, err := ApplyFilter(withGenres, "")
		if err != nil || skipped {
			t.Fatalf("err = %v, skipped = %v", err, skipped)
		}
		if len(filtered) != 2 {
			t.Errorf("expected all items, got %d", len(filtered))
		}
	})

	t.Run("no genre data skips the filter", func(t *testing.T) {
		filtered, skipped, err := ApplyFilter(noGenres, "pop")
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if !skipped {
			t.Error("expected the filter to be skipped")
		}
		if len(filtered) != 2 {
			t.Errorf("skipped filter must keep all items, got %d", len(filtered))
		}
	})

	t.Run("match narrows items", func(t *testing.T) {
		filtered, skipped, err := ApplyFilter(withGenres, "pop")
		if err != nil || skipped {
			t.Fatalf("err = %v, skipped = %v", err, skipped)
		}
		if len(filtered) != 1 || filtered[0].Ref != "a" {
			t.Errorf("expected only item a, got %+v", filtered)
		}
	})

	t.Run("zero matches with data errors and lists genres", func(t *testing.T) {
		_, skipped, err := ApplyFilter(withGenres, "jazz")
		if err == nil {
			t.Fatal("expected an error when genre data exists but nothing matches")
		}
		if skipped {
			t.Error("a failed filter is not a skipped filter")
		}
		for _, want := range []string{"jazz", "dance", "pop", "rock"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})
}

func TestHasGenreData(t *testing.T) {
	if HasGenreData([]source.Item{{Ref: "a"}, {Ref: "b", Genre: "  "}}) {
		t.Error("whitespace-only genres should not count as data")
	}
	if !HasGenreData([]source.Item{{Ref: "a"}, {Ref: "b", Genre: "pop"}}) {
		t.Error("expected genre data to be detected")
	}
}

func TestAvailable(t *testing.T) {
	items := []source.Item{
		{Genre: "Rock|Pop"},
		{Genre: "pop"},
		{Genre: ""},
	}

	got := Available(items)

	want := []string{"pop", "rock"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Pop | Dance ||rock ")
	want := []string{"pop", "dance", "rock"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTags() = %v, want %v", got, want)
	}
}
