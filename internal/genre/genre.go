package genre

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keagan/powerhour/internal/source"
	"github.com/keagan/powerhour/pkg/util"
)

// Map associates canonical local file paths with their lowercase genre
// tags. Read-only after Load.
type Map map[string]map[string]struct{}

// Load reads a mapping CSV with headers path,genre where genre may be a
// |-delimited tag list. An empty path yields an empty map; a path that
// does not exist is an error, never a silent fallback.
func Load(path string) (Map, error) {
	m := Map{}
	if path == "" {
		return m, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("genres csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("genres csv: %w", err)
	}

	pathIdx, genreIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "path":
			pathIdx = i
		case "genre":
			genreIdx = i
		}
	}
	if pathIdx < 0 || genreIdx < 0 {
		return nil, fmt.Errorf("genres csv: missing path/genre headers")
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("genres csv: %w", err)
		}
		if pathIdx >= len(record) || genreIdx >= len(record) {
			continue
		}
		p := strings.TrimSpace(record[pathIdx])
		tags := SplitTags(record[genreIdx])
		if p == "" || len(tags) == 0 {
			continue
		}
		canon := util.CanonicalPath(util.ExpandHome(p))
		set := make(map[string]struct{}, len(tags))
		for _, t := range tags {
			set[t] = struct{}{}
		}
		m[canon] = set
	}
	return m, nil
}

// SplitTags splits a |-delimited genre field into trimmed lowercase tags.
func SplitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, "|") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// FilterPaths narrows local files to those matching the genre term: the
// mapping is authoritative when it has an entry, otherwise a substring
// match against the file name or parent directory applies.
func FilterPaths(files []string, term string, m Map) []string {
	if term == "" {
		return files
	}
	g := strings.ToLower(strings.TrimSpace(term))

	var out []string
	for _, p := range files {
		if tags, ok := m[util.CanonicalPath(p)]; ok {
			if _, hit := tags[g]; hit {
				out = append(out, p)
			}
			continue
		}
		name := strings.ToLower(filepath.Base(p))
		parent := strings.ToLower(filepath.Dir(p))
		if strings.Contains(name, g) || strings.Contains(parent, g) {
			out = append(out, p)
		}
	}
	return out
}

// FilterItems narrows CSV items to those whose genre field contains the
// term: a tag matches when it equals the term or contains it as a
// substring.
func FilterItems(items []source.Item, term string) []source.Item {
	if term == "" {
		return items
	}
	g := strings.ToLower(strings.TrimSpace(term))

	var out []source.Item
	for _, it := range items {
		for _, tag := range SplitTags(it.Genre) {
			if tag == g || strings.Contains(tag, g) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// ApplyFilter narrows CSV items by the genre term. When the items carry
// no genre data at all the filter is skipped and skipped is true, so the
// caller can warn instead of silently emptying the playlist. When genre
// data exists but nothing matches, the error lists the genres that are
// present.
func ApplyFilter(items []source.Item, term string) (filtered []source.Item, skipped bool, err error) {
	if strings.TrimSpace(term) == "" {
		return items, false, nil
	}
	if !HasGenreData(items) {
		return items, true, nil
	}

	filtered = FilterItems(items, term)
	if len(filtered) == 0 {
		tip := "no usable genre values present"
		if available := Available(items); len(available) > 0 {
			tip = "available genres: " + strings.Join(available, ", ")
		}
		return nil, false, fmt.Errorf("no rows matched genre %q (read %d rows); %s", term, len(items), tip)
	}
	return filtered, false, nil
}

// HasGenreData reports whether any item carries a genre value at all.
// When nothing does, a requested filter is skipped instead of silently
// emptying the playlist.
func HasGenreData(items []source.Item) bool {
	for _, it := range items {
		if strings.TrimSpace(it.Genre) != "" {
			return true
		}
	}
	return false
}

// Available returns the sorted distinct genre tags present in items,
// used to help the user when a filter matches nothing.
func Available(items []source.Item) []string {
	set := map[string]struct{}{}
	for _, it := range items {
		for _, tag := range SplitTags(it.Genre) {
			set[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
