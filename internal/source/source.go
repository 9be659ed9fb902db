package source

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keagan/powerhour/pkg/util"
)

// Item is a single playlist candidate. Local-file mode only fills Ref;
// YouTube CSV mode may fill all fields. Items are not mutated after
// resolution.
type Item struct {
	Ref    string // local path or YouTube video id
	Title  string
	Genre  string // possibly |-delimited list of tags
	Chorus *float64
	Start  *float64
}

// videoExts are the fallback extensions used when glob patterns match nothing.
var videoExts = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
	".m4v":  {},
}

// ScanDir expands each glob pattern recursively under root, in pattern
// order. If no pattern matches anything it falls back to every file with
// a known video extension. The result is deduplicated by canonical path,
// first occurrence wins.
func ScanDir(root string, patterns []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", root)
	}

	var files []string
	for _, pat := range patterns {
		matches, err := globRecursive(root, pat)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := videoExts[strings.ToLower(filepath.Ext(p))]; ok {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		sort.Strings(files)
	}

	return dedupe(files), nil
}

// globRecursive matches pattern against file base names at every depth,
// returning matches in sorted order.
func globRecursive(root, pattern string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := path.Match(pattern, d.Name())
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// ReadPlaylist reads a newline-delimited list of file paths. Blank lines
// and #-prefixed comments are skipped.
func ReadPlaylist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("playlist file: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, util.CanonicalPath(util.ExpandHome(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("playlist file: %w", err)
	}
	return out, nil
}

// SplitPatterns turns a comma-separated pattern flag into a clean slice.
func SplitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		canon := util.CanonicalPath(p)
		if _, ok := seen[canon]; ok {
			continue
		}
		seen[canon] = struct{}{}
		unique = append(unique, canon)
	}
	return unique
}
