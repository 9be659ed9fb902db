package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/keagan/powerhour/pkg/util"
)

// Header synonyms for the YouTube CSV, tried in order per logical field.
var (
	idKeys     = []string{"id", "video_id", "youtube_id"}
	urlKeys    = []string{"url", "link", "youtube_url"}
	titleKeys  = []string{"title", "name", "track"}
	genreKeys  = []string{"genre", "genres", "tag", "tags"}
	chorusKeys = []string{"chorus", "chorus_at", "chorus_time"}
	startKeys  = []string{"start", "start_at", "offset", "clip_start", "start_seconds"}
)

// ExtractVideoID pulls a YouTube video id out of a bare id or a
// recognized URL shape. Unrecognized inputs pass through unchanged as a
// best-effort id.
func ExtractVideoID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	// Plain IDs carry no URL punctuation
	if !strings.ContainsAny(s, "/?&") && len(s) >= 8 {
		return s
	}

	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if strings.HasSuffix(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	if strings.HasSuffix(u.Host, "youtube.com") {
		if vid := u.Query().Get("v"); vid != "" {
			return vid
		}
	}
	return s
}

// ReadYouTubeList reads a text file of YouTube URLs or IDs, one per
// non-empty, non-comment line.
func ReadYouTubeList(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("urls file: %w", err)
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, Item{Ref: ExtractVideoID(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("urls file: %w", err)
	}
	return items, nil
}

// ReadYouTubeCSV reads a CSV of YouTube references with flexible headers.
// Rows missing both id and url are dropped; bad timestamps resolve to
// absent rather than erroring.
func ReadYouTubeCSV(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv file: %w", err)
	}
	if len(records) < 1 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var items []Item
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}

		ref := pickField(headers, row, idKeys)
		if ref == "" {
			ref = pickField(headers, row, urlKeys)
		}
		if ref == "" {
			continue
		}

		item := Item{
			Ref:   ExtractVideoID(ref),
			Title: pickField(headers, row, titleKeys),
			Genre: pickField(headers, row, genreKeys),
		}
		if secs, ok := util.ParseTimecode(pickField(headers, row, chorusKeys)); ok {
			item.Chorus = &secs
		}
		if secs, ok := util.ParseTimecode(pickField(headers, row, startKeys)); ok {
			item.Start = &secs
		}
		items = append(items, item)
	}
	return items, nil
}

// pickField resolves a logical field against a row with fuzzy headers:
// exact key matches are tried in order first, then headers (in column
// order) containing one of the keys as a substring. A match requires a
// non-empty value.
func pickField(headers []string, row map[string]string, keys []string) string {
	for _, k := range keys {
		if v := row[k]; v != "" {
			return v
		}
	}
	for _, header := range headers {
		v := row[header]
		if v == "" {
			continue
		}
		for _, k := range keys {
			if strings.Contains(header, k) {
				return v
			}
		}
	}
	return ""
}
