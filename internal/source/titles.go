package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const oembedURL = "https://www.youtube.com/oembed"

// TitleFetcher fills missing item titles from the YouTube oEmbed endpoint.
type TitleFetcher struct {
	logger   zerolog.Logger
	client   *resty.Client
	endpoint string
}

// NewTitleFetcher creates a fetcher with sane timeouts and retries.
func NewTitleFetcher(logger zerolog.Logger) *TitleFetcher {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &TitleFetcher{
		logger:   logger.With().Str("component", "titles").Logger(),
		client:   client,
		endpoint: oembedURL,
	}
}

type oembedResponse struct {
	Title string `json:"title"`
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Fetch returns the title for a single video id.
func (t *TitleFetcher) Fetch(ctx context.Context, id string) (string, error) {
	var body oembedResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("url", WatchURL(id)).
		SetQueryParam("format", "json").
		SetResult(&body).
		Get(t.endpoint)
	if err != nil {
		return "", fmt.Errorf("oembed request for %s: %w", id, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("oembed request for %s: status %d", id, resp.StatusCode())
	}
	return body.Title, nil
}

// FillTitles fetches titles for every item whose title is empty. Lookup
// failures are logged and skipped so one private video does not sink the
// whole run. Returns the number of titles filled.
func (t *TitleFetcher) FillTitles(ctx context.Context, items []Item) int {
	filled := 0
	for i := range items {
		if items[i].Title != "" {
			continue
		}
		title, err := t.Fetch(ctx, items[i].Ref)
		if err != nil {
			t.logger.Warn().Err(err).Str("id", items[i].Ref).Msg("title lookup failed")
			continue
		}
		items[i].Title = title
		filled++
		t.logger.Debug().Str("id", items[i].Ref).Str("title", title).Msg("title resolved")
	}
	return filled
}

// WriteCSV writes items back out in the canonical authoring format
// (id,title,genre,chorus,start). Absent timestamps stay empty.
func WriteCSV(items []Item, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "genre", "chorus", "start"}); err != nil {
		return err
	}
	for _, it := range items {
		record := []string{it.Ref, it.Title, it.Genre, formatOptSeconds(it.Chorus), formatOptSeconds(it.Start)}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatOptSeconds(v *float64) string {
	if v == nil {
		return ""
	}
	secs := int(*v)
	if secs < 0 {
		secs = 0
	}
	return strconv.Itoa(secs)
}
