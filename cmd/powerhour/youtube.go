package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/powerhour/internal/config"
	"github.com/keagan/powerhour/internal/genre"
	"github.com/keagan/powerhour/internal/html"
	"github.com/keagan/powerhour/internal/playlist"
	"github.com/keagan/powerhour/internal/source"
)

var youtubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "YouTube playlist artifacts (no downloading)",
}

var (
	ytURLsFile         string
	ytURLsCSV          string
	ytGenre            string
	ytLimit            int
	ytShuffle          bool
	ytSeed             int64
	ytClipSeconds      float64
	ytPreChorus        float64
	ytDefaultStart     float64
	ytTitleRevealDelay float64
	ytOutput           string
)

var youtubeHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Generate an HTML player sequencing YouTube videos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		limit := flagOr(cmd, "limit", ytLimit, cfg.Playlist.Limit)
		shuffle := flagOr(cmd, "shuffle", ytShuffle, cfg.Playlist.Shuffle)
		clipSeconds := flagOr(cmd, "clip-seconds", ytClipSeconds, cfg.Playlist.ClipSeconds)
		preChorus := flagOr(cmd, "pre-chorus", ytPreChorus, cfg.YouTube.PreChorus)
		defaultStart := flagOr(cmd, "default-start", ytDefaultStart, cfg.YouTube.DefaultStart)

		if limit < 1 {
			return usageErrorf("--limit must be at least 1")
		}
		if clipSeconds < 5 {
			return usageErrorf("--clip-seconds must be at least 5")
		}

		opts := playlist.Options{
			Limit:   limit,
			Shuffle: shuffle,
			Seed:    seedFromFlags(cmd, ytSeed),
		}

		var entries []playlist.Entry
		switch {
		case ytURLsCSV != "":
			items, err := source.ReadYouTubeCSV(ytURLsCSV)
			if err != nil {
				return err
			}

			filtered, skipped, err := genre.ApplyFilter(items, ytGenre)
			if err != nil {
				return usageErrorf("%s", err)
			}
			if skipped {
				log.Warn().Msg("no genre data found in CSV; ignoring --genre filter")
			}
			items = filtered

			picked := playlist.Pick(items, opts)
			if playlist.Short(len(picked), limit) {
				log.Warn().
					Int("available", len(picked)).
					Int("requested", limit).
					Msg("fewer videos available than requested")
			}
			entries = playlist.Resolve(picked, preChorus, defaultStart)

		case ytURLsFile != "":
			items, err := source.ReadYouTubeList(ytURLsFile)
			if err != nil {
				return err
			}
			if ytGenre != "" {
				log.Warn().Msg("--genre is ignored with --urls-file; use --urls-csv for genre filtering")
			}
			picked := playlist.Pick(items, opts)
			if playlist.Short(len(picked), limit) {
				log.Warn().
					Int("available", len(picked)).
					Int("requested", limit).
					Msg("fewer videos available than requested")
			}
			entries = playlist.Resolve(picked, preChorus, defaultStart)

		default:
			return usageErrorf("provide either --urls-file or --urls-csv")
		}

		if len(entries) == 0 {
			return usageErrorf("no valid YouTube IDs/URLs found after filtering; ensure the CSV has 'id' or 'url' headers and rows are not empty")
		}

		playerCfg := html.PlayerConfig{
			ClipSeconds:      clipSeconds,
			TitleRevealDelay: ytTitleRevealDelay,
		}
		if err := html.WritePlayer(entries, playerCfg, ytOutput); err != nil {
			return err
		}

		log.Info().Int("clips", len(entries)).Str("output", ytOutput).Msg("HTML written")
		return nil
	},
}

var (
	previewCSV    string
	previewOutput string
)

var youtubePreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate an interactive HTML to mark chorus/start times",
	Long:  "Generates a page that plays each CSV row and lets you set chorus/start to the current player time, then download the updated CSV (id,title,genre,chorus,start).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := source.ReadYouTubeCSV(previewCSV)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return usageErrorf("CSV seems empty or missing 'id'/'url' columns")
		}

		if err := html.WritePreview(items, previewOutput); err != nil {
			return err
		}

		log.Info().Int("rows", len(items)).Str("output", previewOutput).Msg("preview HTML written")
		log.Info().Msg("tip: serve over http for best results, e.g. python3 -m http.server 8000")
		return nil
	},
}

var (
	titlesCSV    string
	titlesOutput string
)

var youtubeTitlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Fill missing CSV titles from the YouTube oEmbed endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := source.ReadYouTubeCSV(titlesCSV)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return usageErrorf("CSV seems empty or missing 'id'/'url' columns")
		}

		fetcher := source.NewTitleFetcher(log.Logger)
		filled := fetcher.FillTitles(cmd.Context(), items)

		out := titlesOutput
		if out == "" {
			out = titlesCSV
		}
		if err := source.WriteCSV(items, out); err != nil {
			return err
		}

		log.Info().Int("filled", filled).Str("output", out).Msg("titles updated")
		return nil
	},
}

func init() {
	youtubeHTMLCmd.Flags().StringVar(&ytURLsFile, "urls-file", "", "text file with YouTube URLs or IDs, one per line")
	youtubeHTMLCmd.Flags().StringVar(&ytURLsCSV, "urls-csv", "", "CSV with columns id or url, optional title/genre/chorus/start")
	youtubeHTMLCmd.Flags().StringVar(&ytGenre, "genre", "", "filter CSV rows by genre (case-insensitive, | separated)")
	youtubeHTMLCmd.Flags().IntVar(&ytLimit, "limit", 60, "number of clips to include")
	youtubeHTMLCmd.Flags().BoolVar(&ytShuffle, "shuffle", true, "shuffle before picking")
	youtubeHTMLCmd.Flags().Int64Var(&ytSeed, "seed", 0, "random seed for reproducibility")
	youtubeHTMLCmd.Flags().Float64Var(&ytClipSeconds, "clip-seconds", 60, "seconds to play from each video")
	youtubeHTMLCmd.Flags().Float64Var(&ytPreChorus, "pre-chorus", 10, "start this many seconds before a chorus time")
	youtubeHTMLCmd.Flags().Float64Var(&ytDefaultStart, "default-start", 0, "start time when no chorus/start is provided")
	youtubeHTMLCmd.Flags().Float64Var(&ytTitleRevealDelay, "title-reveal-delay", 0, "seconds before revealing the title (0 = immediately)")
	youtubeHTMLCmd.Flags().StringVar(&ytOutput, "output", "./output/power_hour_youtube.html", "output HTML path")

	youtubePreviewCmd.Flags().StringVar(&previewCSV, "urls-csv", "", "CSV with columns id or url, optional title/genre/chorus/start")
	youtubePreviewCmd.Flags().StringVar(&previewOutput, "output", "./output/preview_youtube.html", "output HTML path")
	_ = youtubePreviewCmd.MarkFlagRequired("urls-csv")

	youtubeTitlesCmd.Flags().StringVar(&titlesCSV, "urls-csv", "", "CSV with columns id or url")
	youtubeTitlesCmd.Flags().StringVar(&titlesOutput, "output", "", "output CSV path (default: overwrite input)")
	_ = youtubeTitlesCmd.MarkFlagRequired("urls-csv")

	youtubeCmd.AddCommand(youtubeHTMLCmd)
	youtubeCmd.AddCommand(youtubePreviewCmd)
	youtubeCmd.AddCommand(youtubeTitlesCmd)
}
