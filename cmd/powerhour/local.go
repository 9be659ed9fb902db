package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/powerhour/internal/builder"
	"github.com/keagan/powerhour/internal/config"
	"github.com/keagan/powerhour/internal/ffmpeg"
	"github.com/keagan/powerhour/internal/genre"
	"github.com/keagan/powerhour/internal/playlist"
	"github.com/keagan/powerhour/internal/source"
)

// localFlags are the source/selection flags shared by plan and build.
type localFlags struct {
	inputDir  string
	pattern   string
	playlist  string
	genreTerm string
	genresCSV string
	limit     int
	shuffle   bool
	seed      int64
}

func (f *localFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.inputDir, "input-dir", "", "directory containing videos")
	cmd.Flags().StringVar(&f.pattern, "pattern", "*.mp4,*.mov", "comma-separated glob patterns")
	cmd.Flags().StringVar(&f.playlist, "playlist", "", "text file with one path per line")
	cmd.Flags().StringVar(&f.genreTerm, "genre", "", "genre filter: CSV mapping or filename substring")
	cmd.Flags().StringVar(&f.genresCSV, "genres-csv", "", "CSV with headers path,genre (genre may be | separated)")
	cmd.Flags().IntVar(&f.limit, "limit", 60, "number of clips to include")
	cmd.Flags().BoolVar(&f.shuffle, "shuffle", true, "shuffle candidates before picking")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for reproducibility")
}

// resolveLocal runs source resolution, genre filtering and selection for
// the local-file commands.
func resolveLocal(cmd *cobra.Command, f *localFlags) ([]string, error) {
	cfg := config.FromContext(cmd.Context())
	limit := flagOr(cmd, "limit", f.limit, cfg.Playlist.Limit)
	shuffle := flagOr(cmd, "shuffle", f.shuffle, cfg.Playlist.Shuffle)

	if limit < 1 {
		return nil, usageErrorf("--limit must be at least 1")
	}

	var files []string
	var err error
	switch {
	case f.playlist != "":
		files, err = source.ReadPlaylist(f.playlist)
	case f.inputDir != "":
		files, err = source.ScanDir(f.inputDir, source.SplitPatterns(f.pattern))
	default:
		return nil, usageErrorf("provide either --playlist or --input-dir")
	}
	if err != nil {
		return nil, err
	}

	genreMap, err := genre.Load(f.genresCSV)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, usageErrorf("genres csv not found: %s", f.genresCSV)
		}
		return nil, err
	}
	files = genre.FilterPaths(files, f.genreTerm, genreMap)
	if len(files) == 0 {
		return nil, usageErrorf("no files after filtering")
	}

	picked := playlist.Pick(files, playlist.Options{
		Limit:   limit,
		Shuffle: shuffle,
		Seed:    seedFromFlags(cmd, f.seed),
	})
	if playlist.Short(len(picked), limit) {
		log.Warn().
			Int("available", len(picked)).
			Int("requested", limit).
			Msg("fewer files available than requested")
	}
	return picked, nil
}

var planFlags localFlags

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: list selected files and their order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		picked, err := resolveLocal(cmd, &planFlags)
		if err != nil {
			return err
		}

		for i, p := range picked {
			fmt.Printf("%3d  %s\n", i+1, p)
		}
		return nil
	},
}

var (
	buildFlags localFlags

	buildOutput      string
	buildClipSeconds float64
	buildCrossfade   float64
	buildStartOffset float64
	buildWidth       int
	buildHeight      int
	buildFPS         float64
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the power hour video from local files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		clipSeconds := flagOr(cmd, "clip-seconds", buildClipSeconds, cfg.Playlist.ClipSeconds)
		width := flagOr(cmd, "target-width", buildWidth, cfg.Video.Width)
		height := flagOr(cmd, "target-height", buildHeight, cfg.Video.Height)

		if clipSeconds < 1 {
			return usageErrorf("--clip-seconds must be at least 1")
		}

		picked, err := resolveLocal(cmd, &buildFlags)
		if err != nil {
			return err
		}

		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		b := builder.New(log.Logger, exec, cfg.TempDir)
		out, err := b.Build(cmd.Context(), picked, buildOutput, builder.Options{
			ClipSeconds: clipSeconds,
			Crossfade:   buildCrossfade,
			StartOffset: buildStartOffset,
			Width:       width,
			Height:      height,
			FPS:         buildFPS,
			AudioFade:   cfg.Video.AudioFade,
			CRF:         cfg.Video.CRF,
			Preset:      cfg.Video.Preset,
		})
		if err != nil {
			return err
		}

		log.Info().Str("output", out).Msg("done")
		return nil
	},
}

func init() {
	planFlags.register(planCmd)
	buildFlags.register(buildCmd)

	buildCmd.Flags().StringVar(&buildOutput, "output", "./output/power_hour.mp4", "output video path")
	buildCmd.Flags().Float64Var(&buildClipSeconds, "clip-seconds", 60, "seconds per clip")
	buildCmd.Flags().Float64Var(&buildCrossfade, "crossfade", 0, "overlap seconds between clips")
	buildCmd.Flags().Float64Var(&buildStartOffset, "start-offset", 0, "start offset into each clip")
	buildCmd.Flags().IntVar(&buildWidth, "target-width", 1280, "target frame width")
	buildCmd.Flags().IntVar(&buildHeight, "target-height", 720, "target frame height")
	buildCmd.Flags().Float64Var(&buildFPS, "fps", 0, "target frame rate (0 keeps source rate)")
}
