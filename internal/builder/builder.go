package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/keagan/powerhour/internal/ffmpeg"
	"github.com/keagan/powerhour/pkg/util"
)

// Options is the configuration value object for a single build call.
type Options struct {
	ClipSeconds float64
	Crossfade   float64 // seconds of overlap between clips, 0 disables
	StartOffset float64 // seconds to skip at the start of each clip
	Width       int
	Height      int
	FPS         float64
	AudioFade   float64
	CRF         int
	Preset      string
}

// Builder turns an ordered file list into one encoded power-hour video.
type Builder struct {
	logger  zerolog.Logger
	exec    *ffmpeg.Executor
	tempDir string
}

// New creates a builder that stages intermediate segments under tempDir.
func New(logger zerolog.Logger, exec *ffmpeg.Executor, tempDir string) *Builder {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Builder{
		logger:  logger.With().Str("component", "builder").Logger(),
		exec:    exec,
		tempDir: tempDir,
	}
}

// Build trims every input to the clip length, re-encodes to shared
// parameters and concatenates the segments (overlapped when crossfade is
// requested). Intermediate segments are removed on success and failure;
// cleanup problems never mask the build error.
func (b *Builder) Build(ctx context.Context, files []string, output string, opts Options) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("no input files provided")
	}
	if opts.ClipSeconds <= 0 {
		return "", fmt.Errorf("clip seconds must be positive")
	}

	if err := util.EnsureDir(filepath.Dir(output)); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	workDir := filepath.Join(b.tempDir, "powerhour-"+uuid.NewString())
	if err := util.EnsureDir(workDir); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			b.logger.Warn().Err(err).Str("dir", workDir).Msg("work dir cleanup failed")
		}
	}()

	b.logger.Info().
		Int("clips", len(files)).
		Str("output", output).
		Float64("clip_seconds", opts.ClipSeconds).
		Float64("crossfade", opts.Crossfade).
		Float64("start_offset", opts.StartOffset).
		Msg("building power hour")

	segments := make([]string, 0, len(files))
	for i, file := range files {
		segPath := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", i))

		start, segLen, err := b.planSegment(ctx, file, opts)
		if err != nil {
			return "", err
		}

		segOpts := ffmpeg.SegmentOptions{
			Start:     start,
			Duration:  segLen,
			Width:     opts.Width,
			Height:    opts.Height,
			FPS:       opts.FPS,
			AudioFade: opts.AudioFade,
			CRF:       opts.CRF,
			Preset:    opts.Preset,
			Output:    segPath,
		}
		if err := b.exec.ExtractSegment(ctx, file, segOpts); err != nil {
			return "", fmt.Errorf("clip %d (%s): %w", i+1, filepath.Base(file), err)
		}
		segments = append(segments, segPath)
	}

	if opts.Crossfade > 0 {
		err := b.exec.ConcatCrossfade(ctx, ffmpeg.CrossfadeOptions{
			Inputs:   segments,
			Output:   output,
			Overlap:  opts.Crossfade,
			Duration: opts.ClipSeconds,
			CRF:      opts.CRF,
			Preset:   opts.Preset,
		})
		if err != nil {
			return "", fmt.Errorf("crossfade concat: %w", err)
		}
	} else {
		err := b.exec.Concat(ctx, ffmpeg.ConcatOptions{
			Inputs:    segments,
			Output:    output,
			FastStart: true,
		})
		if err != nil {
			return "", fmt.Errorf("concat: %w", err)
		}
	}

	b.logger.Info().Str("output", output).Msg("power hour build complete")
	return output, nil
}

// planSegment clamps the configured start offset and clip length to what
// the source actually has.
func (b *Builder) planSegment(ctx context.Context, file string, opts Options) (start, segLen float64, err error) {
	info, err := b.exec.ProbeVideo(ctx, file)
	if err != nil {
		return 0, 0, fmt.Errorf("probe %s: %w", filepath.Base(file), err)
	}

	b.logger.Debug().
		Str("file", filepath.Base(file)).
		Str("duration", util.FormatDuration(info.Duration)).
		Msg("probed source")

	return PlanSegment(info.Duration.Seconds(), opts.StartOffset, opts.ClipSeconds)
}

// PlanSegment computes the usable (start, length) window for one clip.
// The start offset is clamped into the source and the segment never runs
// past its end; sources shorter than the clip length contribute whatever
// they have.
func PlanSegment(sourceSeconds, startOffset, clipSeconds float64) (start, segLen float64, err error) {
	if sourceSeconds <= 0 {
		return 0, 0, fmt.Errorf("source has no usable duration")
	}

	start = startOffset
	if start < 0 {
		start = 0
	}
	if limit := sourceSeconds - 0.01; start > limit {
		start = max(0, limit)
	}

	segLen = min(clipSeconds, sourceSeconds-start)
	if segLen <= 0 {
		return 0, 0, fmt.Errorf("no playable range after start offset %.3f", startOffset)
	}
	return start, segLen, nil
}
