package ffmpeg

import (
	"context"
	"fmt"

	"github.com/keagan/powerhour/pkg/util"
)

// SegmentOptions defines how a single power-hour segment is cut from its
// source file.
type SegmentOptions struct {
	Start        float64 // seconds into the source
	Duration     float64 // segment length in seconds
	Width        int
	Height       int
	FPS          float64
	AudioFade    float64
	CRF          int
	Preset       string
	Output       string
	ProgressFunc ProgressFunc
}

// ExtractSegment cuts, scales and re-encodes one segment. Every segment
// is re-encoded to identical parameters so the final concat never has to
// fight mismatched streams.
func (e *Executor) ExtractSegment(ctx context.Context, input string, opts SegmentOptions) error {
	if opts.Duration <= 0 {
		return fmt.Errorf("invalid segment duration %.3f", opts.Duration)
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Float64("start", opts.Start).
		Float64("duration", opts.Duration).
		Msg("extracting segment")

	args := []string{
		"-ss", util.FormatSeconds(opts.Start),
		"-t", util.FormatSeconds(opts.Duration),
		"-i", input,
	}

	video := NewFilterBuilder().Scale(opts.Width, opts.Height)
	if opts.Width > 0 && opts.Height > 0 {
		// Scaled segments must share a sample aspect ratio or the concat
		// demuxer refuses to stream-copy them.
		video.Custom("setsar=1")
	}
	if vf := video.FPS(opts.FPS).Build(); vf != "" {
		args = append(args, "-vf", vf)
	}

	af := NewFilterBuilder().AudioFade(opts.AudioFade, opts.Duration).Build()
	if af != "" {
		args = append(args, "-af", af)
	}

	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	args = append(args,
		"-c:v", DefaultVideoCodec,
		"-crf", fmt.Sprintf("%d", crf),
		"-preset", preset,
		"-c:a", DefaultAudioCodec,
		"-pix_fmt", "yuv420p",
		opts.Output,
	)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("segment extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("segment extraction failed: %w", err)
	}
	return nil
}
