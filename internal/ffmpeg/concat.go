package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keagan/powerhour/pkg/util"
)

// ConcatOptions defines concatenation parameters
type ConcatOptions struct {
	Inputs       []string
	Output       string
	FastStart    bool
	ProgressFunc ProgressFunc
}

// Concat merges pre-encoded segments into one file via the concat
// demuxer. Segments share encoding parameters, so streams are copied.
func (e *Executor) Concat(ctx context.Context, opts ConcatOptions) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	e.logger.Info().
		Int("inputs", len(opts.Inputs)).
		Str("output", opts.Output).
		Msg("concatenating segments")

	concatFile, err := e.writeConcatList(opts.Inputs)
	if err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	defer util.CleanupFiles(concatFile)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", concatFile,
		"-c", "copy",
	}
	if opts.FastStart {
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, opts.Output)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("concatenating")
		},
	}
	return e.Run(ctx, runOpts)
}

// CrossfadeOptions defines overlapped concatenation parameters.
type CrossfadeOptions struct {
	Inputs       []string
	Output       string
	Overlap      float64 // seconds each segment overlaps the previous
	Duration     float64 // nominal segment length in seconds
	CRF          int
	Preset       string
	ProgressFunc ProgressFunc
}

// ConcatCrossfade merges segments on a shared timeline where each
// segment fades into the next. Requires a full re-encode.
func (e *Executor) ConcatCrossfade(ctx context.Context, opts CrossfadeOptions) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Overlap <= 0 || opts.Overlap >= opts.Duration {
		return fmt.Errorf("overlap %.3f must be positive and shorter than segment duration %.3f", opts.Overlap, opts.Duration)
	}

	if len(opts.Inputs) == 1 {
		return e.Concat(ctx, ConcatOptions{
			Inputs:       opts.Inputs,
			Output:       opts.Output,
			FastStart:    true,
			ProgressFunc: opts.ProgressFunc,
		})
	}

	e.logger.Info().
		Int("inputs", len(opts.Inputs)).
		Float64("overlap", opts.Overlap).
		Str("output", opts.Output).
		Msg("concatenating segments with crossfade")

	args := make([]string, 0, len(opts.Inputs)*2+16)
	for _, in := range opts.Inputs {
		args = append(args, "-i", in)
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
		"-filter_complex", BuildCrossfadeGraph(len(opts.Inputs), opts.Duration, opts.Overlap),
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", DefaultVideoCodec,
		"-crf", fmt.Sprintf("%d", crf),
		"-preset", preset,
		"-c:a", DefaultAudioCodec,
		"-movflags", "+faststart",
		opts.Output,
	)

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("crossfade concat")
		},
	}
	return e.Run(ctx, runOpts)
}

// BuildCrossfadeGraph chains xfade/acrossfade pairs across n inputs. The
// i-th transition starts at (i+1)*(duration-overlap) on the composed
// timeline.
func BuildCrossfadeGraph(n int, duration, overlap float64) string {
	step := duration - overlap

	var sb strings.Builder
	prevV, prevA := "[0:v]", "[0:a]"
	for i := 1; i < n; i++ {
		offset := float64(i) * step

		outV := fmt.Sprintf("[v%d]", i)
		outA := fmt.Sprintf("[a%d]", i)
		if i == n-1 {
			outV, outA = "[v]", "[a]"
		}

		sb.WriteString(fmt.Sprintf("%s[%d:v]xfade=transition=fade:duration=%s:offset=%s%s;",
			prevV, i, util.FormatSeconds(overlap), util.FormatSeconds(offset), outV))
		sb.WriteString(fmt.Sprintf("%s[%d:a]acrossfade=d=%s%s", prevA, i, util.FormatSeconds(overlap), outA))
		if i != n-1 {
			sb.WriteString(";")
		}

		prevV, prevA = outV, outA
	}
	return sb.String()
}

// writeConcatList generates a temporary file list for the concat demuxer
func (e *Executor) writeConcatList(inputs []string) (string, error) {
	tmpFile, err := os.CreateTemp("", "powerhour-concat-*.txt")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	for _, input := range inputs {
		absPath, err := filepath.Abs(input)
		if err != nil {
			util.CleanupFiles(tmpFile.Name())
			return "", err
		}
		if _, err := fmt.Fprintf(tmpFile, "file '%s'\n", absPath); err != nil {
			util.CleanupFiles(tmpFile.Name())
			return "", err
		}
	}

	return tmpFile.Name(), nil
}
