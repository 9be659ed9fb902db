package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/powerhour/internal/config"
	"github.com/keagan/powerhour/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(exitCode(err))
	}
}

// usageError marks user-input problems that exit with code 2: bad flag
// combinations, empty candidate sets, unusable CSVs.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

var rootCmd = &cobra.Command{
	Use:           "powerhour",
	Short:         "powerhour - power hour playlist and video assembler",
	Long:          "Assembles power hour artifacts: one encoded video from local clips, or a self-contained HTML player sequencing YouTube embeds.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./powerhour.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(youtubeCmd)
	rootCmd.AddCommand(configCmd)
}

// seedFromFlags returns the seed pointer only when the flag was set, so
// unset means non-deterministic shuffling.
func seedFromFlags(cmd *cobra.Command, seed int64) *int64 {
	if cmd.Flags().Changed("seed") {
		return &seed
	}
	return nil
}

// flagOr prefers an explicitly set flag over the config file value.
func flagOr[T any](cmd *cobra.Command, name string, flagVal, cfgVal T) T {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	return cfgVal
}
