package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/powerhour/internal/config"
	"github.com/keagan/powerhour/pkg/util"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if util.FileExists(configInitPath) {
			return usageErrorf("config file already exists: %s", configInitPath)
		}

		cfg := config.FromContext(cmd.Context())
		if err := cfg.Save(configInitPath); err != nil {
			return err
		}

		log.Info().Str("path", configInitPath).Msg("config written")
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "output", "./powerhour.yaml", "where to write the config file")
	configCmd.AddCommand(configInitCmd)
}
