// Command mockhive serves a mock API defined by a folder of route
// files (§1/§6). Flag parsing follows the teacher's cobra root-command
// style (theanswer42-bt-go/cmd/bt/main.go), widened with caarlos0/env
// overrides the way the teacher's own internal/config layers env on
// top of flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rawen554/mockhive/internal/config"
	"github.com/rawen554/mockhive/internal/logger"
	"github.com/rawen554/mockhive/internal/server"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "mockhive",
	Short:   "Serve a mock HTTP API from a folder of route files",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()

		if port, _ := cmd.Flags().GetUint16("port"); cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if folder, _ := cmd.Flags().GetString("folder"); cmd.Flags().Changed("folder") {
			cfg.Folder = folder
		}
		if disableCORS, _ := cmd.Flags().GetBool("disable-cors"); cmd.Flags().Changed("disable-cors") {
			cfg.DisableCORS = disableCORS
		}
		if origin, _ := cmd.Flags().GetString("allowed-origin"); cmd.Flags().Changed("allowed-origin") {
			cfg.AllowedOrigin = origin
		}

		if err := config.ApplyEnv(&cfg); err != nil {
			return err
		}

		log, err := logger.New()
		if err != nil {
			return fmt.Errorf("starting logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck

		return server.Run(cfg, log)
	},
}

func init() {
	defaults := config.Default()
	rootCmd.Flags().Uint16P("port", "p", defaults.Port, "port to listen on")
	rootCmd.Flags().StringP("folder", "f", defaults.Folder, "mock root folder to serve")
	rootCmd.Flags().BoolP("disable-cors", "d", defaults.DisableCORS, "disable CORS headers")
	rootCmd.Flags().StringP("allowed-origin", "a", defaults.AllowedOrigin, "allowed CORS origin")
}
