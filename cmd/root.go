// Package cmd wires the command line: config and logging are set up once in
// the root command and shared by every subcommand.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"p9e.in/lms/config"
	"p9e.in/lms/pkg/logger"
)

// cfg is loaded by the root command before any subcommand runs.
var cfg *config.Config

func NewRoot(version, buildTime string) *cobra.Command {
	root := &cobra.Command{
		Use:               "lms",
		Short:             "Laboratory registration backend",
		SilenceUsage:      true,
		PersistentPreRunE: initGlobalResource,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPostRunE: cleanGlobalResource,
	}

	root.AddCommand(newServe())
	root.AddCommand(newMigrate())
	root.AddCommand(newCheckDB())
	root.AddCommand(newClearData())
	root.AddCommand(newVersion(version, buildTime))
	return root
}

func initGlobalResource(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	loaded, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	cfg = loaded

	return logger.Init(&logger.LogConfig{
		Path:       cfg.Log.Path,
		Level:      cfg.Log.Level,
		ServiceEnv: cfg.App.Environment,
	})
}

func cleanGlobalResource(_ *cobra.Command, _ []string) error {
	return logger.Close()
}

// openDB connects using the loaded config. The caller closes it with
// closeDB.
func openDB() (*gorm.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	return config.Connect(cfg.Database)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newVersion(version, buildTime string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info and exit",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version:   %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "BuildTime: %s\n", buildTime)
		},
	}
}
