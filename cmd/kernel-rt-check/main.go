package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/open-edge-platform/kernel-rt-check/internal/config"
	"github.com/open-edge-platform/kernel-rt-check/internal/rtkernel"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/logger"
)

// Global command flags
var (
	logLevel       string // Explicit log level, wins over --verbose
	verbose        bool
	ignoreMismatch bool
	inspector      string
	reportDir      string
)

func main() {
	rootCmd := createRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createRootCommand creates the kernel-rt-check root command
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kernel-rt-check [flags] WORKSPACE",
		Short: "Check kernel and kernel-rt version consistency",
		Long: `kernel-rt-check validates that the default kernel packages of a
composed OS image and the kernel-rt extension packages are built from
the exact same upstream kernel version, so switching between the two
kernel variants keeps feature sets and errata fixes identical.

WORKSPACE is the build workspace root containing the extensions tree
and builds/latest/<arch>/commitmeta.json.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: initLogging,
		RunE:              executeCheck,
	}

	addGlobalFlags(rootCmd.Flags())
	return rootCmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, or error")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose (debug) logging")
	flags.BoolVar(&ignoreMismatch, "ignore-mismatch", false,
		"Print kernel version mismatches without failing (same as "+
			config.IgnoreMismatchEnv+"=1)")
	flags.StringVar(&inspector, "inspector", "",
		"Package inspector backend: command or header")
	flags.StringVar(&reportDir, "report-dir", "",
		"Also persist mismatch reports under this directory")
}

// resolveRequestedLogLevel prefers an explicit --log-level and falls
// back to debug when --verbose was set.
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if v, err := cmd.Flags().GetBool("verbose"); err == nil && v {
			return "debug"
		}
	}
	return ""
}

// initLogging installs the global Zap logger before any command logic runs
func initLogging(cmd *cobra.Command, args []string) error {
	level := resolveRequestedLogLevel(cmd)
	if level == "" {
		level = "info"
	}
	return logger.InitWithLevel(level)
}

// executeCheck handles the check execution logic
func executeCheck(cmd *cobra.Command, args []string) error {
	log := logger.Logger()
	workspace := args[0]

	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ignore-mismatch") {
		cfg.IgnoreMismatch = ignoreMismatch
	}
	if inspector != "" {
		cfg.Inspector = inspector
	}
	if reportDir != "" {
		cfg.ReportDir = reportDir
	}

	log.Infof("Checking kernel-rt consistency in workspace %s", workspace)
	if err := rtkernel.Run(cfg); err != nil {
		return err
	}
	return nil
}
