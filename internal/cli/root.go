// Package cli provides the ImageVault command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ImageVault/internal/config"
	"ImageVault/internal/errors"
	"ImageVault/internal/log"

	"github.com/spf13/cobra"
)

// Version is set by main.go
var Version = "dev"

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "imagevault",
	Short: "Encrypt images into tamper-evident containers",
	Long: `ImageVault seals an image and its metadata (name, format, dimensions,
checksum) into a single authenticated container under a 256-bit key:
  - AES-256-GCM (default) or ChaCha20-Poly1305 authenticated encryption
  - SHA3-256 checksum of the original image bytes
  - Optional Reed-Solomon armor against storage bit-rot

Keys are 44 characters of base64. Generate one with "imagevault keygen".`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Global flags
var (
	cfgPath  string
	logLevel string
	logFile  string

	// cfg is the loaded configuration with global flag overrides applied
	cfg *config.Config
)

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default $"+config.EnvPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		c.LogFile = logFile
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	if c.LogFile != "" {
		if err := log.EnableFileLogging(c.LogFile, c.Level); err != nil {
			return errors.NewFileError("open", c.LogFile, err)
		}
	} else {
		log.SetLogger(log.New(cmd.ErrOrStderr(), c.Level))
	}
	log.Debug("Configuration loaded",
		log.String("cipher", c.Suite.String()),
		log.Int("workers", c.Workers),
		log.Int64("max_image_size", c.MaxImageByte),
	)
	return nil
}

// currentConfig returns the loaded configuration, or the defaults when a
// command runs without the root's pre-run hook.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// Execute runs the CLI application and returns the process exit code.
// SIGINT and SIGTERM cancel the running operation.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+errors.UserMessage(errors.Public(err)))
		return 1
	}
	return 0
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
