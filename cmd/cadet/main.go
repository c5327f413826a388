package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cadet/cmd/cadet/chat"
	"cadet/internal/client"
	"cadet/internal/config"
	"cadet/internal/logging"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	// Global flags
	verbose    bool
	configPath string
	gatewayURL string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cadet",
	Short: "Traductor de Jerga Técnica Naval",
	Long: `cadet simplifies naval technical manuals for cadets.

It runs a small HTTP gateway in front of the Gemini API and offers three
actions on a piece of manual text:
  translate      simplified explanation, steps and glossary
  visual         explanatory illustration without text
  infographic    prompt for external infographic tools

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if gatewayURL != "" {
			cfg.Client.BaseURL = gatewayURL
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		opts := logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, File: cfg.Logging.File}

		// The interactive UI owns the terminal, so it only logs to a file.
		if cmd == cmd.Root() {
			logger, err = logging.NewFileOnly(opts)
		} else {
			logger, err = logging.New(opts)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "Gateway base URL (or set CADET_GATEWAY_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(visualCmd)
	rootCmd.AddCommand(infographicCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

// newClient builds the gateway client from the loaded config.
func newClient() *client.Client {
	return client.New(client.Config{URL: cfg.GatewayURL()}, logging.Get(logger, logging.CategoryClient))
}

// runInteractive launches the terminal UI.
func runInteractive(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; use a subcommand instead (see cadet --help)")
	}

	return chat.Run(chat.Config{
		Context:  cmd.Context(),
		Gateway:  newClient(),
		ImageDir: cfg.Client.ImageDir,
		Logger:   logging.Get(logger, logging.CategoryUI),
	})
}
