package main

import (
	"cadet/internal/gateway"
	"cadet/internal/logging"

	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP gateway
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway in front of the Gemini API",
	Long: `Starts the single action endpoint (default POST /api/generate on :8787).

The provider credential is read from provider.api_key or the API_KEY,
GEMINI_API_KEY or GOOGLE_API_KEY environment variables. Without one the
gateway still starts and answers every request with a configuration error.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides gateway.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Gateway.Addr = serveAddr
	}

	srv, err := gateway.NewServer(cmd.Context(), cfg, nil, logging.Get(logger, logging.CategoryGateway))
	if err != nil {
		return err
	}
	return srv.Run(cmd.Context())
}
