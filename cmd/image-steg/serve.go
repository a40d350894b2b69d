package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-steg/internal/api"
	"github.com/ironsheep/image-steg/internal/config"
	"github.com/ironsheep/image-steg/internal/mcp"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	defaults := config.Default().API

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the encoders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := log.Logger
			srv, err := api.NewServer(api.Params{
				API:    opts.cfg.API,
				PNG:    opts.cfg.PNG,
				Logger: &l,
			})
			if err != nil {
				return err
			}

			log.Info().
				Str("address", srv.GetURI()).
				Str("version", Version).
				Str("max_upload", opts.cfg.API.MaxUpload.HumanReadable()).
				Msg("starting image-steg API")
			return srv.ListenAndServe(cmd.Context())
		},
	}

	fs := serveCmd.Flags()
	fs.String("host", defaults.Host, "Address to listen on")
	fs.Int("port", defaults.Port, "Port to listen on")
	fs.String("max-upload", defaults.MaxUpload.String(), "Largest accepted request body, e.g. 10MB")
	fs.Duration("read-timeout", defaults.ReadTimeout, "Maximum duration for reading a request")
	fs.Duration("write-timeout", defaults.WriteTimeout, "Maximum duration for writing a response")
	return serveCmd
}

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the encoders as MCP tools over stdin and stdout",
		Long: `Serve the encoders as MCP tools over stdin and stdout.

Configure this command in your MCP client. Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.Debug().
				Str("version", Version).
				Str("build_time", BuildTime).
				Str("commit", GitCommit).
				Msg("starting image-steg MCP server")

			srv := mcp.New(
				mcp.WithCompression(opts.cfg.PNG.Level()),
				mcp.WithVersion(Version),
			)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
