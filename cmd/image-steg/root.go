package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-steg/internal/config"
	"github.com/ironsheep/image-steg/internal/logger"
)

type rootOptions struct {
	configFile string
	viper      *viper.Viper

	// cfg is resolved by the persistent pre-run hook before any RunE.
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{viper: config.New()}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "image-steg",
		Short: "Hide short text messages in PNG images",
		Long: `Hide short text messages in PNG images.

Two strategies are available. "bit" spreads the message over the lowest bit
of every color channel. "alpha" stores whole bytes in the color channels of
fully transparent pixels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.BindFlags(opts.viper, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(opts.viper, opts.configFile)
			if err != nil {
				return err
			}
			logger.Configure(cfg.Log.Level, cfg.Log.Type)
			opts.cfg = cfg
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	pf.String("log-level", defaults.Log.Level, "Log level: trace, debug, info, warn, error or fatal")
	pf.String("log-type", defaults.Log.Type, "Log format: text or json")
	pf.String("png-compression", defaults.PNG.Compression, "PNG compression of encoded images: default, none, fast or best")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newMCPCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(),
		newCapacityCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
