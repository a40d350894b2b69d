package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-steg/internal/raster"
	"github.com/ironsheep/image-steg/internal/steg"
)

// stdio is the path that selects stdin or stdout.
const stdio = "-"

type encodeOptions struct {
	strategy    string
	input       string
	output      string
	message     string
	messageFile string
}

func newEncodeCmd(opts *rootOptions) *cobra.Command {
	o := &encodeOptions{}

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Hide a message in a PNG image",
		Example: `  image-steg encode -i cover.png -o secret.png -m "meet at noon"
  echo -n "meet at noon" | image-steg encode --strategy alpha -i logo.png --message-file - > secret.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := o.readMessage(cmd)
			if err != nil {
				return err
			}
			return o.run(cmd, opts, msg)
		},
	}

	fs := encodeCmd.Flags()
	strategyFlag(fs, &o.strategy)
	inputFlag(fs, &o.input)
	fs.StringVarP(&o.output, "output", "o", stdio, `Where to write the encoded PNG, "-" for stdout`)
	fs.StringVarP(&o.message, "message", "m", "", "Message to hide")
	fs.StringVar(&o.messageFile, "message-file", "", `Read the message from a file, "-" for stdin`)
	encodeCmd.MarkFlagsMutuallyExclusive("message", "message-file")
	return encodeCmd
}

func (o *encodeOptions) readMessage(cmd *cobra.Command) ([]byte, error) {
	switch {
	case cmd.Flags().Changed("message"):
		return []byte(o.message), nil
	case o.messageFile == stdio:
		if o.input == stdio {
			return nil, errors.New("--input and --message-file cannot both read stdin")
		}
		return io.ReadAll(cmd.InOrStdin())
	case o.messageFile != "":
		msg, err := os.ReadFile(o.messageFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read message file: %w", err)
		}
		return msg, nil
	default:
		return nil, errors.New("one of --message or --message-file is required")
	}
}

func (o *encodeOptions) run(cmd *cobra.Command, opts *rootOptions, msg []byte) error {
	enc, err := steg.Lookup(o.strategy)
	if err != nil {
		return err
	}
	r, err := readRaster(cmd, o.input)
	if err != nil {
		return err
	}

	out, err := enc.Encode(r, msg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := raster.Encode(&buf, out, raster.WithCompression(opts.cfg.PNG.Level())); err != nil {
		return err
	}

	log.Debug().
		Str("strategy", o.strategy).
		Int("message_bytes", len(msg)).
		Int("capacity", enc.Capacity(r)).
		Int("png_bytes", buf.Len()).
		Msg("encoded message")

	if o.output == stdio {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func newDecodeCmd() *cobra.Command {
	var strategy, input string

	decodeCmd := &cobra.Command{
		Use:     "decode",
		Short:   "Print the message hidden in a PNG image",
		Example: `  image-steg decode -i secret.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, err := steg.Lookup(strategy)
			if err != nil {
				return err
			}
			r, err := readRaster(cmd, input)
			if err != nil {
				return err
			}
			msg, err := enc.Decode(r)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(msg))
			return err
		},
	}

	fs := decodeCmd.Flags()
	strategyFlag(fs, &strategy)
	inputFlag(fs, &input)
	return decodeCmd
}

func newCapacityCmd() *cobra.Command {
	var input string
	var asJSON bool

	capacityCmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show how many message bytes each strategy can hide in a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := readRaster(cmd, input)
			if err != nil {
				return err
			}

			capacity := make(map[string]int)
			for _, name := range steg.Strategies() {
				enc, err := steg.Lookup(name)
				if err != nil {
					return err
				}
				capacity[name] = enc.Capacity(r)
			}

			if asJSON {
				e := json.NewEncoder(cmd.OutOrStdout())
				e.SetIndent("", "  ")
				return e.Encode(capacity)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.SetTitle(fmt.Sprintf("%dx%d, %d transparent pixels", r.Width, r.Height, r.TransparentPixels()))
			tw.AppendHeader(table.Row{"Strategy", "Capacity (bytes)"})
			for _, name := range steg.Strategies() {
				tw.AppendRow(table.Row{name, strconv.Itoa(capacity[name])})
			}
			tw.Render()
			return nil
		},
	}

	fs := capacityCmd.Flags()
	inputFlag(fs, &input)
	fs.BoolVar(&asJSON, "json", false, "Print capacities as a JSON object")
	return capacityCmd
}

type flagSet interface {
	StringVarP(p *string, name, shorthand, value, usage string)
}

func strategyFlag(fs flagSet, p *string) {
	fs.StringVarP(p, "strategy", "s", steg.StrategyLSB, "Encoding strategy: bit, alpha or none")
}

func inputFlag(fs flagSet, p *string) {
	fs.StringVarP(p, "input", "i", stdio, `PNG image to read, "-" for stdin`)
}

func readRaster(cmd *cobra.Command, path string) (*raster.Raster, error) {
	if path == stdio {
		return raster.Decode(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return raster.Decode(f)
}
