/*
Package codec implements the codec commands of the bincodec CLI. Every
command prints its binary results as hex and accepts hex input.
*/
package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/bincodec/cli/options"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/mapper"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var errNoArgument = errors.New("no argument given")

var typeFlag = cli.StringFlag{
	Name:  "type, t",
	Value: "int32",
	Usage: "primitive type: " + strings.Join(primitiveNames(), ", "),
}

// NewCommands returns codec commands for the bincodec CLI.
func NewCommands() []cli.Command {
	primitiveFlags := append([]cli.Flag{typeFlag}, options.Common...)
	return []cli.Command{
		{
			Name:  "varint",
			Usage: "7-bit variable-length integer conversions",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode an unsigned 32-bit number",
					UsageText: "bincodec varint encode <number>",
					Action:    varintEncode,
					Flags:     options.Common,
				},
				{
					Name:      "decode",
					Usage:     "Decode a hex-encoded variable-length integer",
					UsageText: "bincodec varint decode <hex>",
					Action:    varintDecode,
					Flags:     options.Common,
				},
			},
		},
		{
			Name:  "string",
			Usage: "String conversions using the configured coding and text encoding",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode a string",
					UsageText: "bincodec string encode [--coding <coding>] [--encoding <name>] [--endian <order>] <string>",
					Action:    stringEncode,
					Flags:     options.Common,
				},
				{
					Name:      "decode",
					Usage:     "Decode a hex-encoded string",
					UsageText: "bincodec string decode [--coding <coding>] [--encoding <name>] [--endian <order>] <hex>",
					Description: `Decodes a string from the given hex data. Raw strings have no length, so
   the whole input is treated as the string body.
`,
					Action: stringDecode,
					Flags:  options.Common,
				},
			},
		},
		{
			Name:  "primitive",
			Usage: "Fixed-width scalar conversions",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode a scalar value",
					UsageText: "bincodec primitive encode --type <type> [--endian <order>] <value>",
					Description: `Encodes the value of the given type. Negative numbers need to be separated
   from flags with "--". Time values are RFC 3339 strings, decimals are
   written as plain decimal fractions like "-12.345".
`,
					Action: primitiveEncode,
					Flags:  primitiveFlags,
				},
				{
					Name:      "decode",
					Usage:     "Decode a hex-encoded scalar value",
					UsageText: "bincodec primitive decode --type <type> [--endian <order>] <hex>",
					Action:    primitiveDecode,
					Flags:     primitiveFlags,
				},
			},
		},
	}
}

// env is the state shared by all command actions.
type env struct {
	opts *mapper.Options
	log  *zap.Logger
	arg  string
}

func newEnv(ctx *cli.Context) (*env, error) {
	if !ctx.Args().Present() {
		return nil, cli.NewExitError(errNoArgument, 1)
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.Application)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	opts, err := options.GetCodecOptions(ctx, cfg.Codec)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	opts.Logger = log
	log.Debug("codec options",
		zap.Stringer("byte order", opts.ByteOrder),
		zap.Stringer("string coding", opts.StringCoding),
		zap.String("encoding", opts.Encoding.Name()))
	return &env{opts: opts, log: log, arg: ctx.Args().First()}, nil
}

func (e *env) close() {
	_ = e.log.Sync()
}

func (e *env) reader() (*io.BinReader, error) {
	data, err := decodeHex(e.arg)
	if err != nil {
		return nil, err
	}
	r := io.NewBinReaderFromBuf(data)
	r.SetOrder(e.opts.ByteOrder)
	return r, nil
}

func (e *env) writer() *io.BufBinWriter {
	w := io.NewBufBinWriter()
	w.SetOrder(e.opts.ByteOrder)
	return w
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, cli.NewExitError(fmt.Errorf("invalid hex input: %w", err), 1)
	}
	return data, nil
}

func printHex(ctx *cli.Context, w *io.BufBinWriter) error {
	if w.Err != nil {
		return cli.NewExitError(w.Err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(w.Bytes()))
	return nil
}
