/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/config"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/mapper"
	"github.com/nspcc-dev/bincodec/pkg/text"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is a flag for commands that use configuration and provide a path to
// the directory with the default configuration file.
var Config = cli.StringFlag{
	Name:  "config-path",
	Usage: "path to directory with " + config.DefaultFileName + " (may be overridden by --config-file option)",
}

// ConfigFile is a flag for commands that use configuration and provide path
// to the specific config file instead of config path.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the configuration file (overrides --config-path option)",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Codec is a set of flags overriding the configured codec defaults.
var Codec = []cli.Flag{
	cli.StringFlag{
		Name:  "endian, e",
		Usage: "byte order: little, big or native",
	},
	cli.StringFlag{
		Name:  "coding, c",
		Usage: "string coding: varint, byte, int16, int32, zero or raw",
	},
	cli.StringFlag{
		Name:  "encoding",
		Usage: "text encoding name (utf-8, utf-16le, utf-16be, windows-1252, ...)",
	},
}

// Common is the full set of flags codec commands accept.
var Common = append([]cli.Flag{Config, ConfigFile, Debug}, Codec...)

// GetConfigFromContext looks at the path flags in the given context and
// returns an appropriate config. Without any flags the default
// configuration is returned.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	if configFile := ctx.String("config-file"); len(configFile) != 0 {
		return config.LoadFile(configFile)
	}
	if configPath := ctx.String("config-path"); configPath != "" {
		return config.Load(configPath)
	}
	return config.Default(), nil
}

// GetCodecOptions returns mapper options built from the configuration with
// flag overrides applied.
func GetCodecOptions(ctx *cli.Context, cfg config.CodecConfiguration) (*mapper.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if s := ctx.String("endian"); s != "" {
		opts.ByteOrder, err = byteorder.Parse(s)
		if err != nil {
			return nil, err
		}
	}
	if s := ctx.String("coding"); s != "" {
		opts.StringCoding, err = io.ParseStringCoding(s)
		if err != nil {
			return nil, err
		}
	}
	if s := ctx.String("encoding"); s != "" {
		opts.Encoding, err = text.Lookup(s)
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := makeDirForFile(logPath, "logger"); err != nil {
			return nil, nil, err
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}

// makeDirForFile creates directory provided in filePath.
func makeDirForFile(filePath string, creator string) error {
	fileName := filePath
	dir := filepath.Dir(fileName)
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create dir for %s: %w", creator, err)
	}
	return nil
}
