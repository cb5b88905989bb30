package config

import (
	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/mapper"
	"github.com/nspcc-dev/bincodec/pkg/text"
)

// CodecConfiguration holds codec defaults, codings are set by name
// ("varint", "zero", "dword", "ctime", ...).
type CodecConfiguration struct {
	ByteOrder      string            `yaml:"ByteOrder"`
	StringCoding   io.StringCoding   `yaml:"StringCoding"`
	Encoding       string            `yaml:"Encoding"`
	BooleanCoding  io.BooleanCoding  `yaml:"BooleanCoding"`
	DateTimeCoding io.DateTimeCoding `yaml:"DateTimeCoding"`
	LengthCoding   io.LengthCoding   `yaml:"LengthCoding"`
	StrictEnums    bool              `yaml:"StrictEnums"`
}

// Options converts the configuration into mapper options using the default
// descriptor registry.
func (c CodecConfiguration) Options() (*mapper.Options, error) {
	opts := &mapper.Options{
		StringCoding:   c.StringCoding,
		BooleanCoding:  c.BooleanCoding,
		DateTimeCoding: c.DateTimeCoding,
		LengthCoding:   c.LengthCoding,
		Strict:         c.StrictEnums,
	}
	if c.ByteOrder != "" {
		bo, err := byteorder.Parse(c.ByteOrder)
		if err != nil {
			return nil, err
		}
		opts.ByteOrder = bo
	}
	if c.Encoding != "" {
		enc, err := text.Lookup(c.Encoding)
		if err != nil {
			return nil, err
		}
		opts.Encoding = enc
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
