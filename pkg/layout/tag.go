package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nspcc-dev/bincodec/pkg/byteorder"
	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/text"
)

// TagKey is the struct tag key used for layout options.
const TagKey = "bin"

// memberTag is a parsed member tag.
type memberTag struct {
	skip   bool
	order  int
	length Opt[int]
	format Format
}

func splitTag(tag string) []string {
	var res []string
	for _, p := range strings.Split(tag, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func parseMemberTag(tag string) (memberTag, error) {
	var res memberTag
	if strings.TrimSpace(tag) == "-" {
		res.skip = true
		return res, nil
	}
	for _, opt := range splitTag(tag) {
		key, val, _ := strings.Cut(opt, "=")
		var err error
		switch key {
		case "order":
			res.order, err = strconv.Atoi(val)
		case "len":
			var n int
			n, err = strconv.Atoi(val)
			if err == nil && n < 0 {
				err = fmt.Errorf("negative length %d", n)
			}
			res.length = Some(n)
		case "str":
			var c io.StringCoding
			c, err = io.ParseStringCoding(val)
			res.format.StringCoding = Some(c)
		case "enc":
			res.format.Encoding, err = text.Lookup(val)
		case "endian":
			res.format.ByteOrder, err = byteorder.Parse(val)
		case "bool":
			var c io.BooleanCoding
			c, err = io.ParseBooleanCoding(val)
			res.format.BooleanCoding = Some(c)
		case "time":
			var c io.DateTimeCoding
			c, err = io.ParseDateTimeCoding(val)
			res.format.DateTimeCoding = Some(c)
		case "arrlen":
			var c io.LengthCoding
			c, err = io.ParseLengthCoding(val)
			res.format.LengthCoding = Some(c)
		case "strict":
			res.format.Strict = Some(true)
		case "lax":
			res.format.Strict = Some(false)
		default:
			err = fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return res, fmt.Errorf("%w: tag option %q: %w", io.ErrInvalidArgument, opt, err)
		}
	}
	return res, nil
}

func parseClassTag(tag string) (ClassOptions, error) {
	var res ClassOptions
	for _, opt := range splitTag(tag) {
		key, val, _ := strings.Cut(opt, "=")
		var err error
		switch key {
		case "explicit":
			res.Explicit = true
		case "implicit":
			res.Explicit = false
		case "noinherit":
			res.NoInherit = true
		case "inherit":
			res.NoInherit = false
		case "offset":
			res.Offset, err = ParseOffset(val)
		default:
			err = fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return res, fmt.Errorf("%w: class tag option %q: %w", io.ErrInvalidArgument, opt, err)
		}
	}
	return res, nil
}

// ParseOffset parses offset directives like "abs:16" or "rel:-2". A bare
// number is an absolute offset.
func ParseOffset(s string) (Offset, error) {
	origin, amount, found := strings.Cut(s, ":")
	if !found {
		origin, amount = "abs", s
	}
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return Offset{}, err
	}
	switch origin {
	case "abs":
		if n < 0 {
			return Offset{}, fmt.Errorf("negative absolute offset %d", n)
		}
		return Offset{Origin: Absolute, Amount: n}, nil
	case "rel":
		return Offset{Origin: Relative, Amount: n}, nil
	default:
		return Offset{}, fmt.Errorf("unknown offset origin %q", origin)
	}
}
