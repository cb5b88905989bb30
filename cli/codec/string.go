package codec

import (
	"fmt"

	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/urfave/cli"
)

func stringEncode(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	w := e.writer()
	w.WriteString(e.arg, e.opts.StringCoding, e.opts.Encoding)
	return printHex(ctx, w)
}

func stringDecode(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	var s string
	if e.opts.StringCoding == io.Raw {
		data, err := decodeHex(e.arg)
		if err != nil {
			return err
		}
		s, err = e.opts.Encoding.Decode(data)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("%w: %w", io.ErrInvalidData, err), 1)
		}
	} else {
		r, err := e.reader()
		if err != nil {
			return err
		}
		s = r.ReadString(e.opts.StringCoding, e.opts.Encoding)
		if r.Err != nil {
			return cli.NewExitError(r.Err, 1)
		}
	}
	fmt.Fprintf(ctx.App.Writer, "%q\n", s)
	return nil
}
