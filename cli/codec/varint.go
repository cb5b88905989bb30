package codec

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"
)

func varintEncode(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	n, err := strconv.ParseUint(e.arg, 0, 32)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid number: %w", err), 1)
	}
	w := e.writer()
	w.WriteVarUint32(uint32(n))
	return printHex(ctx, w)
}

func varintDecode(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	r, err := e.reader()
	if err != nil {
		return err
	}
	n := r.ReadVarUint32()
	if r.Err != nil {
		return cli.NewExitError(r.Err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, n)
	return nil
}
