package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

type executor struct {
	app *cli.App
	out *bytes.Buffer
}

func newExecutor() *executor {
	ctl := cli.NewApp()
	ctl.Name = "bincodec"
	ctl.Commands = NewCommands()
	out := new(bytes.Buffer)
	ctl.Writer = out
	ctl.ErrWriter = out
	ctl.ExitErrHandler = func(*cli.Context, error) {}
	return &executor{app: ctl, out: out}
}

func (e *executor) run(t *testing.T, args ...string) string {
	e.out.Reset()
	require.NoError(t, e.app.Run(append([]string{"bincodec"}, args...)))
	return strings.TrimSpace(e.out.String())
}

func (e *executor) runFail(t *testing.T, args ...string) {
	e.out.Reset()
	require.Error(t, e.app.Run(append([]string{"bincodec"}, args...)))
}

func TestVarint(t *testing.T) {
	e := newExecutor()
	require.Equal(t, "ac02", e.run(t, "varint", "encode", "300"))
	require.Equal(t, "ffffffff0f", e.run(t, "varint", "encode", "0xffffffff"))
	require.Equal(t, "300", e.run(t, "varint", "decode", "ac02"))
	require.Equal(t, "127", e.run(t, "varint", "decode", "0x7f"))

	e.runFail(t, "varint", "encode", "-1")
	e.runFail(t, "varint", "encode")
	e.runFail(t, "varint", "decode", "zz")
	e.runFail(t, "varint", "decode", "8080")
	e.runFail(t, "varint", "decode", "808080808000")
}

func TestString(t *testing.T) {
	e := newExecutor()
	require.Equal(t, "026869", e.run(t, "string", "encode", "hi"))
	require.Equal(t, "02006869", e.run(t, "string", "encode", "--coding", "int16", "hi"))
	require.Equal(t, "00026869", e.run(t, "string", "encode", "--coding", "int16", "--endian", "big", "hi"))
	require.Equal(t, "680069000000", e.run(t, "string", "encode", "-c", "zero", "--encoding", "utf-16le", "hi"))
	require.Equal(t, "e9", e.run(t, "string", "encode", "-c", "raw", "--encoding", "latin1", "é"))

	require.Equal(t, `"hi"`, e.run(t, "string", "decode", "026869"))
	require.Equal(t, `"hi"`, e.run(t, "string", "decode", "-c", "zero", "--encoding", "utf-16le", "680069000000"))
	require.Equal(t, `"é"`, e.run(t, "string", "decode", "-c", "raw", "--encoding", "latin1", "e9"))

	e.runFail(t, "string", "encode", "-c", "pascal", "hi")
	e.runFail(t, "string", "encode", "--encoding", "klingon", "hi")
	e.runFail(t, "string", "decode", "05")
}

func TestPrimitive(t *testing.T) {
	e := newExecutor()
	for _, tc := range []struct {
		typ, value, endian, encoded string
	}{
		{"int32", "-2", "little", "feffffff"},
		{"int32", "-2", "big", "fffffffe"},
		{"uint16", "4660", "big", "1234"},
		{"uint64", "1", "little", "0100000000000000"},
		{"int8", "-128", "little", "80"},
		{"bool", "true", "little", "01"},
		{"float32", "1.5", "big", "3fc00000"},
		{"float64", "-0.25", "little", "000000000000d0bf"},
		{"decimal", "-1.5", "little", "0f000000000000000000000000000180"},
		{"time", "1970-01-01T00:00:00Z", "little", "0080b5f7f57f9f08"},
		{"uuid", "00112233-4455-6677-8899-aabbccddeeff", "big", "00112233445566778899aabbccddeeff"},
	} {
		t.Run(tc.typ+"/"+tc.endian, func(t *testing.T) {
			require.Equal(t, tc.encoded, e.run(t, "primitive", "encode", "--type", tc.typ, "--endian", tc.endian, "--", tc.value))
			require.Equal(t, tc.value, e.run(t, "primitive", "decode", "-t", tc.typ, "-e", tc.endian, tc.encoded))
		})
	}

	e.runFail(t, "primitive", "encode", "--type", "int128", "1")
	e.runFail(t, "primitive", "encode", "--type", "int8", "300")
	e.runFail(t, "primitive", "decode", "--type", "int32", "0102")
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bincodec.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("Codec:\n  ByteOrder: big\n  StringCoding: int32\n"), 0644))

	e := newExecutor()
	require.Equal(t, "0000000161", e.run(t, "string", "encode", "--config-file", cfg, "a"))
	require.Equal(t, "0100", e.run(t, "primitive", "encode", "--config-file", cfg, "--endian", "le", "-t", "uint16", "1"))

	e.runFail(t, "string", "encode", "--config-file", filepath.Join(t.TempDir(), "none.yml"), "a")
}
