package app

import (
	"bytes"
	"testing"

	"github.com/nspcc-dev/bincodec/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	config.Version = "0.1.0-test"
	ctl := New()
	buf := new(bytes.Buffer)
	ctl.Writer = buf
	require.NoError(t, ctl.Run([]string{"bincodec", "--version"}))
	require.Contains(t, buf.String(), "bincodec\nVersion: 0.1.0-test\n")
}

func TestCommands(t *testing.T) {
	ctl := New()
	for _, name := range []string{"varint", "string", "primitive"} {
		require.NotNil(t, ctl.Command(name), name)
	}
}
