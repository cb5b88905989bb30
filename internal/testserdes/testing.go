package testserdes

import (
	"reflect"
	"testing"

	"github.com/nspcc-dev/bincodec/pkg/io"
	"github.com/nspcc-dev/bincodec/pkg/mapper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// MarshalUnmarshalYAML checks if expected stays the same after
// marshal/unmarshal via YAML.
func MarshalUnmarshalYAML(t *testing.T, expected, actual any) {
	data, err := yaml.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeDecodeBinary checks if expected stays the same after
// serializing/deserializing via io.Serializable methods.
func EncodeDecodeBinary(t *testing.T, expected, actual io.Serializable) {
	data, err := EncodeBinary(expected)
	require.NoError(t, err)
	require.NoError(t, DecodeBinary(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeBinary serializes a to a byte slice.
func EncodeBinary(a io.Serializable) ([]byte, error) {
	w := io.NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// DecodeBinary deserializes a from a byte slice.
func DecodeBinary(data []byte, a io.Serializable) error {
	r := io.NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	return r.Err
}

// MarshalUnmarshal checks if expected stays the same after a round trip
// through the object mapper with the given options. expected is a struct
// (or a pointer to it), actual is a pointer to the same type.
func MarshalUnmarshal(t *testing.T, expected, actual any, opts *mapper.Options) {
	data, err := mapper.Marshal(expected, opts)
	require.NoError(t, err)
	require.NoError(t, mapper.Unmarshal(data, actual, opts))
	require.Equal(t, expected, derefIfNeeded(expected, actual))
}

// EncodedEqual checks that v is encoded into exactly the expected bytes.
func EncodedEqual(t *testing.T, expected []byte, v any, opts *mapper.Options) {
	data, err := mapper.Marshal(v, opts)
	require.NoError(t, err)
	require.Equal(t, expected, data)
}

// derefIfNeeded returns *actual when expected is not a pointer so that
// values can be compared to pointers to them.
func derefIfNeeded(expected, actual any) any {
	if reflect.TypeOf(expected).Kind() == reflect.Pointer {
		return actual
	}
	return reflect.ValueOf(actual).Elem().Interface()
}
