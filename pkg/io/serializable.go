package io

// Serializable defines the binary encoding/decoding interface. Types
// implementing it take full control over their representation, errors are
// reported via the sticky Err of the reader/writer.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}
