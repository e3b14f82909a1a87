package compression

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
)

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string {
	return "none"
}

// Compress returns the data unchanged.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Decompress returns the data unchanged.
func (c *NoCompressor) Decompress(data []byte) ([]byte, error) {
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// lz4 frame layout: [4B uncompressed size][1B block flag][payload].
// The flag distinguishes an lz4 block from raw passthrough, which Compress
// falls back to when the input does not shrink.
const (
	lz4HeaderSize = 5
	lz4FlagRaw    = 0
	lz4FlagBlock  = 1
)

// LZ4Compressor implements LZ4 block compression.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string {
	return "lz4"
}

// Compress compresses data using LZ4.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	out := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(data)))
	binary.BigEndian.PutUint32(out[:4], uint32(len(data)))

	n := 0
	if len(data) > 0 {
		var err error
		n, err = lz4.CompressBlock(data, out[lz4HeaderSize:], nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compression failed: %w", err)
		}
	}

	if n == 0 {
		// Incompressible or empty input; store it raw.
		out[4] = lz4FlagRaw
		return append(out[:lz4HeaderSize], data...), nil
	}

	out[4] = lz4FlagBlock
	return out[:lz4HeaderSize+n], nil
}

// Decompress decompresses LZ4 data.
func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < lz4HeaderSize {
		return nil, fmt.Errorf("lz4 data too short")
	}

	size := binary.BigEndian.Uint32(data[:4])
	payload := data[lz4HeaderSize:]

	if data[4] == lz4FlagRaw {
		if uint32(len(payload)) != size {
			return nil, fmt.Errorf("lz4 raw payload size mismatch")
		}
		out := make([]byte, size)
		copy(out, payload)
		return out, nil
	}

	decompressed := make([]byte, size)
	n, err := lz4.UncompressBlock(payload, decompressed)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	return decompressed[:n], nil
}
