package compress

import (
	"bytes"
	"math"
	"testing"

	"github.com/arloliu/mzml/endian"
	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/format"
	"github.com/stretchr/testify/require"
)

// peakPayload builds a repetitive little-endian float64 payload similar to a
// profile-mode intensity array.
func peakPayload(n int) []byte {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, n*8)
	for i := range n {
		buf = engine.AppendUint64(buf, math.Float64bits(float64(i%17)*1.5))
	}

	return buf
}

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		cType    format.CompressionType
		expected string
	}{
		{format.CompressionNone, "None"},
		{format.CompressionZlib, "Zlib"},
		{format.CompressionZstd, "Zstd"},
		{format.CompressionLZ4, "LZ4"},
		{format.CompressionType(0xff), "Unknown"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.cType.String())
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := peakPayload(4096)

	for _, cType := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		t.Run(cType.String(), func(t *testing.T) {
			codec, err := CreateCodec(cType)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			if cType != format.CompressionNone {
				require.Less(t, len(compressed), len(payload))
			}

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, out)

			out, err = Decompress(cType, compressed)
			require.NoError(t, err)
			require.Equal(t, payload, out)
		})
	}
}

func TestCodecs_Unsupported(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x42))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = GetCodec(format.CompressionType(0x42))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = Decompress(format.CompressionType(0x42), []byte{1})
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestZlib_Corrupted(t *testing.T) {
	codec := NewZlibCompressor()

	t.Run("empty", func(t *testing.T) {
		_, err := codec.Decompress(nil)
		require.ErrorIs(t, err, errs.ErrCompression)
	})

	t.Run("bad header", func(t *testing.T) {
		_, err := codec.Decompress([]byte("definitely not zlib"))
		require.ErrorIs(t, err, errs.ErrCompression)
	})

	t.Run("truncated", func(t *testing.T) {
		compressed, err := codec.Compress(peakPayload(512))
		require.NoError(t, err)

		_, err = codec.Decompress(compressed[:len(compressed)/2])
		require.ErrorIs(t, err, errs.ErrCompression)
	})

	t.Run("pooled reader reused after failure", func(t *testing.T) {
		payload := peakPayload(64)
		compressed, err := codec.Compress(payload)
		require.NoError(t, err)

		for range 3 {
			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, out))
		}
	})
}

func TestZstd_Corrupted(t *testing.T) {
	codec := NewZstdCompressor()

	_, err := codec.Decompress(nil)
	require.ErrorIs(t, err, errs.ErrCompression)

	_, err = codec.Decompress([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	require.ErrorIs(t, err, errs.ErrCompression)
}

func TestLZ4_Empty(t *testing.T) {
	_, err := NewLZ4Compressor().Decompress(nil)
	require.ErrorIs(t, err, errs.ErrCompression)
}

func TestNoOp_SharesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Decompress(data)
	require.NoError(t, err)
	require.Equal(t, &data[0], &out[0])
}
