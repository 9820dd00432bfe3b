package format

type (
	Precision       uint8
	CompressionType uint8
)

const (
	PrecisionFloat64 Precision = 0x1 // PrecisionFloat64 represents 64-bit IEEE-754 floats (the mzML default).
	PrecisionFloat32 Precision = 0x2 // PrecisionFloat32 represents 32-bit IEEE-754 floats.

	CompressionNone CompressionType = 0x1 // CompressionNone represents uncompressed binary data.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents zlib-wrapped DEFLATE.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

// Width returns the size in bytes of one value, or 0 for an unknown precision.
func (p Precision) Width() int {
	switch p {
	case PrecisionFloat64:
		return 8
	case PrecisionFloat32:
		return 4
	default:
		return 0
	}
}

func (p Precision) String() string {
	switch p {
	case PrecisionFloat64:
		return "64-bit float"
	case PrecisionFloat32:
		return "32-bit float"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Controlled-vocabulary names consumed by the decoder. Matching is by substring
// on the cvParam name attribute.
const (
	CVMSLevel       = "ms level"
	CVScanStartTime = "scan start time"
	CVMZArray       = "m/z array"
	CVIntensity     = "intensity array"
	CVTimeArray     = "time array"
	CVFloat32       = "32-bit float"
	CVFloat64       = "64-bit float"
	CVZlib          = "zlib"
	CVZstd          = "zstd"
	CVLZ4           = "lz4"
	CVNumpress      = "Numpress"

	CVSelectedIonMZ = "selected ion m/z"
	CVChargeState   = "charge state"
	CVTargetMZ      = "isolation window target m/z"
)

// Precision terms the decoder recognizes but cannot reinterpret as floats.
var UnsupportedPrecisionTerms = []string{
	"16-bit float",
	"32-bit integer",
	"64-bit integer",
}

// Unit names for scan start time.
const (
	UnitMinute = "minute"
	UnitSecond = "second"
)
