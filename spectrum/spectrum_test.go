package spectrum

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mzml/cv"
	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/format"
	"github.com/arloliu/mzml/internal/testutil"
)

func parseFixture(t *testing.T, s testutil.Spectrum) *Scan {
	t.Helper()

	scan, err := ParseScan([]byte(testutil.SpectrumXML(0, s)))
	require.NoError(t, err)

	return scan
}

const thermoFragment = `<spectrum index="4" id="controllerType=0 controllerNumber=1 scan=5" defaultArrayLength="2">
  <cvParam cvRef="MS" accession="MS:1000580" name="MSn spectrum" value=""/>
  <cvParam cvRef="MS" accession="MS:1000511" name="ms level" value="2"/>
  <cvParam cvRef="MS" accession="MS:1000130" name="positive scan" value=""/>
  <scanList count="1">
    <cvParam cvRef="MS" accession="MS:1000795" name="no combination" value=""/>
    <scan instrumentConfigurationRef="IC1">
      <cvParam cvRef="MS" accession="MS:1000016" name="scan start time" value="5.8905" unitCvRef="UO" unitAccession="UO:0000031" unitName="minute"/>
      <cvParam cvRef="MS" accession="MS:1000512" name="filter string" value="ITMS + c NSI d Full ms2 445.35@cid35.00"/>
    </scan>
  </scanList>
  <precursorList count="1">
    <precursor spectrumRef="controllerType=0 controllerNumber=1 scan=4">
      <isolationWindow>
        <cvParam cvRef="MS" accession="MS:1000827" name="isolation window target m/z" value="445.35" unitCvRef="MS" unitAccession="MS:1000040" unitName="m/z"/>
      </isolationWindow>
      <selectedIonList count="1">
        <selectedIon>
          <cvParam cvRef="MS" accession="MS:1000744" name="selected ion m/z" value="445.34" unitCvRef="MS" unitAccession="MS:1000040" unitName="m/z"/>
          <cvParam cvRef="MS" accession="MS:1000041" name="charge state" value="2"/>
        </selectedIon>
      </selectedIonList>
    </precursor>
  </precursorList>
  <binaryDataArrayList count="2">
    <binaryDataArray encodedLength="24">
      <cvParam cvRef="MS" accession="MS:1000523" name="64-bit float" value=""/>
      <cvParam cvRef="MS" accession="MS:1000576" name="no compression" value=""/>
      <cvParam cvRef="MS" accession="MS:1000514" name="m/z array" value="" unitCvRef="MS" unitAccession="MS:1000040" unitName="m/z"/>
      <binary>AAAAAAAAWUAAAAAAAABpQA==</binary>
    </binaryDataArray>
    <binaryDataArray encodedLength="12">
      <cvParam cvRef="MS" accession="MS:1000521" name="32-bit float" value=""/>
      <cvParam cvRef="MS" accession="MS:1000576" name="no compression" value=""/>
      <cvParam cvRef="MS" accession="MS:1000515" name="intensity array" value="" unitCvRef="MS" unitAccession="MS:1000131" unitName="number of detector counts"/>
      <binary>AAAgQQAAoEE=</binary>
    </binaryDataArray>
  </binaryDataArrayList>
</spectrum>`

func TestParseScan_RealisticFragment(t *testing.T) {
	scan, err := ParseScan([]byte(thermoFragment))
	require.NoError(t, err)

	require.Equal(t, 4, scan.Index)
	require.Equal(t, "controllerType=0 controllerNumber=1 scan=5", scan.ScanID())
	require.Equal(t, 2, scan.PeakCount())
	require.True(t, scan.IsTandem())

	level, ok := scan.MSLevel()
	require.True(t, ok)
	require.Equal(t, uint16(2), level)

	rt, ok := scan.RetentionTime()
	require.True(t, ok)
	assert.InDelta(t, 5.8905, rt.Minutes(), 1e-9)

	require.Len(t, scan.Precursors, 1)
	p := scan.Precursors[0]
	assert.Equal(t, "controllerType=0 controllerNumber=1 scan=4", p.SpectrumRef)
	mz, ok := p.SelectedIonMZ()
	require.True(t, ok)
	assert.InDelta(t, 445.34, mz, 1e-12)
	charge, ok := p.Charge()
	require.True(t, ok)
	assert.Equal(t, 2, charge)
	target, ok := p.IsolationTargetMZ()
	require.True(t, ok)
	assert.InDelta(t, 445.35, target, 1e-12)

	peaks, err := scan.Peaks()
	require.NoError(t, err)
	require.Equal(t, []Peak{{MZ: 100, Intensity: 10}, {MZ: 200, Intensity: 20}}, peaks)
}

func TestParseScan_Malformed(t *testing.T) {
	_, err := ParseScan([]byte(`<spectrum id="x"><cvParam name="ms level"`))
	require.ErrorIs(t, err, errs.ErrFormat)

	_, err = ParseChromatogram([]byte(`<chromatogram id="TIC">`))
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestRetentionTime(t *testing.T) {
	t.Run("seconds", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{ID: "s", RT: "2.5", RTUnit: "second"})
		rt, ok := scan.RetentionTime()
		require.True(t, ok)
		require.Equal(t, 2500*time.Millisecond, rt)
		assert.InDelta(t, 2.5/60, rt.Minutes(), 1e-12)
	})

	t.Run("minutes", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{ID: "s", RT: "1.5", RTUnit: "minute"})
		rt, ok := scan.RetentionTime()
		require.True(t, ok)
		require.Equal(t, 90*time.Second, rt)
	})

	t.Run("no unit defaults to minutes", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{ID: "s", RT: "2"})
		rt, ok := scan.RetentionTime()
		require.True(t, ok)
		require.Equal(t, 2*time.Minute, rt)
	})

	t.Run("absent", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{ID: "s"})
		_, ok := scan.RetentionTime()
		require.False(t, ok)
	})

	t.Run("unparsable", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{ID: "s", RT: "soon"})
		_, ok := scan.RetentionTime()
		require.False(t, ok)
	})

	t.Run("no acquisitions", func(t *testing.T) {
		var m Metadata
		_, ok := m.RetentionTime()
		require.False(t, ok)
	})

	t.Run("not a finite duration", func(t *testing.T) {
		for _, tc := range []struct{ value, unit string }{
			{"NaN", "minute"},
			{"Inf", "second"},
			{"-Inf", ""},
			{"1e12", "minute"},
			{"-1e12", "minute"},
			{"1e10", "second"},
		} {
			scan := parseFixture(t, testutil.Spectrum{ID: "s", RT: tc.value, RTUnit: tc.unit})
			rt, ok := scan.RetentionTime()
			require.False(t, ok, "%s %s gave %v", tc.value, tc.unit, rt)
		}
	})

	t.Run("largest representable", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{ID: "s", RT: "153722867", RTUnit: "minute"})
		rt, ok := scan.RetentionTime()
		require.True(t, ok)
		require.Equal(t, 153722867*time.Minute, rt)
	})
}

func TestMSLevelAndCV(t *testing.T) {
	scan := parseFixture(t, testutil.Spectrum{ID: "s", MSLevel: 1})

	level, ok := scan.MSLevel()
	require.True(t, ok)
	require.Equal(t, uint16(1), level)

	p, ok := scan.FindCV("centroid spectrum")
	require.True(t, ok)
	require.Equal(t, "MS:1000127", p.Accession)

	_, ok = scan.FindCV("centroid")
	require.False(t, ok, "FindCV matches whole names only")

	require.Len(t, scan.CVs(), 2)
	require.False(t, scan.IsTandem())

	noLevel := parseFixture(t, testutil.Spectrum{ID: "s"})
	_, ok = noLevel.MSLevel()
	require.False(t, ok)
}

func TestPeaks_Encodings(t *testing.T) {
	mz := testutil.Float32Exact([]float64{100.125, 200.25, 300.5, 1234.5678})
	intensity := testutil.Float32Exact([]float64{1, 0.5, 1e6, 3.14159})

	cases := []struct {
		name        string
		precision   format.Precision
		compression format.CompressionType
	}{
		{"f64 none", format.PrecisionFloat64, format.CompressionNone},
		{"f32 zlib", format.PrecisionFloat32, format.CompressionZlib},
		{"f32 none", format.PrecisionFloat32, format.CompressionNone},
		{"f64 zlib", format.PrecisionFloat64, format.CompressionZlib},
		{"f64 zstd", format.PrecisionFloat64, format.CompressionZstd},
		{"f32 lz4", format.PrecisionFloat32, format.CompressionLZ4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scan := parseFixture(t, testutil.Spectrum{
				ID: "s",
				Arrays: []testutil.Array{
					{Kind: "m/z array", Values: mz, Precision: tc.precision, Compression: tc.compression},
					{Kind: "intensity array", Values: intensity, Precision: tc.precision, Compression: tc.compression},
				},
			})

			gotMZ, gotIntensity, err := scan.Columns()
			require.NoError(t, err)
			require.Equal(t, mz, gotMZ)
			require.Equal(t, intensity, gotIntensity)

			enc, err := scan.Arrays[0].Encoding()
			require.NoError(t, err)
			require.Equal(t, tc.precision, enc.Precision)
			require.Equal(t, tc.compression, enc.Compression)
		})
	}
}

func TestPeaks_Float64BitExact(t *testing.T) {
	mz := []float64{math.Pi, math.E, 1.0 / 3.0, math.SmallestNonzeroFloat64}
	scan := parseFixture(t, testutil.Spectrum{
		ID: "s",
		Arrays: []testutil.Array{
			{Kind: "m/z array", Values: mz},
			{Kind: "intensity array", Values: []float64{1, 2, 3, 4}},
		},
	})

	peaks, err := scan.Peaks()
	require.NoError(t, err)
	for i, p := range peaks {
		require.Equal(t, math.Float64bits(mz[i]), math.Float64bits(p.MZ))
	}
}

func TestPeaks_Empty(t *testing.T) {
	scan := parseFixture(t, testutil.Spectrum{
		ID: "s",
		Arrays: []testutil.Array{
			{Kind: "m/z array", Compression: format.CompressionZlib},
			{Kind: "intensity array", Compression: format.CompressionZlib},
		},
	})

	peaks, err := scan.Peaks()
	require.NoError(t, err)
	require.Empty(t, peaks)
}

func TestPeaks_Errors(t *testing.T) {
	good := testutil.Ramp(3, 100, 1)

	t.Run("missing intensity", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{
			ID:     "s",
			Arrays: []testutil.Array{{Kind: "m/z array", Values: good}},
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrMissingArray)

		var arrErr *errs.ArrayError
		require.ErrorAs(t, err, &arrErr)
		require.Equal(t, format.CVIntensity, arrErr.Kind)
	})

	t.Run("length mismatch between arrays", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{
			ID: "s",
			Arrays: []testutil.Array{
				{Kind: "m/z array", Values: good},
				{Kind: "intensity array", Values: good[:2]},
			},
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrArrayLengthMismatch)
	})

	t.Run("length differs from declared", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{
			ID:                 "s",
			DefaultArrayLength: testutil.IntPtr(5),
			Arrays:             testutil.Peaks(3, 100, format.PrecisionFloat64, format.CompressionNone),
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrArrayLengthMismatch)
	})

	t.Run("bad base64", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{
			ID: "s",
			Arrays: []testutil.Array{
				{Kind: "m/z array", RawText: testutil.StringPtr("!!not base64!!")},
				{Kind: "intensity array", Values: good},
			},
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrBase64Decode)

		var arrErr *errs.ArrayError
		require.ErrorAs(t, err, &arrErr)
		require.Equal(t, format.CVMZArray, arrErr.Kind)
	})

	t.Run("corrupt zlib", func(t *testing.T) {
		raw := testutil.EncodeArray(good, format.PrecisionFloat64, format.CompressionNone)
		scan := parseFixture(t, testutil.Spectrum{
			ID: "s",
			Arrays: []testutil.Array{
				{Kind: "m/z array", Compression: format.CompressionZlib, RawText: &raw},
				{Kind: "intensity array", Values: good},
			},
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrCompression)
	})

	t.Run("integer precision", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{
			ID: "s",
			Arrays: []testutil.Array{
				{Kind: "m/z array", Values: good},
				{Kind: "intensity array", Values: good, ExtraTerms: []string{"32-bit integer"}},
			},
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrUnsupportedPrecision)
	})

	t.Run("numpress", func(t *testing.T) {
		scan := parseFixture(t, testutil.Spectrum{
			ID: "s",
			Arrays: []testutil.Array{
				{Kind: "m/z array", Values: good, ExtraTerms: []string{"MS-Numpress linear prediction compression"}},
				{Kind: "intensity array", Values: good},
			},
		})
		_, err := scan.Peaks()
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	})
}

func TestDecode_TrailingBytesDropped(t *testing.T) {
	a := BinaryArray{
		Params: cv.Params{{Name: "m/z array"}},
		Text:   testutil.EncodeArray([]float64{1, 2}, format.PrecisionFloat64, format.CompressionNone),
	}
	values, err := a.Decode()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, values)

	// the same 16 bytes followed by one stray zero byte
	a.Text = "AAAAAAAA8D8AAAAAAAAAQAA="
	values, err = a.Decode()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, values)
}

func TestArrayKind(t *testing.T) {
	scan := parseFixture(t, testutil.Spectrum{
		ID:     "s",
		Arrays: testutil.Peaks(2, 100, format.PrecisionFloat64, format.CompressionNone),
	})

	a, ok := scan.Array("intensity")
	require.True(t, ok)
	require.Equal(t, "intensity array", a.Kind())
	require.Equal(t, len(a.Text), a.EncodedLength)

	_, ok = scan.Array("time array")
	require.False(t, ok)
}

func TestChromatogramPoints(t *testing.T) {
	build := func(unit string) *Chromatogram {
		frag := testutil.ChromatogramXML(0, testutil.Chromatogram{
			ID: "TIC",
			Arrays: []testutil.Array{
				{Kind: "time array", Values: []float64{0.5, 1, 1.5}, Unit: unit},
				{Kind: "intensity array", Values: []float64{10, 20, 30}, Precision: format.PrecisionFloat32, Compression: format.CompressionZlib},
			},
		})
		c, err := ParseChromatogram([]byte(frag))
		require.NoError(t, err)

		return c
	}

	c := build("minute")
	require.Equal(t, "TIC", c.ID)
	_, ok := c.FindCV("total ion current chromatogram")
	require.True(t, ok)

	points, err := c.Points()
	require.NoError(t, err)
	require.Equal(t, []TimePoint{
		{Time: 30 * time.Second, Intensity: 10},
		{Time: time.Minute, Intensity: 20},
		{Time: 90 * time.Second, Intensity: 30},
	}, points)

	points, err = build("second").Points()
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, points[0].Time)

	points, err = build("").Points()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, points[0].Time)

	frag := testutil.ChromatogramXML(0, testutil.Chromatogram{
		ID: "TIC",
		Arrays: []testutil.Array{
			{Kind: "time array", Values: []float64{0.5, math.NaN()}, Unit: "minute"},
			{Kind: "intensity array", Values: []float64{10, 20}},
		},
	})
	bad, err := ParseChromatogram([]byte(frag))
	require.NoError(t, err)
	_, err = bad.Points()
	require.ErrorIs(t, err, errs.ErrFormat)
	var arrErr *errs.ArrayError
	require.ErrorAs(t, err, &arrErr)
	require.Equal(t, "time array", arrErr.Kind)
}

func TestCapabilities(t *testing.T) {
	scan := parseFixture(t, testutil.Spectrum{
		ID:      "s",
		MSLevel: 2,
		RT:      "1",
		Arrays:  testutil.Peaks(4, 100, format.PrecisionFloat64, format.CompressionNone),
	})

	var data MassSpectrumData = scan
	var meta MassScan = &scan.Metadata

	for _, s := range []MassScan{data, meta} {
		require.Equal(t, "s", s.ScanID())
		level, ok := s.MSLevel()
		require.True(t, ok)
		require.Equal(t, uint16(2), level)
		rt, ok := s.RetentionTime()
		require.True(t, ok)
		require.Equal(t, time.Minute, rt)
	}

	peaks, err := data.Peaks()
	require.NoError(t, err)
	require.Len(t, peaks, 4)
}
