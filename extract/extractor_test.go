package extract

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mzml/errs"
)

const (
	first  = `<spectrum index="0" id="scan=1" defaultArrayLength="0"><cvParam name="ms level" value="1"/></spectrum>`
	second = `<spectrum index="1" id="scan=2" defaultArrayLength="0"><cvParam name="ms level" value="2"/></spectrum>`
)

func document() ([]byte, int64, int64) {
	head := "<run>\n  <spectrumList count=\"2\">\n    "
	doc := head + first + "\n    " + second + "\n  </spectrumList>\n</run>\n"

	return []byte(doc), int64(len(head)), int64(strings.Index(doc, second))
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(0, 1024)
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, err = New(1024, 0)
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	e, err := New(16, 32)
	require.NoError(t, err)
	require.Equal(t, 16, e.ChunkSize())
	require.Equal(t, int64(32), e.MaxBytes())

	d := Default()
	require.Equal(t, DefaultChunkSize, d.ChunkSize())
	require.Equal(t, int64(DefaultMaxElementBytes), d.MaxBytes())
}

func TestExtract_Basic(t *testing.T) {
	doc, off1, off2 := document()
	r := bytes.NewReader(doc)

	got, err := Default().Extract(r, off1, 0, "spectrum")
	require.NoError(t, err)
	require.Equal(t, first, string(got))

	got, err = Default().Extract(r, off2, int64(len(doc)), "spectrum")
	require.NoError(t, err)
	require.Equal(t, second, string(got))
}

// Every chunk size up to past the element length moves the closing tag to a
// different position relative to the chunk boundaries, including every way
// of splitting "</spectrum>" in two.
func TestExtract_MarkerSplitAcrossChunks(t *testing.T) {
	doc, off1, _ := document()
	r := bytes.NewReader(doc)

	for chunk := 1; chunk <= len(first)+4; chunk++ {
		e, err := New(chunk, 1<<20)
		require.NoError(t, err)

		got, err := e.Extract(r, off1, 0, "spectrum")
		require.NoError(t, err, "chunk size %d", chunk)
		require.Equal(t, first, string(got), "chunk size %d", chunk)
	}
}

func TestExtract_StraddleExplicit(t *testing.T) {
	marker := "</spectrum>"
	for split := 1; split < len(marker); split++ {
		body := `<spectrum id="x">`
		// place the chunk boundary exactly split bytes into the marker
		padding := 64 - len(body) - split
		element := body + strings.Repeat(" ", padding) + marker
		doc := element + "<spectrum id=\"y\"></spectrum>"

		e, err := New(64, 1024)
		require.NoError(t, err)

		got, err := e.Extract(strings.NewReader(doc), 0, 0, "spectrum")
		require.NoError(t, err, "split %d", split)
		require.Equal(t, element, string(got), "split %d", split)
	}
}

func TestExtract_TruncatedFile(t *testing.T) {
	doc, off1, _ := document()
	truncated := doc[:off1+int64(len(first))-3]

	for _, chunk := range []int{1, 7, 8192} {
		e, err := New(chunk, 1<<20)
		require.NoError(t, err)

		_, err = e.Extract(bytes.NewReader(truncated), off1, 0, "spectrum")
		require.ErrorIs(t, err, errs.ErrBoundaryNotFound, "chunk size %d", chunk)
	}
}

func TestExtract_OffsetAtEOF(t *testing.T) {
	doc, _, _ := document()

	_, err := Default().Extract(bytes.NewReader(doc), int64(len(doc)), 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrBoundaryNotFound)

	_, err = Default().Extract(bytes.NewReader(doc), int64(len(doc))+100, 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrBoundaryNotFound)
}

func TestExtract_Ceiling(t *testing.T) {
	doc, off1, _ := document()

	e, err := New(8, int64(len(first)-1))
	require.NoError(t, err)
	_, err = e.Extract(bytes.NewReader(doc), off1, 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrBoundaryNotFound)

	e, err = New(8, int64(len(first)))
	require.NoError(t, err)
	got, err := e.Extract(bytes.NewReader(doc), off1, 0, "spectrum")
	require.NoError(t, err)
	require.Equal(t, first, string(got))
}

func TestExtract_LimitStopsAtNextElement(t *testing.T) {
	// the first element lost its closing tag; without a limit the search
	// would run into the second element's closing tag
	broken := strings.TrimSuffix(first, "</spectrum>")
	doc := broken + second
	limit := int64(len(broken))

	_, err := Default().Extract(strings.NewReader(doc), 0, limit, "spectrum")
	require.ErrorIs(t, err, errs.ErrBoundaryNotFound)

	_, err = Default().Extract(strings.NewReader(doc), 10, 5, "spectrum")
	require.ErrorIs(t, err, errs.ErrBoundaryNotFound)
}

func TestExtract_WrongOffset(t *testing.T) {
	doc, off1, _ := document()
	r := bytes.NewReader(doc)

	_, err := Default().Extract(r, off1+1, 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrFormat)

	listOffset := int64(bytes.Index(doc, []byte("<spectrumList")))
	_, err = Default().Extract(r, listOffset, 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrFormat)

	_, err = Default().Extract(r, off1, 0, "chromatogram")
	require.ErrorIs(t, err, errs.ErrFormat)

	_, err = Default().Extract(r, -1, 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrFormat)

	// small chunks must reach the same verdict once enough bytes are in
	e, err := New(2, 1024)
	require.NoError(t, err)
	_, err = e.Extract(r, listOffset, 0, "spectrum")
	require.ErrorIs(t, err, errs.ErrFormat)
}

type brokenReaderAt struct{}

var errDisk = errors.New("disk failure")

func (brokenReaderAt) ReadAt(_ []byte, _ int64) (int, error) {
	return 0, errDisk
}

func TestExtract_ReadError(t *testing.T) {
	_, err := Default().Extract(brokenReaderAt{}, 0, 0, "spectrum")
	require.ErrorIs(t, err, errDisk)
	require.NotErrorIs(t, err, errs.ErrBoundaryNotFound)
}

func TestExtract_ResultIsCopy(t *testing.T) {
	doc, off1, _ := document()

	got, err := Default().Extract(bytes.NewReader(doc), off1, 0, "spectrum")
	require.NoError(t, err)
	got[1] = 'X'

	again, err := Default().Extract(bytes.NewReader(doc), off1, 0, "spectrum")
	require.NoError(t, err)
	require.Equal(t, first, string(again))
}

func TestExtract_Concurrent(t *testing.T) {
	doc, off1, off2 := document()
	r := bytes.NewReader(doc)
	e, err := New(5, 1<<20)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			off, want := off1, first
			if i%2 == 1 {
				off, want = off2, second
			}
			got, err := e.Extract(r, off, 0, "spectrum")
			assert.NoError(t, err)
			assert.Equal(t, want, string(got))
		}()
	}
	wg.Wait()
}

func BenchmarkExtract(b *testing.B) {
	element := "<spectrum id=\"big\">" + strings.Repeat("A", 256*1024) + "</spectrum>"
	r := strings.NewReader(element)
	e := Default()

	b.ReportAllocs()
	b.SetBytes(int64(len(element)))
	for b.Loop() {
		if _, err := e.Extract(r, 0, 0, "spectrum"); err != nil {
			b.Fatal(err)
		}
	}
}
