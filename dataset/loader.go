package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/DonaldWhyte/mdsearch/core"
)

// LoadFile reads a dataset from a whitespace-separated text file of the
// form
//
//	d n
//	p1_1 p1_2 ... p1_d
//	...
//	pn_1 pn_2 ... pn_d
//
// where d is the dimensionality and n the number of points. A file
// whose header cannot be parsed, or that declares d < 1 or n < 1,
// yields an empty dataset without error. Reaching end of file before n
// points have been read stops loading quietly.
//
// Files ending in .zst, .gz or .lz4 are decompressed transparently.
func LoadFile[T core.Number](path string) (*Dataset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader, closeFn, err := wrapDecompression(file, path)
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		defer closeFn()
	}

	return Read[T](reader)
}

// Read parses dataset text from r. See LoadFile for the format and the
// handling of malformed headers.
func Read[T core.Number](r io.Reader) (*Dataset[T], error) {
	br := bufio.NewReader(r)

	var dims, numPoints int
	if _, err := fmt.Fscan(br, &dims, &numPoints); err != nil {
		return New[T](0), nil
	}
	if dims < 1 || numPoints < 1 {
		return New[T](0), nil
	}

	ds := New[T](dims)
	ds.points = make([]core.Point[T], 0, numPoints)
	for i := 0; i < numPoints; i++ {
		p := make(core.Point[T], dims)
		ok := true
		for j := 0; j < dims; j++ {
			if _, err := fmt.Fscan(br, &p[j]); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		ds.points = append(ds.points, p)
	}
	return ds, nil
}

// wrapDecompression wraps r in a decompressor chosen by file
// extension. The returned closeFn releases decoder resources and may be
// nil.
func wrapDecompression(r io.Reader, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open zstd dataset: %w", err)
		}
		return dec, dec.Close, nil
	case ".gz":
		dec, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gzip dataset: %w", err)
		}
		return dec, func() { _ = dec.Close() }, nil
	case ".lz4":
		return lz4.NewReader(r), nil, nil
	default:
		return r, nil, nil
	}
}
