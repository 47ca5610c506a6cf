// Package romfile reads cartridge and boot rom images from disk, decompressing them when needed.
package romfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive does not contain any file.
var ErrEmptyArchive = errors.New("archive contains no files")

// Load reads the image at path. The extension selects the decoder:
// .gz, .zst, .xz, .lz4 and .br are decompressed, the first file of
// .zip and .7z archives is extracted, anything else is returned as is.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := Decode(strings.ToLower(filepath.Ext(path)), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return out, nil
}

// Decode decompresses data according to a file extension, including the dot.
func Decode(ext string, data []byte) ([]byte, error) {
	r := bytes.NewReader(data)

	switch ext {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case ".xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.ReadAll(xr)
	case ".lz4":
		return io.ReadAll(lz4.NewReader(r))
	case ".br":
		return io.ReadAll(brotli.NewReader(r))
	case ".zip":
		zr, err := zip.NewReader(r, int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(zr.File) == 0 {
			return nil, ErrEmptyArchive
		}
		return readFirst(zr.File[0].Open)
	case ".7z":
		sr, err := sevenzip.NewReader(r, int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(sr.File) == 0 {
			return nil, ErrEmptyArchive
		}
		return readFirst(sr.File[0].Open)
	default:
		return data, nil
	}
}

func readFirst(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
