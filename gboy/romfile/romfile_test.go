package romfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func testImage() []byte {
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = byte(i * 7)
	}
	return rom
}

func compress(t *testing.T, newWriter func(io.Writer) (io.WriteCloser, error), data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := newWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// fixture reads a file from testdata. game.7z stores testImage() as game.gb with the copy coder.
func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestLoad(t *testing.T) {
	rom := testImage()

	testCases := []struct {
		desc string
		name string
		data []byte
	}{
		{desc: "raw", name: "game.gb", data: rom},
		{desc: "boot rom", name: "dmg_boot.bin", data: rom},
		{desc: "no extension", name: "game", data: rom},
		{desc: "gzip", name: "game.gb.gz", data: compress(t, func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		}, rom)},
		{desc: "zstd", name: "game.gb.zst", data: compress(t, func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		}, rom)},
		{desc: "xz", name: "game.gb.xz", data: compress(t, func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		}, rom)},
		{desc: "lz4", name: "game.gb.lz4", data: compress(t, func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		}, rom)},
		{desc: "brotli", name: "game.gb.br", data: compress(t, func(w io.Writer) (io.WriteCloser, error) {
			return brotli.NewWriter(w), nil
		}, rom)},
		{desc: "zip", name: "game.zip", data: zipped(t, map[string][]byte{"game.gb": rom})},
		{desc: "upper case extension", name: "GAME.ZIP", data: zipped(t, map[string][]byte{"game.gb": rom})},
		{desc: "7z", name: "game.7z", data: fixture(t, "game.7z")},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			got, err := Load(writeFile(t, tC.name, tC.data))

			require.NoError(t, err)
			assert.Equal(t, rom, got)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.gb"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyZip(t *testing.T) {
	path := writeFile(t, "empty.zip", zipped(t, nil))

	_, err := Load(path)

	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestLoad_CorruptArchives(t *testing.T) {
	for _, name := range []string{"bad.gz", "bad.zip", "bad.7z", "bad.xz"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, []byte("definitely not an archive"))

			_, err := Load(path)

			assert.Error(t, err)
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	data := []byte{1, 2, 3}

	got, err := Decode(".gbc", data)

	require.NoError(t, err)
	assert.Equal(t, data, got)
}
