package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadImage_Jpeg(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt.JPG")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o600))

	data, contentType, err := ReadImage(path)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
}

func TestReadImage_Png(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	_, contentType, err := ReadImage(path)
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)
}

func TestReadImage_UnsupportedExtension(t *testing.T) {
	_, _, err := ReadImage("receipt.gif")
	require.Error(t, err)
}

func TestReadImage_Missing(t *testing.T) {
	_, _, err := ReadImage(filepath.Join(t.TempDir(), "absent.jpg"))
	require.Error(t, err)
}

func TestEnsureSubdDir(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(orig) })
	require.NoError(t, os.Chdir(t.TempDir()))

	dir, err := EnsureSubdDir("data")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
