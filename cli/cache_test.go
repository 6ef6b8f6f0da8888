package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManifest() *Manifest {
	m := NewManifest()
	m.Record("a.go.splice", []byte("template a"), []byte("output a"), "a.go")
	m.Record("b.go.splice", []byte("template b"), []byte("output b"), "b.go")
	return m
}

func TestManifestRoundTrip(t *testing.T) {
	m := sampleManifest()

	data, err := m.Encode()
	require.NoError(t, err)

	decoded, err := DecodeManifest(data)
	require.NoError(t, err)
	if diff := cmp.Diff(m, decoded); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestManifestEncodeDeterministic(t *testing.T) {
	m := sampleManifest()

	first, err := m.Encode()
	require.NoError(t, err)
	second, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeManifestRejectsDamage(t *testing.T) {
	valid, err := sampleManifest().Encode()
	require.NoError(t, err)

	t.Run("too short", func(t *testing.T) {
		_, err := DecodeManifest([]byte("SPLC"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too short")
	})

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[0] = 'X'
		_, err := DecodeManifest(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid magic")
	})

	t.Run("bad version", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[4] = 0xFF
		_, err := DecodeManifest(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported manifest version")
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[8] ^= 0x01
		_, err := DecodeManifest(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "digest mismatch")
	})
}

func TestLoadManifestNeverFails(t *testing.T) {
	dir := t.TempDir()

	m := LoadManifest(filepath.Join(dir, "missing"))
	require.NotNil(t, m)
	assert.Empty(t, m.Entries)

	corrupt := filepath.Join(dir, "corrupt")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a manifest"), 0o644))
	m = LoadManifest(corrupt)
	require.NotNil(t, m)
	assert.Empty(t, m.Entries)
}

func TestManifestUpToDate(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.go")
	input := []byte("template a")
	output := []byte("output a")
	require.NoError(t, os.WriteFile(target, output, 0o644))

	m := NewManifest()
	assert.False(t, m.UpToDate("a.go.splice", input))

	m.Record("a.go.splice", input, output, target)
	assert.True(t, m.UpToDate("a.go.splice", input))

	assert.False(t, m.UpToDate("a.go.splice", []byte("template edited")))

	require.NoError(t, os.WriteFile(target, []byte("hand edited"), 0o644))
	assert.False(t, m.UpToDate("a.go.splice", input))

	require.NoError(t, os.WriteFile(target, output, 0o644))
	assert.True(t, m.UpToDate("a.go.splice", input))

	require.NoError(t, os.Remove(target))
	assert.False(t, m.UpToDate("a.go.splice", input))
}

func TestManifestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest")
	m := sampleManifest()
	require.NoError(t, m.Save(path))

	loaded := LoadManifest(path)
	if diff := cmp.Diff(m, loaded); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}
