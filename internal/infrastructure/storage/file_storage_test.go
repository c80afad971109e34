package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) *LocalFileStorage {
	t.Helper()
	s, err := NewLocalFileStorage(filepath.Join(t.TempDir(), "proofs"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestLocalFileStorage_SaveReadDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	content := []byte("\x89PNG\r\n\x1a\n")

	require.NoError(t, s.Save(ctx, "key-1/facture.png", content))
	assert.True(t, s.Exists(ctx, "key-1/facture.png"))
	assert.False(t, s.Exists(ctx, "key-1"))

	got, err := s.Read(ctx, "key-1/facture.png")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	onDisk, err := os.ReadFile(s.GetFullPath("key-1/facture.png"))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	require.NoError(t, s.Delete(ctx, "key-1/facture.png"))
	assert.False(t, s.Exists(ctx, "key-1/facture.png"))
	// idempotent
	require.NoError(t, s.Delete(ctx, "key-1/facture.png"))
}

func TestLocalFileStorage_Overwrite(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.jpg", []byte("long content")))
	require.NoError(t, s.Save(ctx, "a.jpg", []byte("short")))

	got, err := s.Read(ctx, "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))
}

func TestLocalFileStorage_ReadMissing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Read(context.Background(), "missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalFileStorage_PathEscape(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	assert.Error(t, s.Save(ctx, "../escape.png", []byte("x")))
	_, err := os.Stat(filepath.Join(filepath.Dir(s.GetFullPath(".")), "escape.png"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Read(ctx, "../../etc/passwd")
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"facture.png", "facture.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\a\note de frais.jpg`, "note_de_frais.jpg"},
		{"..", "proof"},
		{"", "proof"},
		{".hidden.png", "hidden.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.name))
		})
	}
}
