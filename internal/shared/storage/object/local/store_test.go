package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveOpenDeleteRoundTrip(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "google:42", "pancakes.jpg", strings.NewReader("not really a jpeg"))
	require.NoError(t, err)
	require.Equal(t, int64(len("not really a jpeg")), size)
	require.NotEmpty(t, mimeType)
	require.Contains(t, key, "_pancakes.jpg")

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "not really a jpeg", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	require.Error(t, err)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, key))
}

func TestPublicURLKeyFromURLInverse(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")

	key, _, _, err := store.Save(context.Background(), "google:42", "chili con carne.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	u := store.PublicURL(key)
	require.True(t, strings.HasPrefix(u, "http://localhost:8080/files/"))

	back, ok := store.KeyFromURL(u)
	require.True(t, ok)
	require.Equal(t, key, back)
}

func TestKeyFromURLRejectsForeignURL(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")

	_, ok := store.KeyFromURL("https://elsewhere.example.com/files/abc/def.jpg")
	require.False(t, ok)
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")

	_, err := store.Open(context.Background(), "../etc/passwd")
	require.Error(t, err)
}
