package s3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyPrefix(t *testing.T) {
	cases := []struct {
		prefix, key, want string
	}{
		{"", "a/b.jpg", "a/b.jpg"},
		{"recipes", "a/b.jpg", "recipes/a/b.jpg"},
		{"/recipes/", "/a/b.jpg", "recipes/a/b.jpg"},
		{"recipes", "", "recipes"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, applyPrefix(tc.prefix, tc.key))
	}
}

func TestPublicURLKeyFromURLInverse(t *testing.T) {
	store := &Store{bucket: "recipe-files", prefix: "recipes", region: "eu-west-1"}

	u := store.PublicURL("abc123/def_pancakes.pdf")
	require.Equal(t, "https://recipe-files.s3.eu-west-1.amazonaws.com/recipes/abc123/def_pancakes.pdf", u)

	key, ok := store.KeyFromURL(u)
	require.True(t, ok)
	require.Equal(t, "abc123/def_pancakes.pdf", key)
}

func TestKeyFromURLRejectsOtherBucket(t *testing.T) {
	store := &Store{bucket: "recipe-files", prefix: "", region: "eu-west-1"}

	_, ok := store.KeyFromURL("https://other-bucket.s3.eu-west-1.amazonaws.com/a/b.jpg")
	require.False(t, ok)
}

func TestKeyFromURLRequiresPrefix(t *testing.T) {
	store := &Store{bucket: "recipe-files", prefix: "recipes", region: "eu-west-1"}

	_, ok := store.KeyFromURL("https://recipe-files.s3.eu-west-1.amazonaws.com/elsewhere/a/b.jpg")
	require.False(t, ok)
}
