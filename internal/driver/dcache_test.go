package driver

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lread/internal/reader"
	"lread/internal/token"
)

func TestCacheKey(t *testing.T) {
	content := []byte("(a b)")
	base := CacheKey(content, reader.Options{})
	assert.Equal(t, base, CacheKey(content, reader.Options{MaxDepth: reader.DefaultMaxDepth}))
	assert.NotEqual(t, base, CacheKey(content, reader.Options{Comments: reader.CommentsKeep}))
	assert.NotEqual(t, base, CacheKey([]byte("(a c)"), reader.Options{}))
	assert.Len(t, base.String(), 64)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache("lread", t.TempDir())
	require.NoError(t, err)

	key := CacheKey([]byte("x"), reader.Options{})
	_, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	forms := []token.Token{
		token.List(token.Symbol{Value: "quote"}, token.Symbol{Value: "x"}),
		token.DottedList(token.Rational{Numerator: 1, Denominator: 0}, token.Float{Value: -0.5}),
		token.Comment{Depth: 2, Text: " c"},
	}
	require.NoError(t, cache.Put(key, "x.lisp", forms))

	got, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, len(forms))
	for i := range forms {
		assert.True(t, token.Equal(forms[i], got[i]), "form %d: %v vs %v", i, forms[i], got[i])
	}

	require.NoError(t, cache.DropAll())
	_, ok, err = cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCacheKeepsNegativeZero(t *testing.T) {
	cache, err := OpenDiskCache("lread", t.TempDir())
	require.NoError(t, err)

	forms, err := reader.ReadString("-0.0", reader.Options{})
	require.NoError(t, err)
	key := CacheKey([]byte("-0.0"), reader.Options{})
	require.NoError(t, cache.Put(key, "z.lisp", forms))

	got, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	f, isFloat := got[0].(token.Float)
	require.True(t, isFloat, "got %T", got[0])
	assert.True(t, math.Signbit(f.Value), "cached -0.0 lost its sign")
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := OpenDiskCache("lread", t.TempDir())
	require.NoError(t, err)
	key := CacheKey([]byte("y"), reader.Options{})
	p := cache.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte{0xc1}, 0o600))

	_, ok, err := cache.Get(key)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	require.NoError(t, cache.Put(Digest{}, "", nil))
	_, ok, err := cache.Get(Digest{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, cache.Dir())
}

func TestParseUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cached.lisp", "(1 . 2) sym")
	cache, err := OpenDiskCache("lread", filepath.Join(dir, "cache"))
	require.NoError(t, err)
	opts := Options{Cache: cache}

	first, err := Parse(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := Parse(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	require.Len(t, second.Forms, 2)
	for i := range first.Forms {
		assert.True(t, token.Equal(first.Forms[i], second.Forms[i]))
	}

	// другая политика комментариев даёт другой ключ
	third, err := Parse(context.Background(), path, Options{Cache: cache, Reader: reader.Options{Comments: reader.CommentsKeep}})
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestParseErrorsAreNotCached(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.lisp", "(open")
	cache, err := OpenDiskCache("lread", filepath.Join(dir, "cache"))
	require.NoError(t, err)

	for range 2 {
		res, err := Parse(context.Background(), path, Options{Cache: cache})
		require.NoError(t, err)
		assert.Error(t, res.Err)
		assert.False(t, res.Cached)
	}
}
