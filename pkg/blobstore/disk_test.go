package blobstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(t.TempDir(), "/assets")
	require.NoError(t, err)
	return s
}

func TestUploadOpenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "templates/t1/front.png", strings.NewReader("görsel verisi")))

	rc, err := s.Open(ctx, "templates/t1/front.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "görsel verisi", string(data))
}

func TestUploadOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "a.txt", strings.NewReader("eski")))
	require.NoError(t, s.Upload(ctx, "a.txt", strings.NewReader("yeni")))

	rc, err := s.Open(ctx, "a.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "yeni", string(data))
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Open(context.Background(), "yok.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "a.txt", strings.NewReader("x")))
	require.NoError(t, s.Delete(ctx, "a.txt"))
	require.NoError(t, s.Delete(ctx, "a.txt"), "olmayan referansı silmek hata olmamalı")

	_, err := s.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectsEscapingRefs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ref := range []string{"../dışarı.txt", "/etc/passwd", "a/../../b", "", "a\\b"} {
		assert.ErrorIs(t, s.Upload(ctx, ref, strings.NewReader("x")), ErrInvalidRef, ref)
		_, err := s.Open(ctx, ref)
		assert.ErrorIs(t, err, ErrInvalidRef, ref)
	}
}

func TestURL(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "/assets/templates/t1/front.png", s.URL("templates/t1/front.png"))
}
