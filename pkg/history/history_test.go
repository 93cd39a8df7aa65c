package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloneInts(s []int) []int { return append([]int(nil), s...) }

func TestNewHasSingleEntry(t *testing.T) {
	s := New([]int{1}, cloneInts)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Index())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, []int{1}, s.Current())
}

func TestUndoRedoWalk(t *testing.T) {
	s := New([]int{1}, cloneInts)
	s.Push([]int{1, 2})
	s.Push([]int{1, 2, 3})

	v, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, v)

	v, ok = s.Undo()
	require.True(t, ok)
	assert.Equal(t, []int{1}, v)

	_, ok = s.Undo()
	assert.False(t, ok, "index 0'da undo no-op olmalı")

	v, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, v)
}

func TestPushTruncatesRedoTail(t *testing.T) {
	s := New([]int{1}, cloneInts)
	s.Push([]int{2})
	s.Push([]int{3})
	s.Undo()
	s.Undo()
	s.Push([]int{9})

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.CanRedo())
	assert.Equal(t, []int{9}, s.Current())
}

func TestEntriesAreIsolated(t *testing.T) {
	snap := []int{1, 2}
	s := New(snap, cloneInts)
	snap[0] = 99

	assert.Equal(t, []int{1, 2}, s.Current(), "push edilen dilim sonradan değişse bile giriş etkilenmemeli")

	got := s.Current()
	got[0] = 42
	assert.Equal(t, []int{1, 2}, s.Current())
}

func TestJSONRoundTrip(t *testing.T) {
	s := New([]int{1}, cloneInts)
	s.Push([]int{1, 2})
	s.Push([]int{1, 2, 3})
	s.Undo()

	data, err := s.MarshalJSON()
	require.NoError(t, err)

	restored := New([]int(nil), cloneInts)
	require.NoError(t, restored.UnmarshalJSON(data))

	assert.Equal(t, 3, restored.Len())
	assert.Equal(t, 1, restored.Index())
	assert.Equal(t, []int{1, 2}, restored.Current())
	assert.True(t, restored.CanRedo())
}

func TestUnmarshalEmptyFails(t *testing.T) {
	s := New([]int{1}, cloneInts)
	err := s.UnmarshalJSON([]byte(`{"entries":[],"index":0}`))

	assert.ErrorIs(t, err, ErrEmptySnapshot)
	assert.Equal(t, []int{1}, s.Current(), "başarısız import mevcut yığını bozmamalı")
}

func TestUnmarshalClampsIndex(t *testing.T) {
	s := New([]int(nil), cloneInts)
	require.NoError(t, s.UnmarshalJSON([]byte(`{"entries":[[1],[2]],"index":7}`)))

	assert.Equal(t, 1, s.Index())
	assert.Equal(t, []int{2}, s.Current())
}
