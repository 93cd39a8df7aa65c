// Package history bir düzenleme oturumunun lineer geri al / yinele
// yığınıdır. Her giriş, alan koleksiyonunun o andaki tam bir anlık
// görüntüsüdür; geri alma sonrası yeni bir push, index'in ilerisindeki
// tüm girişleri atar.
package history

import (
	"encoding/json"
	"errors"
)

// ErrEmptySnapshot import edilen veri hiç giriş içermediğinde döner.
var ErrEmptySnapshot = errors.New("geçmiş verisi boş")

// Stack anlık görüntüler üzerinde lineer undo/redo yığınıdır.
// clone fonksiyonu girişlerin değişmezliğini korur: push edilen ve geri
// verilen her değer kopyalanır.
type Stack[T any] struct {
	entries []T
	index   int
	clone   func(T) T
}

// New başlangıç durumunu tek giriş olarak push edilmiş bir yığın kurar
// (index 0).
func New[T any](initial T, clone func(T) T) *Stack[T] {
	return &Stack[T]{
		entries: []T{clone(initial)},
		index:   0,
		clone:   clone,
	}
}

// Push index'in ilerisindeki girişleri atar, anlık görüntüyü ekler ve
// index'i son konuma taşır.
func (s *Stack[T]) Push(snapshot T) {
	s.entries = append(s.entries[:s.index+1], s.clone(snapshot))
	s.index = len(s.entries) - 1
}

// Undo bir adım geri gider ve o anlık görüntüyü döndürür.
// index 0'da no-op'tur (false döner).
func (s *Stack[T]) Undo() (T, bool) {
	if s.index == 0 {
		var zero T
		return zero, false
	}
	s.index--
	return s.clone(s.entries[s.index]), true
}

// Redo bir adım ileri gider ve o anlık görüntüyü döndürür.
// Son girişteyken no-op'tur.
func (s *Stack[T]) Redo() (T, bool) {
	if s.index == len(s.entries)-1 {
		var zero T
		return zero, false
	}
	s.index++
	return s.clone(s.entries[s.index]), true
}

// Current aktif anlık görüntünün kopyasını döndürür.
func (s *Stack[T]) Current() T {
	return s.clone(s.entries[s.index])
}

// Len toplam giriş sayısıdır.
func (s *Stack[T]) Len() int { return len(s.entries) }

// Index aktif girişin konumudur.
func (s *Stack[T]) Index() int { return s.index }

// CanUndo geri alınabilecek bir giriş olup olmadığını söyler.
func (s *Stack[T]) CanUndo() bool { return s.index > 0 }

// CanRedo yinelenebilecek bir giriş olup olmadığını söyler.
func (s *Stack[T]) CanRedo() bool { return s.index < len(s.entries)-1 }

// snapshotData oturum kalıcılığı için serileştirme biçimidir.
type snapshotData[T any] struct {
	Entries []T `json:"entries"`
	Index   int `json:"index"`
}

// MarshalJSON yığını oturumlar arası taşınabilir JSON'a çevirir.
func (s *Stack[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotData[T]{Entries: s.entries, Index: s.index})
}

// UnmarshalJSON serileştirilmiş bir yığını geri yükler.
func (s *Stack[T]) UnmarshalJSON(data []byte) error {
	var d snapshotData[T]
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	if len(d.Entries) == 0 {
		return ErrEmptySnapshot
	}
	if d.Index < 0 || d.Index >= len(d.Entries) {
		d.Index = len(d.Entries) - 1
	}
	s.entries = d.Entries
	s.index = d.Index
	return nil
}
