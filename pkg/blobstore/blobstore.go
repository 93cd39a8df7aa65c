// Package blobstore şablon arka planları, fotoğraflar ve üretilen
// çıktılar gibi ikili varlıkların saklama katmanıdır. Referanslar
// depo-göreli yollardır ve veritabanında bu haliyle saklanır.
package blobstore

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound   = errors.New("varlık bulunamadı")
	ErrInvalidRef = errors.New("geçersiz varlık referansı")
)

// Store varlık deposudur. Render ve dışa aktarma katmanları yalnızca
// bu arayüzü görür; disk, bellek ya da uzak depo arkada değişebilir.
type Store interface {
	// Upload içeriği verilen referansa yazar; varsa üzerine yazılır.
	Upload(ctx context.Context, ref string, r io.Reader) error
	// Open referansı okumaya açar. Yoksa ErrNotFound döner.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	// Delete referansı siler; olmayan referans hata değildir.
	Delete(ctx context.Context, ref string) error
	// URL referansın dışarıya servis edilen adresini döndürür.
	URL(ref string) string
}
