package blobstore

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore varlıkları yerel dosya sisteminde tutar. Referanslar
// eğik çizgili göreli yollardır ("templates/<id>/front.png" gibi);
// kök dışına çıkan referanslar reddedilir.
type DiskStore struct {
	root    string
	baseURL string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore kök dizini oluşturup bir DiskStore kurar. baseURL,
// URL üretiminde referansın önüne eklenir ("/assets" gibi).
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// resolve referansı kök altındaki mutlak yola çevirir; yol kaçışlarını
// (".." ve mutlak yollar) reddeder.
func (s *DiskStore) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "/") || strings.Contains(ref, "\\") {
		return "", ErrInvalidRef
	}
	clean := path.Clean(ref)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidRef
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *DiskStore) Upload(ctx context.Context, ref string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	// Önce geçici dosyaya yazılır; yarım yükleme görünür olmaz.
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (s *DiskStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) URL(ref string) string {
	return s.baseURL + "/" + strings.TrimLeft(ref, "/")
}
