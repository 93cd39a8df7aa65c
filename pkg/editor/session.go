// Package editor bir şablonun düzenleme oturumudur: alan koleksiyonunun,
// seçimin ve geçmiş yığınının tek sahibi. Tek iş parçacıklı, olay
// güdümlü kullanım için tasarlanmıştır; hiçbir metodu bloklamaz.
package editor

import (
	"errors"

	"github.com/google/uuid"

	"kimlik.link/models"
	"kimlik.link/pkg/geometry"
	"kimlik.link/pkg/history"
)

var (
	ErrFieldNotFound    = errors.New("alan bulunamadı")
	ErrUnknownFieldType = errors.New("tanımsız alan türü")
	ErrInvalidOpacity   = errors.New("opaklık 0 ile 1 arasında olmalı")
	ErrInvalidSize      = errors.New("genişlik ve yükseklik negatif olamaz")
	ErrAlignTooFew      = errors.New("hizalama için en az 2 alan seçilmeli")
	ErrDistributeTooFew = errors.New("dağıtma için en az 3 alan seçilmeli")
	ErrNoActiveGesture  = errors.New("aktif bir sürükleme yok")
)

// StateKind etkileşim durum makinesinin durumlarıdır. Tıklama/sürükleme
// ayrımı zamanlamaya duyarlı bayraklarla değil bu geçiş tablosuyla yapılır.
type StateKind string

const (
	StateIdle     StateKind = "idle"
	StateDragging StateKind = "dragging"
	StateResizing StateKind = "resizing"
	StateMarquee  StateKind = "marquee"
)

// gesture aktif etkileşimin geçici durumudur; commit edilene kadar
// geçmişe hiçbir şey yazılmaz.
type gesture struct {
	kind    StateKind
	fieldID uuid.UUID
	origins map[uuid.UUID]geometry.Point // sürükleme başındaki konumlar
	start   geometry.Point               // marquee başlangıç noktası
	shift   bool
	moved   bool
}

type size struct{ W, H float64 }

// Session bir şablon-yüz düzenleme oturumudur.
type Session struct {
	templateID uuid.UUID
	side       models.Side
	canvas     geometry.Rect

	fields    []models.Field
	selection map[uuid.UUID]struct{}
	measured  map[uuid.UUID]size // otomatik boyutlu alanların ölçülen boyutları

	hist    *history.Stack[[]models.Field]
	gesture gesture
	guides  []geometry.Guide
}

// NewSession oturumu kurar ve başlangıç durumunu geçmişe tek giriş
// olarak yazar. canvas editör pikseli cinsinden tuval dikdörtgenidir.
func NewSession(templateID uuid.UUID, side models.Side, canvas geometry.Rect, fields []models.Field) *Session {
	initial := cloneFields(fields)
	return &Session{
		templateID: templateID,
		side:       side,
		canvas:     canvas,
		fields:     initial,
		selection:  make(map[uuid.UUID]struct{}),
		measured:   make(map[uuid.UUID]size),
		hist:       history.New(initial, cloneFields),
		gesture:    gesture{kind: StateIdle},
	}
}

func cloneFields(fields []models.Field) []models.Field {
	return append([]models.Field(nil), fields...)
}

// Fields koleksiyonun kopyasını çizim sırasına göre döndürür.
func (s *Session) Fields() []models.Field { return cloneFields(s.fields) }

// Side aktif yüzü döndürür.
func (s *Session) Side() models.Side { return s.side }

// SetSide aktif yüzü değiştirir ve seçimi temizler.
func (s *Session) SetSide(side models.Side) {
	s.side = side
	s.clearSelection()
}

// State etkileşim durum makinesinin aktif durumunu döndürür.
func (s *Session) State() StateKind { return s.gesture.kind }

// Guides aktif hizalama kılavuzlarını döndürür; sürükleme dışında boştur.
func (s *Session) Guides() []geometry.Guide {
	return append([]geometry.Guide(nil), s.guides...)
}

// Selection seçili alan ID'lerini çizim sırasına göre döndürür.
func (s *Session) Selection() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.selection))
	for _, f := range s.fields {
		if _, ok := s.selection[f.ID]; ok {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Selected ID'nin seçili olup olmadığını söyler.
func (s *Session) Selected(id uuid.UUID) bool {
	_, ok := s.selection[id]
	return ok
}

// SetMeasuredSize otomatik boyutlu (genişlik/yükseklik 0) bir alanın
// ölçülen render boyutunu bildirir. Geçici bir ölçüm önbelleğidir,
// geçmişe girmez.
func (s *Session) SetMeasuredSize(id uuid.UUID, w, h float64) {
	s.measured[id] = size{W: w, H: h}
}

// CanUndo / CanRedo geçmiş durumunu dışarı verir.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Undo bir adım geri alır. Devam eden bir jest yokken çağrılmalıdır.
func (s *Session) Undo() bool {
	snapshot, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.fields = snapshot
	s.pruneSelection()
	return true
}

// Redo geri alınan adımı yineler.
func (s *Session) Redo() bool {
	snapshot, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.fields = snapshot
	s.pruneSelection()
	return true
}

// HistoryJSON geçmiş yığınını oturum kalıcılığı için serileştirir.
func (s *Session) HistoryJSON() ([]byte, error) {
	return s.hist.MarshalJSON()
}

// RestoreHistory serileştirilmiş bir geçmişi geri yükler ve koleksiyonu
// aktif girişe eşitler.
func (s *Session) RestoreHistory(data []byte) error {
	if err := s.hist.UnmarshalJSON(data); err != nil {
		return err
	}
	s.fields = s.hist.Current()
	s.pruneSelection()
	return nil
}

// commit mevcut koleksiyonu tek geçmiş girişi olarak yazar.
func (s *Session) commit() {
	s.hist.Push(s.fields)
}

func (s *Session) clearSelection() {
	s.selection = make(map[uuid.UUID]struct{})
}

// pruneSelection artık var olmayan alanları seçimden düşürür.
func (s *Session) pruneSelection() {
	alive := make(map[uuid.UUID]struct{}, len(s.fields))
	for _, f := range s.fields {
		alive[f.ID] = struct{}{}
	}
	for id := range s.selection {
		if _, ok := alive[id]; !ok {
			delete(s.selection, id)
		}
	}
}

func (s *Session) indexOf(id uuid.UUID) int {
	for i := range s.fields {
		if s.fields[i].ID == id {
			return i
		}
	}
	return -1
}

// effectiveRect alanın etkin dikdörtgenini döndürür: saklanan boyut 0
// ise ölçülen render boyutu, o da yoksa 0 kullanılır.
func (s *Session) effectiveRect(f *models.Field) geometry.Rect {
	r := geometry.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
	if r.Width == 0 || r.Height == 0 {
		if m, ok := s.measured[f.ID]; ok {
			if r.Width == 0 {
				r.Width = m.W
			}
			if r.Height == 0 {
				r.Height = m.H
			}
		}
	}
	return r
}
