package editor

import (
	"strings"

	"github.com/google/uuid"

	"kimlik.link/models"
	"kimlik.link/pkg/geometry"
)

// ClickField bir alana tıklamayı işler.
//   - Seçili değilse: shift yoksa seçimi değiştirir, shift varsa ekler.
//   - Zaten seçiliyse: shift varsa seçimden çıkarır; shift yoksa mevcut
//     çoklu seçim korunur (grup sürüklemesi alanın üzerinden başlayabilsin).
func (s *Session) ClickField(id uuid.UUID, shift bool) error {
	if s.indexOf(id) < 0 {
		return ErrFieldNotFound
	}
	if s.Selected(id) {
		if shift {
			delete(s.selection, id)
		}
		return nil
	}
	if !shift {
		s.clearSelection()
	}
	s.selection[id] = struct{}{}
	return nil
}

// BeginDrag bir alan üzerinde sürüklemeyi başlatır. Seçili olmayan alan
// tıklama kurallarıyla seçime alınır; zaten seçili bir alandan başlayan
// jest seçimi bozmaz, böylece aktif alan her zaman origins içindedir.
// Shift ile seçimden çıkarma kararı jest bitişine ertelenir: hareket
// olursa bu bir grup sürüklemesidir, olmazsa tıklamadır.
func (s *Session) BeginDrag(id uuid.UUID, shift bool) error {
	if s.indexOf(id) < 0 {
		return ErrFieldNotFound
	}
	toggle := shift && s.Selected(id)
	if !s.Selected(id) {
		if !shift {
			s.clearSelection()
		}
		s.selection[id] = struct{}{}
	}
	origins := make(map[uuid.UUID]geometry.Point, len(s.selection))
	for _, f := range s.fields {
		if s.Selected(f.ID) {
			origins[f.ID] = geometry.Point{X: f.X, Y: f.Y}
		}
	}
	s.gesture = gesture{kind: StateDragging, fieldID: id, origins: origins, shift: toggle}
	return nil
}

// DragTo aktif sürüklemeyi önerilen sol-üst konuma taşır. Yapışma
// yalnızca aktif üye için hesaplanır; bulunan delta seçimin tamamına
// uygulanır (grup rijit taşınır). Geçmişe yazılmaz.
func (s *Session) DragTo(proposed geometry.Point) error {
	if s.gesture.kind != StateDragging {
		return ErrNoActiveGesture
	}
	i := s.indexOf(s.gesture.fieldID)
	if i < 0 {
		return ErrFieldNotFound
	}
	active := &s.fields[i]
	activeRect := s.effectiveRect(active)
	activeRect.X, activeRect.Y = proposed.X, proposed.Y

	// Kardeşler: aynı yüzdeki, seçimde OLMAYAN alanlar. Birlikte taşınan
	// üyeler birbirine yapışmaz.
	var siblings []geometry.Rect
	for j := range s.fields {
		f := &s.fields[j]
		if f.ID == active.ID || s.Selected(f.ID) || !sameSide(f.Side, s.side) {
			continue
		}
		siblings = append(siblings, s.effectiveRect(f))
	}

	res := geometry.Snap(activeRect, siblings, s.canvas)
	s.guides = res.Guides

	origin := s.gesture.origins[active.ID]
	dx := res.X - origin.X
	dy := res.Y - origin.Y

	for j := range s.fields {
		if o, ok := s.gesture.origins[s.fields[j].ID]; ok {
			s.fields[j].X = o.X + dx
			s.fields[j].Y = o.Y + dy
		}
	}
	if dx != 0 || dy != 0 {
		s.gesture.moved = true
	}
	return nil
}

// EndDrag sürüklemeyi bitirir; hareket olduysa jestin tamamı için tek
// bir geçmiş girişi yazılır. Kılavuzlar temizlenir.
func (s *Session) EndDrag() {
	if s.gesture.kind != StateDragging {
		return
	}
	moved := s.gesture.moved
	if !moved && s.gesture.shift {
		// Hareketsiz biten shift jesti tıklamadır: alan seçimden çıkar.
		delete(s.selection, s.gesture.fieldID)
	}
	s.gesture = gesture{kind: StateIdle}
	s.guides = nil
	if moved {
		s.commit()
	}
}

// BeginResize bir alanın boyutlandırmasını başlatır.
func (s *Session) BeginResize(id uuid.UUID) error {
	if s.indexOf(id) < 0 {
		return ErrFieldNotFound
	}
	if !s.Selected(id) {
		s.clearSelection()
		s.selection[id] = struct{}{}
	}
	s.gesture = gesture{kind: StateResizing, fieldID: id}
	return nil
}

// ResizeTo aktif boyutlandırmayı verilen dikdörtgene günceller;
// geçmişe yazılmaz.
func (s *Session) ResizeTo(r geometry.Rect) error {
	if s.gesture.kind != StateResizing {
		return ErrNoActiveGesture
	}
	if r.Width < 0 || r.Height < 0 {
		return ErrInvalidSize
	}
	i := s.indexOf(s.gesture.fieldID)
	if i < 0 {
		return ErrFieldNotFound
	}
	s.fields[i].X = r.X
	s.fields[i].Y = r.Y
	s.fields[i].Width = r.Width
	s.fields[i].Height = r.Height
	s.gesture.moved = true
	return nil
}

// EndResize boyutlandırmayı bitirir ve tek geçmiş girişi yazar.
func (s *Session) EndResize() {
	if s.gesture.kind != StateResizing {
		return
	}
	moved := s.gesture.moved
	s.gesture = gesture{kind: StateIdle}
	if moved {
		s.commit()
	}
}

// BeginMarquee boş tuvale basmayı işler ve lastik bant seçimini başlatır.
// Shift yoksa mevcut seçim hemen temizlenir; shift varsa marquee sonucu
// mevcut seçimle birleştirilir.
func (s *Session) BeginMarquee(start geometry.Point, shift bool) {
	if !shift {
		s.clearSelection()
	}
	s.gesture = gesture{kind: StateMarquee, start: start, shift: shift}
}

// EndMarquee lastik bandı bırakır: aktif yüzde, marquee dikdörtgeniyle
// kesişen tüm alanlar seçilir. Shift ile başlatıldıysa sonuç mevcut
// seçime birleştirilir, aksi halde seçimin yerine geçer.
func (s *Session) EndMarquee(end geometry.Point) {
	if s.gesture.kind != StateMarquee {
		return
	}
	marquee := geometry.FromCorners(s.gesture.start, end)
	shift := s.gesture.shift
	s.gesture = gesture{kind: StateIdle}

	if !shift {
		s.clearSelection()
	}
	for i := range s.fields {
		f := &s.fields[i]
		if !sameSide(f.Side, s.side) {
			continue
		}
		if marquee.Intersects(s.effectiveRect(f)) {
			s.selection[f.ID] = struct{}{}
		}
	}
}

// sameSide yüz eşleşmesini büyük/küçük harfe duyarsız yapar.
func sameSide(a, b models.Side) bool {
	return strings.EqualFold(string(a), string(b))
}
