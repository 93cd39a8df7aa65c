package editor

import (
	"sort"

	"github.com/google/uuid"

	"kimlik.link/models"
	"kimlik.link/pkg/geometry"
)

// AlignOp çoklu seçim üzerindeki hizalama işlemleridir.
type AlignOp string

const (
	AlignLeft    AlignOp = "left"
	AlignRight   AlignOp = "right"
	AlignTop     AlignOp = "top"
	AlignBottom  AlignOp = "bottom"
	AlignCenterH AlignOp = "center-h" // yatay merkez (x ekseni)
	AlignCenterV AlignOp = "center-v" // dikey merkez (y ekseni)
)

// selectionBounds seçimin etkin sınırlayıcı kutusunu ve üyelerin
// koleksiyon index'lerini döndürür.
func (s *Session) selectionBounds(ids []uuid.UUID) (geometry.Rect, []int) {
	var indexes []int
	var bounds geometry.Rect
	first := true
	for _, id := range ids {
		i := s.indexOf(id)
		if i < 0 {
			continue
		}
		indexes = append(indexes, i)
		r := s.effectiveRect(&s.fields[i])
		if first {
			bounds = r
			first = false
		} else {
			bounds = bounds.Union(r)
		}
	}
	return bounds, indexes
}

// Align seçili alanları sınırlayıcı kutuya göre hizalar ve tek geçmiş
// girişi yazar. En az 2 alan seçili olmalıdır. İdempotenttir: ikinci
// uygulama sonucu değiştirmez.
func (s *Session) Align(op AlignOp) error {
	ids := s.Selection()
	if len(ids) < 2 {
		return ErrAlignTooFew
	}
	bounds, indexes := s.selectionBounds(ids)
	if len(indexes) < 2 {
		return ErrAlignTooFew
	}

	fields := cloneFields(s.fields)
	for _, i := range indexes {
		r := s.effectiveRect(&fields[i])
		switch op {
		case AlignLeft:
			fields[i].X = bounds.X
		case AlignRight:
			fields[i].X = bounds.X + bounds.Width - r.Width
		case AlignTop:
			fields[i].Y = bounds.Y
		case AlignBottom:
			fields[i].Y = bounds.Y + bounds.Height - r.Height
		case AlignCenterH:
			fields[i].X = bounds.X + bounds.Width/2 - r.Width/2
		case AlignCenterV:
			fields[i].Y = bounds.Y + bounds.Height/2 - r.Height/2
		}
	}
	s.fields = fields
	s.commit()
	return nil
}

// Distribute seçili alanları eksen boyunca eşit aralıklarla dağıtır:
// konuma göre sıralanır, ilk ve son sabit kalır, aradakiler ardışık
// kenarlar arasındaki boşluk (dışSpan − Σboyut) / (n − 1) olacak şekilde
// yerleştirilir. En az 3 alan gerekir; tek geçmiş girişi yazılır.
func (s *Session) Distribute(axis geometry.Axis) error {
	ids := s.Selection()
	if len(ids) < 3 {
		return ErrDistributeTooFew
	}
	_, indexes := s.selectionBounds(ids)
	if len(indexes) < 3 {
		return ErrDistributeTooFew
	}

	fields := cloneFields(s.fields)

	type member struct {
		idx  int
		rect geometry.Rect
	}
	members := make([]member, 0, len(indexes))
	for _, i := range indexes {
		members = append(members, member{idx: i, rect: s.effectiveRect(&fields[i])})
	}

	pos := func(m member) float64 {
		if axis == geometry.AxisX {
			return m.rect.X
		}
		return m.rect.Y
	}
	dim := func(m member) float64 {
		if axis == geometry.AxisX {
			return m.rect.Width
		}
		return m.rect.Height
	}

	sort.SliceStable(members, func(a, b int) bool { return pos(members[a]) < pos(members[b]) })

	firstM := members[0]
	lastM := members[len(members)-1]
	span := pos(lastM) + dim(lastM) - pos(firstM)

	var sizes float64
	for _, m := range members {
		sizes += dim(m)
	}
	gap := (span - sizes) / float64(len(members)-1)

	cursor := pos(firstM) + dim(firstM) + gap
	for _, m := range members[1 : len(members)-1] {
		setPos(&fields[m.idx], axis, cursor)
		cursor += dim(m) + gap
	}

	s.fields = fields
	s.commit()
	return nil
}

func setPos(f *models.Field, axis geometry.Axis, v float64) {
	if axis == geometry.AxisX {
		f.X = v
	} else {
		f.Y = v
	}
}
