package editor

import (
	"math"

	"github.com/google/uuid"

	"kimlik.link/models"
)

// AddOptions AddField için tür bazlı ek girdilerdir.
type AddOptions struct {
	IconName string
}

// AddField aktif yüze tür varsayılanlarıyla yeni bir alan ekler, onu
// seçer ve bir geçmiş girişi yazar. Yeni alan çizim sırasının sonuna
// (en üste) gelir.
func (s *Session) AddField(t models.FieldType, opts AddOptions) (models.Field, error) {
	if !models.KnownFieldType(t) {
		return models.Field{}, ErrUnknownFieldType
	}

	f := models.Field{
		TemplateID: s.templateID,
		Side:       s.side,
		FieldType:  t,
		X:          10,
		Y:          10,
		Opacity:    1,
		FontSize:   14,
		FontWeight: "normal",
		TextAlign:  "left",
		Color:      "#000000",
		FillColor:  "#000000",
	}
	f.ID = uuid.New()

	switch t {
	case models.FieldTypeText:
		// Otomatik boyut: 0×0, ölçüm render'dan gelir.
		f.FieldKey = "New Text"
	case models.FieldTypeQRCode:
		f.FieldKey = "qrcode"
		f.Width, f.Height = 100, 100
	case models.FieldTypeLine:
		f.Width, f.Height = 100, 2
	case models.FieldTypeIcon:
		f.IconName = opts.IconName
		if f.IconName == "" {
			f.IconName = "Star"
		}
		f.Width, f.Height = 50, 50
	case models.FieldTypeImage:
		f.FieldKey = "profile_image"
		f.Width, f.Height = 50, 50
	case models.FieldTypeSignature:
		f.FieldKey = "signature"
		f.Width, f.Height = 100, 50
	case models.FieldTypeBox:
		f.FillColor = "#ffffff"
		f.BorderColor = "#000000"
		f.BorderWidth = 1
		f.Width, f.Height = 100, 100
	}

	s.fields = append(cloneFields(s.fields), f)
	s.clearSelection()
	s.selection[f.ID] = struct{}{}
	s.commit()
	return f, nil
}

// FieldPatch kısmi alan güncellemesidir; nil olmayan alanlar uygulanır.
type FieldPatch struct {
	FieldKey *string
	Side     *models.Side

	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	Opacity  *float64

	FontSize   *float64
	FontWeight *string
	TextAlign  *string
	Color      *string
	Uppercase  *bool

	IconName *string

	FillColor    *string
	BorderColor  *string
	BorderWidth  *float64
	BorderRadius *float64
}

// UpdateField bir alanı kısmi olarak günceller ve bir geçmiş girişi
// yazar. ID ve çizim sırası asla değişmez. Geçersiz girdi yapısal hata
// olarak döner, koleksiyon el değmeden kalır.
func (s *Session) UpdateField(id uuid.UUID, patch FieldPatch) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrFieldNotFound
	}
	if patch.Opacity != nil && (*patch.Opacity < 0 || *patch.Opacity > 1) {
		return ErrInvalidOpacity
	}
	if (patch.Width != nil && *patch.Width < 0) || (patch.Height != nil && *patch.Height < 0) {
		return ErrInvalidSize
	}

	fields := cloneFields(s.fields)
	applyPatch(&fields[i], patch)
	s.fields = fields
	s.commit()
	return nil
}

func applyPatch(f *models.Field, p FieldPatch) {
	if p.FieldKey != nil {
		f.FieldKey = *p.FieldKey
	}
	if p.Side != nil {
		f.Side = *p.Side
	}
	if p.X != nil {
		f.X = *p.X
	}
	if p.Y != nil {
		f.Y = *p.Y
	}
	if p.Width != nil {
		f.Width = *p.Width
	}
	if p.Height != nil {
		f.Height = *p.Height
	}
	if p.Rotation != nil {
		f.Rotation = normalizeRotation(*p.Rotation)
	}
	if p.Opacity != nil {
		f.Opacity = *p.Opacity
	}
	if p.FontSize != nil {
		f.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		f.FontWeight = *p.FontWeight
	}
	if p.TextAlign != nil {
		f.TextAlign = *p.TextAlign
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	if p.Uppercase != nil {
		f.Uppercase = *p.Uppercase
	}
	if p.IconName != nil {
		f.IconName = *p.IconName
	}
	if p.FillColor != nil {
		f.FillColor = *p.FillColor
	}
	if p.BorderColor != nil {
		f.BorderColor = *p.BorderColor
	}
	if p.BorderWidth != nil {
		f.BorderWidth = *p.BorderWidth
	}
	if p.BorderRadius != nil {
		f.BorderRadius = *p.BorderRadius
	}
}

func normalizeRotation(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RemoveFields verilen alanları koleksiyondan çıkarır ve tek geçmiş
// girişi yazar. Bilinmeyen ID'ler sessizce atlanır.
func (s *Session) RemoveFields(ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]models.Field, 0, len(s.fields))
	removed := false
	for _, f := range s.fields {
		if _, ok := drop[f.ID]; ok {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return
	}
	s.fields = kept
	s.pruneSelection()
	s.commit()
}

// Duplicate alanları +20,+20 ofsetle ve taze ID'lerle klonlar, klonları
// seçer ve tek geçmiş girişi yazar. Klonlar çizim sırasının sonuna eklenir.
func (s *Session) Duplicate(ids ...uuid.UUID) []models.Field {
	clones := make([]models.Field, 0, len(ids))
	fields := cloneFields(s.fields)
	for _, id := range ids {
		i := s.indexOf(id)
		if i < 0 {
			continue
		}
		clone := s.fields[i]
		clone.ID = uuid.New()
		clone.X += 20
		clone.Y += 20
		clones = append(clones, clone)
		fields = append(fields, clone)
	}
	if len(clones) == 0 {
		return nil
	}
	s.fields = fields
	s.clearSelection()
	for _, c := range clones {
		s.selection[c.ID] = struct{}{}
	}
	s.commit()
	return clones
}

// MoveBy verilen alanları delta kadar taşır ve tek geçmiş girişi yazar
// (klavye dürtmesi gibi atomik taşımalar için).
func (s *Session) MoveBy(ids []uuid.UUID, dx, dy float64) {
	if len(ids) == 0 || (dx == 0 && dy == 0) {
		return
	}
	move := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		move[id] = struct{}{}
	}

	fields := cloneFields(s.fields)
	touched := false
	for i := range fields {
		if _, ok := move[fields[i].ID]; ok {
			fields[i].X += dx
			fields[i].Y += dy
			touched = true
		}
	}
	if !touched {
		return
	}
	s.fields = fields
	s.commit()
}

// Nudge seçimi delta kadar taşır (ok tuşları: 1px, hızlandırıcıyla 10px).
func (s *Session) Nudge(dx, dy float64) {
	s.MoveBy(s.Selection(), dx, dy)
}

// DeleteSelection seçili alanları siler.
func (s *Session) DeleteSelection() {
	s.RemoveFields(s.Selection()...)
}

// DuplicateSelection seçimi klonlar.
func (s *Session) DuplicateSelection() []models.Field {
	return s.Duplicate(s.Selection()...)
}
