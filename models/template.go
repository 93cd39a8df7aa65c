package models

import "github.com/google/uuid"

// Orientation kartın sayfa yönüdür.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Side kartın ön/arka yüzüdür.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// Template bir kimlik kartı şablonunun ana kaydıdır.
// Boyutlar düzenleme sırasında hangi birim kullanılırsa kullanılsın
// daima milimetre cinsinden saklanır.
type Template struct {
	BaseModel
	OrganizationID uuid.UUID   `gorm:"type:uuid;index" json:"organization_id"`
	Name           string      `gorm:"type:varchar(150);not null" json:"name"`
	WidthMM        float64     `gorm:"not null" json:"width_mm"`
	HeightMM       float64     `gorm:"not null" json:"height_mm"`
	Orientation    Orientation `gorm:"type:varchar(10);default:'landscape'" json:"orientation"`
	EditUnit       string      `gorm:"type:varchar(4);default:'mm'" json:"edit_unit"` // mm | in | px

	BackgroundColorFront string  `gorm:"type:varchar(7);default:'#ffffff'" json:"background_color_front"`
	BackgroundColorBack  string  `gorm:"type:varchar(7);default:'#ffffff'" json:"background_color_back"`
	BackgroundFrontRef   *string `gorm:"type:varchar(500)" json:"background_front_ref"`
	BackgroundBackRef    *string `gorm:"type:varchar(500)" json:"background_back_ref"`
	PreviewRef           *string `gorm:"type:varchar(500)" json:"preview_ref"`

	// GORM İlişkileri
	Fields   []Field               `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fields,omitempty"`
	Override *OrganizationOverride `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"override,omitempty"`
}

// BackgroundRef istenen yüzün arka plan referansını döndürür.
func (t *Template) BackgroundRef(side Side) *string {
	if side == SideBack {
		return t.BackgroundBackRef
	}
	return t.BackgroundFrontRef
}

// BackgroundColor istenen yüzün arka plan rengini döndürür.
func (t *Template) BackgroundColor(side Side) string {
	if side == SideBack {
		return t.BackgroundColorBack
	}
	return t.BackgroundColorFront
}

// CanvasMM yönelim uygulanmış tuval boyutunu milimetre cinsinden
// döndürür: portrede kısa kenar genişlik, peyzajda uzun kenar genişliktir.
func (t *Template) CanvasMM() (w, h float64) {
	short, long := t.WidthMM, t.HeightMM
	if short > long {
		short, long = long, short
	}
	if t.Orientation == OrientationLandscape {
		return long, short
	}
	return short, long
}

// OrganizationOverride şablona özel seyrek kurum bilgisi ezmesidir.
// Dolu alanlar, bağlı kurumun canlı değerlerinin önüne geçer.
type OrganizationOverride struct {
	BaseModel
	TemplateID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"template_id"`

	Name    *string `gorm:"type:varchar(255)" json:"name"`
	Address *string `gorm:"type:text" json:"address"`
	Contact *string `gorm:"type:varchar(255)" json:"contact"`
}
