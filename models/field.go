package models

import "github.com/google/uuid"

// FieldType yerleştirilen öğenin türüdür. Her alanın tam olarak bir
// türü vardır; tür bazlı öznitelikler Variant ile kapalı bir küme
// olarak dışarı verilir.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeImage     FieldType = "image"
	FieldTypeQRCode    FieldType = "qrcode"
	FieldTypeSignature FieldType = "signature"
	FieldTypeIcon      FieldType = "icon"
	FieldTypeBox       FieldType = "box"
	FieldTypeLine      FieldType = "line"
)

// KnownFieldType türün tanımlı olup olmadığını söyler.
func KnownFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeImage, FieldTypeQRCode, FieldTypeSignature,
		FieldTypeIcon, FieldTypeBox, FieldTypeLine:
		return true
	}
	return false
}

// Field bir şablonun tek yüzüne yerleştirilmiş tasarım öğesidir.
// Koordinatlar şablon-yerel editör pikseli cinsindendir. Çizim sırası
// (z-order) SortOrder ile saklanır; oturum içinde dizi konumuna denk gelir.
type Field struct {
	BaseModel
	TemplateID uuid.UUID `gorm:"type:uuid;index;not null" json:"template_id"`
	Side       Side      `gorm:"type:varchar(5);not null;index" json:"side"`
	FieldType  FieldType `gorm:"type:varchar(10);not null" json:"field_type"`
	FieldKey   string    `gorm:"type:varchar(255)" json:"field_key"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`  // text için 0 = otomatik boyut
	Height   float64 `json:"height"` // text için 0 = otomatik boyut
	Rotation float64 `json:"rotation"`
	Opacity  float64 `gorm:"default:1" json:"opacity"`

	// text
	FontSize   float64 `gorm:"default:14" json:"font_size"`
	FontWeight string  `gorm:"type:varchar(10);default:'normal'" json:"font_weight"`
	TextAlign  string  `gorm:"type:varchar(10);default:'left'" json:"text_align"`
	Color      string  `gorm:"type:varchar(7);default:'#000000'" json:"color"`
	Uppercase  bool    `gorm:"default:false" json:"uppercase"`

	// icon
	IconName string `gorm:"type:varchar(50)" json:"icon_name"`

	// box / line
	FillColor    string  `gorm:"type:varchar(7);default:'#000000'" json:"fill_color"`
	BorderColor  string  `gorm:"type:varchar(7)" json:"border_color"`
	BorderWidth  float64 `json:"border_width"`
	BorderRadius float64 `json:"border_radius"`
}

// FieldVariant tür bazlı özniteliklerin kapalı kümesidir. Renderer ve
// özellik paneli bu küme üzerinde exhaustive eşleşme yapar; serbest
// "opsiyonel kolon" okumaları yerine tek geçerli görünüm budur.
type FieldVariant interface{ isFieldVariant() }

// TextAttrs yazı alanının öznitelikleridir.
type TextAttrs struct {
	Key        string
	FontSize   float64
	FontWeight string
	TextAlign  string
	Color      string
	Uppercase  bool
}

// ImageAttrs resim alanının öznitelikleridir. Key sembolik bir bağ
// (profile_image, organization.logo) veya doğrudan bir URL olabilir.
type ImageAttrs struct{ Key string }

// QRCodeAttrs kodlanacak değerin bağını taşır; barkodun kendisi
// dış bir işbirlikçi tarafından üretilir.
type QRCodeAttrs struct{ Key string }

// SignatureAttrs imza varlığına bağlı resim alanıdır.
type SignatureAttrs struct{ Key string }

// IconAttrs sabit ikon setinden bir glifi seçer; veri bağı yoktur.
type IconAttrs struct{ Name string }

// BoxAttrs dekoratif kutunun öznitelikleridir; veri bağı yoktur.
type BoxAttrs struct {
	FillColor    string
	BorderColor  string
	BorderWidth  float64
	BorderRadius float64
}

// LineAttrs çizgi, dolgu rengiyle çizilen alçak bir kutudur.
type LineAttrs struct{ FillColor string }

func (TextAttrs) isFieldVariant()      {}
func (ImageAttrs) isFieldVariant()     {}
func (QRCodeAttrs) isFieldVariant()    {}
func (SignatureAttrs) isFieldVariant() {}
func (IconAttrs) isFieldVariant()      {}
func (BoxAttrs) isFieldVariant()       {}
func (LineAttrs) isFieldVariant()      {}

// Variant alanın tür bazlı özniteliklerini döndürür. Tanımsız türde nil
// döner; çağıran taraf bunu "çizilmeyen alan" olarak ele alır.
func (f *Field) Variant() FieldVariant {
	switch f.FieldType {
	case FieldTypeText:
		return TextAttrs{
			Key:        f.FieldKey,
			FontSize:   f.FontSize,
			FontWeight: f.FontWeight,
			TextAlign:  f.TextAlign,
			Color:      f.Color,
			Uppercase:  f.Uppercase,
		}
	case FieldTypeImage:
		return ImageAttrs{Key: f.FieldKey}
	case FieldTypeQRCode:
		return QRCodeAttrs{Key: f.FieldKey}
	case FieldTypeSignature:
		return SignatureAttrs{Key: f.FieldKey}
	case FieldTypeIcon:
		return IconAttrs{Name: f.IconName}
	case FieldTypeBox:
		return BoxAttrs{
			FillColor:    f.FillColor,
			BorderColor:  f.BorderColor,
			BorderWidth:  f.BorderWidth,
			BorderRadius: f.BorderRadius,
		}
	case FieldTypeLine:
		return LineAttrs{FillColor: f.FillColor}
	}
	return nil
}
