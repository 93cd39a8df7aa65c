package models

import (
	"time"

	"github.com/google/uuid"
)

// Record bir kişiye ait kimlik kartı verisidir. Kuruma aittir ve ancak
// açık güncelleme ile değişir.
type Record struct {
	BaseModel
	OrganizationID uuid.UUID  `gorm:"type:uuid;index;not null" json:"organization_id"`
	TemplateID     *uuid.UUID `gorm:"type:uuid;index" json:"template_id"` // Atanmış şablon, opsiyonel

	FirstName  string `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName string `gorm:"type:varchar(100)" json:"middle_name"`
	LastName   string `gorm:"type:varchar(100);not null" json:"last_name"`
	NameSuffix string `gorm:"type:varchar(20)" json:"name_suffix"`

	Position   string     `gorm:"type:varchar(150)" json:"position"`
	EmployeeNo string     `gorm:"type:varchar(50);index" json:"employee_no"`
	Birthdate  *time.Time `gorm:"type:date" json:"birthdate"`

	// Devlet kimlik numaraları
	SSSGSISNumber    string `gorm:"type:varchar(50)" json:"sss_gsis_number"`
	TINNumber        string `gorm:"type:varchar(50)" json:"tin_number"`
	PhilHealthNumber string `gorm:"type:varchar(50)" json:"philhealth_number"`
	PagIBIGNumber    string `gorm:"type:varchar(50)" json:"pagibig_number"`

	EmergencyContactName    string `gorm:"type:varchar(150)" json:"emergency_contact_name"`
	EmergencyContactPhone   string `gorm:"type:varchar(50)" json:"emergency_contact_phone"`
	EmergencyContactAddress string `gorm:"type:text" json:"emergency_contact_address"`

	PhotoRef     *string `gorm:"type:varchar(500)" json:"photo_ref"`
	SignatureRef *string `gorm:"type:varchar(500)" json:"signature_ref"`
}

// Attr kaydın bir özniteliğini bağ anahtarına göre döndürür.
// Bilinmeyen anahtarlar için false döner; çözümleyici bu durumda bir
// sonraki kurala geçer.
func (r *Record) Attr(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	switch key {
	case "first_name":
		return r.FirstName, true
	case "middle_name":
		return r.MiddleName, true
	case "last_name":
		return r.LastName, true
	case "name_suffix":
		return r.NameSuffix, true
	case "position":
		return r.Position, true
	case "employee_no":
		return r.EmployeeNo, true
	case "birthdate":
		if r.Birthdate == nil {
			return "", true
		}
		return r.Birthdate.Format("2006-01-02"), true
	case "sss_gsis_number":
		return r.SSSGSISNumber, true
	case "tin_number":
		return r.TINNumber, true
	case "philhealth_number":
		return r.PhilHealthNumber, true
	case "pagibig_number":
		return r.PagIBIGNumber, true
	case "emergency_contact_name":
		return r.EmergencyContactName, true
	case "emergency_contact_phone":
		return r.EmergencyContactPhone, true
	case "emergency_contact_address":
		return r.EmergencyContactAddress, true
	}
	return "", false
}

// PhotoReference fotoğraf referansını, yoksa boş string döndürür.
func (r *Record) PhotoReference() string {
	if r == nil || r.PhotoRef == nil {
		return ""
	}
	return *r.PhotoRef
}

// SignatureReference imza referansını, yoksa boş string döndürür.
func (r *Record) SignatureReference() string {
	if r == nil || r.SignatureRef == nil {
		return ""
	}
	return *r.SignatureRef
}
