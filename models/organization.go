package models

// Organization kurumun marka/kimlik bilgileridir. organization.* bağları
// buradan çözülür; şablon üzerinde bir Override varsa ad/adres/iletişim
// alanlarında o öncelik kazanır.
type Organization struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Contact string `gorm:"type:varchar(255)" json:"contact"`
	Website string `gorm:"type:varchar(255)" json:"website"`

	DepartmentName  string `gorm:"type:varchar(255)" json:"department_name"`
	DivisionName    string `gorm:"type:varchar(255)" json:"division_name"`
	DivisionAddress string `gorm:"type:text" json:"division_address"`
	DivisionCode    string `gorm:"type:varchar(50)" json:"division_code"`
	DivisionWebsite string `gorm:"type:varchar(255)" json:"division_website"`
	StationCode     string `gorm:"type:varchar(50)" json:"station_code"`

	SuperintendentName  string `gorm:"type:varchar(150)" json:"superintendent_name"`
	SuperintendentTitle string `gorm:"type:varchar(150)" json:"superintendent_title"`

	LogoRef      *string `gorm:"type:varchar(500)" json:"logo_ref"`
	SignatureRef *string `gorm:"type:varchar(500)" json:"signature_ref"`

	PrimaryColor   string `gorm:"type:varchar(7)" json:"primary_color"`
	SecondaryColor string `gorm:"type:varchar(7)" json:"secondary_color"`
}

// Attr kurumun bir özniteliğini organization.<alan> bağ anahtarındaki
// alan adına göre döndürür.
func (o *Organization) Attr(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	switch key {
	case "name":
		return o.Name, true
	case "address":
		return o.Address, true
	case "contact":
		return o.Contact, true
	case "website":
		return o.Website, true
	case "department_name":
		return o.DepartmentName, true
	case "division_name":
		return o.DivisionName, true
	case "division_address":
		return o.DivisionAddress, true
	case "division_code":
		return o.DivisionCode, true
	case "division_website":
		return o.DivisionWebsite, true
	case "station_code":
		return o.StationCode, true
	case "superintendent_name":
		return o.SuperintendentName, true
	case "superintendent_title":
		return o.SuperintendentTitle, true
	case "primary_color":
		return o.PrimaryColor, true
	case "secondary_color":
		return o.SecondaryColor, true
	case "logo":
		if o.LogoRef == nil {
			return "", true
		}
		return *o.LogoRef, true
	case "signature":
		if o.SignatureRef == nil {
			return "", true
		}
		return *o.SignatureRef, true
	}
	return "", false
}
