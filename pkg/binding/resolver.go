// Package binding alanların sembolik bağ anahtarlarını kayıt/kurum
// bağlamından somut değerlere çözer.
package binding

import (
	"strings"

	"kimlik.link/models"
)

// Result çözümleme sonucudur. Resolved false ise değer, anahtarın
// kendisidir (statik metin olarak çizilir); özellik paneli bunu farklı
// stillemek isterse buradan ayırt edebilir.
type Result struct {
	Value    string
	Resolved bool
}

// Resolve anahtarı sırasıyla şu kurallarla çözer (ilk eşleşme kazanır):
//  1. Sabit takma adlar (profile_image, signature, school_name, division)
//  2. Birleşik isim anahtarları (full_name_*)
//  3. organization.<alan> (şablon ezmesi canlı kurumdan önceliklidir)
//  4. Kayıt özniteliği (birebir anahtar)
//  5. Anahtarın kendisi (statik metin)
//
// Büyük harfe çevirme burada YAPILMAZ; takma ad ve şablonlama doğal
// büyük/küçük harf üzerinde çalışsın diye çağıran taraf çözüm SONRASI
// uygular.
func Resolve(key string, rec *models.Record, org *models.Organization, override *models.OrganizationOverride) string {
	return ResolveDetailed(key, rec, org, override).Value
}

// ResolveDetailed Resolve ile aynı kuralları uygular, ek olarak
// çözümün gerçekleşip gerçekleşmediğini bildirir.
func ResolveDetailed(key string, rec *models.Record, org *models.Organization, override *models.OrganizationOverride) Result {
	if key == "" {
		return Result{Value: "", Resolved: false}
	}

	// 1. Sabit takma adlar
	switch key {
	case "profile_image":
		return Result{Value: rec.PhotoReference(), Resolved: true}
	case "signature":
		return Result{Value: rec.SignatureReference(), Resolved: true}
	case "school_name":
		return Result{Value: orgField(org, override, "name"), Resolved: true}
	case "division":
		if org != nil {
			return Result{Value: org.DivisionName, Resolved: true}
		}
		return Result{Value: "", Resolved: true}
	}

	// 2. Birleşik isim anahtarları
	if v, ok := compositeName(key, rec); ok {
		return Result{Value: v, Resolved: true}
	}

	// 3. organization.<alan>
	if strings.HasPrefix(key, "organization.") {
		field := strings.TrimPrefix(key, "organization.")
		return Result{Value: orgField(org, override, field), Resolved: true}
	}

	// 4. Kayıt özniteliği
	if v, ok := rec.Attr(key); ok {
		return Result{Value: v, Resolved: true}
	}

	// 5. Statik metin: anahtar olduğu gibi döner.
	return Result{Value: key, Resolved: false}
}

// orgField organization özniteliğini, varsa şablon ezmesini önde
// tutarak okur. Ezme yalnızca ad/adres/iletişim alanlarını taşır.
func orgField(org *models.Organization, override *models.OrganizationOverride, field string) string {
	if override != nil {
		switch field {
		case "name":
			if override.Name != nil {
				return *override.Name
			}
		case "address":
			if override.Address != nil {
				return *override.Address
			}
		case "contact":
			if override.Contact != nil {
				return *override.Contact
			}
		}
	}
	if v, ok := org.Attr(field); ok {
		return v
	}
	return ""
}

// compositeName deterministik isim şablonlarını uygular. Orta ad boşsa
// ilgili parça tamamen atlanır; artık boşluk ya da noktalama kalmaz.
func compositeName(key string, rec *models.Record) (string, bool) {
	if rec == nil {
		switch key {
		case "full_name_western", "full_name_eastern", "full_name_initial", "full_name_filipino":
			return "", true
		}
		return "", false
	}

	first := strings.TrimSpace(rec.FirstName)
	middle := strings.TrimSpace(rec.MiddleName)
	last := strings.TrimSpace(rec.LastName)

	switch key {
	case "full_name_western":
		return joinParts(first, middle, last), true
	case "full_name_eastern":
		return commaJoin(last, joinParts(first, middle)), true
	case "full_name_initial":
		return joinParts(first, initial(middle), last), true
	case "full_name_filipino":
		return commaJoin(last, joinParts(first, initial(middle))), true
	}
	return "", false
}

func initial(middle string) string {
	if middle == "" {
		return ""
	}
	r := []rune(middle)
	return string(r[0]) + "."
}

// joinParts boş parçaları atlayarak tek boşlukla birleştirir.
func joinParts(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// commaJoin "Soyad, Kalan" biçimini kurar; taraflardan biri boşsa
// virgül eklenmez.
func commaJoin(left, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return left + ", " + right
	}
}
