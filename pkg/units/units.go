package units

import "github.com/shopspring/decimal"

// Unit şablon boyutlarının düzenleme birimidir. Saklama daima mm'dir;
// diğer birimler yalnızca editör girdi/çıktısında kullanılır.
type Unit string

const (
	MM    Unit = "mm"
	Inch  Unit = "in"
	Pixel Unit = "px"
)

const (
	// MMPerInch inç-milimetre dönüşüm sabiti.
	MMPerInch = 25.4
	// PxPerMM editör piksel dönüşüm sabiti (96 DPI yaklaşık değeri).
	PxPerMM = 3.78
)

// Known birimin tanımlı olup olmadığını söyler.
func Known(u Unit) bool {
	return u == MM || u == Inch || u == Pixel
}

// ToMM verilen birimden milimetreye çevirir.
// Hassasiyet: mm/in için 3 ondalık. Bilinmeyen birim mm sayılır.
func ToMM(value float64, from Unit) float64 {
	d := decimal.NewFromFloat(value)
	switch from {
	case Inch:
		d = d.Mul(decimal.NewFromFloat(MMPerInch))
	case Pixel:
		d = d.Div(decimal.NewFromFloat(PxPerMM))
	}
	return round(d, 3)
}

// FromMM milimetreden verilen birime çevirir.
// Hassasiyet: mm/in için 3, px için 1 ondalık.
func FromMM(mm float64, to Unit) float64 {
	d := decimal.NewFromFloat(mm)
	switch to {
	case Inch:
		return round(d.Div(decimal.NewFromFloat(MMPerInch)), 3)
	case Pixel:
		return round(d.Mul(decimal.NewFromFloat(PxPerMM)), 1)
	}
	return round(d, 3)
}

func round(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}
