package geometry

import "math"

// SnapThreshold hizalama ilişkisinin tetiklendiği piksel eşiğidir.
// Editör pikseli cinsindendir, zoom'dan bağımsızdır.
const SnapThreshold = 5.0

// Axis bir kılavuz çizgisinin eksenidir.
type Axis string

const (
	AxisX Axis = "x" // dikey kılavuz çizgisi (x konumunda)
	AxisY Axis = "y" // yatay kılavuz çizgisi (y konumunda)
)

// Guide aktif bir hizalama kılavuzudur; görsel katman bunu çizer.
type Guide struct {
	Axis     Axis    `json:"axis"`
	Position float64 `json:"position"`
}

// SnapResult yapışma sonucu: ayarlanmış sol-üst konum ve eksen başına
// en fazla bir kılavuz.
type SnapResult struct {
	X      float64
	Y      float64
	Guides []Guide
}

// Snap sürüklenen dikdörtgenin önerilen konumunu kardeş alanlara ve
// tuval merkezine göre yapıştırır.
//
// Her kardeş için ve her eksende bağımsız olarak beş ilişki denenir:
// sol-sol, sol-sağ, sağ-sol, sağ-sağ ve merkez-merkez (dikeyde
// üst/alt/merkez karşılıkları). Birden fazla ilişki tetiklenirse son
// değerlendirilen kazanır; tuval merkezi en son denendiği için kardeş
// eşleşmelerini ezer. Bu bilinçli olarak basit bir öncelik kuralıdır,
// "en yakın kazanır" değildir.
//
// siblings, aynı anda taşınan seçimin üyelerini içermemelidir; çağıran
// taraf onları dışarıda bırakır.
func Snap(proposed Rect, siblings []Rect, canvas Rect) SnapResult {
	res := SnapResult{X: proposed.X, Y: proposed.Y}
	p := proposed.Edges()

	snappedX, snappedY := false, false
	var guideX, guideY Guide

	tryX := func(delta, x, guidePos float64) {
		if math.Abs(delta) < SnapThreshold {
			res.X = x
			guideX = Guide{Axis: AxisX, Position: guidePos}
			snappedX = true
		}
	}
	tryY := func(delta, y, guidePos float64) {
		if math.Abs(delta) < SnapThreshold {
			res.Y = y
			guideY = Guide{Axis: AxisY, Position: guidePos}
			snappedY = true
		}
	}

	for _, sib := range siblings {
		s := sib.Edges()

		tryX(p.Left-s.Left, s.Left, s.Left)
		tryX(p.Left-s.Right, s.Right, s.Right)
		tryX(p.Right-s.Left, s.Left-proposed.Width, s.Left)
		tryX(p.Right-s.Right, s.Right-proposed.Width, s.Right)
		tryX(p.CenterX-s.CenterX, s.CenterX-proposed.Width/2, s.CenterX)

		tryY(p.Top-s.Top, s.Top, s.Top)
		tryY(p.Top-s.Bottom, s.Bottom, s.Bottom)
		tryY(p.Bottom-s.Top, s.Top-proposed.Height, s.Top)
		tryY(p.Bottom-s.Bottom, s.Bottom-proposed.Height, s.Bottom)
		tryY(p.CenterY-s.CenterY, s.CenterY-proposed.Height/2, s.CenterY)
	}

	// Tuvalin kendi merkezi en son denenir.
	c := canvas.Edges()
	tryX(p.CenterX-c.CenterX, c.CenterX-proposed.Width/2, c.CenterX)
	tryY(p.CenterY-c.CenterY, c.CenterY-proposed.Height/2, c.CenterY)

	if snappedX {
		res.Guides = append(res.Guides, guideX)
	}
	if snappedY {
		res.Guides = append(res.Guides, guideY)
	}
	return res
}
