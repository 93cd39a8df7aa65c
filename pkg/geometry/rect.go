package geometry

// Point editör piksel uzayında bir noktadır.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect sol-üst köşe + boyut ile tanımlı, eksenlere hizalı dikdörtgendir.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edges dikdörtgenin kenar ve merkez koordinatlarıdır.
type Edges struct {
	Left, Right, Top, Bottom float64
	CenterX, CenterY         float64
}

// Edges kenar/merkez değerlerini hesaplar.
func (r Rect) Edges() Edges {
	return Edges{
		Left:    r.X,
		Right:   r.X + r.Width,
		Top:     r.Y,
		Bottom:  r.Y + r.Height,
		CenterX: r.X + r.Width/2,
		CenterY: r.Y + r.Height/2,
	}
}

// Intersects iki dikdörtgenin kesişip kesişmediğini söyler
// (marquee seçimi için kutu örtüşme testi).
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width &&
		r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height &&
		r.Y+r.Height > o.Y
}

// Union iki dikdörtgeni kapsayan en küçük dikdörtgeni döndürür.
func (r Rect) Union(o Rect) Rect {
	left := min(r.X, o.X)
	top := min(r.Y, o.Y)
	right := max(r.X+r.Width, o.X+o.Width)
	bottom := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// FromCorners iki köşe noktasından normalize dikdörtgen kurar
// (marquee sürüklemesi herhangi bir yöne olabilir).
func FromCorners(a, b Point) Rect {
	left := min(a.X, b.X)
	top := min(a.Y, b.Y)
	return Rect{X: left, Y: top, Width: max(a.X, b.X) - left, Height: max(a.Y, b.Y) - top}
}
