package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
)

// iconFunc bir glifi (x, y, w, h) kutusuna çizer; renk çağırandan
// önce ayarlanmıştır.
type iconFunc func(dc *gg.Context, x, y, w, h float64)

// icons sabit glif kümesidir. İsimler alan kaydında saklandığı için
// geriye dönük uyumludur; kaldırma yerine yeni isim eklenir.
var icons = map[string]iconFunc{
	"Star":     iconStar,
	"Heart":    iconHeart,
	"Circle":   iconCircle,
	"Square":   iconSquare,
	"Triangle": iconTriangle,
	"Diamond":  iconDiamond,
	"Shield":   iconShield,
	"Check":    iconCheck,
	"Cross":    iconCross,
	"Flag":     iconFlag,
	"Sun":      iconSun,
	"Ribbon":   iconRibbon,
}

// IconNames seçilebilir glif isimlerini alfabetik döndürür.
func IconNames() []string {
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownIcon ismin glif kümesinde olup olmadığını söyler.
func KnownIcon(name string) bool {
	_, ok := icons[name]
	return ok
}

// drawIcon ismi çözer ve glifi çizer; bilinmeyen isimde içi boş daire
// çizilir ki alan tuvalde görünür kalsın.
func drawIcon(dc *gg.Context, name string, x, y, w, h float64, col color.Color) {
	dc.SetColor(col)
	fn, ok := icons[name]
	if !ok {
		dc.SetLineWidth(math.Max(1, w/16))
		dc.DrawCircle(x+w/2, y+h/2, math.Min(w, h)/2)
		dc.Stroke()
		return
	}
	fn(dc, x, y, w, h)
}

func iconStar(dc *gg.Context, x, y, w, h float64) {
	cx, cy := x+w/2, y+h/2
	outer := math.Min(w, h) / 2
	inner := outer * 0.4
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		px, py := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.Fill()
}

func iconHeart(dc *gg.Context, x, y, w, h float64) {
	cx := x + w/2
	r := math.Min(w, h) / 4
	dc.DrawCircle(cx-r, y+h*0.3, r)
	dc.DrawCircle(cx+r, y+h*0.3, r)
	dc.Fill()
	dc.MoveTo(cx-2*r, y+h*0.38)
	dc.LineTo(cx+2*r, y+h*0.38)
	dc.LineTo(cx, y+h*0.9)
	dc.ClosePath()
	dc.Fill()
}

func iconCircle(dc *gg.Context, x, y, w, h float64) {
	dc.DrawCircle(x+w/2, y+h/2, math.Min(w, h)/2)
	dc.Fill()
}

func iconSquare(dc *gg.Context, x, y, w, h float64) {
	s := math.Min(w, h)
	dc.DrawRectangle(x+(w-s)/2, y+(h-s)/2, s, s)
	dc.Fill()
}

func iconTriangle(dc *gg.Context, x, y, w, h float64) {
	dc.MoveTo(x+w/2, y)
	dc.LineTo(x+w, y+h)
	dc.LineTo(x, y+h)
	dc.ClosePath()
	dc.Fill()
}

func iconDiamond(dc *gg.Context, x, y, w, h float64) {
	dc.MoveTo(x+w/2, y)
	dc.LineTo(x+w, y+h/2)
	dc.LineTo(x+w/2, y+h)
	dc.LineTo(x, y+h/2)
	dc.ClosePath()
	dc.Fill()
}

func iconShield(dc *gg.Context, x, y, w, h float64) {
	dc.MoveTo(x+w/2, y)
	dc.LineTo(x+w, y+h*0.25)
	dc.LineTo(x+w*0.85, y+h*0.7)
	dc.LineTo(x+w/2, y+h)
	dc.LineTo(x+w*0.15, y+h*0.7)
	dc.LineTo(x, y+h*0.25)
	dc.ClosePath()
	dc.Fill()
}

func iconCheck(dc *gg.Context, x, y, w, h float64) {
	dc.SetLineWidth(math.Max(1, math.Min(w, h)/6))
	dc.MoveTo(x+w*0.15, y+h*0.55)
	dc.LineTo(x+w*0.4, y+h*0.8)
	dc.LineTo(x+w*0.85, y+h*0.2)
	dc.Stroke()
}

func iconCross(dc *gg.Context, x, y, w, h float64) {
	dc.SetLineWidth(math.Max(1, math.Min(w, h)/6))
	dc.DrawLine(x+w*0.2, y+h*0.2, x+w*0.8, y+h*0.8)
	dc.Stroke()
	dc.DrawLine(x+w*0.8, y+h*0.2, x+w*0.2, y+h*0.8)
	dc.Stroke()
}

func iconFlag(dc *gg.Context, x, y, w, h float64) {
	dc.SetLineWidth(math.Max(1, w/16))
	dc.DrawLine(x+w*0.2, y, x+w*0.2, y+h)
	dc.Stroke()
	dc.MoveTo(x+w*0.2, y+h*0.1)
	dc.LineTo(x+w*0.9, y+h*0.25)
	dc.LineTo(x+w*0.2, y+h*0.45)
	dc.ClosePath()
	dc.Fill()
}

func iconSun(dc *gg.Context, x, y, w, h float64) {
	cx, cy := x+w/2, y+h/2
	r := math.Min(w, h) / 4
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
	dc.SetLineWidth(math.Max(1, r/4))
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		dc.DrawLine(cx+r*1.4*math.Cos(a), cy+r*1.4*math.Sin(a),
			cx+r*2*math.Cos(a), cy+r*2*math.Sin(a))
		dc.Stroke()
	}
}

func iconRibbon(dc *gg.Context, x, y, w, h float64) {
	cx := x + w/2
	r := math.Min(w, h) / 3
	dc.DrawCircle(cx, y+r, r)
	dc.Fill()
	dc.MoveTo(cx-r*0.7, y+r*1.6)
	dc.LineTo(cx-r*0.3, y+h)
	dc.LineTo(cx, y+h*0.75)
	dc.LineTo(cx+r*0.3, y+h)
	dc.LineTo(cx+r*0.7, y+r*1.6)
	dc.ClosePath()
	dc.Fill()
}
