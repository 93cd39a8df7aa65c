// Package render bir şablon yüzünü kayıt/kurum bağlamıyla raster
// görüntüye çizer. Alan koordinatları editör pikseli cinsindendir;
// raster çözünürlüğü scale çarpanıyla belirlenir.
package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/binding"
	"kimlik.link/pkg/units"
)

var (
	ErrNilTemplate = errors.New("şablon boş")
	ErrBadScale    = errors.New("ölçek pozitif olmalı")
)

// AssetSource render sırasında referansla varlık (fotoğraf, imza,
// arka plan görseli) açar. Açılamayan varlık render'ı durdurmaz;
// yerine yer tutucu çizilir.
type AssetSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Job tek bir yüz render isteğidir.
type Job struct {
	Template *models.Template
	Side     models.Side
	Record   *models.Record
	Org      *models.Organization
}

// Renderer yüz çizicidir. Eşzamanlı kullanım güvenlidir: yazı yüzleri
// çağrı başına kurulur, paylaşılan tek durum salt okunur font verisidir.
type Renderer struct {
	assets  AssetSource
	scale   float64
	regular *truetype.Font
	bold    *truetype.Font
}

// New bir Renderer kurar. scale, editör pikseli başına raster piksel
// çarpanıdır (1 = ekran çözünürlüğü, 2+ = baskı kalitesi).
func New(assets AssetSource, scale float64) (*Renderer, error) {
	if scale <= 0 {
		return nil, ErrBadScale
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &Renderer{assets: assets, scale: scale, regular: regular, bold: bold}, nil
}

// Scale aktif raster çarpanını döndürür.
func (r *Renderer) Scale() float64 { return r.scale }

// CanvasPixels yönelim uygulanmış tuvalin raster boyutunu döndürür.
func (r *Renderer) CanvasPixels(t *models.Template) (w, h int) {
	wmm, hmm := t.CanvasMM()
	return int(math.Round(wmm * units.PxPerMM * r.scale)),
		int(math.Round(hmm * units.PxPerMM * r.scale))
}

// RenderSide şablonun istenen yüzünü çizer. Alanlar SortOrder sırasıyla
// (alttan üste) işlenir; diğer yüzün alanları atlanır. Veri bağları
// kayıt/kurum bağlamından çözülür.
func (r *Renderer) RenderSide(ctx context.Context, job Job) (image.Image, error) {
	t := job.Template
	if t == nil {
		return nil, ErrNilTemplate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := r.CanvasPixels(t)
	dc := gg.NewContext(w, h)

	// Arka plan: önce düz renk, varsa görsel üstüne kaplanır.
	cr, cg, cb := parseHex(t.BackgroundColor(job.Side), 1, 1, 1)
	dc.SetRGB(cr, cg, cb)
	dc.Clear()

	if ref := t.BackgroundRef(job.Side); ref != nil && *ref != "" {
		if img := r.loadAsset(ctx, *ref); img != nil {
			drawCover(dc, img, 0, 0, float64(w), float64(h))
		}
	}

	fields := append([]models.Field(nil), t.Fields...)
	sort.SliceStable(fields, func(a, b int) bool { return fields[a].SortOrder < fields[b].SortOrder })

	for i := range fields {
		f := &fields[i]
		if !strings.EqualFold(string(f.Side), string(job.Side)) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.drawField(ctx, dc, f, job)
	}
	return dc.Image(), nil
}

// drawField tek bir alanı çizer. Dönüş yoktur: varlık/bağ sorunları
// yer tutucuyla yumuşatılır, yüzün kalanı çizilmeye devam eder.
func (r *Renderer) drawField(ctx context.Context, dc *gg.Context, f *models.Field, job Job) {
	sc := r.scale
	x, y := f.X*sc, f.Y*sc
	w, h := f.Width*sc, f.Height*sc

	// 0 geçerli bir opaklıktır ve alanı görünmez kılar; yalnızca aralık
	// dışı değerler tam opak kabul edilir.
	opacity := f.Opacity
	if opacity < 0 || opacity > 1 {
		opacity = 1
	}
	if opacity == 0 {
		return
	}

	variant := f.Variant()
	if variant == nil {
		return
	}

	// Metin için otomatik boyut: çizimden önce ölçülür ki döndürme
	// merkezi doğru hesaplansın.
	if t, ok := variant.(models.TextAttrs); ok && (w == 0 || h == 0) {
		mw, mh := r.MeasureText(r.resolveText(t, job), t.FontSize, t.FontWeight)
		if w == 0 {
			w = mw * sc
		}
		if h == 0 {
			h = mh * sc
		}
	}

	dc.Push()
	if f.Rotation != 0 {
		dc.RotateAbout(gg.Radians(f.Rotation), x+w/2, y+h/2)
	}

	switch v := variant.(type) {
	case models.TextAttrs:
		r.drawText(dc, v, job, x, y, w, h, opacity)
	case models.ImageAttrs:
		r.drawBoundImage(ctx, dc, v.Key, job, x, y, w, h, opacity, true)
	case models.SignatureAttrs:
		r.drawBoundImage(ctx, dc, v.Key, job, x, y, w, h, opacity, false)
	case models.QRCodeAttrs:
		r.drawQRCode(dc, v.Key, job, x, y, w, h, opacity)
	case models.IconAttrs:
		drawIcon(dc, v.Name, x, y, w, h, hexWithAlpha(f.Color, opacity))
	case models.BoxAttrs:
		drawBox(dc, v, sc, x, y, w, h, opacity)
	case models.LineAttrs:
		setColor(dc, v.FillColor, opacity, 0, 0, 0)
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}
	dc.Pop()
}

func (r *Renderer) resolveText(t models.TextAttrs, job Job) string {
	var override *models.OrganizationOverride
	if job.Template != nil {
		override = job.Template.Override
	}
	value := binding.Resolve(t.Key, job.Record, job.Org, override)
	if t.Uppercase {
		value = strings.ToUpper(value)
	}
	return value
}

func (r *Renderer) drawText(dc *gg.Context, t models.TextAttrs, job Job, x, y, w, h, opacity float64) {
	value := r.resolveText(t, job)
	if value == "" {
		return
	}

	face := truetype.NewFace(r.font(t.FontWeight), &truetype.Options{
		Size: t.FontSize * r.scale,
		DPI:  72,
	})
	dc.SetFontFace(face)
	setColor(dc, t.Color, opacity, 0, 0, 0)

	align := gg.AlignLeft
	ax := 0.0
	switch t.TextAlign {
	case "center":
		align, ax = gg.AlignCenter, 0.5
	case "right":
		align, ax = gg.AlignRight, 1.0
	}

	if w > 0 {
		dc.DrawStringWrapped(value, x+w*ax, y, ax, 0, w, 1.2, align)
	} else {
		dc.DrawStringAnchored(value, x, y, 0, 0.8)
	}
}

// drawBoundImage bağ anahtarını varlık referansına çözer ve kutuya
// çizer. cover true ise kutu tamamen doldurulur (taşan kırpılır),
// false ise görsel kutuya sığdırılır (imza için).
func (r *Renderer) drawBoundImage(ctx context.Context, dc *gg.Context, key string, job Job, x, y, w, h, opacity float64, cover bool) {
	var override *models.OrganizationOverride
	if job.Template != nil {
		override = job.Template.Override
	}
	res := binding.ResolveDetailed(key, job.Record, job.Org, override)

	var img image.Image
	if res.Value != "" {
		img = r.loadAsset(ctx, res.Value)
	}
	if img == nil {
		drawPlaceholder(dc, x, y, w, h)
		return
	}
	img = fade(img, opacity)
	if cover {
		drawCover(dc, img, x, y, w, h)
	} else {
		drawContain(dc, img, x, y, w, h)
	}
}

func (r *Renderer) drawQRCode(dc *gg.Context, key string, job Job, x, y, w, h, opacity float64) {
	var override *models.OrganizationOverride
	if job.Template != nil {
		override = job.Template.Override
	}
	value := binding.Resolve(key, job.Record, job.Org, override)
	if value == "" {
		drawPlaceholder(dc, x, y, w, h)
		return
	}

	qr, err := qrcode.New(value, qrcode.Medium)
	if err != nil {
		configslog.Log.Warn("Failed to encode QR code", zap.Error(err))
		drawPlaceholder(dc, x, y, w, h)
		return
	}
	qr.DisableBorder = true

	size := int(math.Round(math.Min(w, h)))
	if size < 1 {
		return
	}
	img := fade(qr.Image(size), opacity)
	dc.DrawImage(img, int(math.Round(x+(w-float64(size))/2)), int(math.Round(y+(h-float64(size))/2)))
}

// loadAsset referansı açıp görüntüye çözer; başarısızlıkta nil döner
// ve uyarı loglanır.
func (r *Renderer) loadAsset(ctx context.Context, ref string) image.Image {
	if r.assets == nil {
		return nil
	}
	rc, err := r.assets.Open(ctx, ref)
	if err != nil {
		configslog.Log.Warn("Failed to open render asset", zap.String("ref", ref), zap.Error(err))
		return nil
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		configslog.Log.Warn("Failed to decode render asset", zap.String("ref", ref), zap.Error(err))
		return nil
	}
	return img
}

// MeasureText tek satır metnin editör pikseli cinsinden boyutunu ölçer
// (otomatik boyutlu metin alanları için).
func (r *Renderer) MeasureText(value string, fontSize float64, weight string) (w, h float64) {
	if value == "" || fontSize <= 0 {
		return 0, 0
	}
	face := truetype.NewFace(r.font(weight), &truetype.Options{Size: fontSize, DPI: 72})
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	tw, _ := dc.MeasureString(value)
	return tw, fontSize * 1.2
}

func (r *Renderer) font(weight string) *truetype.Font {
	if strings.EqualFold(weight, "bold") {
		return r.bold
	}
	return r.regular
}

func drawBox(dc *gg.Context, v models.BoxAttrs, sc, x, y, w, h, opacity float64) {
	radius := v.BorderRadius * sc
	if radius > 0 {
		dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		dc.DrawRectangle(x, y, w, h)
	}
	setColor(dc, v.FillColor, opacity, 1, 1, 1)
	dc.FillPreserve()
	if v.BorderWidth > 0 && v.BorderColor != "" {
		setColor(dc, v.BorderColor, opacity, 0, 0, 0)
		dc.SetLineWidth(v.BorderWidth * sc)
		dc.Stroke()
	} else {
		dc.ClearPath()
	}
}

// drawCover görseli kutuyu tamamen dolduracak şekilde ölçekleyip
// ortalar; taşan kısım kırpılır.
func drawCover(dc *gg.Context, img image.Image, x, y, w, h float64) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	s := math.Max(w/iw, h/ih)
	dc.Push()
	dc.DrawRectangle(x, y, w, h)
	dc.Clip()
	dc.Translate(x+(w-iw*s)/2, y+(h-ih*s)/2)
	dc.Scale(s, s)
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

// drawContain görseli oranını koruyarak kutuya sığdırıp ortalar.
func drawContain(dc *gg.Context, img image.Image, x, y, w, h float64) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	s := math.Min(w/iw, h/ih)
	dc.Push()
	dc.Translate(x+(w-iw*s)/2, y+(h-ih*s)/2)
	dc.Scale(s, s)
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

// drawPlaceholder eksik varlık için çapraz çizgili gri kutu çizer.
func drawPlaceholder(dc *gg.Context, x, y, w, h float64) {
	dc.SetRGB(0.92, 0.92, 0.92)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	dc.SetRGB(0.65, 0.65, 0.65)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.DrawLine(x, y, x+w, y+h)
	dc.Stroke()
	dc.DrawLine(x+w, y, x, y+h)
	dc.Stroke()
}

// fade görselin alfa kanalını opaklıkla çarpar.
func fade(img image.Image, opacity float64) image.Image {
	if opacity >= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
	draw.DrawMask(out, b, img, b.Min, mask, image.Point{}, draw.Over)
	return out
}

func setColor(dc *gg.Context, hex string, opacity, dr, dg, db float64) {
	r, g, b := parseHex(hex, dr, dg, db)
	dc.SetRGBA(r, g, b, opacity)
}

func hexWithAlpha(hex string, opacity float64) color.Color {
	r, g, b := parseHex(hex, 0, 0, 0)
	return color.NRGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: uint8(math.Round(opacity * 255)),
	}
}

// parseHex "#rgb" ve "#rrggbb" biçimlerini çözer; geçersiz girdide
// verilen varsayılan bileşenler döner.
func parseHex(s string, dr, dg, db float64) (r, g, b float64) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return dr, dg, db
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return dr, dg, db
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}
