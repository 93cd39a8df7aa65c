package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kimlik.link/models"
)

// mapAssets test varlıklarını bellekten sunar.
type mapAssets map[string][]byte

func (m mapAssets) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	data, ok := m[ref]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func newTestRenderer(t *testing.T, assets AssetSource) *Renderer {
	t.Helper()
	r, err := New(assets, 1)
	require.NoError(t, err)
	return r
}

func testTemplate(fields ...models.Field) *models.Template {
	return &models.Template{
		Name:        "Test Kartı",
		WidthMM:     54,
		HeightMM:    86,
		Orientation: models.OrientationPortrait,

		BackgroundColorFront: "#ff0000",
		BackgroundColorBack:  "#0000ff",
		Fields:               fields,
	}
}

func pngBytes(t *testing.T, c color.Color, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func at(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestNewRejectsBadScale(t *testing.T) {
	_, err := New(nil, 0)
	assert.ErrorIs(t, err, ErrBadScale)
}

func TestCanvasPixelsAppliesOrientation(t *testing.T) {
	r := newTestRenderer(t, nil)
	tpl := testTemplate()

	w, h := r.CanvasPixels(tpl)
	assert.Equal(t, 204, w) // 54 mm × 3.78
	assert.Equal(t, 325, h) // 86 mm × 3.78

	tpl.Orientation = models.OrientationLandscape
	w, h = r.CanvasPixels(tpl)
	assert.Equal(t, 325, w)
	assert.Equal(t, 204, h)
}

func TestRenderSideNilTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)

	_, err := r.RenderSide(context.Background(), Job{})
	assert.ErrorIs(t, err, ErrNilTemplate)
}

func TestRenderSideCancelledContext(t *testing.T) {
	r := newTestRenderer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderSide(ctx, Job{Template: testTemplate()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderSideBackgroundColorPerSide(t *testing.T) {
	r := newTestRenderer(t, nil)
	tpl := testTemplate()

	front, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront})
	require.NoError(t, err)
	cr, cg, cb := at(front, 10, 10)
	assert.Equal(t, []uint32{255, 0, 0}, []uint32{cr, cg, cb})

	back, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideBack})
	require.NoError(t, err)
	cr, cg, cb = at(back, 10, 10)
	assert.Equal(t, []uint32{0, 0, 255}, []uint32{cr, cg, cb})
}

func TestRenderSideDrawsOnlyMatchingSide(t *testing.T) {
	box := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeBox,
		X: 10, Y: 10, Width: 40, Height: 40,
		Opacity: 1, FillColor: "#00ff00",
	}
	backBox := box
	backBox.Side = models.SideBack
	backBox.FillColor = "#ffff00"

	r := newTestRenderer(t, nil)
	tpl := testTemplate(box, backBox)

	front, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront})
	require.NoError(t, err)
	cr, cg, cb := at(front, 30, 30)
	assert.Equal(t, []uint32{0, 255, 0}, []uint32{cr, cg, cb}, "ön yüzde yalnızca ön kutu olmalı")

	back, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideBack})
	require.NoError(t, err)
	cr, cg, cb = at(back, 30, 30)
	assert.Equal(t, []uint32{255, 255, 0}, []uint32{cr, cg, cb})
}

func TestRenderSideZeroOpacityFieldIsInvisible(t *testing.T) {
	box := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeBox,
		X: 10, Y: 10, Width: 40, Height: 40,
		Opacity: 0, FillColor: "#000000",
	}

	r := newTestRenderer(t, nil)
	img, err := r.RenderSide(context.Background(), Job{Template: testTemplate(box), Side: models.SideFront})
	require.NoError(t, err)

	cr, cg, cb := at(img, 30, 30)
	assert.Equal(t, []uint32{255, 0, 0}, []uint32{cr, cg, cb}, "opaklık 0 alan arka planı örtmemeli")
}

func TestRenderSideOutOfRangeOpacityFallsBackToOpaque(t *testing.T) {
	box := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeBox,
		X: 10, Y: 10, Width: 40, Height: 40,
		Opacity: 1.5, FillColor: "#00ff00",
	}

	r := newTestRenderer(t, nil)
	img, err := r.RenderSide(context.Background(), Job{Template: testTemplate(box), Side: models.SideFront})
	require.NoError(t, err)

	cr, cg, cb := at(img, 30, 30)
	assert.Equal(t, []uint32{0, 255, 0}, []uint32{cr, cg, cb})
}

func TestRenderSideZOrderFollowsSortOrder(t *testing.T) {
	under := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeBox, SortOrder: 2,
		X: 10, Y: 10, Width: 40, Height: 40, Opacity: 1, FillColor: "#00ff00",
	}
	over := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeBox, SortOrder: 5,
		X: 10, Y: 10, Width: 40, Height: 40, Opacity: 1, FillColor: "#0000ff",
	}

	r := newTestRenderer(t, nil)
	// Dizi sırası ters verilir; çizim SortOrder'a göre olmalı.
	tpl := testTemplate(over, under)

	img, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront})
	require.NoError(t, err)
	cr, cg, cb := at(img, 30, 30)
	assert.Equal(t, []uint32{0, 0, 255}, []uint32{cr, cg, cb}, "yüksek SortOrder üstte çizilmeli")
}

func TestRenderSideBackgroundImageCoversCanvas(t *testing.T) {
	assets := mapAssets{"bg.png": pngBytes(t, color.NRGBA{R: 10, G: 200, B: 30, A: 255}, 20, 20)}
	r := newTestRenderer(t, assets)

	ref := "bg.png"
	tpl := testTemplate()
	tpl.BackgroundFrontRef = &ref

	img, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront})
	require.NoError(t, err)

	cr, cg, cb := at(img, 5, 5)
	assert.Equal(t, []uint32{10, 200, 30}, []uint32{cr, cg, cb})
	cr, cg, cb = at(img, 200, 320)
	assert.Equal(t, []uint32{10, 200, 30}, []uint32{cr, cg, cb}, "kaplama tuvalin tamamını doldurmalı")
}

func TestRenderSideMissingAssetDrawsPlaceholder(t *testing.T) {
	photo := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeImage, FieldKey: "profile_image",
		X: 10, Y: 10, Width: 60, Height: 60, Opacity: 1,
	}
	r := newTestRenderer(t, mapAssets{})
	tpl := testTemplate(photo)
	missing := "yok.png"
	rec := &models.Record{PhotoRef: &missing}

	img, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront, Record: rec})
	require.NoError(t, err)

	cr, cg, cb := at(img, 40, 40)
	assert.Equal(t, cr, cg)
	assert.Equal(t, cg, cb)
	assert.NotEqual(t, uint32(255), cr, "eksik varlık gri yer tutucu bırakmalı, arka plan rengini değil")
}

func TestRenderSideQRCodeDrawsDarkPixels(t *testing.T) {
	qr := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeQRCode, FieldKey: "employee_no",
		X: 20, Y: 20, Width: 100, Height: 100, Opacity: 1,
	}
	r := newTestRenderer(t, nil)
	tpl := testTemplate(qr)
	rec := &models.Record{EmployeeNo: "EMP-042"}

	img, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront, Record: rec})
	require.NoError(t, err)

	dark := 0
	for y := 20; y < 120; y++ {
		for x := 20; x < 120; x++ {
			if cr, cg, cb := at(img, x, y); cr < 50 && cg < 50 && cb < 50 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 100, "QR alanında koyu modüller olmalı")
}

func TestRenderSideTextUsesResolvedBinding(t *testing.T) {
	txt := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeText, FieldKey: "first_name",
		X: 20, Y: 150, Opacity: 1,
		FontSize: 24, FontWeight: "bold", TextAlign: "left", Color: "#000000",
	}
	r := newTestRenderer(t, nil)
	tpl := testTemplate(txt)
	rec := &models.Record{FirstName: "Juan"}

	img, err := r.RenderSide(context.Background(), Job{Template: tpl, Side: models.SideFront, Record: rec})
	require.NoError(t, err)

	dark := 0
	for y := 150; y < 190; y++ {
		for x := 20; x < 120; x++ {
			if cr, _, _ := at(img, x, y); cr < 128 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 10, "çözülen metin tuvale çizilmeli")
}

func TestMeasureText(t *testing.T) {
	r := newTestRenderer(t, nil)

	w, h := r.MeasureText("Juan Dela Cruz", 14, "normal")
	assert.Greater(t, w, 0.0)
	assert.InDelta(t, 16.8, h, 0.01)

	short, _ := r.MeasureText("J", 14, "normal")
	assert.Less(t, short, w)

	w0, h0 := r.MeasureText("", 14, "normal")
	assert.Zero(t, w0)
	assert.Zero(t, h0)
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b float64
	}{
		{"#ff0000", 1, 0, 0},
		{"#00ff00", 0, 1, 0},
		{"#fff", 1, 1, 1},
		{" #000000 ", 0, 0, 0},
		{"bozuk", 0.5, 0.5, 0.5}, // varsayılana düşer
		{"", 0.5, 0.5, 0.5},
	}
	for _, c := range cases {
		r, g, b := parseHex(c.in, 0.5, 0.5, 0.5)
		assert.Equal(t, c.r, r, c.in)
		assert.Equal(t, c.g, g, c.in)
		assert.Equal(t, c.b, b, c.in)
	}
}

func TestIconRegistry(t *testing.T) {
	assert.True(t, KnownIcon("Star"))
	assert.False(t, KnownIcon("Yıldız"))
	assert.Contains(t, IconNames(), "Shield")
}

func TestRenderSideIconFallbackForUnknownName(t *testing.T) {
	icon := models.Field{
		Side: models.SideFront, FieldType: models.FieldTypeIcon, IconName: "Bilinmeyen",
		X: 20, Y: 20, Width: 40, Height: 40, Opacity: 1, Color: "#000000",
	}
	r := newTestRenderer(t, nil)

	img, err := r.RenderSide(context.Background(), Job{Template: testTemplate(icon), Side: models.SideFront})
	require.NoError(t, err)

	// Bilinmeyen ikon boş bırakılmaz; çember konturu çizilir.
	dark := 0
	for y := 20; y < 60; y++ {
		for x := 20; x < 60; x++ {
			if cr, cg, cb := at(img, x, y); cr < 100 && cg < 100 && cb < 100 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 10)
}
