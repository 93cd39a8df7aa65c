// Package export render edilen kart yüzlerini PNG ve PDF çıktısına
// dönüştürür. Tek kart ve toplu üretim aynı boru hattını paylaşır.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kimlik.link/configs/configslog"
	"kimlik.link/models"
	"kimlik.link/pkg/render"
)

var ErrBatchEmpty = errors.New("toplu üretimde işlenebilir kayıt yok")

// Pipeline çıktı üreticisidir; Renderer gibi eşzamanlı kullanımı güvenlidir.
type Pipeline struct {
	renderer *render.Renderer
}

// New bir Pipeline kurar.
func New(renderer *render.Renderer) *Pipeline {
	return &Pipeline{renderer: renderer}
}

// RasterizeSides ön ve arka yüzü eşzamanlı çizer. Yüzler bağımsızdır;
// ilk hata ikisini de iptal eder.
func (p *Pipeline) RasterizeSides(ctx context.Context, tpl *models.Template, rec *models.Record, org *models.Organization) (front, back image.Image, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		front, err = p.renderer.RenderSide(ctx, render.Job{Template: tpl, Side: models.SideFront, Record: rec, Org: org})
		return err
	})
	g.Go(func() error {
		var err error
		back, err = p.renderer.RenderSide(ctx, render.Job{Template: tpl, Side: models.SideBack, Record: rec, Org: org})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return front, back, nil
}

// PNG tek bir yüzü PNG baytlarına çizer.
func (p *Pipeline) PNG(ctx context.Context, tpl *models.Template, side models.Side, rec *models.Record, org *models.Organization) ([]byte, error) {
	img, err := p.renderer.RenderSide(ctx, render.Job{Template: tpl, Side: side, Record: rec, Org: org})
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// SinglePDF tek kaydın kartını iki sayfalık (ön/arka) PDF olarak üretir.
// Sayfa boyutu şablonun milimetre boyutudur; raster görüntü sayfaya
// birebir oturtulur.
func (p *Pipeline) SinglePDF(ctx context.Context, tpl *models.Template, rec *models.Record, org *models.Organization) ([]byte, error) {
	if tpl == nil {
		return nil, render.ErrNilTemplate
	}
	front, back, err := p.RasterizeSides(ctx, tpl, rec, org)
	if err != nil {
		return nil, err
	}

	pdf := newCardPDF(tpl)
	if err := addCardPages(pdf, tpl, front, back); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BatchItem toplu üretimde tek kayıttır. Template nil olabilir: kaydın
// şablon ataması yoksa kayıt atlanır, parti durmaz.
type BatchItem struct {
	Record   *models.Record
	Template *models.Template
}

// BatchFailure atlanan ya da başarısız olan kaydın nedenini taşır.
type BatchFailure struct {
	RecordID uuid.UUID `json:"record_id"`
	Reason   string    `json:"reason"`
}

// BatchReport toplu üretim özetidir.
type BatchReport struct {
	Total     int            `json:"total"`
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}

// MarkMissing istenen ama hiç yüklenemeyen kayıtları rapora atlanmış
// olarak işler; operatörün satır başına uyarı sözleşmesi bulunamayan
// kayıtları da kapsar.
func (r *BatchReport) MarkMissing(ids []uuid.UUID) {
	for _, id := range ids {
		r.Total++
		r.Skipped++
		r.Failures = append(r.Failures, BatchFailure{RecordID: id, Reason: "record not found"})
	}
}

// Progress her kayıt işlendikten (ya da atlandıktan) sonra çağrılır.
type Progress func(done, total int, rec *models.Record)

// BatchPDF kayıt listesini tek PDF'e basar; kayıt başına iki sayfa.
// Şablonsuz ya da render edilemeyen kayıtlar rapora yazılıp atlanır.
// İptal yalnızca kayıt sınırlarında denetlenir: yarım kart basılmaz.
// Hiçbir kayıt işlenemezse ErrBatchEmpty döner.
func (p *Pipeline) BatchPDF(ctx context.Context, items []BatchItem, org *models.Organization, progress Progress) ([]byte, *BatchReport, error) {
	report := &BatchReport{Total: len(items)}

	var pdf *gofpdf.Fpdf
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		step := func() {
			if progress != nil {
				progress(i+1, len(items), item.Record)
			}
		}

		if item.Template == nil {
			report.Skipped++
			report.Failures = append(report.Failures, BatchFailure{
				RecordID: item.Record.ID,
				Reason:   "template not assigned",
			})
			configslog.Log.Warn("Skipping record without template in batch export",
				zap.String("record_id", item.Record.ID.String()))
			step()
			continue
		}

		front, back, err := p.RasterizeSides(ctx, item.Template, item.Record, org)
		if err != nil {
			if ctx.Err() != nil {
				return nil, report, ctx.Err()
			}
			report.Skipped++
			report.Failures = append(report.Failures, BatchFailure{
				RecordID: item.Record.ID,
				Reason:   fmt.Sprintf("render failed: %v", err),
			})
			configslog.Log.Error("Failed to render record in batch export",
				zap.String("record_id", item.Record.ID.String()), zap.Error(err))
			step()
			continue
		}

		if pdf == nil {
			pdf = newCardPDF(item.Template)
		}
		if err := addCardPages(pdf, item.Template, front, back); err != nil {
			return nil, report, err
		}
		report.Processed++
		step()
	}

	if report.Processed == 0 {
		return nil, report, ErrBatchEmpty
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, report, err
	}
	return buf.Bytes(), report, nil
}

// newCardPDF ilk şablonun boyutuyla boş bir PDF kurar. Sayfalar
// AddPageFormat ile kendi şablon boyutlarını taşıdığı için karma
// boyutlu partiler de desteklenir.
func newCardPDF(tpl *models.Template) *gofpdf.Fpdf {
	orient, size := pageFormat(tpl)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orient,
		UnitStr:        "mm",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// pageFormat gofpdf'in beklediği portre-göreli boyutu ve yön kodunu verir.
func pageFormat(tpl *models.Template) (orient string, size gofpdf.SizeType) {
	short, long := tpl.WidthMM, tpl.HeightMM
	if short > long {
		short, long = long, short
	}
	orient = "P"
	if tpl.Orientation == models.OrientationLandscape {
		orient = "L"
	}
	return orient, gofpdf.SizeType{Wd: short, Ht: long}
}

// addCardPages ön ve arka yüzü kendi boyutlarında iki sayfa olarak ekler.
func addCardPages(pdf *gofpdf.Fpdf, tpl *models.Template, front, back image.Image) error {
	orient, size := pageFormat(tpl)
	wmm, hmm := tpl.CanvasMM()

	frontPNG, err := encodePNG(front)
	if err != nil {
		return err
	}
	backPNG, err := encodePNG(back)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, data := range [][]byte{frontPNG, backPNG} {
		name := fmt.Sprintf("card-%d-%d", pdf.PageCount(), i)
		pdf.AddPageFormat(orient, size)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, 0, 0, wmm, hmm, false, opts, 0, "")
	}
	return pdf.Error()
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
