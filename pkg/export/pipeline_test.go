package export

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kimlik.link/models"
	"kimlik.link/pkg/render"
)

var pagePattern = regexp.MustCompile(`/Type */Page[^s]`)

func countPages(data []byte) int {
	return len(pagePattern.FindAll(data, -1))
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	r, err := render.New(nil, 1)
	require.NoError(t, err)
	return New(r)
}

func batchTemplate() *models.Template {
	return &models.Template{
		Name:        "Personel Kartı",
		WidthMM:     54,
		HeightMM:    86,
		Orientation: models.OrientationPortrait,

		BackgroundColorFront: "#ffffff",
		BackgroundColorBack:  "#ffffff",
	}
}

func batchRecord(first, last string) *models.Record {
	rec := &models.Record{FirstName: first, LastName: last}
	rec.ID = uuid.New()
	return rec
}

func TestRasterizeSidesReturnsBothSides(t *testing.T) {
	p := newTestPipeline(t)

	front, back, err := p.RasterizeSides(context.Background(), batchTemplate(), batchRecord("Juan", "Dela Cruz"), nil)
	require.NoError(t, err)
	require.NotNil(t, front)
	require.NotNil(t, back)
	assert.Equal(t, front.Bounds(), back.Bounds())
}

func TestPNGProducesValidSignature(t *testing.T) {
	p := newTestPipeline(t)

	data, err := p.PNG(context.Background(), batchTemplate(), models.SideFront, nil, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSinglePDFHasTwoPages(t *testing.T) {
	p := newTestPipeline(t)

	data, err := p.SinglePDF(context.Background(), batchTemplate(), batchRecord("Juan", "Dela Cruz"), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, 2, countPages(data), "ön + arka iki sayfa olmalı")
}

func TestSinglePDFNilTemplate(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.SinglePDF(context.Background(), nil, batchRecord("Juan", "Dela Cruz"), nil)
	assert.ErrorIs(t, err, render.ErrNilTemplate)
}

func TestBatchPDFSkipsRecordsWithoutTemplate(t *testing.T) {
	p := newTestPipeline(t)
	tpl := batchTemplate()
	noTemplate := batchRecord("Pedro", "Santos")

	items := []BatchItem{
		{Record: batchRecord("Juan", "Dela Cruz"), Template: tpl},
		{Record: noTemplate, Template: nil},
		{Record: batchRecord("Maria", "Reyes"), Template: tpl},
	}

	data, report, err := p.BatchPDF(context.Background(), items, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, noTemplate.ID, report.Failures[0].RecordID)
	assert.Equal(t, "template not assigned", report.Failures[0].Reason)

	assert.Equal(t, 4, countPages(data), "işlenen her kayıt iki sayfa eklemeli")
}

func TestBatchPDFProgressCoversEveryItem(t *testing.T) {
	p := newTestPipeline(t)
	tpl := batchTemplate()

	items := []BatchItem{
		{Record: batchRecord("Juan", "Dela Cruz"), Template: tpl},
		{Record: batchRecord("Pedro", "Santos"), Template: nil}, // atlanan da ilerleme sayılır
		{Record: batchRecord("Maria", "Reyes"), Template: tpl},
	}

	var calls []int
	_, _, err := p.BatchPDF(context.Background(), items, nil, func(done, total int, _ *models.Record) {
		require.Equal(t, 3, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestBatchPDFAllSkippedReturnsEmpty(t *testing.T) {
	p := newTestPipeline(t)

	items := []BatchItem{
		{Record: batchRecord("Juan", "Dela Cruz"), Template: nil},
		{Record: batchRecord("Maria", "Reyes"), Template: nil},
	}

	_, report, err := p.BatchPDF(context.Background(), items, nil, nil)
	assert.ErrorIs(t, err, ErrBatchEmpty)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 2, report.Skipped)
}

func TestBatchReportMarkMissingCountsUnfoundRecords(t *testing.T) {
	p := newTestPipeline(t)

	items := []BatchItem{{Record: batchRecord("Juan", "Dela Cruz"), Template: batchTemplate()}}
	_, report, err := p.BatchPDF(context.Background(), items, nil, nil)
	require.NoError(t, err)

	missing := []uuid.UUID{uuid.New(), uuid.New()}
	report.MarkMissing(missing)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, report.Failures, 2)
	for i, f := range report.Failures {
		assert.Equal(t, missing[i], f.RecordID)
		assert.Equal(t, "record not found", f.Reason)
	}
}

func TestBatchPDFCancelledBeforeStart(t *testing.T) {
	p := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []BatchItem{{Record: batchRecord("Juan", "Dela Cruz"), Template: batchTemplate()}}
	_, _, err := p.BatchPDF(ctx, items, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchPDFMixedPageSizes(t *testing.T) {
	p := newTestPipeline(t)
	small := batchTemplate()
	large := batchTemplate()
	large.WidthMM, large.HeightMM = 105, 148
	large.Orientation = models.OrientationLandscape

	items := []BatchItem{
		{Record: batchRecord("Juan", "Dela Cruz"), Template: small},
		{Record: batchRecord("Maria", "Reyes"), Template: large},
	}

	data, report, err := p.BatchPDF(context.Background(), items, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 4, countPages(data))
}
