package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kimlik.link/models"
	"kimlik.link/pkg/geometry"
)

var testCanvas = geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}

func newTestSession(fields ...models.Field) *Session {
	return NewSession(uuid.New(), models.SideFront, testCanvas, fields)
}

func makeField(x, y, w, h float64) models.Field {
	f := models.Field{
		Side:      models.SideFront,
		FieldType: models.FieldTypeBox,
		X:         x, Y: y, Width: w, Height: h,
		Opacity: 1,
	}
	f.ID = uuid.New()
	return f
}

func TestAddFieldDefaultsAndHistory(t *testing.T) {
	s := newTestSession()

	f, err := s.AddField(models.FieldTypeQRCode, AddOptions{})
	require.NoError(t, err)

	assert.Equal(t, "qrcode", f.FieldKey)
	assert.Equal(t, 100.0, f.Width)
	assert.Equal(t, 100.0, f.Height)
	assert.Equal(t, 1.0, f.Opacity)
	assert.True(t, s.Selected(f.ID), "yeni alan seçilmiş olmalı")
	assert.True(t, s.CanUndo())
	assert.Len(t, s.Fields(), 1)
}

func TestAddFieldTextIsAutoSized(t *testing.T) {
	s := newTestSession()

	f, err := s.AddField(models.FieldTypeText, AddOptions{})
	require.NoError(t, err)

	assert.Equal(t, "New Text", f.FieldKey)
	assert.Zero(t, f.Width)
	assert.Zero(t, f.Height)
	assert.Equal(t, 14.0, f.FontSize)
}

func TestAddFieldUnknownType(t *testing.T) {
	s := newTestSession()

	_, err := s.AddField(models.FieldType("hologram"), AddOptions{})
	assert.ErrorIs(t, err, ErrUnknownFieldType)
	assert.False(t, s.CanUndo())
}

func TestAddThenUndoRemovesField(t *testing.T) {
	s := newTestSession()
	f, err := s.AddField(models.FieldTypeBox, AddOptions{})
	require.NoError(t, err)

	require.True(t, s.Undo())
	assert.Empty(t, s.Fields())
	assert.Empty(t, s.Selection(), "silinen alan seçimden düşmeli")

	require.True(t, s.Redo())
	require.Len(t, s.Fields(), 1)
	assert.Equal(t, f.ID, s.Fields()[0].ID)
}

func TestAddRemoveNetZeroStillTwoEntries(t *testing.T) {
	s := newTestSession()
	f, err := s.AddField(models.FieldTypeBox, AddOptions{})
	require.NoError(t, err)
	s.RemoveFields(f.ID)

	// Ekle + sil içerik olarak başa döner ama iki ayrı giriş yazar.
	assert.Empty(t, s.Fields())
	require.True(t, s.Undo())
	assert.Len(t, s.Fields(), 1)
	require.True(t, s.Undo())
	assert.Empty(t, s.Fields())
	assert.False(t, s.CanUndo())
}

func TestUpdateFieldValidation(t *testing.T) {
	f := makeField(10, 10, 50, 50)
	s := newTestSession(f)

	bad := 1.5
	err := s.UpdateField(f.ID, FieldPatch{Opacity: &bad})
	assert.ErrorIs(t, err, ErrInvalidOpacity)

	neg := -1.0
	err = s.UpdateField(f.ID, FieldPatch{Width: &neg})
	assert.ErrorIs(t, err, ErrInvalidSize)

	assert.False(t, s.CanUndo(), "geçersiz güncelleme geçmişe yazmamalı")
	assert.Equal(t, 50.0, s.Fields()[0].Width)
}

func TestUpdateFieldNormalizesRotation(t *testing.T) {
	f := makeField(10, 10, 50, 50)
	s := newTestSession(f)

	deg := -90.0
	require.NoError(t, s.UpdateField(f.ID, FieldPatch{Rotation: &deg}))
	assert.Equal(t, 270.0, s.Fields()[0].Rotation)

	deg = 450
	require.NoError(t, s.UpdateField(f.ID, FieldPatch{Rotation: &deg}))
	assert.Equal(t, 90.0, s.Fields()[0].Rotation)
}

func TestDuplicateOffsetsAndSelects(t *testing.T) {
	f := makeField(10, 20, 50, 50)
	s := newTestSession(f)

	clones := s.Duplicate(f.ID)
	require.Len(t, clones, 1)

	c := clones[0]
	assert.NotEqual(t, f.ID, c.ID)
	assert.Equal(t, 30.0, c.X)
	assert.Equal(t, 40.0, c.Y)
	assert.True(t, s.Selected(c.ID))
	assert.False(t, s.Selected(f.ID))

	// Klon çizim sırasının sonunda (en üstte) olmalı.
	fields := s.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, c.ID, fields[1].ID)
}

func TestClickSelection(t *testing.T) {
	a := makeField(0, 0, 10, 10)
	b := makeField(50, 0, 10, 10)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))
	assert.Len(t, s.Selection(), 2)

	// Shift ile seçili alana tıklamak onu seçimden çıkarır.
	require.NoError(t, s.ClickField(a.ID, true))
	assert.Equal(t, []uuid.UUID{b.ID}, s.Selection())

	// Shift'siz tıklama seçimin yerine geçer.
	require.NoError(t, s.ClickField(a.ID, false))
	assert.Equal(t, []uuid.UUID{a.ID}, s.Selection())
}

func TestClickSelectedWithoutShiftKeepsGroup(t *testing.T) {
	a := makeField(0, 0, 10, 10)
	b := makeField(50, 0, 10, 10)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))
	require.NoError(t, s.ClickField(a.ID, false))

	assert.Len(t, s.Selection(), 2, "grup sürüklemesi için çoklu seçim korunmalı")
}

func TestDragIsOneHistoryEntry(t *testing.T) {
	f := makeField(10, 10, 50, 50)
	s := newTestSession(f)

	require.NoError(t, s.BeginDrag(f.ID, false))
	assert.Equal(t, StateDragging, s.State())
	require.NoError(t, s.DragTo(geometry.Point{X: 40, Y: 10}))
	require.NoError(t, s.DragTo(geometry.Point{X: 80, Y: 30}))
	s.EndDrag()

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 80.0, s.Fields()[0].X)
	assert.Equal(t, 30.0, s.Fields()[0].Y)

	// Tüm jest tek girişe sığar: bir undo başlangıca döndürür.
	require.True(t, s.Undo())
	assert.Equal(t, 10.0, s.Fields()[0].X)
	assert.False(t, s.CanUndo())
}

func TestDragWithoutMovementWritesNothing(t *testing.T) {
	f := makeField(10, 10, 50, 50)
	s := newTestSession(f)

	require.NoError(t, s.BeginDrag(f.ID, false))
	require.NoError(t, s.DragTo(geometry.Point{X: 10, Y: 10}))
	s.EndDrag()

	assert.False(t, s.CanUndo())
}

func TestDragSnapsToSiblingAndShowsGuide(t *testing.T) {
	a := makeField(10, 10, 30, 10)
	b := makeField(100, 200, 50, 20)
	s := newTestSession(a, b)

	require.NoError(t, s.BeginDrag(a.ID, false))
	require.NoError(t, s.DragTo(geometry.Point{X: 103, Y: 50}))

	assert.Equal(t, 100.0, s.Fields()[0].X, "kardeşin sol kenarına yapışmalı")
	require.Len(t, s.Guides(), 1)
	assert.Equal(t, geometry.Guide{Axis: geometry.AxisX, Position: 100}, s.Guides()[0])

	s.EndDrag()
	assert.Empty(t, s.Guides(), "kılavuzlar jest bitince temizlenmeli")
}

func TestShiftDragOnSelectedFieldMovesGroupRigidly(t *testing.T) {
	a := makeField(100, 100, 30, 10)
	b := makeField(300, 300, 30, 10)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))

	// Shift basılıyken seçili üyeden sürükleme başlatmak seçimi bozmaz:
	// aktif alanın başlangıç konumu bilinir ve delta ondan hesaplanır.
	require.NoError(t, s.BeginDrag(a.ID, true))
	require.NoError(t, s.DragTo(geometry.Point{X: 110, Y: 110}))

	fields := s.Fields()
	assert.Equal(t, 110.0, fields[0].X)
	assert.Equal(t, 110.0, fields[0].Y)
	assert.Equal(t, 310.0, fields[1].X, "grup üyesi yalnızca delta kadar taşınmalı")
	assert.Equal(t, 310.0, fields[1].Y)

	s.EndDrag()
	assert.True(t, s.Selected(a.ID), "hareket eden jest seçimden çıkarmamalı")
	assert.True(t, s.Selected(b.ID))
}

func TestShiftDragWithoutMovementDeselectsOnRelease(t *testing.T) {
	a := makeField(100, 100, 30, 10)
	b := makeField(300, 300, 30, 10)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))

	require.NoError(t, s.BeginDrag(a.ID, true))
	s.EndDrag()

	assert.False(t, s.Selected(a.ID), "hareketsiz shift jesti tıklama sayılır")
	assert.True(t, s.Selected(b.ID))
	assert.Equal(t, 100.0, s.Fields()[0].X)
	assert.Equal(t, 300.0, s.Fields()[1].X)
}

func TestGroupDragIsRigid(t *testing.T) {
	a := makeField(10, 10, 30, 10)
	b := makeField(60, 10, 30, 10)
	sib := makeField(200, 100, 50, 20)
	s := newTestSession(a, b, sib)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))
	require.NoError(t, s.BeginDrag(a.ID, false))

	// Aktif üye kardeşin sol kenarına yapışır (203 → 200); aynı delta
	// diğer üyeye de uygulanır, grup içi mesafe değişmez.
	require.NoError(t, s.DragTo(geometry.Point{X: 203, Y: 10}))

	fields := s.Fields()
	assert.Equal(t, 200.0, fields[0].X)
	assert.Equal(t, 250.0, fields[1].X)
	s.EndDrag()

	require.True(t, s.Undo())
	fields = s.Fields()
	assert.Equal(t, 10.0, fields[0].X)
	assert.Equal(t, 60.0, fields[1].X)
}

func TestResizeGesture(t *testing.T) {
	f := makeField(10, 10, 50, 50)
	s := newTestSession(f)

	require.NoError(t, s.BeginResize(f.ID))
	assert.Equal(t, StateResizing, s.State())
	require.NoError(t, s.ResizeTo(geometry.Rect{X: 10, Y: 10, Width: 80, Height: 40}))
	assert.ErrorIs(t, s.ResizeTo(geometry.Rect{X: 10, Y: 10, Width: -5, Height: 40}), ErrInvalidSize)
	s.EndResize()

	assert.Equal(t, 80.0, s.Fields()[0].Width)
	require.True(t, s.Undo())
	assert.Equal(t, 50.0, s.Fields()[0].Width)
}

func TestMarqueeSelectsIntersecting(t *testing.T) {
	a := makeField(10, 10, 20, 20)
	b := makeField(100, 10, 20, 20)
	back := makeField(10, 10, 20, 20)
	back.Side = models.SideBack
	s := newTestSession(a, b, back)

	s.BeginMarquee(geometry.Point{X: 0, Y: 0}, false)
	assert.Equal(t, StateMarquee, s.State())
	s.EndMarquee(geometry.Point{X: 50, Y: 50})

	assert.Equal(t, []uuid.UUID{a.ID}, s.Selection(), "yalnızca aktif yüzdeki kesişen alanlar seçilmeli")
}

func TestMarqueeShiftMerges(t *testing.T) {
	a := makeField(10, 10, 20, 20)
	b := makeField(100, 10, 20, 20)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(b.ID, false))
	s.BeginMarquee(geometry.Point{X: 0, Y: 0}, true)
	s.EndMarquee(geometry.Point{X: 50, Y: 50})

	assert.Len(t, s.Selection(), 2)
}

func TestSetSideClearsSelection(t *testing.T) {
	a := makeField(10, 10, 20, 20)
	s := newTestSession(a)
	require.NoError(t, s.ClickField(a.ID, false))

	s.SetSide(models.SideBack)
	assert.Empty(t, s.Selection())
	assert.Equal(t, models.SideBack, s.Side())
}

func TestAlignLeftIdempotent(t *testing.T) {
	a := makeField(10, 10, 20, 20)
	b := makeField(50, 40, 30, 20)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))
	require.NoError(t, s.Align(AlignLeft))

	fields := s.Fields()
	assert.Equal(t, 10.0, fields[0].X)
	assert.Equal(t, 10.0, fields[1].X)

	// İkinci uygulama hiçbir konumu değiştirmez.
	require.NoError(t, s.Align(AlignLeft))
	again := s.Fields()
	assert.Equal(t, fields[0].X, again[0].X)
	assert.Equal(t, fields[1].X, again[1].X)
}

func TestAlignCenterH(t *testing.T) {
	a := makeField(0, 0, 20, 20)    // merkez X = 10
	b := makeField(80, 40, 40, 20)  // merkez X = 100
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))
	require.NoError(t, s.Align(AlignCenterH))

	// Sınırlayıcı kutu [0,120], merkezi 60.
	fields := s.Fields()
	assert.Equal(t, 50.0, fields[0].X)
	assert.Equal(t, 40.0, fields[1].X)
}

func TestAlignRequiresTwo(t *testing.T) {
	a := makeField(10, 10, 20, 20)
	s := newTestSession(a)
	require.NoError(t, s.ClickField(a.ID, false))

	assert.ErrorIs(t, s.Align(AlignLeft), ErrAlignTooFew)
}

func TestDistributeHorizontal(t *testing.T) {
	a := makeField(0, 0, 10, 10)
	b := makeField(15, 0, 10, 10)
	c := makeField(90, 0, 10, 10)
	s := newTestSession(a, b, c)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))
	require.NoError(t, s.ClickField(c.ID, true))
	require.NoError(t, s.Distribute(geometry.AxisX))

	// Dış aralık 100, toplam genişlik 30, boşluk (100−30)/2 = 35.
	fields := s.Fields()
	assert.Equal(t, 0.0, fields[0].X, "ilk üye sabit kalır")
	assert.Equal(t, 45.0, fields[1].X)
	assert.Equal(t, 90.0, fields[2].X, "son üye sabit kalır")
}

func TestDistributeRequiresThree(t *testing.T) {
	a := makeField(0, 0, 10, 10)
	b := makeField(50, 0, 10, 10)
	s := newTestSession(a, b)

	require.NoError(t, s.ClickField(a.ID, false))
	require.NoError(t, s.ClickField(b.ID, true))

	assert.ErrorIs(t, s.Distribute(geometry.AxisX), ErrDistributeTooFew)
	assert.Equal(t, 0.0, s.Fields()[0].X)
	assert.Equal(t, 50.0, s.Fields()[1].X)
}

func TestMeasuredSizeUsedForAutoSizedText(t *testing.T) {
	s := newTestSession()
	f, err := s.AddField(models.FieldTypeText, AddOptions{})
	require.NoError(t, err)
	s.SetMeasuredSize(f.ID, 60, 16)

	// Marquee etkin dikdörtgenle kesişmeli: alan 10,10 + ölçülen 60×16.
	s.BeginMarquee(geometry.Point{X: 50, Y: 5}, false)
	s.EndMarquee(geometry.Point{X: 65, Y: 30})

	assert.Equal(t, []uuid.UUID{f.ID}, s.Selection())
}

func TestHistoryJSONRoundTrip(t *testing.T) {
	s := newTestSession()
	f, err := s.AddField(models.FieldTypeBox, AddOptions{})
	require.NoError(t, err)
	require.NoError(t, s.UpdateField(f.ID, FieldPatch{X: ptr(99.0)}))

	data, err := s.HistoryJSON()
	require.NoError(t, err)

	restored := newTestSession()
	require.NoError(t, restored.RestoreHistory(data))

	require.Len(t, restored.Fields(), 1)
	assert.Equal(t, 99.0, restored.Fields()[0].X)
	assert.True(t, restored.CanUndo())
	require.True(t, restored.Undo())
	assert.Equal(t, 10.0, restored.Fields()[0].X)
}

func TestNudgeMovesSelection(t *testing.T) {
	a := makeField(10, 10, 20, 20)
	s := newTestSession(a)
	require.NoError(t, s.ClickField(a.ID, false))

	s.Nudge(1, 0)
	s.Nudge(0, 10)

	assert.Equal(t, 11.0, s.Fields()[0].X)
	assert.Equal(t, 20.0, s.Fields()[0].Y)

	// Her dürtme ayrı bir geçmiş girişidir.
	require.True(t, s.Undo())
	assert.Equal(t, 10.0, s.Fields()[0].Y)
}

func ptr[T any](v T) *T { return &v }
