package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var canvas = Rect{X: 0, Y: 0, Width: 400, Height: 300}

func TestSnapLeftEdgeWithinThreshold(t *testing.T) {
	sib := Rect{X: 100, Y: 200, Width: 50, Height: 20}
	res := Snap(Rect{X: 103, Y: 50, Width: 30, Height: 10}, []Rect{sib}, canvas)

	assert.Equal(t, 100.0, res.X)
	assert.Equal(t, 50.0, res.Y)
	if assert.Len(t, res.Guides, 1) {
		assert.Equal(t, Guide{Axis: AxisX, Position: 100}, res.Guides[0])
	}
}

func TestSnapExactThresholdDoesNotTrigger(t *testing.T) {
	sib := Rect{X: 100, Y: 200, Width: 50, Height: 20}
	// Fark tam 5 px: eşik kesin küçüktür, yapışma olmamalı.
	res := Snap(Rect{X: 105, Y: 50, Width: 30, Height: 10}, []Rect{sib}, canvas)

	assert.Equal(t, 105.0, res.X)
	assert.Empty(t, res.Guides)
}

func TestSnapRightToLeftEdge(t *testing.T) {
	sib := Rect{X: 100, Y: 200, Width: 50, Height: 20}
	// Sağ kenar 98, kardeşin sol kenarı 100: yapışınca X = 100 − 30 = 70.
	res := Snap(Rect{X: 68, Y: 50, Width: 30, Height: 10}, []Rect{sib}, canvas)

	assert.Equal(t, 70.0, res.X)
	if assert.Len(t, res.Guides, 1) {
		assert.Equal(t, Guide{Axis: AxisX, Position: 100}, res.Guides[0])
	}
}

func TestSnapBothAxesIndependently(t *testing.T) {
	sib := Rect{X: 100, Y: 100, Width: 50, Height: 50}
	res := Snap(Rect{X: 102, Y: 103, Width: 30, Height: 10}, []Rect{sib}, canvas)

	assert.Equal(t, 100.0, res.X)
	assert.Equal(t, 100.0, res.Y)
	assert.Len(t, res.Guides, 2)
}

func TestSnapCanvasCenterOverridesSibling(t *testing.T) {
	// Kardeş merkez-merkez ve tuval merkezi aynı anda eşikte:
	// tuval merkezi en son değerlendirildiği için kazanır.
	sib := Rect{X: 182, Y: 0, Width: 30, Height: 10} // merkez X = 197
	res := Snap(Rect{X: 184, Y: 50, Width: 30, Height: 10}, []Rect{sib}, canvas)

	// Tuval merkezi X = 200, alan genişliği 30: X = 185.
	assert.Equal(t, 185.0, res.X)
	if assert.Len(t, res.Guides, 1) {
		assert.Equal(t, Guide{Axis: AxisX, Position: 200}, res.Guides[0])
	}
}

func TestSnapAtMostOneGuidePerAxis(t *testing.T) {
	sibs := []Rect{
		{X: 100, Y: 0, Width: 50, Height: 10},
		{X: 103, Y: 40, Width: 50, Height: 10},
	}
	res := Snap(Rect{X: 101, Y: 80, Width: 30, Height: 10}, sibs, canvas)

	// İki kardeş de x ekseninde eşleşir; son değerlendirilen kazanır.
	assert.Equal(t, 103.0, res.X)
	assert.Len(t, res.Guides, 1)
}

func TestSnapNoSiblingsFarFromCenter(t *testing.T) {
	res := Snap(Rect{X: 10, Y: 10, Width: 30, Height: 10}, nil, canvas)

	assert.Equal(t, 10.0, res.X)
	assert.Equal(t, 10.0, res.Y)
	assert.Empty(t, res.Guides)
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, a.Intersects(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5})) // kenar teması kesişme sayılmaz
	assert.False(t, a.Intersects(Rect{X: 20, Y: 20, Width: 5, Height: 5}))
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 10}

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 30, Height: 15}, a.Union(b))
}

func TestFromCornersNormalizes(t *testing.T) {
	r := FromCorners(Point{X: 50, Y: 40}, Point{X: 10, Y: 60})

	assert.Equal(t, Rect{X: 10, Y: 40, Width: 40, Height: 20}, r)
}
