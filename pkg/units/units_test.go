package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMM(t *testing.T) {
	assert.Equal(t, 85.6, ToMM(85.6, MM))
	assert.Equal(t, 25.4, ToMM(1, Inch))
	assert.Equal(t, 86.36, ToMM(3.4, Inch))
	assert.Equal(t, 26.455, ToMM(100, Pixel)) // 100 / 3.78, 3 ondalık
}

func TestFromMM(t *testing.T) {
	assert.Equal(t, 85.6, FromMM(85.6, MM))
	assert.Equal(t, 3.37, FromMM(85.598, Inch))
	assert.Equal(t, 323.6, FromMM(85.6, Pixel)) // 85.6 × 3.78, 1 ondalık
}

func TestRoundTripStaysStable(t *testing.T) {
	// mm → in → mm yuvarlama hassasiyeti içinde geri dönmeli.
	mm := 54.0
	back := ToMM(FromMM(mm, Inch), Inch)
	assert.InDelta(t, mm, back, 0.03)
}

func TestUnknownUnitTreatedAsMM(t *testing.T) {
	assert.False(t, Known(Unit("cm")))
	assert.Equal(t, 12.5, ToMM(12.5, Unit("cm")))
	assert.Equal(t, 12.5, FromMM(12.5, Unit("cm")))
}
