package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAppliesDefaults(t *testing.T) {
	p := ListParams{}
	p.Validate()

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultSortBy, p.SortBy)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
}

func TestValidateClampsPerPage(t *testing.T) {
	p := ListParams{Page: 2, PerPage: MaxPerPage + 50, OrderBy: "asc"}
	p.Validate()

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, "asc", p.OrderBy)
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.CalculateOffset())

	empty := ListParams{}
	assert.Equal(t, 0, empty.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
}
