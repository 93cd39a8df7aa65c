package binding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kimlik.link/models"
)

func testRecord() *models.Record {
	photo := "blobs/photo.png"
	sig := "blobs/sig.png"
	bd := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	return &models.Record{
		FirstName:    "Juan",
		MiddleName:   "Reyes",
		LastName:     "Dela Cruz",
		Position:     "Teacher I",
		EmployeeNo:   "EMP-001",
		Birthdate:    &bd,
		PhotoRef:     &photo,
		SignatureRef: &sig,
	}
}

func testOrg() *models.Organization {
	return &models.Organization{
		Name:         "San Isidro National High School",
		Address:      "San Isidro, Nueva Ecija",
		Contact:      "(044) 123-4567",
		DivisionName: "Division of Nueva Ecija",
	}
}

func TestResolveAliases(t *testing.T) {
	rec := testRecord()
	org := testOrg()

	assert.Equal(t, "blobs/photo.png", Resolve("profile_image", rec, org, nil))
	assert.Equal(t, "blobs/sig.png", Resolve("signature", rec, org, nil))
	assert.Equal(t, "San Isidro National High School", Resolve("school_name", rec, org, nil))
	assert.Equal(t, "Division of Nueva Ecija", Resolve("division", rec, org, nil))
}

func TestResolveCompositeNames(t *testing.T) {
	rec := testRecord()

	assert.Equal(t, "Juan Reyes Dela Cruz", Resolve("full_name_western", rec, nil, nil))
	assert.Equal(t, "Dela Cruz, Juan Reyes", Resolve("full_name_eastern", rec, nil, nil))
	assert.Equal(t, "Juan R. Dela Cruz", Resolve("full_name_initial", rec, nil, nil))
	assert.Equal(t, "Dela Cruz, Juan R.", Resolve("full_name_filipino", rec, nil, nil))
}

func TestResolveCompositeNamesWithoutMiddle(t *testing.T) {
	rec := testRecord()
	rec.MiddleName = ""

	// Orta ad yoksa artık boşluk ya da nokta kalmamalı.
	assert.Equal(t, "Juan Dela Cruz", Resolve("full_name_western", rec, nil, nil))
	assert.Equal(t, "Juan Dela Cruz", Resolve("full_name_initial", rec, nil, nil))
	assert.Equal(t, "Dela Cruz, Juan", Resolve("full_name_filipino", rec, nil, nil))
}

func TestResolveOrganizationFields(t *testing.T) {
	org := testOrg()

	assert.Equal(t, "San Isidro National High School", Resolve("organization.name", nil, org, nil))
	assert.Equal(t, "San Isidro, Nueva Ecija", Resolve("organization.address", nil, org, nil))
	assert.Equal(t, "(044) 123-4567", Resolve("organization.contact", nil, org, nil))
}

func TestResolveOverridePrecedence(t *testing.T) {
	org := testOrg()
	name := "Override High School"
	override := &models.OrganizationOverride{Name: &name}

	// Ezme yalnızca taşıdığı alanı gölgeler; kalanlar canlı kurumdan gelir.
	assert.Equal(t, "Override High School", Resolve("organization.name", nil, org, override))
	assert.Equal(t, "Override High School", Resolve("school_name", nil, org, override))
	assert.Equal(t, "San Isidro, Nueva Ecija", Resolve("organization.address", nil, org, override))
}

func TestResolveRecordAttr(t *testing.T) {
	rec := testRecord()

	assert.Equal(t, "Teacher I", Resolve("position", rec, nil, nil))
	assert.Equal(t, "EMP-001", Resolve("employee_no", rec, nil, nil))
	assert.Equal(t, "1990-05-17", Resolve("birthdate", rec, nil, nil))
}

func TestResolveStaticFallback(t *testing.T) {
	res := ResolveDetailed("REPUBLIC OF THE PHILIPPINES", testRecord(), testOrg(), nil)

	assert.Equal(t, "REPUBLIC OF THE PHILIPPINES", res.Value)
	assert.False(t, res.Resolved)
}

func TestResolveNilContexts(t *testing.T) {
	// Kayıt ve kurum yokken çözümleme panik yapmamalı.
	assert.Equal(t, "", Resolve("profile_image", nil, nil, nil))
	assert.Equal(t, "", Resolve("full_name_western", nil, nil, nil))
	assert.Equal(t, "", Resolve("organization.name", nil, nil, nil))
	assert.Equal(t, "position", Resolve("position", nil, nil, nil))
}

func TestResolveEmptyKey(t *testing.T) {
	res := ResolveDetailed("", testRecord(), testOrg(), nil)

	assert.Empty(t, res.Value)
	assert.False(t, res.Resolved)
}
