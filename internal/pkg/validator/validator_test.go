package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0190b7c2-6c52-7d40-8a1b-3c4d5e6f7a8b"))
	// v4 is rejected, only v7 ids are issued here
	assert.False(t, IsValidUUID("9f8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-03-15")
	assert.True(t, ok)
	_, ok = IsValidDate("2026-03-15T10:00:00Z")
	assert.False(t, ok)
	_, ok = IsValidDate("15-03-2026")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	assert.True(t, IsValidDateTime("2026-03-15 08:00:00"))
	assert.False(t, IsValidDateTime("2026-03-15"))
	assert.False(t, IsValidDateTime("08:00"))
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("08:00"))
	assert.True(t, IsValidClock("23:59"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("8am"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "dates", Message: "at least one date is required"},
	}
	assert.Equal(t, "title: title is required; dates: at least one date is required", errs.Error())
	assert.Equal(t, map[string]string{
		"title": "title is required",
		"dates": "at least one date is required",
	}, errs.ToMap())
}
