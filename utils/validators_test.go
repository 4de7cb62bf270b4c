package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"p9e.in/lms/pkg/apperr"
)

func strPtr(s string) *string { return &s }

func TestValidatePinCode(t *testing.T) {
	tests := []struct {
		pin  string
		want bool
	}{
		{"400001", true},
		{"110011", true},
		{"40001", false},
		{"abcdef", false},
		{"4000011", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePinCode(tt.pin))
		})
	}
}

func TestValidateMobileNumber(t *testing.T) {
	tests := []struct {
		mobile string
		want   bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"919876543210", true},
		{"98765 43210", true},
		{"+91-98765-43210", true},
		{"12345", false},
		{"+4412345678901", false},
	}

	for _, tt := range tests {
		t.Run(tt.mobile, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateMobileNumber(tt.mobile))
		})
	}
}

func TestValidateIFSCAndGST(t *testing.T) {
	assert.True(t, ValidateIFSC("SBIN0001234"))
	assert.True(t, ValidateIFSC("sbin0001234"))
	assert.False(t, ValidateIFSC("SBIN1001234"))

	assert.True(t, ValidateGST("27AAPFU0939F1ZV"))
	assert.False(t, ValidateGST("27AAPFU0939F1AV"))
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     *string
		lon     *string
		wantErr bool
	}{
		{"in range", strPtr("45"), strPtr("90"), false},
		{"longitude out of range", strPtr("45"), strPtr("200"), true},
		{"missing longitude", strPtr("45"), nil, true},
		{"missing latitude", nil, strPtr("90"), true},
		{"latitude out of range", strPtr("-91"), strPtr("0"), true},
		{"not a number", strPtr("north"), strPtr("10"), true},
		{"blank", strPtr(" "), strPtr("10"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ValidateCoordinates(tt.lat, tt.lon)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 45.0, p.Lat())
			assert.Equal(t, 90.0, p.Lon())
		})
	}
}

func TestParseShiftTime(t *testing.T) {
	got, err := ParseShiftTime("shift_from", "09:30")
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(9, 30, 0, 0), got)

	got, err = ParseShiftTime("shift_to", "7:05")
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewTime(7, 5, 0, 0), got)

	for _, bad := range []string{"25:00", "9am", "", "12:60"} {
		_, err := ParseShiftTime("shift_from", bad)
		assert.Error(t, err, bad)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("issue_date", strPtr("2024-03-15"))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), time.Time(*d))

	d, err = ParseDate("issue_date", nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("issue_date", strPtr("15/03/2024"))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

type contactForm struct {
	Name   string  `json:"name" validate:"required,max=10"`
	Pin    *string `json:"pin_code" validate:"omitempty,pincode"`
	Mobile string  `json:"mobile" validate:"required,mobile"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(contactForm{Name: "Lab", Mobile: "9876543210"})
	assert.NoError(t, err)

	err = ValidateStruct(contactForm{Name: "Lab", Pin: strPtr("40001"), Mobile: "12345"})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "invalid PIN code format", appErr.Fields["pin_code"])
	assert.Equal(t, "invalid mobile number format", appErr.Fields["mobile"])

	err = ValidateStruct(contactForm{Mobile: "9876543210"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "field is required", appErr.Fields["name"])
}
