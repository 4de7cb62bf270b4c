package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"gorm.io/datatypes"

	"p9e.in/lms/pkg/apperr"
)

var (
	pinCodePattern   = regexp.MustCompile(`^\d{6}$`)
	mobileCleaner    = regexp.MustCompile(`[^\d+]`)
	mobilePatterns   = []*regexp.Regexp{regexp.MustCompile(`^\+91\d{10}$`), regexp.MustCompile(`^91\d{10}$`), regexp.MustCompile(`^\d{10}$`)}
	ifscPattern      = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	gstNumberPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]$`)
)

// ValidatePinCode reports whether pin is an Indian PIN code (six digits).
func ValidatePinCode(pin string) bool {
	return pinCodePattern.MatchString(pin)
}

// ValidateMobileNumber accepts ten digit numbers with an optional +91 or 91
// prefix. Spaces, dashes and other separators are ignored.
func ValidateMobileNumber(mobile string) bool {
	cleaned := mobileCleaner.ReplaceAllString(mobile, "")
	for _, p := range mobilePatterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

func ValidateIFSC(ifsc string) bool {
	return ifscPattern.MatchString(strings.ToUpper(ifsc))
}

func ValidateGST(gst string) bool {
	return gstNumberPattern.MatchString(strings.ToUpper(gst))
}

// ValidateCoordinates parses a latitude/longitude pair supplied as text.
// Both values are required and must fall inside the valid ranges.
func ValidateCoordinates(latitude, longitude *string) (orb.Point, error) {
	if latitude == nil || longitude == nil || strings.TrimSpace(*latitude) == "" || strings.TrimSpace(*longitude) == "" {
		return orb.Point{}, apperr.Validation("gps_latitude", "both latitude and longitude are required")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(*latitude), 64)
	if err != nil {
		return orb.Point{}, apperr.Validation("gps_latitude", "latitude %q is not a number", *latitude)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(*longitude), 64)
	if err != nil {
		return orb.Point{}, apperr.Validation("gps_longitude", "longitude %q is not a number", *longitude)
	}

	if lat < -90 || lat > 90 {
		return orb.Point{}, apperr.Validation("gps_latitude", "latitude %.6f is out of valid range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return orb.Point{}, apperr.Validation("gps_longitude", "longitude %.6f is out of valid range [-180, 180]", lon)
	}

	// orb points are (x, y) = (lon, lat)
	return orb.Point{lon, lat}, nil
}

// ParseShiftTime converts a 24-hour "HH:MM" string to a time of day.
func ParseShiftTime(field, value string) (datatypes.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, apperr.Validation(field, "time %q must be in HH:MM 24-hour format", value)
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}

// ParseDate converts a "YYYY-MM-DD" string to a date column value.
// Empty input yields nil.
func ParseDate(field string, value *string) (*datatypes.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		return nil, apperr.Validation(field, "date %q must be in YYYY-MM-DD format", *value)
	}
	d := datatypes.Date(t)
	return &d, nil
}
