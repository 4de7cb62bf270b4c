package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Date is a calendar date column that travels as "YYYY-MM-DD" in JSON.
type Date datatypes.Date

func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "2006-01-02" or a full RFC3339 timestamp.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		*d = Date(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("Date.UnmarshalJSON: cannot parse %q: %w", s, err)
	}
	*d = Date(t)
	return nil
}

func (Date) GormDataType() string { return "date" }

func (d Date) Value() (driver.Value, error) {
	return datatypes.Date(d).Value()
}

func (d *Date) Scan(src interface{}) error {
	return (*datatypes.Date)(d).Scan(src)
}

// TimeOfDay is a wall clock time column that travels as "HH:MM" in JSON.
type TimeOfDay datatypes.Time

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("TimeOfDay.UnmarshalJSON: cannot parse %q: %w", s, err)
	}
	*t = TimeOfDay(datatypes.NewTime(parsed.Hour(), parsed.Minute(), 0, 0))
	return nil
}

func (TimeOfDay) GormDataType() string { return "time" }

// GormDBDataType keeps the column a plain TIME (TEXT on sqlite) instead of
// the timestamp gorm picks for the generic time kind.
func (TimeOfDay) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.Time(0).GormDBDataType(db, field)
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return datatypes.Time(t).Value()
}

func (t *TimeOfDay) Scan(src interface{}) error {
	return (*datatypes.Time)(t).Scan(src)
}
