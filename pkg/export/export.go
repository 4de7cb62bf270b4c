// Package export renders the organization registry as spreadsheets and lab
// locations as GeoJSON.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/organization"
)

const sheetName = "Organizations"

// Lister pages through organizations with their sections loaded.
type Lister interface {
	List(ctx context.Context, skip, limit int) ([]models.Organization, error)
}

// Collect reads every organization page by page.
func Collect(ctx context.Context, l Lister) ([]models.Organization, error) {
	var all []models.Organization
	for skip := 0; ; skip += organization.MaxListLimit {
		page, err := l.List(ctx, skip, organization.MaxListLimit)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < organization.MaxListLimit {
			return all, nil
		}
	}
}

type column struct {
	label string
	width float64
	value func(o *models.Organization, c *organization.Checklist) any
}

var columns = []column{
	{"ID", 38, func(o *models.Organization, _ *organization.Checklist) any { return o.ID.String() }},
	{"Lab Name", 30, func(o *models.Organization, _ *organization.Checklist) any { return o.LabName }},
	{"City", 18, func(o *models.Organization, _ *organization.Checklist) any { return o.LabCity }},
	{"District", 18, func(o *models.Organization, _ *organization.Checklist) any { return o.LabDistrict }},
	{"State", 18, func(o *models.Organization, _ *organization.Checklist) any { return o.LabState }},
	{"PIN Code", 10, func(o *models.Organization, _ *organization.Checklist) any { return o.LabPinCode }},
	{"Status", 12, func(o *models.Organization, _ *organization.Checklist) any { return string(o.Status) }},
	{"Completion %", 14, func(_ *models.Organization, c *organization.Checklist) any { return c.OverallCompletion }},
	{"Ready", 8, func(_ *models.Organization, c *organization.Checklist) any { return yesNo(c.IsReadyForSubmission) }},
	{"Office Mobile", 16, func(o *models.Organization, _ *organization.Checklist) any {
		if o.RegisteredOffice == nil {
			return ""
		}
		return deref(o.RegisteredOffice.Mobile)
	}},
	{"Created", 20, func(o *models.Organization, _ *organization.Checklist) any { return o.CreatedAt.UTC().Format("2006-01-02 15:04:05") }},
}

// Headers lists the column labels in order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.label
	}
	return out
}

func rows(orgs []models.Organization) [][]any {
	out := make([][]any, 0, len(orgs))
	for i := range orgs {
		o := &orgs[i]
		c := organization.Evaluate(o)
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = col.value(o, &c)
		}
		out = append(out, row)
	}
	return out
}

// XLSX builds a workbook with a title row, a generation stamp and one row
// per organization starting at row 4.
func XLSX(orgs []models.Organization, now time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", "Laboratory Registrations")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border("000000"),
	})
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheetName, cell, col.label)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, name, name, col.width)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{Border: border("CCCCCC")})
	for r, row := range rows(orgs) {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+5)
			f.SetCellValue(sheetName, cell, v)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// CSV writes a header row then one row per organization.
func CSV(orgs []models.Organization) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Headers()); err != nil {
		return nil, err
	}
	for _, row := range rows(orgs) {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprintf("%v", v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Filename returns the download name for an export taken at now.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("organizations_%s.%s", now.Format("20060102_150405"), strings.ToLower(format))
}

func border(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
