package calendar

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Fixed layout of the Workday "View My Courses" export.
const (
	FirstRow = 4
	LastRow  = 20

	colCourse     = "B"
	colCredits    = "E"
	colSection    = "G"
	colMeeting    = "K"
	colInstructor = "L"
	colStartDate  = "M"
	colEndDate    = "N"
)

// ReadRows reads the raw course rows from the first sheet. Rows without a
// course or meeting cell are not returned.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrUnreadableWorkbook)
	}
	sheet := sheets[0]

	cell := func(col string, row int) (string, error) {
		v, err := f.GetCellValue(sheet, col+strconv.Itoa(row))
		if err != nil {
			return "", fmt.Errorf("failed to read %s%d: %w", col, row, err)
		}
		return v, nil
	}

	var rows []Row
	for n := FirstRow; n <= LastRow; n++ {
		row := Row{Number: n}
		fields := []struct {
			col string
			dst *string
		}{
			{colCourse, &row.Course},
			{colCredits, &row.Credits},
			{colSection, &row.Section},
			{colMeeting, &row.Meeting},
			{colInstructor, &row.Instructor},
			{colStartDate, &row.StartDate},
			{colEndDate, &row.EndDate},
		}
		for _, fld := range fields {
			v, err := cell(fld.col, n)
			if err != nil {
				return nil, err
			}
			*fld.dst = v
		}
		if row.Course == "" || row.Meeting == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseWorkbook extracts course records. Malformed rows are dropped; a
// workbook with no usable row returns ErrNoCourses.
func ParseWorkbook(r io.Reader) ([]CourseRecord, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}

	courses := make([]CourseRecord, 0, len(rows))
	for _, row := range rows {
		c, err := ParseRow(row)
		if err != nil {
			continue
		}
		courses = append(courses, c)
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}
