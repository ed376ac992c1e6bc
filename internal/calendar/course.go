package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNoCourses  = errors.New("no valid course rows found")
	errBadDay     = errors.New("unknown day name")
	errBadClock   = errors.New("unparsable clock time")
	errNoMatch    = errors.New("row does not match the expected layout")
	courseRe      = regexp.MustCompile(`^([A-Z]+\s+\d+)\s*-\s*(.+)$`)
	meetingRe     = regexp.MustCompile(`^([^|]+)\s*\|\s*([^|]+)\s*\|\s*(.+)$`)
	timeRangeRe   = regexp.MustCompile(`^(.+?)\s*-\s*(.+)$`)
	clockLayouts  = []string{"3:04 PM", "3:04PM", "3:04 pm", "3:04pm", "15:04"}
	weekdayByCode = map[string]time.Weekday{
		"MO": time.Monday, "TU": time.Tuesday, "WE": time.Wednesday, "TH": time.Thursday,
		"FR": time.Friday, "SA": time.Saturday, "SU": time.Sunday,
	}
)

// ErrUnreadableWorkbook wraps anything excelize cannot open.
var ErrUnreadableWorkbook = errors.New("failed to parse workbook")

// dayCodes maps the three-letter day prefix to its RRULE code.
var dayCodes = map[string]string{
	"mon": "MO",
	"tue": "TU",
	"wed": "WE",
	"thu": "TH",
	"fri": "FR",
	"sat": "SA",
	"sun": "SU",
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

func (c Clock) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// CourseRecord is one parsed schedule row.
type CourseRecord struct {
	Row        int      `json:"row"`
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Days       []string `json:"days"` // RRULE codes in meeting order, e.g. TU, TH
	Start      Clock    `json:"start"`
	End        Clock    `json:"end"`
	Location   string   `json:"location"`
	Instructor string   `json:"instructor"`
	Credits    string   `json:"credits"`
	Section    string   `json:"section"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
}

// Row holds the raw cell text of one spreadsheet row.
type Row struct {
	Number     int
	Course     string
	Credits    string
	Section    string
	Meeting    string
	Instructor string
	StartDate  string
	EndDate    string
}

// ParseRow turns a raw row into a course. Rows that do not follow the
// "<CODE> - <TITLE>" and "<days> | <start> - <end> | <location>" layout
// return an error and are meant to be skipped.
func ParseRow(r Row) (CourseRecord, error) {
	cm := courseRe.FindStringSubmatch(strings.TrimSpace(r.Course))
	if cm == nil {
		return CourseRecord{}, fmt.Errorf("%w: course %q", errNoMatch, r.Course)
	}

	mm := meetingRe.FindStringSubmatch(firstLine(r.Meeting))
	if mm == nil {
		return CourseRecord{}, fmt.Errorf("%w: meeting pattern %q", errNoMatch, r.Meeting)
	}
	daysText := strings.TrimSpace(mm[1])
	timeText := strings.TrimSpace(mm[2])
	location := strings.TrimSpace(mm[3])

	tm := timeRangeRe.FindStringSubmatch(timeText)
	if tm == nil {
		return CourseRecord{}, fmt.Errorf("%w: time range %q", errNoMatch, timeText)
	}

	days, err := ParseDays(daysText)
	if err != nil {
		return CourseRecord{}, err
	}
	start, err := ParseClock(tm[1])
	if err != nil {
		return CourseRecord{}, err
	}
	end, err := ParseClock(tm[2])
	if err != nil {
		return CourseRecord{}, err
	}

	return CourseRecord{
		Row:        r.Number,
		Code:       strings.Join(strings.Fields(cm[1]), " "),
		Title:      strings.TrimSpace(cm[2]),
		Days:       days,
		Start:      start,
		End:        end,
		Location:   location,
		Instructor: strings.TrimSpace(r.Instructor),
		Credits:    strings.TrimSpace(r.Credits),
		Section:    strings.TrimSpace(r.Section),
		StartDate:  strings.TrimSpace(r.StartDate),
		EndDate:    strings.TrimSpace(r.EndDate),
	}, nil
}

// ParseDays converts "Tue/Thu" (groups may also be separated by "|") into
// RRULE day codes, keeping order and dropping repeats.
func ParseDays(s string) ([]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '|' })
	days := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if len(f) < 3 {
			return nil, fmt.Errorf("%w: %q", errBadDay, f)
		}
		code, ok := dayCodes[f[:3]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errBadDay, f)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		days = append(days, code)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %q", errBadDay, s)
	}
	return days, nil
}

// ParseClock parses "10:00 AM" style 12-hour times (24-hour "15:04" is
// accepted too).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("%w: %q", errBadClock, s)
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
