package calendar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	prodID      = "-//Workday2Calendar//EN"
	uidDomain   = "workday2calendar"
	dateLayout  = "2006-01-02"
	localLayout = "20060102T150405"
	utcLayout   = "20060102T150405Z"

	// maxLineOctets is the RFC 5545 line length limit, excluding CRLF.
	maxLineOctets = 75
)

var ErrInvalidSemester = errors.New("invalid semester")

// now stamps DTSTAMP; replaced in tests.
var now = time.Now

// Semester bounds the weekly recurrences, both days inclusive.
type Semester struct {
	Start time.Time
	End   time.Time
}

// ParseSemester parses YYYY-MM-DD bounds.
func ParseSemester(first, last string) (Semester, error) {
	start, err := time.Parse(dateLayout, strings.TrimSpace(first))
	if err != nil {
		return Semester{}, fmt.Errorf("%w: first day %q", ErrInvalidSemester, first)
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(last))
	if err != nil {
		return Semester{}, fmt.Errorf("%w: last day %q", ErrInvalidSemester, last)
	}
	s := Semester{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Semester{}, err
	}
	return s, nil
}

func (s Semester) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return fmt.Errorf("%w: both bounds are required", ErrInvalidSemester)
	}
	if s.End.Before(s.Start) {
		return fmt.Errorf("%w: last day is before first day", ErrInvalidSemester)
	}
	return nil
}

// FirstMeeting returns the first date on or after the semester start whose
// weekday is one of days.
func FirstMeeting(start time.Time, days []string) (time.Time, bool) {
	want := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if wd, ok := weekdayByCode[d]; ok {
			want[wd] = true
		}
	}
	if len(want) == 0 {
		return time.Time{}, false
	}
	d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		if want[d.Weekday()] {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// EmitICS writes one weekly VEVENT per course. Start and end times are
// floating local times, so calendar clients keep the wall clock the
// schedule was written in.
func EmitICS(w io.Writer, courses []CourseRecord, sem Semester) error {
	if err := sem.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	lw := &lineWriter{w: bw}

	lw.line("BEGIN:VCALENDAR")
	lw.line("VERSION:2.0")
	lw.line("PRODID:" + prodID)
	lw.line("CALSCALE:GREGORIAN")
	lw.line("METHOD:PUBLISH")

	stamp := now().UTC().Format(utcLayout)
	until := time.Date(sem.End.Year(), sem.End.Month(), sem.End.Day(), 23, 59, 59, 0, time.Local)

	for i, c := range courses {
		day, ok := FirstMeeting(sem.Start, c.Days)
		if !ok {
			continue
		}
		start := atClock(day, c.Start)
		end := atClock(day, c.End)

		summary := c.Code
		if c.Title != "" {
			summary += " - " + c.Title
		}
		desc := fmt.Sprintf("Instructor: %s\nCredits: %s\nLocation: %s", c.Instructor, c.Credits, c.Location)
		if c.Section != "" {
			desc += "\nSection: " + c.Section
		}

		lw.line("BEGIN:VEVENT")
		lw.line(fmt.Sprintf("UID:%s-%d@%s", strings.Join(strings.Fields(c.Code), ""), i, uidDomain))
		lw.line("DTSTAMP:" + stamp)
		lw.line("SUMMARY:" + escapeText(summary))
		lw.line("DESCRIPTION:" + escapeText(desc))
		lw.line("LOCATION:" + escapeText(c.Location))
		lw.line("DTSTART:" + start.Format(localLayout))
		lw.line("DTEND:" + end.Format(localLayout))
		lw.line(fmt.Sprintf("RRULE:FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", strings.Join(c.Days, ","), until.Format(localLayout)))
		lw.line("END:VEVENT")
	}

	lw.line("END:VCALENDAR")
	if lw.err != nil {
		return fmt.Errorf("failed to write calendar: %w", lw.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func atClock(day time.Time, c Clock) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, time.Local)
}

// lineWriter emits CRLF-terminated, folded content lines and keeps the
// first write error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, fold(s))
}

// fold splits s into chunks of at most 75 octets without cutting a UTF-8
// sequence; continuation lines start with a single space.
func fold(s string) string {
	var b strings.Builder
	limit := maxLineOctets
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		limit = maxLineOctets - 1
	}
	b.WriteString(s)
	b.WriteString("\r\n")
	return b.String()
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
