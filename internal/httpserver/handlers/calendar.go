package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/index/internal/calendar"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
)

const icsFilename = "schedule.ics"

type coursesResponse struct {
	Courses []calendar.CourseRecord `json:"courses"`
}

// Calendar converts an uploaded Workday schedule (multipart field "file")
// into an ICS download, or into JSON with format=json. first_day and
// last_day default to the configured semester.
func Calendar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, uploadLimit(d))
		if err := r.ParseMultipartForm(uploadLimit(d)); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				fail(w, d, err)
				return
			}
			fail(w, d, badRequest("expected a multipart form: %v", err))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("file")
		if err != nil {
			fail(w, d, badRequest("missing spreadsheet in field \"file\""))
			return
		}
		defer func() { _ = file.Close() }()

		courses, err := calendar.ParseWorkbook(file)
		if err != nil {
			fail(w, d, err)
			return
		}
		d.Logger.Info("schedule parsed",
			logger.String("file", header.Filename),
			logger.Int("courses", len(courses)))

		if r.FormValue("format") == "json" {
			writeJSON(w, http.StatusOK, coursesResponse{Courses: courses})
			return
		}

		sem, err := calendar.ParseSemester(
			formOr(r, "first_day", d.SemesterStart),
			formOr(r, "last_day", d.SemesterEnd),
		)
		if err != nil {
			fail(w, d, err)
			return
		}

		var buf bytes.Buffer
		if err := calendar.EmitICS(&buf, courses, sem); err != nil {
			fail(w, d, err)
			return
		}
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+icsFilename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func formOr(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}
