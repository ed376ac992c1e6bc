package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/index/internal/calendar"
	"github.com/MrSnakeDoc/index/internal/chat"
	"github.com/MrSnakeDoc/index/internal/domain"
	"github.com/MrSnakeDoc/index/internal/generator"
	"github.com/MrSnakeDoc/index/internal/graph"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/password"
	"github.com/MrSnakeDoc/index/internal/qr"
	"github.com/MrSnakeDoc/index/internal/settings"
)

// defaultBodyLimit caps JSON request bodies that are not file uploads.
const defaultBodyLimit = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps err to a status code. Client errors echo the message, server
// errors are logged and answered with a generic body.
func fail(w http.ResponseWriter, d deps.Deps, err error) {
	status := statusFor(err)
	if status >= 500 {
		d.Logger.Error("request failed", logger.Error(err))
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	var (
		pwErr    *password.ValidationError
		graphErr *graph.ValidationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, settings.ErrUnknownKey),
		errors.Is(err, settings.ErrBookmarkNotFound),
		errors.Is(err, settings.ErrGraphEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, settings.ErrDuplicateBookmark):
		return http.StatusConflict
	case errors.Is(err, chat.ErrAssistantDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &pwErr), errors.As(err, &graphErr),
		errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrInvalidBookmark),
		errors.Is(err, settings.ErrInvalidImport),
		errors.Is(err, settings.ErrInvalidOrder),
		errors.Is(err, password.ErrUnsupportedAlgorithm),
		errors.Is(err, calendar.ErrNoCourses),
		errors.Is(err, calendar.ErrInvalidSemester),
		errors.Is(err, calendar.ErrUnreadableWorkbook),
		errors.Is(err, generator.ErrInvalidOptions),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, qr.ErrEmptyText),
		errors.Is(err, qr.ErrTextTooLong),
		errors.Is(err, qr.ErrNoCode),
		errors.Is(err, qr.ErrInvalidSize),
		errors.Is(err, qr.ErrNotAnImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// decodeJSON reads a JSON body of at most defaultBodyLimit bytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, defaultBodyLimit)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return badRequest("request body is empty")
		}
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// readBody reads at most limit bytes.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// uploadLimit is the configured upload cap, 10 MiB when unset.
func uploadLimit(d deps.Deps) int64 {
	if d.UploadMaxBytes > 0 {
		return d.UploadMaxBytes
	}
	return 10 << 20
}
