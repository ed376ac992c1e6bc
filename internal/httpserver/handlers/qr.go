package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/qr"
)

type qrEncodeRequest struct {
	Text string `json:"text"`
	Size int    `json:"size"`
}

type qrDecodeResponse struct {
	Text string `json:"text"`
}

// QREncode returns the PNG for {"text", "size"}.
func QREncode(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req qrEncodeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			fail(w, d, err)
			return
		}
		png, err := qr.Encode(req.Text, req.Size)
		if err != nil {
			fail(w, d, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

// QRDecode reads an image sent either as multipart field "image" or as
// the raw request body.
func QRDecode(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, uploadLimit(d))

		var (
			text string
			err  error
		)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			text, err = decodeUpload(r, uploadLimit(d))
		} else {
			text, err = qr.Decode(r.Body)
		}
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, qrDecodeResponse{Text: text})
	}
}

func decodeUpload(r *http.Request, limit int64) (string, error) {
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", err
		}
		return "", badRequest("expected a multipart form: %v", err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, _, err := r.FormFile("image")
	if err != nil {
		return "", badRequest("missing image in field \"image\"")
	}
	defer func() { _ = file.Close() }()
	return qr.Decode(file)
}
