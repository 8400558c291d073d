package transcribe

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/securesense-bridge/internal/httpx"
)

const formField = "file"

type Handler struct {
	svc      Service
	maxBytes int64
}

func NewHandler(svc Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// HandleUpload — POST /api/upload
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	part, filename, err := filePart(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer part.Close()

	res, err := h.svc.Transcribe(r.Context(), Upload{Filename: filename, Body: part})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int("chars", len(res.Text)).Msg("[upload] transcribed")
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, ErrNoFilePart), errors.As(err, &tooLarge):
		log.Error().Err(err).Msg("[upload] no file part")
		httpx.WriteError(w, http.StatusBadRequest, "No file part")
	case errors.Is(err, ErrNoSelectedFile):
		log.Error().Msg("[upload] no selected file")
		httpx.WriteError(w, http.StatusBadRequest, "No selected file")
	default:
		log.Error().Err(err).Msg("[upload] processing failed")
		httpx.WriteError(w, http.StatusInternalServerError, "An error occurred while processing the file")
	}
}

// filePart streams the multipart body up to the first "file" part that
// carries a filename parameter and returns it with the raw filename.
// A "file" field without a filename parameter is a plain form value and
// does not count. A body that is not readable multipart has no file part.
func filePart(r *http.Request) (*multipart.Part, string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", errors.Join(ErrNoFilePart, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", ErrNoFilePart
		}
		if err != nil {
			return nil, "", errors.Join(ErrNoFilePart, err)
		}

		if part.FormName() != formField {
			part.Close()
			continue
		}
		filename, ok := dispositionFilename(part)
		if !ok {
			part.Close()
			continue
		}
		if filename == "" {
			part.Close()
			return nil, "", ErrNoSelectedFile
		}
		return part, filename, nil
	}
}

// dispositionFilename reports the filename parameter of the part's
// Content-Disposition, and whether the parameter is present at all.
func dispositionFilename(p *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	return name, ok
}
