package http

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/service"
	"github.com/MKhiriev/umay/internal/utils"
)

const (
	mediaFormField  = "file"
	sniffLen        = 512
	multipartMemory = 8 << 20
	// multipartOverhead leaves room for boundaries and headers.
	multipartOverhead = 1 << 20
)

// uploadMedia accepts one multipart "file" field. The content type is
// sniffed from the data, the client supplied one is ignored.
func (h *Handler) uploadMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	account, ok := actor(w, r)
	if !ok {
		return
	}

	if h.cfg.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, "*Handler.uploadMedia", service.ErrFileTooLarge)
			return
		}
		log.Err(err).Str("func", "*Handler.uploadMedia").Msg("invalid multipart form")
		utils.WriteError(w, app.MsgInvalidDataProvided, mediaFormField, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(mediaFormField)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidDataProvided, mediaFormField, http.StatusBadRequest)
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.uploadMedia").Msg("failed to read upload")
		utils.WriteError(w, app.MsgInternalServerError, "", http.StatusInternalServerError)
		return
	}
	head = head[:n]

	uploaded, err := h.services.MediaService.Upload(r.Context(), account, service.MediaUpload{
		Name:        header.Filename,
		ContentType: http.DetectContentType(head),
		Size:        header.Size,
		Body:        io.MultiReader(bytes.NewReader(head), file),
	})
	if err != nil {
		writeError(w, r, "*Handler.uploadMedia", err)
		return
	}

	utils.WriteJSON(w, uploaded, http.StatusCreated)
}

// filesOnly hides directories so /media/ never returns a listing.
type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
