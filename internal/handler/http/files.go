package http

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/go-chi/chi/v5"
)

const (
	uploadFormField  = "file"
	replaceFormField = "replace"

	multipartOverhead = 1 << 20
)

// uploadFile stores the multipart "file" field in the bucket named by the
// path. An optional "replace" field holds the URL of a file to delete once
// the upload succeeds.
func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")

	file, cleanup, ok := readUpload(w, r, bucket, "handler.uploadFile")
	if !ok {
		return
	}
	defer cleanup()

	var (
		res models.UploadResult
		err error
	)
	if old := r.FormValue(replaceFormField); old != "" {
		res, err = h.services.UploadService.Replace(r.Context(), file, old)
	} else {
		res, err = h.services.UploadService.Upload(r.Context(), file)
	}
	if err != nil {
		writeServiceError(w, r, err, "handler.uploadFile")
		return
	}

	utils.WriteJSON(w, res, http.StatusCreated)
}

// readUpload parses the multipart body of r and buffers its file field.
// On failure the error reply is already written and ok is false.
func readUpload(w http.ResponseWriter, r *http.Request, bucket, funcName string) (file models.FileUpload, cleanup func(), ok bool) {
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, models.MaxUploadSize()+multipartOverhead)
	if err := r.ParseMultipartForm(models.MaxUploadSize()); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info().Err(err).Str("func", funcName).Send()
			utils.WriteError(w, msgBodyTooLarge, http.StatusRequestEntityTooLarge)
			return models.FileUpload{}, nil, false
		}
		log.Info().Err(err).Str("func", funcName).Msg("invalid multipart form")
		utils.WriteError(w, msgMissingFile, http.StatusBadRequest)
		return models.FileUpload{}, nil, false
	}

	part, header, err := r.FormFile(uploadFormField)
	if err != nil {
		log.Info().Err(err).Str("func", funcName).Send()
		utils.WriteError(w, msgMissingFile, http.StatusBadRequest)
		r.MultipartForm.RemoveAll()
		return models.FileUpload{}, nil, false
	}

	data, err := io.ReadAll(part)
	part.Close()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading uploaded file")
		utils.WriteError(w, msgUploadFailed, http.StatusInternalServerError)
		r.MultipartForm.RemoveAll()
		return models.FileUpload{}, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(header.Filename)); byExt != "" {
			contentType = byExt
		}
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	file = models.FileUpload{
		Bucket:      bucket,
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}

	return file, func() { r.MultipartForm.RemoveAll() }, true
}
