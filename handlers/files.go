package handlers

import (
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/logger"
	"p9e.in/lms/pkg/storage"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
var multipartMemory int64 = 32 << 20

type uploadedFile struct {
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
}

func parseUpload(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return apperr.BadRequest("bad multipart form: %v", err)
	}
	return nil
}

func docType(r *http.Request) string {
	t := strings.TrimSpace(r.URL.Query().Get("doc_type"))
	if t == "" {
		t = "general"
	}
	return t
}

func (h *Handler) save(r *http.Request, fh *multipart.FileHeader, category storage.Category, folder string) (*storage.Stored, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.BadRequest("open upload %s: %v", fh.Filename, err)
	}
	defer f.Close()
	return h.files.Save(r.Context(), f, fh.Filename, category, folder)
}

// UploadLogo stores one image under logos.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(r); err != nil {
		writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()
	_, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperr.BadRequest("missing file field"))
		return
	}

	stored, err := h.save(r, fh, storage.CategoryImage, storage.FolderLogos)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"file_url": stored.URL,
		"filename": fh.Filename,
	})
}

// UploadDocument stores one document under documents/<doc_type>.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(r); err != nil {
		writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()
	_, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperr.BadRequest("missing file field"))
		return
	}

	dt := docType(r)
	stored, err := h.save(r, fh, storage.CategoryDocument, path.Join(storage.FolderDocuments, storage.SanitizeSegment(dt)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"file_url": stored.URL,
		"filename": fh.Filename,
		"doc_type": dt,
	})
}

// UploadMultiple stores every "files" part as a document. If one file is
// rejected the ones already stored by this request are removed.
func (h *Handler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(r); err != nil {
		writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, r, apperr.BadRequest("missing files field"))
		return
	}

	folder := path.Join(storage.FolderDocuments, storage.SanitizeSegment(docType(r)))
	uploaded := make([]uploadedFile, 0, len(headers))
	for _, fh := range headers {
		stored, err := h.save(r, fh, storage.CategoryDocument, folder)
		if err != nil {
			for _, u := range uploaded {
				if _, derr := h.files.Delete(r.Context(), u.FileURL); derr != nil {
					logger.Warnf(r.Context(), "rollback upload %s: %v", u.FileURL, derr)
				}
			}
			writeError(w, r, err)
			return
		}
		uploaded = append(uploaded, uploadedFile{FileURL: stored.URL, Filename: fh.Filename})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"files":   uploaded,
		"count":   len(uploaded),
	})
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("file_url"))
	if ref == "" {
		writeError(w, r, apperr.Validation("file_url", "file_url is required"))
		return
	}

	deleted, err := h.files.Delete(r.Context(), ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, r, apperr.NotFound("File not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "File deleted successfully",
	})
}
