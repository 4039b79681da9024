package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/gin-gonic/gin"
)

const prescriptionFormField = "prescription"

func (s *HTTPServer) listPrescriptions(c *gin.Context) {
	items, err := s.svc.Prescriptions.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prescriptions": items})
}

func (s *HTTPServer) uploadPrescription(c *gin.Context) {
	fh, err := c.FormFile(prescriptionFormField)
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.writeError(c, common.ErrPayloadTooLarge)
			return
		}
		s.writeError(c, &common.MissingFieldError{Field: prescriptionFormField})
		return
	}
	if fh.Filename == "" {
		badRequest(c, "no file selected")
		return
	}
	if fh.Size > common.MaxUploadSize {
		s.writeError(c, common.ErrPayloadTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.writeError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer closeQuietly(f)

	data, err := io.ReadAll(io.LimitReader(f, common.MaxUploadSize+1))
	if err != nil {
		s.writeError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	p, err := s.svc.Prescriptions.Upload(c.Request.Context(), currentUser(c), fh.Filename, data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prescription": p})
}

// prescriptionFile streams the image, or redirects to a presigned URL when
// the content store hands one out.
func (s *HTTPServer) prescriptionFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "prescription")
		return
	}

	f, err := s.svc.Prescriptions.Open(c.Request.Context(), currentUser(c), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			notFound(c, "prescription")
			return
		}
		s.writeError(c, err)
		return
	}

	if f.URL != "" {
		c.Redirect(http.StatusTemporaryRedirect, f.URL)
		return
	}
	defer closeQuietly(f.Body)

	contentType := mime.TypeByExtension(path.Ext(f.Prescription.StoredFilename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, f.Body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("inline", map[string]string{"filename": f.Prescription.OriginalFilename}),
	})
}

func (s *HTTPServer) deletePrescription(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "prescription")
		return
	}

	deleted, err := s.svc.Prescriptions.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !deleted {
		notFound(c, "prescription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "prescription deleted"})
}
