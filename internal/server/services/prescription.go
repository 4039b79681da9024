package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/blobstore"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PrescriptionFile is either a stream of the stored image or, for stores
// that support it, a presigned URL to fetch it from. Exactly one of Body
// and URL is set.
type PrescriptionFile struct {
	Prescription *models.Prescription
	Body         io.ReadCloser
	URL          string
}

// PrescriptionService keeps prescription rows and their image bytes in
// step. The row is the record of truth: files are written before the row
// and removed before it, and file failures never block row removal.
type PrescriptionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
	logger      logging.Logger
}

func NewPrescriptionService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store, logger logging.Logger) *PrescriptionService {
	return &PrescriptionService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		logger:      logger.With("service", "prescriptions"),
	}
}

// Upload validates and stores an image, then records it for userID.
func (s *PrescriptionService) Upload(ctx context.Context, userID, originalName string, data []byte) (*models.Prescription, error) {
	if len(data) > common.MaxUploadSize {
		return nil, common.ErrPayloadTooLarge
	}

	name, ext, err := checkImageName(originalName)
	if err != nil {
		return nil, err
	}
	stored := uuid.New().String() + "." + ext

	if err := s.blobs.Put(ctx, stored, data); err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	p, err := s.repomanager.Prescriptions(s.db).Create(ctx, userID, &models.Prescription{
		StoredFilename:   stored,
		OriginalFilename: name,
	})
	if err != nil {
		if _, rmErr := s.blobs.Remove(ctx, stored); rmErr != nil {
			s.logger.Warn(ctx, "failed to remove orphaned file", "name", stored, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info(ctx, "prescription stored", "user_id", userID, "id", p.ID, "name", stored, "size", len(data))
	return p, nil
}

func (s *PrescriptionService) List(ctx context.Context, userID string) ([]*models.Prescription, error) {
	return s.repomanager.Prescriptions(s.db).List(ctx, userID)
}

// Delete removes the stored file (best effort) and the row. It reports
// false when the prescription is missing or belongs to another user.
func (s *PrescriptionService) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	repo := s.repomanager.Prescriptions(s.db)

	p, err := repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}

	removed, err := s.blobs.Remove(ctx, p.StoredFilename)
	switch {
	case err != nil:
		s.logger.Warn(ctx, "failed to remove prescription file", "name", p.StoredFilename, "error", err)
	case !removed:
		s.logger.Debug(ctx, "prescription file already gone", "name", p.StoredFilename)
	}

	return repo.Delete(ctx, userID, id)
}

// Open returns the stored image of a prescription owned by userID.
func (s *PrescriptionService) Open(ctx context.Context, userID string, id int64) (*PrescriptionFile, error) {
	p, err := s.repomanager.Prescriptions(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if ps, ok := s.blobs.(blobstore.Presigner); ok {
		url, err := ps.PresignGet(ctx, p.StoredFilename)
		if err != nil {
			return nil, fmt.Errorf("error presigning file: %w", err)
		}
		return &PrescriptionFile{Prescription: p, URL: url}, nil
	}

	body, err := s.blobs.Open(ctx, p.StoredFilename)
	if err != nil {
		return nil, err
	}
	return &PrescriptionFile{Prescription: p, Body: body}, nil
}

// checkImageName returns the sanitized file name and its lower-case
// extension, or common.ErrInvalidFileType.
func checkImageName(original string) (string, string, error) {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || dot == len(base)-1 {
		return "", "", common.ErrInvalidFileType
	}

	ext := strings.ToLower(base[dot+1:])
	if _, ok := common.AllowedImageExtensions[ext]; !ok {
		return "", "", common.ErrInvalidFileType
	}

	name := sanitizeFilename(base)
	if !strings.HasSuffix(strings.ToLower(name), "."+ext) {
		name = "prescription." + ext
	}
	return name, ext, nil
}

// sanitizeFilename keeps ASCII letters, digits, '_', '-' and '.', turns
// whitespace into '_' and trims leading/trailing dots and underscores.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
