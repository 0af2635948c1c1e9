package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/progress"
	"github.com/businesscontrol/portal/internal/storage"
	"go.uber.org/zap"
)

// FileStorage is the interface that wraps methods for uploaded file storage
type FileStorage interface {
	// Method Put stores the content of "r" under "key" and returns the stored object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.Object, error)
	// Method Open returns the content stored under "key".
	//
	// If the key is malformed storage.ErrInvalidKey is returned.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Method Delete removes the object stored under "key". Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// Method Presign returns a direct upload URL for "key" valid for "lifetime".
	//
	// If the driver cannot presign, storage.ErrPresignUnsupported is returned.
	Presign(ctx context.Context, key, contentType string, lifetime time.Duration) (*storage.Presigned, error)
}

// UploadFile is one file of a submission form
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// submissionService implements SubmissionService
type submissionService struct {
	enrollmentRepo  EnrollmentRepository
	weekRepo        WeekRepository
	submissionRepo  SubmissionRepository
	files           FileStorage
	presignLifetime time.Duration
	logger          *zap.Logger
	now             func() time.Time
}

// NewSubmissionService creates a new submission service.
// A zero presignLifetime means one hour.
func NewSubmissionService(
	enrollmentRepo EnrollmentRepository,
	weekRepo WeekRepository,
	submissionRepo SubmissionRepository,
	files FileStorage,
	presignLifetime time.Duration,
	logger *zap.Logger,
) *submissionService {
	if presignLifetime <= 0 {
		presignLifetime = time.Hour
	}
	return &submissionService{
		enrollmentRepo:  enrollmentRepo,
		weekRepo:        weekRepo,
		submissionRepo:  submissionRepo,
		files:           files,
		presignLifetime: presignLifetime,
		logger:          logger,
		now:             time.Now,
	}
}

// Submit saves a draft or hands in the work of an enrollment of userID for a week.
//
// Files with no content are skipped. Every file is checked against the allow-list before anything is stored.
func (s *submissionService) Submit(ctx context.Context, userID int, req *models.SubmitRequest, files []UploadFile) (*models.Submission, error) {
	enrollment, err := loadOwnedEnrollment(ctx, s.enrollmentRepo, userID, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	week, err := s.weekRepo.GetByID(ctx, req.WeekID)
	if err != nil {
		return nil, err
	}
	if week.CohortID != enrollment.CohortID {
		return nil, fmt.Errorf("week %w", models.ErrNotFound)
	}

	current := models.StatusNotStarted
	existing, err := s.submissionRepo.GetByEnrollmentAndWeek(ctx, enrollment.ID, week.ID)
	switch {
	case err == nil:
		current = existing.Status
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	// Decide the new status
	now := s.now()
	sub := &models.Submission{
		EnrollmentID: enrollment.ID,
		WeekID:       week.ID,
		TextAnswer:   req.TextAnswer,
	}
	if req.Draft {
		sub.Status = models.StatusInProgress
	} else {
		sub.Status = progress.SubmitStatus(week.Deadline, now)
		sub.SubmittedAt = &now
	}
	if !progress.CanTransition(current, sub.Status) {
		return nil, models.ErrAlreadySubmitted
	}

	// Validate every file first so a rejected upload leaves nothing behind
	uploads := make([]UploadFile, 0, len(files))
	for _, f := range files {
		if f.Size == 0 || f.Content == nil {
			continue
		}
		if !storage.IsAllowedContentType(f.ContentType) {
			return nil, models.ErrFileTypeNotAllowed
		}
		uploads = append(uploads, f)
	}

	stored := make([]models.SubmissionFile, 0, len(uploads))
	keys := make([]string, 0, len(uploads))
	for _, f := range uploads {
		key := storage.GenerateKey(f.Name)
		obj, err := s.files.Put(ctx, key, f.Content, f.Size, f.ContentType)
		if err != nil {
			s.removeObjects(ctx, keys)
			return nil, fmt.Errorf("failed to store file %s: %w", f.Name, err)
		}
		keys = append(keys, key)
		stored = append(stored, models.SubmissionFile{
			FileName: f.Name,
			FileURL:  obj.URL,
			FileType: f.ContentType,
			Size:     obj.Size,
		})
	}

	if err := s.submissionRepo.Save(ctx, sub, stored); err != nil {
		s.removeObjects(ctx, keys)
		return nil, err
	}

	s.logger.Info("submission saved",
		zap.Int("submissionId", sub.ID),
		zap.Int("enrollmentId", enrollment.ID),
		zap.Int("weekNumber", week.WeekNumber),
		zap.String("status", string(sub.Status)),
		zap.Int("files", len(stored)),
	)

	// Reload to return the earlier files too
	saved, err := s.submissionRepo.GetByEnrollmentAndWeek(ctx, enrollment.ID, week.ID)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Presign returns a direct upload URL for an allowed file type
func (s *submissionService) Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error) {
	if !storage.IsAllowedContentType(req.ContentType) {
		return nil, models.ErrFileTypeNotAllowed
	}

	presigned, err := s.files.Presign(ctx, storage.GenerateKey(req.FileName), req.ContentType, s.presignLifetime)
	if err != nil {
		return nil, err
	}

	return &models.PresignResponse{UploadURL: presigned.UploadURL, FileURL: presigned.FileURL}, nil
}

// OpenFile returns a stored upload. Malformed and missing keys are reported as not found.
func (s *submissionService) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.files.Open(ctx, key)
	if errors.Is(err, storage.ErrInvalidKey) || errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// removeObjects deletes stored objects of a failed submission
func (s *submissionService) removeObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.files.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.Error(err), zap.String("key", key))
		}
	}
}
