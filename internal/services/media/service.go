package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("material not found")
	ErrCourseNotFound = errors.New("course not found")
)

const (
	signedURLTTL   = 15 * time.Minute
	maxFileNameLen = 255
)

type MaterialRecord struct {
	ID        string
	CourseID  string
	FileName  string
	ObjectKey string
	CreatedAt time.Time
}

// Material is a record plus a presigned URL the client can use directly.
type Material struct {
	ID        string
	CourseID  string
	FileName  string
	URL       string
	CreatedAt time.Time
}

type Store interface {
	CreateMaterial(ctx context.Context, courseID, fileName, objectKey string) (MaterialRecord, error)
	ListMaterials(ctx context.Context, courseID string) ([]MaterialRecord, error)
	GetMaterial(ctx context.Context, id string) (MaterialRecord, error)
	DeleteMaterial(ctx context.Context, id string) error
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type CourseStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store   Store
	storage ObjectStorage
	courses CourseStore
}

func NewService(store Store, storage ObjectStorage, courses CourseStore) *Service {
	return &Service{
		store:   store,
		storage: storage,
		courses: courses,
	}
}

// AddMaterial registers a material for a course and returns the record with a
// presigned PUT url. The client uploads the object directly to storage.
func (s *Service) AddMaterial(ctx context.Context, courseID, fileName string) (Material, error) {
	courseID = strings.TrimSpace(courseID)
	fileName = sanitizeFileName(fileName)
	if courseID == "" || fileName == "" || len(fileName) > maxFileNameLen {
		return Material{}, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return Material{}, fmt.Errorf("media dependencies are not configured")
	}

	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return Material{}, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return Material{}, ErrCourseNotFound
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Material{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey := buildMaterialObjectKey(courseID, fileName)

	record, err := s.store.CreateMaterial(ctx, courseID, fileName, objectKey)
	if err != nil {
		return Material{}, fmt.Errorf("create material record: %w", err)
	}

	uploadURL, err := s.storage.PresignPut(ctx, record.ObjectKey, signedURLTTL)
	if err != nil {
		return Material{}, fmt.Errorf("presign upload url: %w", err)
	}

	return Material{
		ID:        record.ID,
		CourseID:  record.CourseID,
		FileName:  record.FileName,
		URL:       uploadURL,
		CreatedAt: record.CreatedAt,
	}, nil
}

// ListMaterials returns the course materials with presigned GET urls.
func (s *Service) ListMaterials(ctx context.Context, courseID string) ([]Material, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return nil, fmt.Errorf("media dependencies are not configured")
	}

	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	records, err := s.store.ListMaterials(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list material records: %w", err)
	}

	materials := make([]Material, 0, len(records))
	for _, rec := range records {
		url, err := s.storage.PresignGet(ctx, rec.ObjectKey, signedURLTTL)
		if err != nil {
			return nil, fmt.Errorf("presign material url: %w", err)
		}
		materials = append(materials, Material{
			ID:        rec.ID,
			CourseID:  rec.CourseID,
			FileName:  rec.FileName,
			URL:       url,
			CreatedAt: rec.CreatedAt,
		})
	}

	return materials, nil
}

func (s *Service) DeleteMaterial(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return fmt.Errorf("media dependencies are not configured")
	}

	record, err := s.store.GetMaterial(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMaterial(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, record.ObjectKey); err != nil {
		return fmt.Errorf("delete stored object: %w", err)
	}

	return nil
}

func buildMaterialObjectKey(courseID, fileName string) string {
	return fmt.Sprintf("courses/%s/materials/%s-%s", courseID, uuid.NewString(), fileName)
}

func sanitizeFileName(fileName string) string {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return ""
	}
	// Drop any path components the client sent along.
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return base
}
