package media_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ysfmrbt/skillwise/internal/services/media"
)

func TestAddMaterialReturnsUploadURL(t *testing.T) {
	svc, store, storage := newMediaServiceForTest(t)

	material, err := svc.AddMaterial(context.Background(), "course-1", "syllabus.pdf")
	if err != nil {
		t.Fatalf("add material: %v", err)
	}
	if !strings.HasPrefix(material.URL, "put:") {
		t.Fatalf("expected upload url, got %q", material.URL)
	}
	if material.FileName != "syllabus.pdf" {
		t.Fatalf("file name=%q", material.FileName)
	}
	if len(store.records) != 1 {
		t.Fatalf("stored=%d want 1", len(store.records))
	}

	key := store.records[0].ObjectKey
	if !strings.HasPrefix(key, "courses/course-1/materials/") || !strings.HasSuffix(key, "-syllabus.pdf") {
		t.Fatalf("unexpected object key: %q", key)
	}
	if !storage.bucketEnsured {
		t.Fatalf("bucket was not ensured before upload")
	}
}

func TestAddMaterialStripsClientPaths(t *testing.T) {
	svc, store, _ := newMediaServiceForTest(t)

	if _, err := svc.AddMaterial(context.Background(), "course-1", "..\\..\\etc/passwd"); err != nil {
		t.Fatalf("add material: %v", err)
	}
	if got := store.records[0].FileName; got != "passwd" {
		t.Fatalf("file name=%q want %q", got, "passwd")
	}
}

func TestAddMaterialValidation(t *testing.T) {
	svc, _, _ := newMediaServiceForTest(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		courseID string
		fileName string
	}{
		{"empty course", "", "a.pdf"},
		{"empty file name", "course-1", "  "},
		{"path only", "course-1", "/"},
		{"name too long", "course-1", strings.Repeat("x", 256)},
	}
	for _, tc := range cases {
		if _, err := svc.AddMaterial(ctx, tc.courseID, tc.fileName); !errors.Is(err, media.ErrValidation) {
			t.Fatalf("%s: got err=%v want ErrValidation", tc.name, err)
		}
	}
}

func TestAddMaterialUnknownCourse(t *testing.T) {
	svc, _, _ := newMediaServiceForTest(t)

	if _, err := svc.AddMaterial(context.Background(), "course-404", "a.pdf"); !errors.Is(err, media.ErrCourseNotFound) {
		t.Fatalf("got err=%v want ErrCourseNotFound", err)
	}
}

func TestListMaterialsPresignsEveryRecord(t *testing.T) {
	svc, _, _ := newMediaServiceForTest(t)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf"} {
		if _, err := svc.AddMaterial(ctx, "course-1", name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	materials, err := svc.ListMaterials(ctx, "course-1")
	if err != nil {
		t.Fatalf("list materials: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("materials=%d want 2", len(materials))
	}
	for _, m := range materials {
		if !strings.HasPrefix(m.URL, "get:") {
			t.Fatalf("expected download url, got %q", m.URL)
		}
	}
}

func TestDeleteMaterialRemovesObject(t *testing.T) {
	svc, store, storage := newMediaServiceForTest(t)
	ctx := context.Background()

	material, err := svc.AddMaterial(ctx, "course-1", "a.pdf")
	if err != nil {
		t.Fatalf("add material: %v", err)
	}
	objectKey := store.records[0].ObjectKey

	if err := svc.DeleteMaterial(ctx, material.ID); err != nil {
		t.Fatalf("delete material: %v", err)
	}
	if len(store.records) != 0 {
		t.Fatalf("record survived delete")
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != objectKey {
		t.Fatalf("object not deleted: %v", storage.deleted)
	}
}

func TestDeleteMaterialMissing(t *testing.T) {
	svc, _, _ := newMediaServiceForTest(t)

	if err := svc.DeleteMaterial(context.Background(), "material-404"); !errors.Is(err, media.ErrNotFound) {
		t.Fatalf("got err=%v want ErrNotFound", err)
	}
}

func newMediaServiceForTest(t *testing.T) (*media.Service, *fakeMaterialStore, *fakeObjectStorage) {
	t.Helper()

	store := &fakeMaterialStore{}
	storage := &fakeObjectStorage{}
	courses := fakeCourseStore{"course-1": true}
	return media.NewService(store, storage, courses), store, storage
}

type fakeMaterialStore struct {
	records []media.MaterialRecord
	nextID  int
}

func (s *fakeMaterialStore) CreateMaterial(_ context.Context, courseID, fileName, objectKey string) (media.MaterialRecord, error) {
	s.nextID++
	record := media.MaterialRecord{
		ID:        "material-" + strconv.Itoa(s.nextID),
		CourseID:  courseID,
		FileName:  fileName,
		ObjectKey: objectKey,
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *fakeMaterialStore) ListMaterials(_ context.Context, courseID string) ([]media.MaterialRecord, error) {
	var out []media.MaterialRecord
	for _, rec := range s.records {
		if rec.CourseID == courseID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeMaterialStore) GetMaterial(_ context.Context, id string) (media.MaterialRecord, error) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return media.MaterialRecord{}, media.ErrNotFound
}

func (s *fakeMaterialStore) DeleteMaterial(_ context.Context, id string) error {
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return media.ErrNotFound
}

type fakeObjectStorage struct {
	bucketEnsured bool
	deleted       []string
}

func (s *fakeObjectStorage) EnsureBucket(context.Context) error {
	s.bucketEnsured = true
	return nil
}

func (s *fakeObjectStorage) PresignPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "put:" + key, nil
}

func (s *fakeObjectStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "get:" + key, nil
}

func (s *fakeObjectStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeCourseStore map[string]bool

func (s fakeCourseStore) Exists(_ context.Context, id string) (bool, error) {
	return s[id], nil
}
