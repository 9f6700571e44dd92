package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"course_catalog/internal/model"
	"course_catalog/internal/repository"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrNoFile           = errors.New("no file selected")
	ErrUnsupportedType  = errors.New("file type not allowed. only png, jpg, jpeg, gif are accepted")
	ErrFileSizeExceeded = errors.New("file size exceeds limit")
)

const MaxImageSize = 5 * 1024 * 1024 // 5MB

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// CourseService defines operations on the course catalog
type CourseService interface {
	CreateCourse(ctx context.Context, req model.CreateCourseRequest) (*model.Course, error)
	GetCourse(ctx context.Context, id int) (*model.Course, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	UpdateCourse(ctx context.Context, id int, req model.UpdateCourseRequest) (*model.Course, error)
	AddModule(ctx context.Context, courseID int, req model.ModuleRequest) (*model.Module, error)
	DeleteCourse(ctx context.Context, id int) error
	StoreImage(file *multipart.FileHeader) (string, error)
}

type courseService struct {
	repo       repository.CourseRepository
	uploadsDir string
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, uploadsDir string) CourseService {
	return &courseService{repo: repo, uploadsDir: uploadsDir}
}

// CreateCourse inserts a course together with its modules as one unit
func (s *courseService) CreateCourse(ctx context.Context, req model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Image:       req.Image,
		Modules:     modulesFromRequests(req.Modules),
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course in repo: %w", err)
	}
	return course, nil
}

// GetCourse retrieves one course with its modules
func (s *courseService) GetCourse(ctx context.Context, id int) (*model.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find course by ID: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

// ListCourses retrieves every course with its modules
func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses from repo: %w", err)
	}
	return courses, nil
}

// UpdateCourse merge-patches the course fields (only supplied keys change) and
// fully replaces the module set with the supplied list. An absent list clears
// the set. The two steps commit as one unit.
func (s *courseService) UpdateCourse(ctx context.Context, id int, req model.UpdateCourseRequest) (*model.Course, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find course for update: %w", err)
	}
	if existing == nil {
		return nil, ErrCourseNotFound
	}

	// Apply updates
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Difficulty != nil {
		existing.Difficulty = *req.Difficulty
	}
	if req.Image != nil {
		existing.Image = *req.Image
	}
	existing.Modules = modulesFromRequests(req.Modules)

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update course in repo: %w", err)
	}
	return existing, nil
}

// AddModule appends one module to an existing course
func (s *courseService) AddModule(ctx context.Context, courseID int, req model.ModuleRequest) (*model.Module, error) {
	course, err := s.repo.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find course for module: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	module := &model.Module{
		Title:    req.Title,
		Content:  req.Content,
		Video:    req.Video,
		CourseID: courseID,
	}
	if err := s.repo.AddModule(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to add module in repo: %w", err)
	}
	return module, nil
}

// DeleteCourse removes a course and all its modules
func (s *courseService) DeleteCourse(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find course for deletion: %w", err)
	}
	if existing == nil {
		return ErrCourseNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course in repo: %w", err)
	}
	return nil
}

// StoreImage validates and writes an uploaded image, returning the reference
// path clients use to retrieve it.
func (s *courseService) StoreImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return "", ErrNoFile
	}
	if fileHeader.Size > MaxImageSize {
		return "", ErrFileSizeExceeded
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExts := map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}
	if !allowedExts[ext] {
		return "", ErrUnsupportedType
	}

	fileName := SanitizeFilename(fileHeader.Filename)
	if fileName == "" {
		return "", ErrNoFile
	}

	if err := os.MkdirAll(s.uploadsDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadsDir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + fileName, nil
}

// SanitizeFilename strips any directory components and collapses characters
// outside [A-Za-z0-9._-], so a hostile filename cannot escape the uploads dir.
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" || name == "_" {
		return ""
	}
	return name
}

func modulesFromRequests(reqs []model.ModuleRequest) []model.Module {
	modules := make([]model.Module, 0, len(reqs))
	for _, mr := range reqs {
		modules = append(modules, model.Module{
			Title:   mr.Title,
			Content: mr.Content,
			Video:   mr.Video,
		})
	}
	return modules
}
