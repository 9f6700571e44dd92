package service

import (
	"context"
	"mime/multipart"
	"sort"
	"testing"

	"course_catalog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCourseRepo is an in-memory CourseRepository mirroring the real one's
// contract: assignment-ordered ids, module reads ordered by id.
type fakeCourseRepo struct {
	courses      map[int]model.Course
	nextCourseID int
	nextModuleID int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int]model.Course{}, nextCourseID: 1, nextModuleID: 1}
}

func (f *fakeCourseRepo) Create(_ context.Context, course *model.Course) error {
	course.ID = f.nextCourseID
	f.nextCourseID++
	for i := range course.Modules {
		course.Modules[i].ID = f.nextModuleID
		course.Modules[i].CourseID = course.ID
		f.nextModuleID++
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) FindByID(_ context.Context, id int) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	out := c
	out.Modules = append([]model.Module{}, c.Modules...)
	sort.Slice(out.Modules, func(i, j int) bool { return out.Modules[i].ID < out.Modules[j].ID })
	return &out, nil
}

func (f *fakeCourseRepo) FindAll(_ context.Context) ([]model.Course, error) {
	ids := make([]int, 0, len(f.courses))
	for id := range f.courses {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	courses := []model.Course{}
	for _, id := range ids {
		c, _ := f.FindByID(context.Background(), id)
		courses = append(courses, *c)
	}
	return courses, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, course *model.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return assert.AnError
	}
	for i := range course.Modules {
		course.Modules[i].ID = f.nextModuleID
		course.Modules[i].CourseID = course.ID
		f.nextModuleID++
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) AddModule(_ context.Context, module *model.Module) error {
	c, ok := f.courses[module.CourseID]
	if !ok {
		return assert.AnError
	}
	module.ID = f.nextModuleID
	f.nextModuleID++
	c.Modules = append(c.Modules, *module)
	f.courses[module.CourseID] = c
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.courses[id]; !ok {
		return assert.AnError
	}
	delete(f.courses, id)
	return nil
}

func TestCourseService_CreateAndReadBack(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	created, err := svc.CreateCourse(context.Background(), model.CreateCourseRequest{
		Title:       "Intro",
		Description: "first steps",
		Difficulty:  "easy",
		Modules: []model.ModuleRequest{
			{Title: "M1", Content: "c1"},
			{Title: "M2", Content: "c2", Video: "v2"},
			{Title: "M3", Content: "c3"},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Modules, 3)
	assert.Equal(t, "M1", got.Modules[0].Title)
	assert.Equal(t, "M2", got.Modules[1].Title)
	assert.Equal(t, "M3", got.Modules[2].Title)
	assert.Equal(t, "v2", got.Modules[1].Video)
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	_, err := svc.GetCourse(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_UpdateCourse_ReplacesModules(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	created, err := svc.CreateCourse(context.Background(), model.CreateCourseRequest{
		Title:       "Intro",
		Description: "d",
		Difficulty:  "easy",
		Modules:     []model.ModuleRequest{{Title: "Old1", Content: "o1"}, {Title: "Old2", Content: "o2"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateCourse(context.Background(), created.ID, model.UpdateCourseRequest{
		Modules: []model.ModuleRequest{{Title: "New1", Content: "n1"}},
	})
	require.NoError(t, err)

	got, err := svc.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Modules, 1)
	assert.Equal(t, "New1", got.Modules[0].Title)
}

func TestCourseService_UpdateCourse_MergePatchFields(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	created, err := svc.CreateCourse(context.Background(), model.CreateCourseRequest{
		Title:       "Intro",
		Description: "keep me",
		Difficulty:  "easy",
		Image:       "/uploads/a.png",
	})
	require.NoError(t, err)

	newTitle := "Intro v2"
	_, err = svc.UpdateCourse(context.Background(), created.ID, model.UpdateCourseRequest{Title: &newTitle})
	require.NoError(t, err)

	got, err := svc.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro v2", got.Title)
	assert.Equal(t, "keep me", got.Description)
	assert.Equal(t, "easy", got.Difficulty)
	assert.Equal(t, "/uploads/a.png", got.Image)
}

func TestCourseService_UpdateCourse_AbsentModulesClearsSet(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	created, err := svc.CreateCourse(context.Background(), model.CreateCourseRequest{
		Title:       "Intro",
		Description: "d",
		Difficulty:  "easy",
		Modules:     []model.ModuleRequest{{Title: "M1", Content: "c1"}},
	})
	require.NoError(t, err)

	newTitle := "patched"
	_, err = svc.UpdateCourse(context.Background(), created.ID, model.UpdateCourseRequest{Title: &newTitle})
	require.NoError(t, err)

	got, err := svc.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Modules, 0)
}

func TestCourseService_UpdateCourse_NotFound(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	_, err := svc.UpdateCourse(context.Background(), 404, model.UpdateCourseRequest{})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_AddModule(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	created, err := svc.CreateCourse(context.Background(), model.CreateCourseRequest{
		Title: "Intro", Description: "d", Difficulty: "easy",
		Modules: []model.ModuleRequest{{Title: "M1", Content: "c1"}},
	})
	require.NoError(t, err)

	_, err = svc.AddModule(context.Background(), created.ID, model.ModuleRequest{Title: "M2", Content: "c2"})
	require.NoError(t, err)

	got, err := svc.GetCourse(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Modules, 2)
	assert.Equal(t, "M2", got.Modules[1].Title)
}

func TestCourseService_AddModule_CourseNotFound(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	_, err := svc.AddModule(context.Background(), 404, model.ModuleRequest{Title: "M", Content: "c"})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_DeleteCourse(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	created, err := svc.CreateCourse(context.Background(), model.CreateCourseRequest{
		Title: "Intro", Description: "d", Difficulty: "easy",
		Modules: []model.ModuleRequest{{Title: "M1", Content: "c1"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(context.Background(), created.ID))

	_, err = svc.GetCourse(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	err = svc.DeleteCourse(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseService_StoreImage_Validation(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), t.TempDir())

	_, err := svc.StoreImage(nil)
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = svc.StoreImage(&multipart.FileHeader{Filename: ""})
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = svc.StoreImage(&multipart.FileHeader{Filename: "doc.pdf", Size: 10})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.StoreImage(&multipart.FileHeader{Filename: "big.png", Size: MaxImageSize + 1})
	assert.ErrorIs(t, err, ErrFileSizeExceeded)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"logo.png":            "logo.png",
		"../../../etc/passwd": "passwd",
		`..\..\evil.png`:      "evil.png",
		"my photo (1).png":    "my_photo_1_.png",
		"../..":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}
