package repository

import (
	"context"
	"errors"
	"fmt"

	"course_catalog/internal/model"

	"github.com/jackc/pgx/v5"
)

// CourseRepository defines operations for the course aggregate.
// A course owns its modules; every multi-row write runs in one transaction so
// readers never observe a partially written module set.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id int) (*model.Course, error)
	FindAll(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	AddModule(ctx context.Context, module *model.Module) error
	Delete(ctx context.Context, id int) error
}

type courseRepository struct {
	db DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create inserts the course and all its modules in a single transaction.
// On success the assigned ids are written back into the model.
func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql := `INSERT INTO courses (title, description, difficulty, image)
            VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRow(ctx, sql, course.Title, course.Description, course.Difficulty, course.Image).Scan(&course.ID); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	for i := range course.Modules {
		m := &course.Modules[i]
		m.CourseID = course.ID
		if err := r.insertModule(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit course creation: %w", err)
	}
	return nil
}

// FindByID retrieves a course with its full module set, modules ordered by id
func (r *courseRepository) FindByID(ctx context.Context, id int) (*model.Course, error) {
	course := &model.Course{}
	sql := `SELECT id, title, description, difficulty, image FROM courses WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&course.ID, &course.Title, &course.Description, &course.Difficulty, &course.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, service layer decides what that means
		}
		return nil, fmt.Errorf("failed to find course by ID: %w", err)
	}

	modules, err := r.findModules(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.Modules = modules
	return course, nil
}

// FindAll retrieves every course, each with its full module set
func (r *courseRepository) FindAll(ctx context.Context) ([]model.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, description, difficulty, image FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	for i := range courses {
		modules, err := r.findModules(ctx, courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].Modules = modules
	}
	return courses, nil
}

// Update applies the course fields and fully replaces the module set
// (delete all, reinsert) in a single transaction.
func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql := `UPDATE courses SET title = $1, description = $2, difficulty = $3, image = $4 WHERE id = $5`
	cmdTag, err := tx.Exec(ctx, sql, course.Title, course.Description, course.Difficulty, course.Image, course.ID)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("course not found for update")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM modules WHERE course_id = $1`, course.ID); err != nil {
		return fmt.Errorf("failed to delete existing modules: %w", err)
	}

	for i := range course.Modules {
		m := &course.Modules[i]
		m.CourseID = course.ID
		if err := r.insertModule(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit course update: %w", err)
	}
	return nil
}

// AddModule appends a single module to an existing course
func (r *courseRepository) AddModule(ctx context.Context, module *model.Module) error {
	sql := `INSERT INTO modules (title, content, video, course_id)
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, module.Title, module.Content, module.Video, module.CourseID).Scan(&module.ID)
	if err != nil {
		return fmt.Errorf("failed to add module: %w", err)
	}
	return nil
}

// Delete removes a course and all its modules in a single transaction.
// The schema's ON DELETE CASCADE would cover the modules too, the explicit
// delete keeps the cascade visible and testable.
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM modules WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete modules: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("course not found for deletion")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit course deletion: %w", err)
	}
	return nil
}

func (r *courseRepository) insertModule(ctx context.Context, tx pgx.Tx, m *model.Module) error {
	sql := `INSERT INTO modules (title, content, video, course_id)
            VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRow(ctx, sql, m.Title, m.Content, m.Video, m.CourseID).Scan(&m.ID); err != nil {
		return fmt.Errorf("failed to insert module: %w", err)
	}
	return nil
}

// findModules loads the modules of one course ordered by id ascending,
// which matches insertion order since ids are assignment-ordered.
func (r *courseRepository) findModules(ctx context.Context, courseID int) ([]model.Module, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, content, video, course_id FROM modules WHERE course_id = $1 ORDER BY id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	modules := []model.Module{}
	for rows.Next() {
		var m model.Module
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.Video, &m.CourseID); err != nil {
			return nil, fmt.Errorf("failed to scan module row: %w", err)
		}
		modules = append(modules, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module rows: %w", err)
	}
	return modules, nil
}
