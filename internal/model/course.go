package model

// Course is the aggregate root; it owns its modules
type Course struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Image       string   `json:"image"`
	Modules     []Module `json:"modules"`
}

// Module belongs to exactly one course; deleted with it.
// Only title/content/video go over the wire, ids stay internal.
type Module struct {
	ID       int    `json:"-"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Video    string `json:"video"`
	CourseID int    `json:"-"`
}

// ModuleRequest is a module as supplied by clients
type ModuleRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Video   string `json:"video"`
}

// CreateCourseRequest is the body of POST /add_course
type CreateCourseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Difficulty  string          `json:"difficulty" binding:"required"`
	Image       string          `json:"image"`
	Modules     []ModuleRequest `json:"modules" binding:"omitempty,dive"`
}

// UpdateCourseRequest is the body of POST /update_course/:id.
// Course fields are a merge-patch (pointers, only supplied keys change);
// the module list is a full replacement (absent list clears the set).
type UpdateCourseRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Difficulty  *string         `json:"difficulty,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Modules     []ModuleRequest `json:"modules" binding:"omitempty,dive"`
}
