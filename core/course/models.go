package course

import (
	"time"

	"github.com/buildbytes/lms/core"
)

const defaultCategoryColor = "#3B82F6"

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	TaskNotStarted    TaskStatus = "not_started"
	TaskInProgress    TaskStatus = "in_progress"
	TaskSubmitted     TaskStatus = "submitted"
	TaskApproved      TaskStatus = "approved"
	TaskNeedsRevision TaskStatus = "needs_revision"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskSubmitted, TaskApproved, TaskNeedsRevision:
		return true
	}
	return false
}

// SubjectCategory groups projects under a named subject. It is owned by the
// mentor that created it.
type SubjectCategory struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Color       string    `bson:"color" json:"color"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"` // UTC
}

type NewCategory struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

func (nc *NewCategory) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	if nc.Color == "" {
		nc.Color = defaultCategoryColor
	}
	return core.Validate.Struct(nc)
}

// UpdateCategory is a sparse field update; nil fields are left untouched.
type UpdateCategory struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

func (uc *UpdateCategory) Validate() error {
	if uc.Name != nil {
		name := core.CleanString(*uc.Name)
		if name == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "must not be blank"})
		}
		uc.Name = &name
	}
	return nil
}

// Project is a unit of curricular work assigned to a set of students. It is
// owned by the mentor that created it.
type Project struct {
	ID                string    `bson:"id" json:"id"`
	Title             string    `bson:"title" json:"title"`
	Description       string    `bson:"description" json:"description"`
	SubjectCategoryID string    `bson:"subject_category_id" json:"subject_category_id"`
	AssignedStudents  []string  `bson:"assigned_students" json:"assigned_students"`
	CreatedBy         string    `bson:"created_by" json:"created_by"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"` // UTC
}

// HasStudent reports whether the given user id is assigned to the project.
func (p *Project) HasStudent(id string) bool {
	for _, sid := range p.AssignedStudents {
		if sid == id {
			return true
		}
	}
	return false
}

type NewProject struct {
	Title             string   `json:"title" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	SubjectCategoryID string   `json:"subject_category_id" validate:"required"`
	AssignedStudents  []string `json:"assigned_students"`
}

func (np *NewProject) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	return core.Validate.Struct(np)
}

type UpdateProject struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	AssignedStudents *[]string `json:"assigned_students"`
}

func (up *UpdateProject) Validate() error {
	if up.Title != nil {
		title := core.CleanString(*up.Title)
		if title == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "title", Error: "must not be blank"})
		}
		up.Title = &title
	}
	return nil
}

// Task belongs to exactly one project. It carries no ownership field;
// mutation is gated purely by role.
type Task struct {
	ID          string     `bson:"id" json:"id"`
	ProjectID   string     `bson:"project_id" json:"project_id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Deadline    *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status      TaskStatus `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"` // UTC
}

type NewTask struct {
	ProjectID   string     `json:"project_id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Deadline    *time.Time `json:"deadline"`
}

func (nt *NewTask) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	return core.Validate.Struct(nt)
}

type UpdateTask struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Deadline    *time.Time  `json:"deadline"`
	Status      *TaskStatus `json:"status"`
}

func (ut *UpdateTask) Validate() error {
	if ut.Status != nil && !ut.Status.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid task status"})
	}
	return nil
}

type ProjectFilter struct {
	SubjectCategoryID string `query:"subject_category_id"`
	AssignedStudent   string
}

type TaskFilter struct {
	ProjectID  string `query:"project_id"`
	ProjectIDs []string
	Status     TaskStatus
	NotStatus  TaskStatus
}
