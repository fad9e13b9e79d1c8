package course

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/buildbytes/lms/core"
)

var (
	// errors
	ErrCategoryNotFound = errors.New("subject category not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrTaskNotFound     = errors.New("task not found")

	errCategoryHasProjects = errors.New("cannot delete category with associated projects")
)

type (
	Repository interface {
		CreateCategory(ctx context.Context, cat SubjectCategory) (SubjectCategory, error)
		QueryCategories(ctx context.Context) ([]SubjectCategory, error)
		GetCategoryByID(ctx context.Context, id string) (SubjectCategory, error)
		UpdateCategory(ctx context.Context, id string, uc UpdateCategory) (SubjectCategory, error)
		DeleteCategory(ctx context.Context, id string) error
		CountCategories(ctx context.Context) (int64, error)

		CreateProject(ctx context.Context, prj Project) (Project, error)
		FilterProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
		GetProjectByID(ctx context.Context, id string) (Project, error)
		UpdateProject(ctx context.Context, id string, up UpdateProject) (Project, error)
		DeleteProject(ctx context.Context, id string) error
		CountProjects(ctx context.Context, filter ProjectFilter) (int64, error)

		CreateTask(ctx context.Context, tsk Task) (Task, error)
		FilterTasks(ctx context.Context, filter TaskFilter) ([]Task, error)
		GetTaskByID(ctx context.Context, id string) (Task, error)
		UpdateTask(ctx context.Context, id string, ut UpdateTask) (Task, error)
		DeleteTask(ctx context.Context, id string) error
		CountTasks(ctx context.Context, filter TaskFilter) (int64, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Categories

func (svc *Service) CreateCategory(ctx context.Context, nc NewCategory, createdBy string) (SubjectCategory, error) {
	cat := SubjectCategory{
		ID:          uuid.New().String(),
		Name:        nc.Name,
		Description: nc.Description,
		Color:       nc.Color,
		Icon:        nc.Icon,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateCategory(ctx, cat)
}

func (svc *Service) QueryCategories(ctx context.Context) ([]SubjectCategory, error) {
	return svc.repo.QueryCategories(ctx)
}

func (svc *Service) GetCategory(ctx context.Context, id string) (SubjectCategory, error) {
	return svc.repo.GetCategoryByID(ctx, id)
}

func (svc *Service) UpdateCategory(ctx context.Context, id string, uc UpdateCategory) (SubjectCategory, error) {
	return svc.repo.UpdateCategory(ctx, id, uc)
}

// DeleteCategory removes a category; it refuses when dependent projects
// still reference it, leaving both sides unchanged.
func (svc *Service) DeleteCategory(ctx context.Context, id string) error {
	count, err := svc.repo.CountProjects(ctx, ProjectFilter{SubjectCategoryID: id})
	if err != nil {
		return err
	}
	if count > 0 {
		return core.NewDependencyError(errCategoryHasProjects)
	}
	return svc.repo.DeleteCategory(ctx, id)
}

func (svc *Service) CountCategories(ctx context.Context) (int64, error) {
	return svc.repo.CountCategories(ctx)
}

// Projects

func (svc *Service) CreateProject(ctx context.Context, np NewProject, createdBy string) (Project, error) {
	if _, err := svc.repo.GetCategoryByID(ctx, np.SubjectCategoryID); err != nil {
		return Project{}, err
	}

	students := np.AssignedStudents
	if students == nil {
		students = []string{}
	}
	prj := Project{
		ID:                uuid.New().String(),
		Title:             np.Title,
		Description:       np.Description,
		SubjectCategoryID: np.SubjectCategoryID,
		AssignedStudents:  students,
		CreatedBy:         createdBy,
		CreatedAt:         time.Now().UTC(),
	}
	return svc.repo.CreateProject(ctx, prj)
}

func (svc *Service) FilterProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	return svc.repo.FilterProjects(ctx, filter)
}

func (svc *Service) GetProject(ctx context.Context, id string) (Project, error) {
	return svc.repo.GetProjectByID(ctx, id)
}

func (svc *Service) UpdateProject(ctx context.Context, id string, up UpdateProject) (Project, error) {
	return svc.repo.UpdateProject(ctx, id, up)
}

func (svc *Service) DeleteProject(ctx context.Context, id string) error {
	return svc.repo.DeleteProject(ctx, id)
}

func (svc *Service) CountProjects(ctx context.Context, filter ProjectFilter) (int64, error) {
	return svc.repo.CountProjects(ctx, filter)
}

// Tasks

func (svc *Service) CreateTask(ctx context.Context, nt NewTask) (Task, error) {
	if _, err := svc.repo.GetProjectByID(ctx, nt.ProjectID); err != nil {
		return Task{}, err
	}

	tsk := Task{
		ID:          uuid.New().String(),
		ProjectID:   nt.ProjectID,
		Title:       nt.Title,
		Description: nt.Description,
		Deadline:    nt.Deadline,
		Status:      TaskNotStarted,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateTask(ctx, tsk)
}

func (svc *Service) FilterTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	return svc.repo.FilterTasks(ctx, filter)
}

func (svc *Service) GetTask(ctx context.Context, id string) (Task, error) {
	return svc.repo.GetTaskByID(ctx, id)
}

func (svc *Service) UpdateTask(ctx context.Context, id string, ut UpdateTask) (Task, error) {
	return svc.repo.UpdateTask(ctx, id, ut)
}

// SetTaskStatus transitions a task to the given status.
func (svc *Service) SetTaskStatus(ctx context.Context, id string, status TaskStatus) error {
	_, err := svc.repo.UpdateTask(ctx, id, UpdateTask{Status: &status})
	return err
}

func (svc *Service) DeleteTask(ctx context.Context, id string) error {
	return svc.repo.DeleteTask(ctx, id)
}

func (svc *Service) CountTasks(ctx context.Context, filter TaskFilter) (int64, error) {
	return svc.repo.CountTasks(ctx, filter)
}
