package inmemdb

import (
	"context"

	"github.com/buildbytes/lms/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

// Categories

func (repo *courseRepository) CreateCategory(_ context.Context, cat course.SubjectCategory) (course.SubjectCategory, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.categories[cat.ID] = &cat
	return cat, nil
}

func (repo *courseRepository) QueryCategories(_ context.Context) ([]course.SubjectCategory, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cats := make([]course.SubjectCategory, 0, len(repo.db.categories))
	for _, cat := range repo.db.categories {
		cats = append(cats, *cat)
	}
	return cats, nil
}

func (repo *courseRepository) GetCategoryByID(_ context.Context, id string) (course.SubjectCategory, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cat, ok := repo.db.categories[id]; ok {
		return *cat, nil
	}
	return course.SubjectCategory{}, course.ErrCategoryNotFound
}

func (repo *courseRepository) UpdateCategory(_ context.Context, id string, uc course.UpdateCategory) (course.SubjectCategory, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cat, ok := repo.db.categories[id]
	if !ok {
		return course.SubjectCategory{}, course.ErrCategoryNotFound
	}
	if uc.Name != nil {
		cat.Name = *uc.Name
	}
	if uc.Description != nil {
		cat.Description = *uc.Description
	}
	if uc.Color != nil {
		cat.Color = *uc.Color
	}
	if uc.Icon != nil {
		cat.Icon = *uc.Icon
	}
	return *cat, nil
}

func (repo *courseRepository) DeleteCategory(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.categories[id]; !ok {
		return course.ErrCategoryNotFound
	}
	delete(repo.db.categories, id)
	return nil
}

func (repo *courseRepository) CountCategories(_ context.Context) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return int64(len(repo.db.categories)), nil
}

// Projects

func matchProject(prj *course.Project, filter course.ProjectFilter) bool {
	if filter.SubjectCategoryID != "" && prj.SubjectCategoryID != filter.SubjectCategoryID {
		return false
	}
	if filter.AssignedStudent != "" && !prj.HasStudent(filter.AssignedStudent) {
		return false
	}
	return true
}

func (repo *courseRepository) CreateProject(_ context.Context, prj course.Project) (course.Project, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.projects[prj.ID] = &prj
	return prj, nil
}

func (repo *courseRepository) FilterProjects(_ context.Context, filter course.ProjectFilter) ([]course.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	prjs := make([]course.Project, 0, len(repo.db.projects))
	for _, prj := range repo.db.projects {
		if matchProject(prj, filter) {
			prjs = append(prjs, *prj)
		}
	}
	return prjs, nil
}

func (repo *courseRepository) GetProjectByID(_ context.Context, id string) (course.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prj, ok := repo.db.projects[id]; ok {
		return *prj, nil
	}
	return course.Project{}, course.ErrProjectNotFound
}

func (repo *courseRepository) UpdateProject(_ context.Context, id string, up course.UpdateProject) (course.Project, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	prj, ok := repo.db.projects[id]
	if !ok {
		return course.Project{}, course.ErrProjectNotFound
	}
	if up.Title != nil {
		prj.Title = *up.Title
	}
	if up.Description != nil {
		prj.Description = *up.Description
	}
	if up.AssignedStudents != nil {
		prj.AssignedStudents = *up.AssignedStudents
	}
	return *prj, nil
}

func (repo *courseRepository) DeleteProject(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.projects[id]; !ok {
		return course.ErrProjectNotFound
	}
	delete(repo.db.projects, id)
	return nil
}

func (repo *courseRepository) CountProjects(_ context.Context, filter course.ProjectFilter) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var count int64
	for _, prj := range repo.db.projects {
		if matchProject(prj, filter) {
			count++
		}
	}
	return count, nil
}

// Tasks

func matchTask(tsk *course.Task, filter course.TaskFilter) bool {
	if filter.ProjectID != "" && tsk.ProjectID != filter.ProjectID {
		return false
	}
	if len(filter.ProjectIDs) > 0 {
		var found bool
		for _, id := range filter.ProjectIDs {
			if tsk.ProjectID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Status != "" && tsk.Status != filter.Status {
		return false
	}
	if filter.NotStatus != "" && tsk.Status == filter.NotStatus {
		return false
	}
	return true
}

func (repo *courseRepository) CreateTask(_ context.Context, tsk course.Task) (course.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.tasks[tsk.ID] = &tsk
	return tsk, nil
}

func (repo *courseRepository) FilterTasks(_ context.Context, filter course.TaskFilter) ([]course.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tsks := make([]course.Task, 0, len(repo.db.tasks))
	for _, tsk := range repo.db.tasks {
		if matchTask(tsk, filter) {
			tsks = append(tsks, *tsk)
		}
	}
	return tsks, nil
}

func (repo *courseRepository) GetTaskByID(_ context.Context, id string) (course.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tsk, ok := repo.db.tasks[id]; ok {
		return *tsk, nil
	}
	return course.Task{}, course.ErrTaskNotFound
}

func (repo *courseRepository) UpdateTask(_ context.Context, id string, ut course.UpdateTask) (course.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tsk, ok := repo.db.tasks[id]
	if !ok {
		return course.Task{}, course.ErrTaskNotFound
	}
	if ut.Title != nil {
		tsk.Title = *ut.Title
	}
	if ut.Description != nil {
		tsk.Description = *ut.Description
	}
	if ut.Deadline != nil {
		tsk.Deadline = ut.Deadline
	}
	if ut.Status != nil {
		tsk.Status = *ut.Status
	}
	return *tsk, nil
}

func (repo *courseRepository) DeleteTask(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.tasks[id]; !ok {
		return course.ErrTaskNotFound
	}
	delete(repo.db.tasks, id)
	return nil
}

func (repo *courseRepository) CountTasks(_ context.Context, filter course.TaskFilter) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var count int64
	for _, tsk := range repo.db.tasks {
		if matchTask(tsk, filter) {
			count++
		}
	}
	return count, nil
}
